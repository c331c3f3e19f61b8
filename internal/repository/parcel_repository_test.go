package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jengzang/solarmap-backend-go/internal/database"
	"github.com/jengzang/solarmap-backend-go/internal/models"
)

func newTestRepo(t *testing.T) *ParcelRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "parcels.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewParcelRepository(db, "parcels")
	if err := database.NewMigrationManager(db).RunMigrations(repo.Migrations()); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return repo
}

func TestSaveAndReadTable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := models.NewAttributes("10", 1)
	a.Neighborhood = "Lagoa Nova"
	a.RoofProduction = 321.25
	a.Production[0] = 30
	b := models.NewAttributes("11", 2)
	b.Neighborhood = "Tirol"

	if err := repo.SaveParcels(ctx, []models.Parcel{a.Parcel, b.Parcel}); err != nil {
		t.Fatalf("SaveParcels() error = %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count() = (%d, %v), want 2", n, err)
	}

	header, rows, err := repo.ReadTable(ctx)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(header) != 2+len(models.Fields) {
		t.Fatalf("len(header) = %d, want %d", len(header), 2+len(models.Fields))
	}
	if header[0] != ColumnID || header[1] != ColumnNeighborhood {
		t.Errorf("header starts with %v", header[:2])
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	col := make(map[string]int)
	for i, h := range header {
		col[h] = i
	}
	if got := rows[0][col["roof_production"]]; got != "321.25" {
		t.Errorf("roof_production = %q, want 321.25", got)
	}
	if got := rows[0][col["production_jan"]]; got != "30" {
		t.Errorf("production_jan = %q, want 30", got)
	}
	if got := rows[1][col["roof_production"]]; got != "" {
		t.Errorf("NaN should be stored as NULL, got %q", got)
	}
	if rows[1][0] != "11" || rows[1][1] != "Tirol" {
		t.Errorf("row 2 = %v", rows[1][:2])
	}

	// saving again replaces the contents
	if err := repo.SaveParcels(ctx, []models.Parcel{b.Parcel}); err != nil {
		t.Fatal(err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("Count() after replace = %d, want 1", n)
	}
}

func TestReadTableMissing(t *testing.T) {
	repo := newTestRepo(t)
	missing := NewParcelRepository(repo.db, "nope")
	if _, _, err := missing.ReadTable(context.Background()); err == nil {
		t.Error("expected error for a missing table")
	}
}
