package dataset

import (
	"context"
	"fmt"

	"github.com/jengzang/solarmap-backend-go/internal/database"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/repository"
)

// DefaultTable is the SQLite table the loader and the exporter use
const DefaultTable = "parcels"

// ExportSQLite writes attribute rows into table of the SQLite file at path,
// creating or migrating the schema first. Existing rows are replaced.
func ExportSQLite(ctx context.Context, rows []*models.Attributes, path, table string) error {
	if table == "" {
		table = DefaultTable
	}

	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewParcelRepository(db, table)
	if err := database.NewMigrationManager(db).RunMigrations(repo.Migrations()); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", path, err)
	}

	parcels := make([]models.Parcel, len(rows))
	for i, r := range rows {
		parcels[i] = r.Parcel
	}
	if err := repo.SaveParcels(ctx, parcels); err != nil {
		return err
	}

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	logging.Info().Str("path", path).Str("table", table).Int("rows", n).Msg("Exported parcels to SQLite")
	return nil
}
