package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/jengzang/solarmap-backend-go/internal/database"
	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// Canonical non-numeric columns of the parcels table
const (
	ColumnID           = "id"
	ColumnNeighborhood = "neighborhood"
)

// ParcelRepository handles database operations for parcel attributes
type ParcelRepository struct {
	db    *sql.DB
	table string
}

// NewParcelRepository creates a new parcel repository over table
func NewParcelRepository(db *sql.DB, table string) *ParcelRepository {
	return &ParcelRepository{db: db, table: table}
}

// Migrations returns the schema of the parcels table
func (r *ParcelRepository) Migrations() []database.Migration {
	cols := []string{
		database.QuoteIdent(ColumnID) + " TEXT PRIMARY KEY",
		database.QuoteIdent(ColumnNeighborhood) + " TEXT",
	}
	for _, f := range models.Fields {
		cols = append(cols, database.QuoteIdent(f.Name)+" REAL")
	}
	return []database.Migration{
		{
			Version: 1,
			Name:    "create_" + r.table,
			SQL:     fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", database.QuoteIdent(r.table), strings.Join(cols, ",\n\t")),
		},
		{
			Version: 2,
			Name:    "index_" + r.table + "_neighborhood",
			SQL: fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				database.QuoteIdent("idx_"+r.table+"_neighborhood"), database.QuoteIdent(r.table), database.QuoteIdent(ColumnNeighborhood)),
		},
	}
}

// ReadTable returns the header and every row of the table as text cells.
// NULL cells are returned as empty strings; row order follows rowid.
func (r *ParcelRepository) ReadTable(ctx context.Context) ([]string, [][]string, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", database.QuoteIdent(r.table))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]interface{}, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row %d: %w", len(records)+1, err)
		}

		record := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate %s: %w", r.table, err)
	}
	return header, records, nil
}

// SaveParcels replaces the table contents with parcels in a single transaction.
// NaN values are stored as NULL.
func (r *ParcelRepository) SaveParcels(ctx context.Context, parcels []models.Parcel) error {
	cols := []string{database.QuoteIdent(ColumnID), database.QuoteIdent(ColumnNeighborhood)}
	for _, f := range models.Fields {
		cols = append(cols, database.QuoteIdent(f.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		database.QuoteIdent(r.table), strings.Join(cols, ", "), placeholders)

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+database.QuoteIdent(r.table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", r.table, err)
		}

		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		args := make([]interface{}, len(cols))
		for i := range parcels {
			p := &parcels[i]
			args[0] = p.ID
			args[1] = p.Neighborhood
			for j, f := range models.Fields {
				v := *f.Ref(p)
				if math.IsNaN(v) {
					args[j+2] = nil
				} else {
					args[j+2] = v
				}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert parcel %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Count returns the number of rows in the table
func (r *ParcelRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+database.QuoteIdent(r.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return n, nil
}
