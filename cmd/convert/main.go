// Command convert copies a tabular parcel source (xlsx or csv) into a SQLite
// table the server can load with DATA_TABULAR_PATH=<out>.db.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
)

func main() {
	_ = godotenv.Load(".env")

	in := flag.String("in", "data/Dados_energia_solar.xlsx", "tabular source (.xlsx, .csv)")
	out := flag.String("out", "data/parcels.db", "SQLite file to write")
	table := flag.String("table", dataset.DefaultTable, "destination table")
	sheet := flag.String("sheet", "", "workbook sheet, first sheet when empty")
	idColumn := flag.String("id-column", "OBJECTID", "identifier column")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Init(logging.Config{Level: *level, Format: "console"})

	ctx := context.Background()
	rows, err := dataset.LoadTabular(ctx, dataset.TabularOptions{Path: *in, Sheet: *sheet, IDColumn: *idColumn})
	if err != nil {
		logging.Error().Err(err).Str("in", *in).Msg("Failed to read source")
		os.Exit(1)
	}
	if err := dataset.ExportSQLite(ctx, rows, *out, *table); err != nil {
		logging.Error().Err(err).Str("out", *out).Msg("Failed to export")
		os.Exit(1)
	}
}
