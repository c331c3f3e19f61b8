package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jengzang/solarmap-backend-go/internal/database"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/repository"
)

// TabularOptions selects the attribute source
type TabularOptions struct {
	Path     string
	Sheet    string // xlsx only; first sheet when empty
	Table    string // sqlite only
	IDColumn string
}

// LoadTabular reads the parcel attribute table. The format follows the file
// extension: .xlsx, .csv/.tsv or .db/.sqlite/.sqlite3.
func LoadTabular(ctx context.Context, opts TabularOptions) ([]*models.Attributes, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(opts.Path)); ext {
	case ".xlsx", ".xlsm":
		header, rows, err = readWorkbook(opts.Path, opts.Sheet)
	case ".csv", ".tsv":
		header, rows, err = readDelimited(opts.Path)
	case ".db", ".sqlite", ".sqlite3":
		header, rows, err = readSQLite(ctx, opts.Path, opts.Table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	attrs, err := parseRows(header, rows, opts.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}
	return attrs, nil
}

func readWorkbook(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrSourceUnreadable, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: sheet %q: %v", ErrSourceUnreadable, path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: sheet %q is empty", ErrSourceUnreadable, path, sheet)
	}
	return rows[0], rows[1:], nil
}

func readDelimited(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	r := csv.NewReader(br)
	r.Comma = sniffDelimiter(path, br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %s: empty file", ErrSourceUnreadable, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	return header, rows, nil
}

// sniffDelimiter picks tab for .tsv, and semicolon when the header line
// has semicolons but no commas, as spreadsheets in pt-BR locales export.
func sniffDelimiter(path string, br *bufio.Reader) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	peek, _ := br.Peek(4096)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	if bytes.IndexByte(peek, ';') >= 0 && bytes.IndexByte(peek, ',') < 0 {
		return ';'
	}
	return ','
}

func readSQLite(ctx context.Context, path, table string) ([]string, [][]string, error) {
	db, err := database.Open(database.Config{Path: path, ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer db.Close()

	if table == "" {
		table = DefaultTable
	}
	header, rows, err := repository.NewParcelRepository(db, table).ReadTable(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	return header, rows, nil
}

// parseRows maps raw cells onto attribute rows
func parseRows(header []string, rows [][]string, idColumn string) ([]*models.Attributes, error) {
	cm, err := mapColumns(header, idColumn)
	if err != nil {
		return nil, err
	}

	attrs := make([]*models.Attributes, 0, len(rows))
	seen := make(map[string]int, len(rows))
	skipped := 0
	invalid := make(map[string]int)

	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		id := CanonicalID(cell(row, cm.id))
		if id == "" {
			if !blankRow(row) {
				skipped++
			}
			continue
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q on rows %d and %d", ErrDuplicateID, id, first, line)
		}
		seen[id] = line

		a := models.NewAttributes(id, line)
		if cm.neighborhood >= 0 {
			a.Neighborhood = strings.TrimSpace(cell(row, cm.neighborhood))
		}
		for col, f := range cm.fields {
			v, ok := parseNumber(cell(row, col))
			if !ok {
				invalid[f.Name]++
			}
			*f.Ref(&a.Parcel) = v
		}
		attrs = append(attrs, a)
	}

	if skipped > 0 {
		logging.Warn().Int("rows", skipped).Msg("Skipped attribute rows without identifier")
	}
	for name, n := range invalid {
		logging.Warn().Str("column", name).Int("cells", n).Msg("Non-numeric cells treated as missing")
	}
	return attrs, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber reads a numeric cell. Blank and NaN-like cells are missing (NaN, ok).
// Anything else that does not parse is NaN with ok=false.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "-", "n/a":
		return math.NaN(), true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	// decimal comma, e.g. "1.234,56" or "12,5"
	if strings.Count(s, ",") == 1 {
		alt := strings.ReplaceAll(s, ".", "")
		alt = strings.Replace(alt, ",", ".", 1)
		if v, err := strconv.ParseFloat(alt, 64); err == nil {
			return v, true
		}
	}
	return math.NaN(), false
}

// CanonicalID normalizes an identifier so that numeric forms compare equal:
// 12, 12.0 and "12" all become "12".
func CanonicalID(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(x)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return canonicalNumber(f)
		}
		return s
	case float64:
		return canonicalNumber(x)
	case float32:
		return canonicalNumber(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func canonicalNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
