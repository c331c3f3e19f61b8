package dataset

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// Column targets that are not numeric fields
const (
	targetID           = "id"
	targetNeighborhood = "neighborhood"
)

// Portuguese month names as they appear in the solar dataset headers
var monthsPT = [models.MonthCount]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// columnAliases maps normalized header text to a column target
var columnAliases = buildAliases()

func buildAliases() map[string]string {
	aliases := map[string]string{
		"bairros":       targetNeighborhood,
		"bairro":        targetNeighborhood,
		"neighborhood":  targetNeighborhood,
		"neighbourhood": targetNeighborhood,
	}

	// original Portuguese headers
	aliases["Produção de energia kW do telhado do edifício"] = "roof_production"
	aliases["Área em metros quadrados da edificação"] = "building_area"
	aliases["Quantidade de Radiação Máxima Solar nos mêses (kW.m²)"] = "max_radiation"
	aliases["Capacidade de Produção de energia em kW por m²"] = "production_per_area"
	aliases["Capacidade de Produção de energia em Placas Fotovoltaicas em kW.h.dia"] = "panels_daily_output"
	aliases["Capacidade de Produção de energia em Placas Fotovoltaicas em kW.h.mês"] = "panels_monthly_output"
	aliases["Quantidade de Placas Fotovoltaicas capaz de gerar a energia gerada do imovel"] = "panel_count"
	aliases["Potencial médio de geração FV em um dia (kW.dia.m²)"] = "daily_potential"
	aliases["Renda Total"] = "total_income"
	aliases["Renda per capita"] = "per_capita_income"
	aliases["Renda domiciliar per capita"] = "household_per_capita_income"
	for i, m := range monthsPT {
		aliases[fmt.Sprintf("Produção de energia no mês de %s kW do telhado do edifício", m)] = models.Fields[i].Name
		aliases[fmt.Sprintf("Quantidade de Radiação Solar no mês de %s (kW.m²)", m)] = models.Fields[models.MonthCount+i].Name
	}
	for _, f := range models.Fields {
		aliases[f.Name] = f.Name
	}

	normalized := make(map[string]string, len(aliases))
	for k, v := range aliases {
		normalized[normalizeHeader(k)] = v
	}
	return normalized
}

// normalizeHeader folds case and accents and collapses punctuation to single
// spaces, so "Radiação (kW.m²" and "radiacao kw m2" compare equal.
func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			space = false
			continue
		}
		space = true
	}
	return b.String()
}

// columnMap says which source column feeds which target
type columnMap struct {
	id           int
	neighborhood int // -1 when absent
	fields       map[int]models.Field
}

// mapColumns resolves a header row. The configured identifier column wins;
// "OBJECTID" and "id" are accepted as fallbacks.
func mapColumns(header []string, idColumn string) (*columnMap, error) {
	cm := &columnMap{id: -1, neighborhood: -1, fields: make(map[int]models.Field)}

	want := normalizeHeader(idColumn)
	for i, h := range header {
		if normalizeHeader(h) == want {
			cm.id = i
			break
		}
	}
	if cm.id < 0 {
		for _, fallback := range []string{"objectid", targetID} {
			for i, h := range header {
				if normalizeHeader(h) == fallback {
					cm.id = i
					break
				}
			}
			if cm.id >= 0 {
				break
			}
		}
	}
	if cm.id < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingJoinKey, idColumn)
	}

	for i, h := range header {
		if i == cm.id {
			continue
		}
		target, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if target == targetNeighborhood {
			if cm.neighborhood < 0 {
				cm.neighborhood = i
			}
			continue
		}
		if f, ok := models.FieldByName(target); ok {
			cm.fields[i] = f
		}
	}

	if len(cm.fields) == 0 && cm.neighborhood < 0 {
		return nil, ErrSchemaMismatch
	}
	return cm, nil
}
