// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/inct-panel/catalog"
)

// InstitutionRow is one institution or company hosting researchers of an INCT.
type InstitutionRow struct {
	Institute   string
	Area        string
	UF          string
	Name        string
	Researchers int
}

// ProductionRow counts bibliographic output of one type in one period.
// Institute is empty in per-area tables.
type ProductionRow struct {
	Institute string
	Area      string
	Type      string
	Period    string
	Count     int
}

// FormationRow counts researchers by the field of their highest degree.
type FormationRow struct {
	Institute string
	Area      string
	Field     string
	Count     int
}

// WordRow is a pre-aggregated keyword frequency.
type WordRow struct {
	Institute string
	Area      string
	Period    string
	Word      string
	Freq      float64
}

// DegreeRow counts researchers by highest degree (doctorate, masters, ...).
type DegreeRow struct {
	Institute string
	Area      string
	Degree    string
	Count     int
}

// InstituteText holds the descriptive paragraphs of one INCT.
type InstituteText struct {
	Description string
	Statistics  string
	Comparisons string
	Indicators  string
}

// AreaText holds the markdown texts of one area in one period.
type AreaText struct {
	Markdown     string
	Coauthorship string
}

// Tables is an immutable snapshot of the supplementary tables.
type Tables struct {
	Institutions          []InstitutionRow
	ProductionByInstitute []ProductionRow
	ProductionByArea      []ProductionRow
	Formations            []FormationRow
	WordsByInstitute      []WordRow
	WordsByArea           []WordRow
	DegreesByInstitute    []DegreeRow
	DegreesByArea         []DegreeRow

	instituteTexts map[string]InstituteText
	areaTexts      map[string]AreaText
}

// InstituteText returns the texts of an INCT.
func (t *Tables) InstituteText(name string) (InstituteText, bool) {
	txt, ok := t.instituteTexts[name]
	return txt, ok
}

// AreaText returns the texts of an area for a period. Periods match after
// Normalize, so "2020–2025" finds "2020-2025".
func (t *Tables) AreaText(area, period string) (AreaText, bool) {
	txt, ok := t.areaTexts[areaKey(area, period)]
	return txt, ok
}

func areaKey(area, period string) string {
	return area + "\x00" + Normalize(period)
}

// Normalize folds a label for tolerant matching: NFKC, trimmed, lower case,
// en dash replaced by a hyphen.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = norm.NFKC.String(s)
	return strings.ReplaceAll(s, "–", "-")
}

var errNoTable = errors.New("table not found")

// table is a CSV file addressed by column name.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	if path == "" {
		return nil, errNoTable
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errNoTable
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseTable(f)
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &table{cols: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &table{cols: make(map[string]int, len(header))}
	for i, name := range header {
		t.cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) str(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	s := strings.TrimSpace(row[i])
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

func (t *table) num(row []string, col string) int {
	n, err := catalog.ParseCount(t.str(row, col))
	if err != nil {
		return 0
	}
	return n
}

func (t *table) float(row []string, col string) float64 {
	f, err := strconv.ParseFloat(t.str(row, col), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if !t.has(c) {
			return fmt.Errorf("%w: %s", catalog.ErrMissingColumn, c)
		}
	}
	return nil
}

func institutionRows(t *table) ([]InstitutionRow, error) {
	if err := t.require("nome_inct", "uf", "nome_instituicao_empresa"); err != nil {
		return nil, err
	}
	out := make([]InstitutionRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, InstitutionRow{
			Institute:   t.str(r, "nome_inct"),
			Area:        t.str(r, "area"),
			UF:          strings.ToUpper(t.str(r, "uf")),
			Name:        t.str(r, "nome_instituicao_empresa"),
			Researchers: t.num(r, "n_pesquisadores"),
		})
	}
	return out, nil
}

func productionRows(t *table, scope string) ([]ProductionRow, error) {
	if err := t.require(scope, "tipo_producao", "periodo", "n_tipos_producao"); err != nil {
		return nil, err
	}
	out := make([]ProductionRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, ProductionRow{
			Institute: t.str(r, "nome_inct"),
			Area:      t.str(r, "area"),
			Type:      t.str(r, "tipo_producao"),
			Period:    t.str(r, "periodo"),
			Count:     t.num(r, "n_tipos_producao"),
		})
	}
	return out, nil
}

func formationRows(t *table) ([]FormationRow, error) {
	if err := t.require("area_de_maior_formacao", "count"); err != nil {
		return nil, err
	}
	out := make([]FormationRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, FormationRow{
			Institute: t.str(r, "nome_inct"),
			Area:      t.str(r, "area"),
			Field:     t.str(r, "area_de_maior_formacao"),
			Count:     t.num(r, "count"),
		})
	}
	return out, nil
}

func wordRows(t *table, scope string) ([]WordRow, error) {
	if err := t.require(scope, "palavra", "freq"); err != nil {
		return nil, err
	}
	out := make([]WordRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, WordRow{
			Institute: t.str(r, "nome_inct"),
			Area:      t.str(r, "area"),
			Period:    t.str(r, "periodo"),
			Word:      t.str(r, "palavra"),
			Freq:      t.float(r, "freq"),
		})
	}
	return out, nil
}

func degreeRows(t *table, scope string) ([]DegreeRow, error) {
	if err := t.require(scope, "formacao_mais_alta", "qtd"); err != nil {
		return nil, err
	}
	out := make([]DegreeRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, DegreeRow{
			Institute: t.str(r, "nome_inct"),
			Area:      t.str(r, "area"),
			Degree:    t.str(r, "formacao_mais_alta"),
			Count:     t.num(r, "qtd"),
		})
	}
	return out, nil
}

func instituteTexts(t *table) (map[string]InstituteText, error) {
	if err := t.require("nome_inct"); err != nil {
		return nil, err
	}
	out := make(map[string]InstituteText, len(t.rows))
	for _, r := range t.rows {
		name := t.str(r, "nome_inct")
		if _, dup := out[name]; dup {
			continue // first row wins
		}
		out[name] = InstituteText{
			Description: t.str(r, "texto_descricao"),
			Statistics:  t.str(r, "texto_estatisticas"),
			Comparisons: t.str(r, "texto_comparativos"),
			Indicators:  t.str(r, "texto_indicadores"),
		}
	}
	return out, nil
}

func areaTexts(t *table) (map[string]AreaText, error) {
	if err := t.require("area", "periodo"); err != nil {
		return nil, err
	}
	out := make(map[string]AreaText, len(t.rows))
	for _, r := range t.rows {
		key := areaKey(t.str(r, "area"), t.str(r, "periodo"))
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = AreaText{
			Markdown:     t.str(r, "texto_md"),
			Coauthorship: t.str(r, "texto_coautoria"),
		}
	}
	return out, nil
}
