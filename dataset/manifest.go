// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists where every source table and fragment directory lives.
// Relative paths are resolved against the data directory.
type Manifest struct {
	Catalog string `yaml:"catalog"`

	Institutions          string `yaml:"institutions"`
	ProductionByInstitute string `yaml:"production_inct"`
	ProductionByArea      string `yaml:"production_area"`
	Formations            string `yaml:"formations"`
	WordsByInstitute      string `yaml:"wordcloud_inct"`
	WordsByArea           string `yaml:"wordcloud_area"`
	DegreesByInstitute    string `yaml:"degrees_inct"`
	DegreesByArea         string `yaml:"degrees_area"`
	InstituteTexts        string `yaml:"texts_inct"`
	AreaTexts             string `yaml:"texts_area"`

	GraphDir           string `yaml:"graph_dir"`
	SankeyInstituteDir string `yaml:"sankey_inct_dir"`
	SankeyAreaDir      string `yaml:"sankey_area_dir"`
}

// DefaultManifest is the layout produced by the offline pipeline.
func DefaultManifest() Manifest {
	return Manifest{
		Catalog: "bases/select_incts_areas_coord_sexo.csv",

		Institutions:          "bases/select_instituicoes_por_inct.csv",
		ProductionByInstitute: "bases/big_number_qtd_producao_bibliografica_periodo.csv",
		ProductionByArea:      "bases/big_number_qtd_producao_bibliografica_periodo_area.csv",
		Formations:            "bases/big_number_maior_formacao.csv",
		WordsByInstitute:      "bases/wordcloud_inct_agg.csv",
		WordsByArea:           "bases/wordcloud_area_agg.csv",
		DegreesByInstitute:    "bases/grafico_maior_graduacao_inct.csv",
		DegreesByArea:         "bases/grafico_maior_graduacao_area.csv",
		InstituteTexts:        "bases/texto_descricao_inct.csv",
		AreaTexts:             "bases/texto_descricao_area.csv",

		GraphDir:           "gexf_html",
		SankeyInstituteDir: "sankey_inct_palavra_tratada",
		SankeyAreaDir:      "sankey_inct_palavra_tratada_area",
	}
}

// LoadManifest reads a YAML manifest. Keys left out keep their default.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.Catalog == "" {
		return Manifest{}, fmt.Errorf("manifest %s: catalog path is empty", path)
	}
	return m, nil
}

// Resolve returns a copy with relative paths joined to dir.
func (m Manifest) Resolve(dir string) Manifest {
	for _, p := range m.paths() {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return m
}

func (m *Manifest) paths() []*string {
	return []*string{
		&m.Catalog,
		&m.Institutions, &m.ProductionByInstitute, &m.ProductionByArea,
		&m.Formations, &m.WordsByInstitute, &m.WordsByArea,
		&m.DegreesByInstitute, &m.DegreesByArea,
		&m.InstituteTexts, &m.AreaTexts,
		&m.GraphDir, &m.SankeyInstituteDir, &m.SankeyAreaDir,
	}
}

func (m Manifest) tablePaths() []string {
	return []string{
		m.Catalog,
		m.Institutions, m.ProductionByInstitute, m.ProductionByArea,
		m.Formations, m.WordsByInstitute, m.WordsByArea,
		m.DegreesByInstitute, m.DegreesByArea,
		m.InstituteTexts, m.AreaTexts,
	}
}

// Dirs returns the distinct directories holding manifest files.
func (m Manifest) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, p := range m.tablePaths() {
		if p != "" {
			add(filepath.Dir(p))
		}
	}
	for _, d := range []string{m.GraphDir, m.SankeyInstituteDir, m.SankeyAreaDir} {
		if d != "" {
			add(filepath.Clean(d))
		}
	}
	return dirs
}
