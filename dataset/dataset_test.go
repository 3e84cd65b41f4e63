// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/inct-panel/catalog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	m := DefaultManifest().Resolve(dir)

	writeFile(t, m.Catalog, `nome_inct,area,coordenador,n_pesquisadores,n_feminino,n_masculino,Identificador,identificador_area,path_gexf_html
INCT-A,Physics,Ana,10,4,6,1,10,out/gexf/inct_a.gexf
INCT-B,Physics,Bruna,5,2,3,2,10,
`)
	writeFile(t, m.Institutions, `nome_inct,area,uf,nome_instituicao_empresa,n_pesquisadores
INCT-A,Physics,sp,USP,4
INCT-A,Physics,RJ,UFRJ,3
`)
	writeFile(t, m.ProductionByInstitute, `nome_inct,tipo_producao,periodo,n_tipos_producao
INCT-A,Artigo Publicado,2010-2015,12
`)
	writeFile(t, m.WordsByArea, `area,periodo,palavra,freq
Physics,2020–2025,quantum,3.5
Physics,2020–2025,de,9
`)
	writeFile(t, m.InstituteTexts, `nome_inct,texto_descricao,texto_estatisticas,texto_comparativos,texto_indicadores
INCT-A,About A,,nan,Ind
INCT-A,Duplicate,,,
`)
	writeFile(t, m.AreaTexts, `area,periodo,texto_md,texto_coautoria
Physics,2020–2025,**bold**,coauthors
`)
	writeFile(t, filepath.Join(m.GraphDir, "inct_a.html"), "<div>graph</div>")
	writeFile(t, filepath.Join(m.SankeyInstituteDir, "sankey_inct_1.html"), "<div>sankey</div>")
	return dir
}

func TestManifest_LoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	writeFile(t, path, "catalog: data/catalog.csv\ngraph_dir: /abs/graphs\n")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "data/catalog.csv", m.Catalog)
	assert.Equal(t, DefaultManifest().WordsByArea, m.WordsByArea, "unset keys keep defaults")

	r := m.Resolve("/srv")
	assert.Equal(t, filepath.Join("/srv", "data/catalog.csv"), r.Catalog)
	assert.Equal(t, "/abs/graphs", r.GraphDir)
	assert.Equal(t, "data/catalog.csv", m.Catalog, "Resolve does not modify the receiver")
}

func TestManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "catalog: [unterminated\n")
	_, err = LoadManifest(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty-catalog.yaml")
	writeFile(t, empty, "catalog: \"\"\n")
	_, err = LoadManifest(empty)
	assert.Error(t, err)
}

func TestManifest_Dirs(t *testing.T) {
	dirs := DefaultManifest().Resolve("/data").Dirs()
	assert.ElementsMatch(t, []string{
		"/data/bases",
		"/data/gexf_html",
		"/data/sankey_inct_palavra_tratada",
		"/data/sankey_inct_palavra_tratada_area",
	}, dirs)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2020-2025", Normalize(" 2020–2025 "))
	assert.Equal(t, "artigo publicado", Normalize("Artigo Publicado"))
	assert.Equal(t, Normalize("Capítulo"), Normalize("Capi\u0301tulo"), "composed and decomposed accents match")
	assert.Equal(t, "final", Normalize("\ufb01nal"), "ligatures fold")
}

func TestRepository_Load(t *testing.T) {
	dir := writeDataDir(t)
	repo := NewRepository(DefaultManifest().Resolve(dir))
	require.NoError(t, repo.Load())

	cat, err := repo.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	tables := repo.Tables()
	require.Len(t, tables.Institutions, 2)
	assert.Equal(t, "SP", tables.Institutions[0].UF, "UF is upper-cased")
	require.Len(t, tables.ProductionByInstitute, 1)
	assert.Equal(t, 12, tables.ProductionByInstitute[0].Count)
	require.Len(t, tables.WordsByArea, 2)
	assert.InDelta(t, 3.5, tables.WordsByArea[0].Freq, 1e-9)

	// Optional tables that do not exist load empty
	assert.Empty(t, tables.Formations)
	assert.Empty(t, tables.DegreesByArea)

	txt, ok := tables.InstituteText("INCT-A")
	require.True(t, ok)
	assert.Equal(t, "About A", txt.Description, "first row wins")
	assert.Empty(t, txt.Comparisons, "nan reads as empty")

	at, ok := tables.AreaText("Physics", "2020-2025")
	require.True(t, ok, "hyphen finds en dash period")
	assert.Equal(t, "**bold**", at.Markdown)
}

func TestRepository_MissingCatalogIsFatal(t *testing.T) {
	repo := NewRepository(DefaultManifest().Resolve(t.TempDir()))
	assert.Error(t, repo.Load())
	assert.NotNil(t, repo.Tables())
}

func TestRepository_Fragments(t *testing.T) {
	dir := writeDataDir(t)
	repo := NewRepository(DefaultManifest().Resolve(dir))
	require.NoError(t, repo.Load())
	cat, err := repo.Catalog()
	require.NoError(t, err)
	a := cat.ByInstitute("INCT-A")[0]
	b := cat.ByInstitute("INCT-B")[0]

	html, path, ok := repo.GraphFragment(a)
	require.True(t, ok)
	assert.Equal(t, "<div>graph</div>", html)
	assert.True(t, strings.HasSuffix(path, filepath.Join("gexf_html", "inct_a.html")))

	_, _, ok = repo.GraphFragment(b)
	assert.False(t, ok, "no graph path")

	html, _, ok = repo.SankeyInstitute(a)
	require.True(t, ok)
	assert.Equal(t, "<div>sankey</div>", html)

	_, path, ok = repo.SankeyArea(a)
	assert.False(t, ok)
	assert.True(t, strings.HasSuffix(path, "sankey_inct_10.html"))
}

func TestRepository_FragmentMemoizedUntilReload(t *testing.T) {
	dir := writeDataDir(t)
	m := DefaultManifest().Resolve(dir)
	repo := NewRepository(m)
	require.NoError(t, repo.Load())

	path := filepath.Join(m.GraphDir, "inct_a.html")
	first, ok := repo.Fragment(path)
	require.True(t, ok)

	writeFile(t, path, "<div>new graph</div>")
	cached, _ := repo.Fragment(path)
	assert.Equal(t, first, cached)

	var reloadErr error
	called := false
	repo.OnReload = func(err error) {
		called = true
		reloadErr = err
	}
	require.NoError(t, repo.Reload())
	assert.True(t, called)
	assert.NoError(t, reloadErr)

	fresh, ok := repo.Fragment(path)
	require.True(t, ok)
	assert.Equal(t, "<div>new graph</div>", fresh)
}

func TestRepository_ReloadFailureKeepsData(t *testing.T) {
	dir := writeDataDir(t)
	m := DefaultManifest().Resolve(dir)
	repo := NewRepository(m)
	require.NoError(t, repo.Load())

	require.NoError(t, os.Remove(m.Catalog))
	assert.Error(t, repo.Reload())

	cat, err := repo.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func writeGeneration(t *testing.T, m Manifest, gen int) {
	t.Helper()
	writeFile(t, m.Catalog, fmt.Sprintf(`nome_inct,area,coordenador,n_pesquisadores,n_feminino,n_masculino
INCT-A,Physics,gen-%d,10,4,6
`, gen))
	writeFile(t, m.Institutions, fmt.Sprintf(`nome_inct,area,uf,nome_instituicao_empresa,n_pesquisadores
INCT-A,Physics,SP,gen-%d,4
`, gen))
}

func TestRepository_SnapshotPairsCatalogAndTables(t *testing.T) {
	m := DefaultManifest().Resolve(t.TempDir())
	writeGeneration(t, m, 0)
	repo := NewRepository(m)

	before, err := repo.Snapshot()
	require.NoError(t, err)

	writeGeneration(t, m, 1)
	require.NoError(t, repo.Reload())

	after, err := repo.Snapshot()
	require.NoError(t, err)

	// A snapshot taken before the reload keeps its own pair
	assert.Equal(t, "gen-0", before.Catalog.Entries()[0].Coordinator)
	assert.Equal(t, "gen-0", before.Tables.Institutions[0].Name)
	assert.Equal(t, "gen-1", after.Catalog.Entries()[0].Coordinator)
	assert.Equal(t, "gen-1", after.Tables.Institutions[0].Name)

	cat, err := repo.Catalog()
	require.NoError(t, err)
	assert.Same(t, after.Catalog, cat)
	assert.Same(t, after.Tables, repo.Tables())
}

func TestRepository_SnapshotNeverMixesReloads(t *testing.T) {
	m := DefaultManifest().Resolve(t.TempDir())
	writeGeneration(t, m, 0)
	repo := NewRepository(m)
	require.NoError(t, repo.Load())

	var done atomic.Bool
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !done.Load() {
				s, err := repo.Snapshot()
				if err != nil {
					t.Errorf("Snapshot() error = %v", err)
					return
				}
				coord := s.Catalog.Entries()[0].Coordinator
				if len(s.Tables.Institutions) != 1 || s.Tables.Institutions[0].Name != coord {
					t.Errorf("catalog %s paired with tables %+v", coord, s.Tables.Institutions)
					return
				}
			}
		}()
	}

	for gen := 1; gen <= 20; gen++ {
		writeGeneration(t, m, gen)
		if err := repo.Reload(); err != nil {
			t.Errorf("Reload() error = %v", err)
			break
		}
	}
	done.Store(true)
	wg.Wait()
}

func TestTable_MissingRequiredColumnSkipsTable(t *testing.T) {
	tb, err := parseTable(strings.NewReader("nome_inct,palavra\nA,x\n"))
	require.NoError(t, err)
	_, err = wordRows(tb, "nome_inct")
	assert.ErrorIs(t, err, catalog.ErrMissingColumn)
}
