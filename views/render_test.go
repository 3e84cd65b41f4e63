// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/inct-panel/catalog"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/selection"
	"github.com/danielhkuo/inct-panel/testutil"
)

func subsetOf(t *testing.T, repo *dataset.Repository, sel selection.Selection) []catalog.Entry {
	t.Helper()
	c, err := repo.Catalog()
	require.NoError(t, err)
	return selection.Apply(c, sel)
}

func TestInstituteView_Render(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &InstituteView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByInstitute, Key: "INCT-A"})

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "INCT-A", subset, Options{TopN: 10}))
	out := buf.String()

	assert.Contains(t, out, "Painel — INCT-A")
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "<strong>INCT-A</strong>", "description is markdown")
	assert.Contains(t, out, "Estatísticas do INCT-A")
	assert.Contains(t, out, "grafo INCT-A")
	assert.Contains(t, out, "sankey INCT-A")

	assert.Contains(t, out, ">supercondutividade</span>")
	assert.Contains(t, out, ">física de partículas</span>")
	assert.NotContains(t, out, ">de</span>", "stopwords are dropped")

	assert.Contains(t, out, `id="chart-formation"`)
	assert.Contains(t, out, `id="chart-uf"`)
	assert.Contains(t, out, `id="chart-institutions"`)
	assert.Contains(t, out, `id="chart-degrees"`)
	assert.Contains(t, out, "properties.sigla")

	assert.Contains(t, out, "1.234", "production grid uses dot separators")
	assert.Contains(t, out, "40.0%")
	assert.NotContains(t, out, "Sem dados de pesquisadores")
}

func TestInstituteView_MissingData(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &InstituteView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByInstitute, Key: "INCT-C"})

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "INCT-C", subset, Options{}))
	out := buf.String()

	assert.Contains(t, out, "Nenhuma descrição disponível para este INCT.")
	assert.Contains(t, out, "Grafo ainda não foi pré-gerado")
	assert.Contains(t, out, "Nenhum gráfico Sankey disponível para este INCT.")
	assert.Contains(t, out, "Nenhuma palavra encontrada para este INCT.")
	assert.Contains(t, out, "Nenhuma informação de formação disponível para este INCT.")
	assert.Contains(t, out, "1.200")
	assert.Contains(t, out, `id="chart-uf"`, "map is always drawn")
}

func TestInstituteView_ZeroResearchers(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &InstituteView{Data: repo}

	var buf bytes.Buffer
	subset := []catalog.Entry{{Institute: "INCT-Y", Area: "Nowhere"}}
	require.NoError(t, v.Render(&buf, "INCT-Y", subset, Options{}))
	assert.Contains(t, buf.String(), "Sem dados de pesquisadores para este INCT.")
}

func TestInstituteView_FirstRowWins(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &InstituteView{Data: repo}
	subset := []catalog.Entry{
		{Institute: "INCT-D", Area: "Physics", Coordinator: "First Coordinator", Researchers: 3},
		{Institute: "INCT-D", Area: "Chemistry", Coordinator: "Second Coordinator", Researchers: 9},
	}

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "INCT-D", subset, Options{}))
	assert.Contains(t, buf.String(), "First Coordinator")
	assert.NotContains(t, buf.String(), "Second Coordinator")
}

func TestInstituteView_RendersGivenTables(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &InstituteView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByInstitute, Key: "INCT-A"})

	// Tables from another load replace the repository's current ones
	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "INCT-A", subset, Options{Tables: &dataset.Tables{}}))
	assert.Contains(t, buf.String(), "Ana Souza")
	assert.NotContains(t, buf.String(), "Estatísticas do INCT-A")
}

func TestViews_EmptySubset(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	assert.ErrorIs(t, (&InstituteView{Data: repo}).Render(io.Discard, "x", nil, Options{}), ErrEmptySubset)
	assert.ErrorIs(t, (&AreaView{Data: repo}).Render(io.Discard, "x", nil, Options{}), ErrEmptySubset)
}

func TestAreaView_Render(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &AreaView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByArea, Key: "Physics"})

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "Physics", subset, Options{}))
	out := buf.String()

	assert.Contains(t, out, "Painel — Área: Physics")
	assert.Contains(t, out, "CONTEXTUALIZAÇÃO METODOLÓGICA")
	assert.Contains(t, out, "<h2>Física recente</h2>", "latest period by default")
	assert.Contains(t, out, "Rede de coautoria densa")
	assert.Contains(t, out, "sankey Physics")
	assert.Contains(t, out, "A soma entre pesquisadores")

	// INCT table is ordered by researchers, largest first
	a := bytes.Index(buf.Bytes(), []byte("<td>INCT-A</td>"))
	b := bytes.Index(buf.Bytes(), []byte("<td>INCT-B</td>"))
	require.True(t, a >= 0 && b >= 0)
	assert.Less(t, a, b)

	assert.Contains(t, out, "4.321")
	assert.Contains(t, out, `id="chart-keywords"`)
	assert.Contains(t, out, ">quantum</span>")
	assert.Contains(t, out, ">laser</span>")
	assert.Contains(t, out, `id="chart-formation"`)
	assert.Contains(t, out, `id="chart-degrees"`)
	assert.Contains(t, out, `id="chart-institutions"`)
	assert.Contains(t, out, "UFMG")
}

func TestAreaView_PeriodSelection(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &AreaView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByArea, Key: "Physics"})

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "Physics", subset, Options{Period: "2010-2015"}))
	assert.Contains(t, buf.String(), "<h2>Física antiga</h2>")

	buf.Reset()
	require.NoError(t, v.Render(&buf, "Physics", subset, Options{Period: "2015-2020"}))
	assert.Contains(t, buf.String(), "Nenhum texto disponível para esta área")
}

func TestAreaView_KeywordPeriods(t *testing.T) {
	repo := testutil.LoadTestRepository(t)
	v := &AreaView{Data: repo}
	subset := subsetOf(t, repo, selection.Selection{Type: selection.ByArea, Key: "Physics"})

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "Physics", subset, Options{Periods: []string{"2015-2020"}}))
	out := buf.String()
	assert.Contains(t, out, ">quantum</span>")
	assert.NotContains(t, out, ">laser</span>", "laser only appears in 2020–2025")
}

func TestPages(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderLanding(&buf))
	assert.Contains(t, buf.String(), `action="/proceed"`)
	assert.Contains(t, buf.String(), "Prosseguir para login")

	buf.Reset()
	require.NoError(t, RenderLogin(&buf, LoginPage{Username: `<b>x</b>`, Error: "Usuário ou senha incorretos."}))
	assert.Contains(t, buf.String(), "Usuário ou senha incorretos.")
	assert.NotContains(t, buf.String(), "<b>x</b>", "username is escaped")

	buf.Reset()
	require.NoError(t, RenderDashboard(&buf, DashboardPage{
		Type:    selection.ByArea,
		Key:     "Physics",
		Options: []string{"Chemistry", "Physics"},
		Body:    "<p>body</p>",
	}))
	out := buf.String()
	assert.Contains(t, out, `<option value="Physics" selected>Physics</option>`)
	assert.Contains(t, out, `<option value="Chemistry">Chemistry</option>`)
	assert.Contains(t, out, "Escolha uma Área...")
	assert.Contains(t, out, `href="/app?type=area" class="active"`)
	assert.Contains(t, out, "<p>body</p>")
}

func TestPrompt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Prompt{}.RenderPrompt(&buf, selection.Selection{}))
	assert.Contains(t, buf.String(), "Escolha um INCT ou uma Área para visualizar os dados.")

	buf.Reset()
	require.NoError(t, Prompt{}.RenderPrompt(&buf, selection.Selection{Key: "<INCT-Z>"}))
	assert.Contains(t, buf.String(), "Nenhum dado encontrado para")
	assert.Contains(t, buf.String(), "&lt;INCT-Z&gt;")
}
