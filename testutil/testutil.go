// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/inct-panel/cliparse"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/db"
)

// Credentials accepted by GetTestConfig
const (
	TestUsername = "cgee"
	TestPassword = "s3cret"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		DataDir:      ".",
		Username:     TestUsername,
		Password:     TestPassword,
		IPHashSalt:   "test-ip-salt",
		LoginBurst:   5,
	}
}

// Test dataset files, relative to the data directory
var testDataset = map[string]string{
	"bases/select_incts_areas_coord_sexo.csv": `nome_inct,area,coordenador,n_pesquisadores,n_feminino,n_masculino,Identificador,identificador_area,path_gexf_html
INCT-A,Physics,Ana Souza,10,4,6,1,10,out/gexf/inct_a.gexf
INCT-B,Physics,Bruno Lima,5,2,3,2,10,out/gexf/inct_b.gexf
INCT-C,Chemistry,Carla Dias,1200,500,650,3,20,
`,
	"bases/select_instituicoes_por_inct.csv": `nome_inct,area,uf,nome_instituicao_empresa,n_pesquisadores
INCT-A,Physics,SP,USP,4
INCT-A,Physics,RJ,UFRJ,3
INCT-A,Physics,SP,UNICAMP,3
INCT-B,Physics,MG,UFMG,5
INCT-C,Chemistry,RS,UFRGS,1200
`,
	"bases/big_number_qtd_producao_bibliografica_periodo.csv": `nome_inct,tipo_producao,periodo,n_tipos_producao
INCT-A,Artigo Publicado,2010-2015,1234
INCT-A,Traducao,2020–2025,2
`,
	"bases/big_number_qtd_producao_bibliografica_periodo_area.csv": `area,tipo_producao,periodo,n_tipos_producao
Physics,Artigo Publicado,2015-2020,4321
`,
	"bases/big_number_maior_formacao.csv": `nome_inct,area,area_de_maior_formacao,count
INCT-A,Physics,Física,7
INCT-A,Physics,Matemática,2
INCT-B,Physics,Física,4
`,
	"bases/wordcloud_inct_agg.csv": `nome_inct,periodo,palavra,freq
INCT-A,2010-2015,supercondutividade,12
INCT-A,2010-2015,de,99
INCT-A,2015-2020,física de partículas,8
`,
	"bases/wordcloud_area_agg.csv": `area,periodo,palavra,freq
Physics,2015–2020,quantum,3
Physics,2020–2025,quantum,5
Physics,2020–2025,laser,4
`,
	"bases/grafico_maior_graduacao_inct.csv": `nome_inct,formacao_mais_alta,qtd
INCT-A,Doutorado,8
INCT-A,Mestrado,2
`,
	"bases/grafico_maior_graduacao_area.csv": `area,formacao_mais_alta,qtd
Physics,Doutorado,12
`,
	"bases/texto_descricao_inct.csv": `nome_inct,texto_descricao,texto_estatisticas,texto_comparativos,texto_indicadores
INCT-A,O **INCT-A** estuda materiais.,Estatísticas do INCT-A,,
`,
	"bases/texto_descricao_area.csv": `area,periodo,texto_md,texto_coautoria
Physics,2020–2025,## Física recente,Rede de coautoria densa
Physics,2010–2015,## Física antiga,
`,
	"gexf_html/inct_a.html":                                `<html><body>grafo INCT-A</body></html>`,
	"sankey_inct_palavra_tratada/sankey_inct_1.html":       `<html><body>sankey INCT-A</body></html>`,
	"sankey_inct_palavra_tratada_area/sankey_inct_10.html": `<html><body>sankey Physics</body></html>`,
}

// WriteTestDataset writes a small dataset in the default layout and returns
// its directory. INCT-A and INCT-B are in Physics, INCT-C in Chemistry.
func WriteTestDataset(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range testDataset {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// LoadTestRepository writes the test dataset and loads it
func LoadTestRepository(t *testing.T) *dataset.Repository {
	t.Helper()

	repo := dataset.NewRepository(dataset.DefaultManifest().Resolve(WriteTestDataset(t)))
	if err := repo.Load(); err != nil {
		t.Fatalf("Failed to load test dataset: %v", err)
	}
	return repo
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a URL-encoded form request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a redirect to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
