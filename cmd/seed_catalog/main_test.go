package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <series name="SeriesA" active="1"/>
  <series name="Old" active="0"/>
  <category name="Saree"/>
  <product item="KF-100" series="SeriesA" category="Saree">
    <stock location="Jaipur" qty="5"/>
    <stock location="kolkata" qty="2.5"/>
    <image url="https://drive.google.com/file/d/ABCDEFGHIJ12/view?usp=sharing"/>
  </product>
  <product item="KF-100" series="SeriesA"/>
  <product item="D'Souza-1" series="SeriesB">
    <stock location="Calcutta" qty="1"/>
  </product>
</catalog>`

func TestParseExport(t *testing.T) {
	exp, err := parseExport(strings.NewReader(sampleXML))
	require.NoError(t, err)

	require.Len(t, exp.Products, 2, "los Item repetidos se ignoran")
	p := exp.Products[0]
	assert.Equal(t, "KF-100", p.Item)
	assert.Equal(t, "5", p.Stock["Jaipur"].String())
	assert.Equal(t, "2.5", p.Stock["Kolkata"].String())
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=ABCDEFGHIJ12", p.ImageURL)
	assert.Equal(t, "1", exp.Products[1].Stock["Kolkata"].String())

	require.Len(t, exp.Series, 3)
	assert.False(t, exp.Series[1].Active)
	assert.Equal(t, namedFlag{Name: "SeriesB", Active: true}, exp.Series[2], "serie referenciada y no declarada")
}

func TestParseExport_Windows1252(t *testing.T) {
	body := `<?xml version="1.0" encoding="windows-1252"?><catalog><category name="Café"/></catalog>`
	encoded, err := charmap.Windows1252.NewEncoder().String(body)
	require.NoError(t, err)

	exp, err := parseExport(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, exp.Categories, 1)
	assert.Equal(t, "Café", exp.Categories[0].Name)
}

func TestParseExport_Errores(t *testing.T) {
	_, err := parseExport(strings.NewReader(`<otro/>`))
	assert.Error(t, err)

	_, err = parseExport(strings.NewReader(`<catalog><product item="X"><stock location="Delhi" qty="1"/></product></catalog>`))
	assert.ErrorContains(t, err, "bodega desconocida")

	_, err = parseExport(strings.NewReader(`<catalog><product item="X"><stock location="Jaipur" qty="muchos"/></product></catalog>`))
	assert.ErrorContains(t, err, "cantidad inválida")
}

func TestParseExport_NombresRepetidosGanaElUltimo(t *testing.T) {
	body := `<catalog>
  <series name="A"/>
  <series name="B"/>
  <series name=" A " active="0"/>
  <category name="Saree" active="0"/>
  <category name="Saree"/>
</catalog>`
	exp, err := parseExport(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, []namedFlag{{Name: "A", Active: false}, {Name: "B", Active: true}}, exp.Series)
	assert.Equal(t, []namedFlag{{Name: "Saree", Active: true}}, exp.Categories)

	var buf bytes.Buffer
	require.NoError(t, writeCatalogSQL(&buf, exp))
	sql := buf.String()
	assert.Equal(t, 1, strings.Count(sql, "('A', "), "una sola fila por clave en el ON CONFLICT")
	assert.Contains(t, sql, "('A', false)")
	assert.Equal(t, 1, strings.Count(sql, "('Saree', "))
}

func TestWriteCatalogSQL(t *testing.T) {
	exp, err := parseExport(strings.NewReader(sampleXML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCatalogSQL(&buf, exp))
	sql := buf.String()

	assert.Contains(t, sql, "('Old', false)")
	assert.Contains(t, sql, "('D''Souza-1', 'SeriesB', NULL)", "comillas escapadas y categoría nula")
	assert.Contains(t, sql, "ON CONFLICT (item) DO UPDATE")
	assert.Contains(t, sql, "SELECT product_id, 'Kolkata', 2.5 FROM products WHERE item = 'KF-100'")
	assert.Contains(t, sql, "'https://drive.google.com/uc?export=view&id=ABCDEFGHIJ12'")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

func TestCatalogCmd_EscribeArchivo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "catalogo.xml")
	out := filepath.Join(dir, "seed.sql")
	require.NoError(t, os.WriteFile(in, []byte(sampleXML), 0o600))

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"catalog", "--in", in, "--out", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INSERT INTO products")
	assert.Contains(t, stdout.String(), "2 productos")
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disco lleno")
}

func TestWriteCatalogFile_ReportaErrorAlCerrar(t *testing.T) {
	exp, err := parseExport(strings.NewReader(sampleXML))
	require.NoError(t, err)

	out := &failingCloser{}
	err = writeCatalogFile(out, exp)
	require.ErrorContains(t, err, "cerrar archivo")
	assert.True(t, out.closed)
	assert.Contains(t, out.String(), "COMMIT;")
}

func TestStaffCmd(t *testing.T) {
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"staff", "--username", "admin", "--password", "secreto1", "--role", "Admin"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "'admin'")
	assert.Contains(t, stdout.String(), "'$2a$")
	assert.NotContains(t, stdout.String(), "secreto1")

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"staff", "--username", "x", "--password", "secreto1", "--role", "Customer"})
	assert.Error(t, cmd.Execute())
}
