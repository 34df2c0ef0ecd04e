package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonSimpleTest struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Height float32 `json:"height"`
}

func TestJSONFileRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "simple.json")

	rows := []jsonSimpleTest{{"John", 30, 170}, {"Jane", 25, 160.5}}
	require.NoError(t, WriteJSONToFile(rows, file))

	loaded, err := ReadJSONFromFile[[]jsonSimpleTest](file)
	require.NoError(t, err)
	assert.Equal(t, rows, loaded)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadBytesFromFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadJSONFromReader(t *testing.T) {
	row, err := ReadJSON[jsonSimpleTest](strings.NewReader(`{"name": "Joe", "age": 35}`))
	require.NoError(t, err)
	assert.Equal(t, "Joe", row.Name)
	assert.Equal(t, 35, row.Age)

	_, err = ReadJSON[jsonSimpleTest](strings.NewReader(`{"name": `))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a": 1}`, buf.String())
}
