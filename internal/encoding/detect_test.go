package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nidofinanciero/nido/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Fecha,Descripción,Débito,Crédito\n01/06/2025,COMPRA AÑO NUEVO,1.234,56,\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Descripción" with ó as 0xF3, as BROU exports encode it.
	input := []byte{
		'F', 'e', 'c', 'h', 'a', ',',
		'D', 'e', 's', 'c', 'r', 'i', 'p', 'c', 'i', 0xF3, 'n', '\n',
	}

	assert.Equal(t, "Fecha,Descripción\n", decode(t, input))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := "Fecha,Descripción\n"

	assert.Equal(t, content, decode(t, append(bom, []byte(content)...)))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Fecha\n" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE}
	for _, c := range "Fecha\n" {
		input = append(input, byte(c), 0x00)
	}

	assert.Equal(t, "Fecha\n", decode(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
