package fileio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyMaps_XLSXSkipsEmptyCover(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("APU")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("APU", "A1", &[]any{"CODIGO_PRENDA", "PRENDA", "Cantidad Total"}))
	require.NoError(t, f.SetSheetRow("APU", "A2", &[]any{"G1", "Camisa Polo ", 1.5}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadAnyMaps(&buf, "APU.XLSX", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"CODIGO_PRENDA": "G1", "PRENDA": "Camisa Polo", "Cantidad Total": "1.5"}, rows[0])
}
