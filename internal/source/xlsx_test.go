package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/kobo-uploader/internal/common"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "parent.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoad_RecordsInOrder(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Reception_ID", "Full_Name", "Group_Size"},
		{"R-001", "Amina Yusuf", 4},
		{"R-002", "Tesfay Gebre", 1},
		{"R-003", "Leila Hassan", 2},
	})

	records, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "R-001", records[0].Field("Reception_ID"))
	assert.Equal(t, "Tesfay Gebre", records[1].Field("Full_Name"))
	assert.Equal(t, "2", records[2].Field("Group_Size"))
}

func TestLoad_ShortRowAndMissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Reception_ID", "Full_Name", "Sex"},
		{"R-001"}, // row shorter than header
	})

	records, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "R-001", records[0].Field("Reception_ID"))
	assert.Equal(t, "", records[0].Field("Full_Name"))
	assert.Equal(t, "", records[0].Field("Sex"))
	assert.Equal(t, "", records[0].Field("No_Such_Column"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"), nil)
	require.Error(t, err)

	var ae *common.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, common.CodeSourceError, ae.Code)
}

func TestLoad_HeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Reception_ID", "Type", "Group_Size"},
	})

	records, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
