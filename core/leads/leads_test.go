package leads

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFromText(t *testing.T) {
	lines := FromText("Acme Inc\r\nGlobex\n\nInitech")
	assert.Equal(t, []string{"Acme Inc", "Globex", "", "Initech"}, lines)

	assert.Nil(t, FromText(""))
}

func TestFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"email,companyName,firstName",
		"a@acme.com,Acme Inc,Alice",
		"b@globex.com,Globex,Bob",
		"c@none.com,,Carol",
		"d@initech.com,Initech,Dave",
	}, "\n")

	names, err := FromCSV(strings.NewReader(input), "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Inc", "Globex", "Initech"}, names)
}

func TestFromCSV_MissingColumn(t *testing.T) {
	input := "email,name\na@acme.com,Acme"
	_, err := FromCSV(strings.NewReader(input), "companyName")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "companyName")
}

func TestFromCSV_HeaderWhitespace(t *testing.T) {
	input := " companyName \nAcme Inc"
	names, err := FromCSV(strings.NewReader(input), "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Inc"}, names)
}

func TestFromCSV_RaggedRows(t *testing.T) {
	input := "id,companyName\n1,Acme Inc\n2"
	names, err := FromCSV(strings.NewReader(input), "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Inc"}, names)
}

func TestFromXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "companyName"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "email"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Acme Inc"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Globex"))
	require.NoError(t, f.SetCellValue(sheet, "B4", "orphan@row.com"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	names, err := FromXLSX(path, "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Inc", "Globex"}, names)
}

func TestFromXLSX_MissingFile(t *testing.T) {
	_, err := FromXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "companyName")
	assert.Error(t, err)
}
