package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cjmtools/caseintake/internal/models"
)

func TestXLSX_RowsMatchCSVLayout(t *testing.T) {
	fwd := "2024-05-01"
	records := []models.CaseRecord{
		{Name: "Old", CaseNumber: "C-1", CreatedAt: 1},
		{Name: "New", CaseNumber: "C-2", ForwardDate: &fwd, ManualNote: "n", CreatedAt: 2},
	}

	data, err := XLSX(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cases")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Name", "Case No", "Crime No", "Forward Date", "Note"}, rows[0])

	// Newest record first.
	require.Equal(t, "New", rows[1][0])
	require.Equal(t, "2024-05-01", rows[1][3])
	require.Equal(t, "Old", rows[2][0])
}
