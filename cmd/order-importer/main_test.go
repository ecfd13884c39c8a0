package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"goldenorders/internal/document"
	"goldenorders/internal/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFile(t *testing.T) {
	t.Parallel()

	order := fixture.Order("joao@goldenpr.com.br", time.Now())
	order.ID = "PED-654321"

	data, err := document.NewRenderer("", "", nil).Spreadsheet(order)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pedido.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	testCases := []struct {
		desc   string
		keepID bool
		wantID string
	}{
		{desc: "NewNumber", wantID: ""},
		{desc: "KeepNumber", keepID: true, wantID: "PED-654321"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			imported, err := importFile(path, " Maria@GoldenPR.com.br ", tc.keepID)
			require.NoError(t, err)

			assert.Equal(t, tc.wantID, imported.ID)
			assert.Equal(t, "maria@goldenpr.com.br", imported.CreatedBy)
			assert.Equal(t, order.Customer.Name, imported.Customer.Name)
			assert.Len(t, imported.Items, len(order.Items))
		})
	}
}

func TestImportFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := importFile(filepath.Join(t.TempDir(), "missing.xlsx"), "vendas@goldenpr.com.br", false)
	require.Error(t, err)
}
