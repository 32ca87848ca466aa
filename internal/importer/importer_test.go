package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rsvp-whatsapp/internal/models"
	"rsvp-whatsapp/internal/storage"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "guests.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFileHebrewHeaders(t *testing.T) {
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := writeSheet(t, [][]any{
		{"שם", "כמה משתתפים", "טלפון", "הערות"},
		{"Dana", "2", "054-1234567", "family"},
		{"Noa", "", "0529876543", ""},
		{"No Phone", "1", "", "work"},
	})

	res, err := ImportFile(store, path, "972")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	g, err := store.Get("972541234567")
	require.NoError(t, err)
	assert.Equal(t, "Dana", g.Name)
	assert.Equal(t, "family", g.Category)
	assert.Equal(t, 2, g.Attendees)
	assert.Equal(t, models.RSVPNotResponded, g.Status)

	g, err = store.Get("972529876543")
	require.NoError(t, err)
	assert.Equal(t, "Noa", g.Name)
	assert.Equal(t, 0, g.Attendees)
}

func TestImportFileEnglishHeaders(t *testing.T) {
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := writeSheet(t, [][]any{
		{"Name", "Phone", "Category"},
		{"Gil", "0541112222", "friends"},
	})

	res, err := ImportFile(store, path, "972")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	g, err := store.Get("972541112222")
	require.NoError(t, err)
	assert.Equal(t, "friends", g.Category)
}

func TestImportFileReimportKeepsAnswers(t *testing.T) {
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := writeSheet(t, [][]any{
		{"name", "phone"},
		{"Dana", "0541234567"},
	})

	_, err = ImportFile(store, path, "972")
	require.NoError(t, err)
	require.NoError(t, store.UpdateRSVP("972541234567", models.RSVPYes, 3))

	_, err = ImportFile(store, path, "972")
	require.NoError(t, err)

	all, err := store.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.RSVPYes, all[0].Status)
	assert.Equal(t, 3, all[0].Attendees)
}

func TestImportFileMissingPhoneColumn(t *testing.T) {
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := writeSheet(t, [][]any{
		{"name", "category"},
		{"Dana", "family"},
	})

	_, err = ImportFile(store, path, "972")
	assert.ErrorContains(t, err, "no phone column")
}
