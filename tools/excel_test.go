package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Email    string    `excel:"Email"`
	Joined   time.Time `excel:"Joined At"`
	Internal string    `excel:"-"`
	Count    int
}

func TestWriteSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	joined := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	err := WriteSheet(f, "Roster", []row{
		{Email: "a@mergington.edu", Joined: joined, Internal: "x", Count: 1},
		{Email: "b@mergington.edu", Joined: joined, Count: 2},
	})
	require.NoError(t, err)

	rows, err := f.GetRows("Roster")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Email", "Joined At", "Count"},
		{"a@mergington.edu", "2026-09-01 15:30:00", "1"},
		{"b@mergington.edu", "2026-09-01 15:30:00", "2"},
	}, rows)
}

func TestWriteSheetRejectsNonStructSlice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.Error(t, WriteSheet(f, "", []string{"a"}))
	require.Error(t, WriteSheet(f, "", row{}))
}

func TestWriteSheetEmptySliceWritesHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, WriteSheet(f, "Sheet1", []row{}))
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Email", "Joined At", "Count"}}, rows)
}
