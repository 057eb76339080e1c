package main

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-ledger/ledger"
)

func TestReadFixture(t *testing.T) {
	snap, err := readFixture(filepath.Join("..", "..", "seed.yaml"))
	require.NoError(t, err)
	require.Len(t, snap.Employees, 3)
	require.Len(t, snap.Books, 3)
	require.Len(t, snap.Sales, 4)
	assert.Equal(t, "1984", snap.Books[2].Title)
	assert.Equal(t, "2024-08-30", snap.Sales[0].SaleDate)

	m := ledger.NewManager(nil, nil)
	require.NoError(t, m.Restore(snap))
	assert.Equal(t, "Top 1 selling books:\n1984: 2 sales", m.Reports.TopBooksReport(1))
}

func TestReadFixtureErrors(t *testing.T) {
	_, err := readFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("employees: [unclosed"), 0o644))
	_, err = readFixture(bad)
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
	assert.Equal(t, "ab", truncateString("abcdef", 2))

	// Cuts fall on rune boundaries.
	got := truncateString("Микола Гоголь", 9)
	assert.Equal(t, "Микола...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Ми", truncateString("Микола", 2))
}
