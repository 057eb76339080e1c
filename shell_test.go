package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore-ledger/config"
	"bookstore-ledger/ledger"
	"bookstore-ledger/store"
)

// seedScript builds the three-employee shop through the shell itself.
const seedScript = `add employee
John
Seller
111-111
john@example.com
add employee
Bruce
Seller
222-222
bruce@example.com
add employee
Marta
Manager
333-333
marta@example.com
add book
Taras Bulba
1835
Nikolai Gogol
Historical
10
15
add book
War and Peace
1869
Leo Tolstoy
Novel
15
25
add book
1984
1949
George Orwell
Dystopia
12
20
add sale
John
1984
2024-08-30
19
add sale
John
1984
2024-08-31
19.5
add sale
Bruce
Taras Bulba
2024-08-29
14
add sale
Marta
War and Peace
2024-08-29
23.4
`

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvStore, config.EnvPath, config.EnvVerbose} {
		t.Setenv(k, "")
	}
}

// runCLI executes the root command with args, feeding stdin.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", ""}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShellRecordsAndReports(t *testing.T) {
	var out bytes.Buffer
	mgr := ledger.NewManager(nil, nil)
	script := seedScript + "sales report\n2024-08-30\n2024-08-31\ntop books\n1\nemployee report\nBruce\n"

	sh := newShell(strings.NewReader(script), &out, mgr, false)
	require.NoError(t, sh.run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "2024-08-30: John sold '1984' for 19.0\n2024-08-31: John sold '1984' for 19.5\n")
	assert.Contains(t, got, "Top 1 selling books:\n1984: 2 sales\n")
	assert.Contains(t, got, "Sales report for Bruce:\n2024-08-29: 'Taras Bulba' sold for 14.0\n")
	assert.Equal(t, 4, mgr.Sales.Len())
	assert.NotContains(t, got, "Welcome", "no banner for piped input")
}

func TestShellReportsLookupFailures(t *testing.T) {
	var out bytes.Buffer
	mgr := ledger.NewManager(nil, nil)
	script := seedScript + `add sale
Ghost
1984
2024-09-01
1
add sale
John
Missing
2024-09-01
1
add sale
John
1984
01/09/2024
1
add employee
John
Clerk
000
other@example.com
remove book
Missing
edit employee
Nobody



`
	sh := newShell(strings.NewReader(script), &out, mgr, false)
	require.NoError(t, sh.run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Unknown employee 'Ghost'")
	assert.Contains(t, got, "Unknown book 'Missing'")
	assert.Contains(t, got, "Invalid date: 01/09/2024")
	assert.Contains(t, got, "Error adding employee:")
	assert.Contains(t, got, "No book titled 'Missing'")
	assert.Contains(t, got, "Error editing employee:")
	assert.Equal(t, 4, mgr.Sales.Len())
	assert.Equal(t, 3, mgr.Employees.Len())
}

func TestShellEditKeepsBlankFields(t *testing.T) {
	var out bytes.Buffer
	mgr := ledger.NewManager(nil, nil)
	script := seedScript + "edit employee\nJohn\nSenior Seller\n\n\nedit book\n1984\n\n\n\n\n21.5\n"

	sh := newShell(strings.NewReader(script), &out, mgr, false)
	require.NoError(t, sh.run(context.Background()))

	john, _ := mgr.Employees.Find("John")
	assert.Equal(t, "Senior Seller", john.Position)
	assert.Equal(t, "111-111", john.Phone)

	book, _ := mgr.Catalog.Find("1984")
	assert.Equal(t, 21.5, book.SalePrice)
	assert.Equal(t, 12.0, book.Cost)
	assert.Equal(t, 1949, book.Year)
}

func TestShellSaleDefaultsToListPrice(t *testing.T) {
	var out bytes.Buffer
	mgr := ledger.NewManager(nil, nil)
	script := seedScript + "add sale\nMarta\n1984\n2024-09-02\n\n"

	sh := newShell(strings.NewReader(script), &out, mgr, false)
	require.NoError(t, sh.run(context.Background()))

	sales := mgr.Sales.ByDate("2024-09-02")
	require.Len(t, sales, 1)
	assert.Equal(t, 20.0, sales[0].ActualPrice)
}

func TestCLIPersistsBetweenRuns(t *testing.T) {
	cleanEnv(t)
	for _, kind := range []string{store.KindJSON, store.KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shop."+kind)

			out, err := runCLI(t, seedScript+"exit\n", "--store", kind, "--path", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Saved. Goodbye!")

			out, err = runCLI(t, "", "--store", kind, "--path", path, "report", "top", "1")
			require.NoError(t, err)
			assert.Equal(t, "Top 1 selling books:\n1984: 2 sales\n", out)

			out, err = runCLI(t, "", "--store", kind, "--path", path, "report", "sales", "2024-08-30", "2024-08-31")
			require.NoError(t, err)
			assert.Equal(t, "2024-08-30: John sold '1984' for 19.0\n2024-08-31: John sold '1984' for 19.5\n", out)

			out, err = runCLI(t, "", "--store", kind, "--path", path, "info")
			require.NoError(t, err)
			assert.Contains(t, out, "Sales:     4")
			if kind == store.KindSQLite {
				assert.Contains(t, out, "Stored:    3 employees, 3 books, 4 sales\n")
			}
		})
	}
}

func TestCLIRejectsBadFlags(t *testing.T) {
	cleanEnv(t)

	_, err := runCLI(t, "", "--store", "csv", "report", "books")
	assert.Error(t, err)

	_, err = runCLI(t, "", "--path", filepath.Join(t.TempDir(), "x.json"), "report", "top", "many")
	assert.Error(t, err)
}

func TestShellRefusesRemovingSoldEntries(t *testing.T) {
	var out bytes.Buffer
	mgr := ledger.NewManager(nil, nil)
	script := seedScript + "remove book\nTaras Bulba\nremove employee\nJohn\nadd book\nUnsold\n2000\nNobody\nMisc\n1\n2\nremove book\nUnsold\n"

	sh := newShell(strings.NewReader(script), &out, mgr, false)
	require.NoError(t, sh.run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Cannot remove book 'Taras Bulba': 1 sale(s) recorded against it")
	assert.Contains(t, got, "Cannot remove employee 'John': 2 sale(s) recorded against them")
	assert.Contains(t, got, "Removed book 'Unsold'")
	assert.Equal(t, 3, mgr.Catalog.Len())
	assert.Equal(t, 3, mgr.Employees.Len())
}

func TestCLIRemoveAfterSaleKeepsStoreLoadable(t *testing.T) {
	cleanEnv(t)
	for _, kind := range []string{store.KindJSON, store.KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shop."+kind)

			out, err := runCLI(t, seedScript+"remove book\nTaras Bulba\nremove employee\nBruce\nexit\n", "--store", kind, "--path", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Saved. Goodbye!")

			out, err = runCLI(t, "", "--store", kind, "--path", path, "info")
			require.NoError(t, err)
			assert.Contains(t, out, "Books:     3")
			assert.Contains(t, out, "Sales:     4")

			out, err = runCLI(t, "", "--store", kind, "--path", path, "report", "employee", "Bruce")
			require.NoError(t, err)
			assert.Equal(t, "Sales report for Bruce:\n2024-08-29: 'Taras Bulba' sold for 14.0\n", out)
		})
	}
}

// closeTrackingStore fails every Load and records whether it was closed.
type closeTrackingStore struct {
	closed bool
}

func (s *closeTrackingStore) Save(context.Context, ledger.Snapshot) error { return nil }
func (s *closeTrackingStore) Load(context.Context) (ledger.Snapshot, error) {
	return ledger.Snapshot{}, errors.New("corrupt snapshot")
}
func (s *closeTrackingStore) Close() error {
	s.closed = true
	return nil
}

func TestOpenLedgerClosesStoreOnLoadFailure(t *testing.T) {
	st := &closeTrackingStore{}

	mgr, err := openLedger(context.Background(), st, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, mgr)
	assert.True(t, st.closed)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "short", maxLen: 10, want: "short"},
		{in: "War and Peace", maxLen: 8, want: "War a..."},
		{in: "Тарас Бульба", maxLen: 8, want: "Тарас..."},
		{in: "Тарас Бульба", maxLen: 12, want: "Тарас Бульба"},
		{in: "Тарас", maxLen: 2, want: "Та"},
	}
	for _, tt := range tests {
		got := truncateString(tt.in, tt.maxLen)
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got), "%q is not valid UTF-8", got)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.maxLen)
	}
}
