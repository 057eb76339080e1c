package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bookstore-ledger/ledger"
)

func tempDB(t *testing.T) *SQLite {
	t.Helper()
	dir := t.TempDir()
	db, err := NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Employees: []ledger.EmployeeRecord{
			{Name: "John", Position: "Seller", Phone: "111", Email: "john@example.com"},
			{Name: "Bruce", Position: "Seller", Phone: "222", Email: "bruce@example.com"},
		},
		Books: []ledger.BookRecord{
			{Title: "1984", Year: 1949, Author: "George Orwell", Genre: "Dystopia", Cost: 12, SalePrice: 20},
			{Title: "Taras Bulba", Year: 1835, Author: "Nikolai Gogol", Genre: "Historical", Cost: 10, SalePrice: 15},
		},
		Sales: []ledger.SaleRecord{
			{EmployeeName: "John", BookTitle: "1984", SaleDate: "2024-08-31", ActualSalePrice: 19.5},
			{EmployeeName: "Bruce", BookTitle: "Taras Bulba", SaleDate: "2024-08-29", ActualSalePrice: 14},
			{EmployeeName: "John", BookTitle: "1984", SaleDate: "2024-08-30", ActualSalePrice: 19},
		},
	}
}

func TestSQLiteEmptyLoad(t *testing.T) {
	db := tempDB(t)

	snap, err := db.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Employees)+len(snap.Books)+len(snap.Sales) != 0 {
		t.Fatalf("want empty snapshot, got %+v", snap)
	}

	info, err := db.Info(context.Background())
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.SnapshotID != "" {
		t.Fatalf("want no snapshot id, got %q", info.SnapshotID)
	}
}

func TestSQLiteSaveLoadKeepsOrder(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()
	want := sampleSnapshot()

	if err := db.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSaveReplacesContents(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	if err := db.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, _ := db.Info(ctx)

	smaller := ledger.Snapshot{Employees: []ledger.EmployeeRecord{{Name: "Marta", Email: "marta@example.com"}}}
	if err := db.Save(ctx, smaller); err != nil {
		t.Fatalf("second save: %v", err)
	}
	info, err := db.Info(ctx)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.Employees != 1 || info.Books != 0 || info.Sales != 0 {
		t.Fatalf("unexpected counts %+v", info)
	}
	if info.SnapshotID == "" || info.SnapshotID == first.SnapshotID {
		t.Fatalf("expected a fresh snapshot id, got %q (previous %q)", info.SnapshotID, first.SnapshotID)
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shop.db")
	ctx := context.Background()

	db, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	db.Close()

	// Second open must skip migrations and see the saved rows.
	db, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	snap, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Sales) != 3 {
		t.Fatalf("want 3 sales, got %d", len(snap.Sales))
	}
}

func TestSQLiteFeedsManager(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()
	if err := db.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	mgr := ledger.NewManager(db, nil)
	if err := mgr.Load(ctx); err != nil {
		t.Fatalf("manager load: %v", err)
	}
	// Ledger order, not date order.
	want := "2024-08-31: John sold '1984' for 19.5\n2024-08-30: John sold '1984' for 19.0"
	if got := mgr.Reports.SalesReport("2024-08-30", "2024-08-31"); got != want {
		t.Fatalf("report = %q, want %q", got, want)
	}
}
