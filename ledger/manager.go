package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Manager is a thin façade wiring the directory, catalog, sales ledger and
// report engine together, with an optional Store behind Save and Load.
type Manager struct {
	Employees *EmployeeDirectory
	Catalog   *Catalog
	Sales     *SalesLedger
	Reports   *ReportEngine

	store Store
	log   *zap.Logger
}

// NewManager returns a manager with empty state. store may be nil, in which
// case Save and Load fail.
func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{store: store, log: log}
	d, c := NewEmployeeDirectory(log), NewCatalog(log)
	m.use(d, c, NewSalesLedger(d, c))
	return m
}

func (m *Manager) use(d *EmployeeDirectory, c *Catalog, l *SalesLedger) {
	m.Employees = d
	m.Catalog = c
	m.Sales = l
	m.Reports = NewReportEngine(d, c, l)
}

// Close closes the underlying store, if any.
func (m *Manager) Close() error {
	if m.store == nil {
		return nil
	}
	return m.store.Close()
}

// ------------------ Snapshots ------------------

// Snapshot captures the current state in persisted form.
func (m *Manager) Snapshot() Snapshot {
	return snapshotOf(m.Employees, m.Catalog, m.Sales)
}

// Restore replaces the current state with snap. The snapshot is replayed
// through Add and AddSale into fresh services; on error the previous state
// is kept.
func (m *Manager) Restore(snap Snapshot) error {
	d, c := NewEmployeeDirectory(m.log), NewCatalog(m.log)
	l := NewSalesLedger(d, c)
	if err := replay(snap, d, c, l); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	m.use(d, c, l)
	m.log.Debug("state restored",
		zap.Int("employees", d.Len()),
		zap.Int("books", c.Len()),
		zap.Int("sales", l.Len()))
	return nil
}

// ------------------ Persistence ------------------

var errNoStore = errors.New("no store configured")

// Save writes the current state to the store. A state whose snapshot
// would not restore to the same sales is refused and nothing is written.
func (m *Manager) Save(ctx context.Context) error {
	if m.store == nil {
		return errNoStore
	}
	snap := m.Snapshot()
	if err := m.checkReloads(snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := m.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// checkReloads replays snap into scratch services and verifies every sale
// resolves to an employee and book equal to the ones it holds now. Sales
// are persisted by name and title, so a removed entry, or a removed book
// whose title another author shares, would not come back the same.
func (m *Manager) checkReloads(snap Snapshot) error {
	d, c := NewEmployeeDirectory(nil), NewCatalog(nil)
	l := NewSalesLedger(d, c)
	if err := replay(snap, d, c, l); err != nil {
		return fmt.Errorf("%w: %w", ErrDanglingSale, err)
	}
	for i, got := range l.List() {
		want := m.Sales.List()[i]
		if *got.Employee != *want.Employee {
			return fmt.Errorf("%w: sale #%d would belong to %s instead of %s",
				ErrDanglingSale, i+1, got.Employee, want.Employee)
		}
		if *got.Book != *want.Book {
			return fmt.Errorf("%w: sale #%d would be of %s instead of %s",
				ErrDanglingSale, i+1, got.Book, want.Book)
		}
	}
	return nil
}

// Load replaces the current state with the store's snapshot.
func (m *Manager) Load(ctx context.Context) error {
	if m.store == nil {
		return errNoStore
	}
	snap, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return m.Restore(snap)
}
