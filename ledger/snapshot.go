package ledger

import (
	"context"
	"fmt"
)

// EmployeeRecord is the persisted form of an Employee.
type EmployeeRecord struct {
	Name     string `json:"name" yaml:"name" db:"name"`
	Position string `json:"position" yaml:"position" db:"position"`
	Phone    string `json:"phone" yaml:"phone" db:"phone"`
	Email    string `json:"email" yaml:"email" db:"email"`
}

// BookRecord is the persisted form of a Book.
type BookRecord struct {
	Title     string  `json:"title" yaml:"title" db:"title"`
	Year      int     `json:"year" yaml:"year" db:"year"`
	Author    string  `json:"author" yaml:"author" db:"author"`
	Genre     string  `json:"genre" yaml:"genre" db:"genre"`
	Cost      float64 `json:"cost" yaml:"cost" db:"cost"`
	SalePrice float64 `json:"sale_price" yaml:"sale_price" db:"sale_price"`
}

// SaleRecord is the persisted form of a Sale. The employee and book are
// stored by name and title and resolved again on load.
type SaleRecord struct {
	EmployeeName    string  `json:"employee_name" yaml:"employee_name" db:"employee_name"`
	BookTitle       string  `json:"book_title" yaml:"book_title" db:"book_title"`
	SaleDate        string  `json:"sale_date" yaml:"sale_date" db:"sale_date"`
	ActualSalePrice float64 `json:"actual_sale_price" yaml:"actual_sale_price" db:"actual_sale_price"`
}

// Snapshot is the full persisted state of a ledger, in insertion order.
type Snapshot struct {
	Employees []EmployeeRecord `json:"employees" yaml:"employees"`
	Books     []BookRecord     `json:"books" yaml:"books"`
	Sales     []SaleRecord     `json:"sales" yaml:"sales"`
}

// Store saves and loads snapshots to some durable medium.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
	Close() error
}

func snapshotOf(d *EmployeeDirectory, c *Catalog, l *SalesLedger) Snapshot {
	snap := Snapshot{
		Employees: make([]EmployeeRecord, 0, d.Len()),
		Books:     make([]BookRecord, 0, c.Len()),
		Sales:     make([]SaleRecord, 0, l.Len()),
	}
	for _, e := range d.List() {
		snap.Employees = append(snap.Employees, EmployeeRecord(*e))
	}
	for _, b := range c.List() {
		snap.Books = append(snap.Books, BookRecord(*b))
	}
	for _, s := range l.List() {
		snap.Sales = append(snap.Sales, SaleRecord{
			EmployeeName:    s.Employee.Name,
			BookTitle:       s.Book.Title,
			SaleDate:        s.Date,
			ActualSalePrice: s.ActualPrice,
		})
	}
	return snap
}

// replay feeds a snapshot through the normal insert paths, so a snapshot
// that could not have been built by Add and AddSale is rejected.
func replay(snap Snapshot, d *EmployeeDirectory, c *Catalog, l *SalesLedger) error {
	for i, e := range snap.Employees {
		if err := d.Add(e.Name, e.Position, e.Phone, e.Email); err != nil {
			return fmt.Errorf("employee #%d: %w", i+1, err)
		}
	}
	for i, b := range snap.Books {
		if err := c.Add(b.Title, b.Year, b.Author, b.Genre, b.Cost, b.SalePrice); err != nil {
			return fmt.Errorf("book #%d: %w", i+1, err)
		}
	}
	for i, s := range snap.Sales {
		if _, err := l.AddSale(s.EmployeeName, s.BookTitle, s.SaleDate, s.ActualSalePrice); err != nil {
			return fmt.Errorf("sale #%d: %w", i+1, err)
		}
	}
	return nil
}
