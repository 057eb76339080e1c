package ledger

import "fmt"

// SalesLedger records sales against the employees and books currently
// registered in its directory and catalog.
type SalesLedger struct {
	employees *EmployeeDirectory
	catalog   *Catalog
	sales     []*Sale
}

func NewSalesLedger(employees *EmployeeDirectory, catalog *Catalog) *SalesLedger {
	return &SalesLedger{employees: employees, catalog: catalog}
}

// AddSale resolves the employee, then the book, and appends a sale pointing
// at both. Repeated identical sales are recorded separately.
func (l *SalesLedger) AddSale(employeeName, bookTitle, date string, actualPrice float64) (*Sale, error) {
	e, ok := l.employees.Find(employeeName)
	if !ok {
		return nil, fmt.Errorf("sale on %s: %q: %w", date, employeeName, ErrEmployeeNotFound)
	}
	b, ok := l.catalog.Find(bookTitle)
	if !ok {
		return nil, fmt.Errorf("sale on %s: %q: %w", date, bookTitle, ErrBookNotFound)
	}

	s := &Sale{Employee: e, Book: b, Date: date, ActualPrice: actualPrice}
	l.sales = append(l.sales, s)
	return s, nil
}

// ByDate returns the sales made on exactly date.
func (l *SalesLedger) ByDate(date string) []*Sale {
	return l.filter(func(s *Sale) bool { return s.Date == date })
}

// ByPeriod returns the sales dated within [start, end]. Dates compare as
// strings, so callers must use a sortable layout such as YYYY-MM-DD.
func (l *SalesLedger) ByPeriod(start, end string) []*Sale {
	return l.filter(func(s *Sale) bool { return start <= s.Date && s.Date <= end })
}

// ByEmployee returns every sale credited to an employee currently named name.
func (l *SalesLedger) ByEmployee(name string) []*Sale {
	return l.filter(func(s *Sale) bool { return s.Employee.Name == name })
}

// ByBook returns every sale of a book currently titled title, whichever
// author it is by.
func (l *SalesLedger) ByBook(title string) []*Sale {
	return l.filter(func(s *Sale) bool { return s.Book.Title == title })
}

func (l *SalesLedger) List() []*Sale { return l.sales }

func (l *SalesLedger) Len() int { return len(l.sales) }

func (l *SalesLedger) filter(keep func(*Sale) bool) []*Sale {
	var out []*Sale
	for _, s := range l.sales {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
