package ledger

import (
	"fmt"
	"sort"
	"strings"
)

// ReportEngine renders read-only text reports over a SalesLedger and the
// directory and catalog behind it.
type ReportEngine struct {
	employees *EmployeeDirectory
	catalog   *Catalog
	sales     *SalesLedger
}

func NewReportEngine(employees *EmployeeDirectory, catalog *Catalog, sales *SalesLedger) *ReportEngine {
	return &ReportEngine{employees: employees, catalog: catalog, sales: sales}
}

// SalesReport lists every sale dated within [start, end], one per line.
func (r *ReportEngine) SalesReport(start, end string) string {
	return saleLines(r.sales.ByPeriod(start, end))
}

// SalesByDateReport lists the sales of a single day in the SalesReport format.
func (r *ReportEngine) SalesByDateReport(date string) string {
	return saleLines(r.sales.ByDate(date))
}

// EmployeeSalesReport lists every sale credited to name, regardless of date.
func (r *ReportEngine) EmployeeSalesReport(name string) string {
	sales := r.sales.ByEmployee(name)
	if len(sales) == 0 {
		return fmt.Sprintf("No sales found for %s.", name)
	}

	lines := make([]string, 0, len(sales)+1)
	lines = append(lines, fmt.Sprintf("Sales report for %s:", name))
	for _, s := range sales {
		lines = append(lines, fmt.Sprintf("%s: '%s' sold for %s", s.Date, s.Book.Title, FormatPrice(s.ActualPrice)))
	}
	return strings.Join(lines, "\n")
}

// TopBooksReport ranks titles by number of sales. Ties keep the order in
// which the titles first appear in the ledger.
func (r *ReportEngine) TopBooksReport(n int) string {
	counts := make(map[string]int)
	var titles []string
	for _, s := range r.sales.List() {
		t := s.Book.Title
		if _, seen := counts[t]; !seen {
			titles = append(titles, t)
		}
		counts[t]++
	}
	sort.SliceStable(titles, func(i, j int) bool { return counts[titles[i]] > counts[titles[j]] })
	if n < len(titles) {
		titles = titles[:max(n, 0)]
	}

	lines := make([]string, 0, len(titles)+1)
	lines = append(lines, fmt.Sprintf("Top %d selling books:", n))
	for _, t := range titles {
		lines = append(lines, fmt.Sprintf("%s: %d sales", t, counts[t]))
	}
	return strings.Join(lines, "\n")
}

// EmployeesReport prints every employee on its own line.
func (r *ReportEngine) EmployeesReport() string {
	lines := make([]string, 0, r.employees.Len())
	for _, e := range r.employees.List() {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

// BooksReport prints every catalog entry on its own line.
func (r *ReportEngine) BooksReport() string {
	lines := make([]string, 0, r.catalog.Len())
	for _, b := range r.catalog.List() {
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func saleLines(sales []*Sale) string {
	lines := make([]string, 0, len(sales))
	for _, s := range sales {
		lines = append(lines, fmt.Sprintf("%s: %s sold '%s' for %s",
			s.Date, s.Employee.Name, s.Book.Title, FormatPrice(s.ActualPrice)))
	}
	return strings.Join(lines, "\n")
}
