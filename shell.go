package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bookstore-ledger/ledger"
)

const dateLayout = "2006-01-02"

// shell is the line-oriented back-office console. Prompts and the banner
// are only written when a person is typing; piped input gets plain output.
type shell struct {
	sc          *bufio.Scanner
	out         io.Writer
	mgr         *ledger.Manager
	interactive bool
}

func newShell(in io.Reader, out io.Writer, mgr *ledger.Manager, interactive bool) *shell {
	return &shell{sc: bufio.NewScanner(in), out: out, mgr: mgr, interactive: interactive}
}

func (s *shell) printf(format string, args ...any) { fmt.Fprintf(s.out, format, args...) }

func (s *shell) println(args ...any) { fmt.Fprintln(s.out, args...) }

// ask prompts for one line. ok is false once input is exhausted.
func (s *shell) ask(prompt string) (line string, ok bool) {
	if s.interactive {
		s.printf("%s: ", prompt)
	}
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// askOptional returns nil for a blank answer, meaning "keep the current value".
func (s *shell) askOptional(prompt string) (*string, bool) {
	line, ok := s.ask(prompt + " (blank keeps current)")
	if !ok || line == "" {
		return nil, ok
	}
	return &line, true
}

func (s *shell) banner() {
	s.println("Welcome to the Bookstore Ledger!")
	s.println("Available commands:")
	s.println("  Employees: add employee, list employees, edit employee, remove employee")
	s.println("  Books:     add book, list books, edit book, remove book")
	s.println("  Sales:     add sale, list sales, sales on date")
	s.println("  Reports:   sales report, employee report, top books")
	s.println("  System:    save, help, exit")
}

func (s *shell) run(ctx context.Context) error {
	if s.interactive {
		s.banner()
	}

	for {
		if s.interactive {
			s.printf("\n> ")
		}
		if !s.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(s.sc.Text())

		switch cmd {
		case "":
		case "add employee":
			s.handleAddEmployee()
		case "list employees":
			s.handleListEmployees()
		case "edit employee":
			s.handleEditEmployee()
		case "remove employee":
			s.handleRemoveEmployee()
		case "add book":
			s.handleAddBook()
		case "list books":
			s.handleListBooks()
		case "edit book":
			s.handleEditBook()
		case "remove book":
			s.handleRemoveBook()
		case "add sale":
			s.handleAddSale()
		case "list sales":
			s.handleListSales()
		case "sales on date":
			s.handleSalesOnDate()
		case "sales report":
			s.handleSalesReport()
		case "employee report":
			s.handleEmployeeReport()
		case "top books":
			s.handleTopBooks()
		case "save":
			s.handleSave(ctx)
		case "help":
			s.banner()
		case "exit":
			if err := s.mgr.Save(ctx); err != nil {
				return err
			}
			s.println("Saved. Goodbye!")
			return nil
		default:
			s.println("Unknown command. Type 'help' to list the available commands.")
		}
	}
	return s.sc.Err()
}

// ------------------ Employees ------------------

func (s *shell) handleAddEmployee() {
	name, ok := s.ask("Name")
	if !ok {
		return
	}
	position, ok := s.ask("Position")
	if !ok {
		return
	}
	phone, ok := s.ask("Phone")
	if !ok {
		return
	}
	email, ok := s.ask("Email")
	if !ok {
		return
	}

	if name == "" || email == "" {
		s.println("Error: name and email are required")
		return
	}
	if err := s.mgr.Employees.Add(name, position, phone, email); err != nil {
		s.printf("Error adding employee: %v\n", err)
		return
	}
	s.printf("Added employee '%s'\n", name)
}

func (s *shell) handleListEmployees() {
	employees := s.mgr.Employees.List()
	if len(employees) == 0 {
		s.println("No employees on file.")
		return
	}
	s.printf("%-20s %-20s %-15s %s\n", "Name", "Position", "Phone", "Email")
	s.println(strings.Repeat("-", 80))
	for _, e := range employees {
		s.printf("%-20s %-20s %-15s %s\n", truncateString(e.Name, 20), truncateString(e.Position, 20), e.Phone, e.Email)
	}
}

func (s *shell) handleEditEmployee() {
	name, ok := s.ask("Name")
	if !ok {
		return
	}
	var upd ledger.EmployeeUpdate
	if upd.Position, ok = s.askOptional("New position"); !ok {
		return
	}
	if upd.Phone, ok = s.askOptional("New phone"); !ok {
		return
	}
	if upd.Email, ok = s.askOptional("New email"); !ok {
		return
	}

	e, err := s.mgr.Employees.Edit(name, upd)
	if err != nil {
		s.printf("Error editing employee: %v\n", err)
		return
	}
	s.printf("Updated %s\n", e)
}

func (s *shell) handleRemoveEmployee() {
	name, ok := s.ask("Name")
	if !ok {
		return
	}
	if n := len(s.mgr.Sales.ByEmployee(name)); n > 0 {
		s.printf("Cannot remove employee '%s': %d sale(s) recorded against them\n", name, n)
		return
	}
	if s.mgr.Employees.Remove(name) {
		s.printf("Removed employee '%s'\n", name)
	} else {
		s.printf("No employee named '%s'\n", name)
	}
}

// ------------------ Books ------------------

func (s *shell) handleAddBook() {
	title, ok := s.ask("Title")
	if !ok {
		return
	}
	yearStr, ok := s.ask("Year")
	if !ok {
		return
	}
	author, ok := s.ask("Author")
	if !ok {
		return
	}
	genre, ok := s.ask("Genre")
	if !ok {
		return
	}
	costStr, ok := s.ask("Cost")
	if !ok {
		return
	}
	priceStr, ok := s.ask("Sale price")
	if !ok {
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		s.printf("Invalid year: %s\n", yearStr)
		return
	}
	cost, err := strconv.ParseFloat(costStr, 64)
	if err != nil {
		s.printf("Invalid cost: %s\n", costStr)
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		s.printf("Invalid sale price: %s\n", priceStr)
		return
	}

	if err := s.mgr.Catalog.Add(title, year, author, genre, cost, price); err != nil {
		s.printf("Error adding book: %v\n", err)
		return
	}
	s.printf("Added book '%s' by %s\n", title, author)
}

func (s *shell) handleListBooks() {
	books := s.mgr.Catalog.List()
	if len(books) == 0 {
		s.println("No books in the catalog.")
		return
	}
	s.printf("%-30s %-25s %-5s %-15s %8s %8s\n", "Title", "Author", "Year", "Genre", "Cost", "Price")
	s.println(strings.Repeat("-", 96))
	for _, b := range books {
		s.printf("%-30s %-25s %-5d %-15s %8s %8s\n",
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			b.Year,
			truncateString(b.Genre, 15),
			ledger.FormatPrice(b.Cost),
			ledger.FormatPrice(b.SalePrice))
	}
}

func (s *shell) handleEditBook() {
	title, ok := s.ask("Title")
	if !ok {
		return
	}
	var (
		upd  ledger.BookUpdate
		vals [5]*string
	)
	for i, prompt := range []string{"New year", "New author", "New genre", "New cost", "New sale price"} {
		if vals[i], ok = s.askOptional(prompt); !ok {
			return
		}
	}

	if vals[0] != nil {
		year, err := strconv.Atoi(*vals[0])
		if err != nil {
			s.printf("Invalid year: %s\n", *vals[0])
			return
		}
		upd.Year = &year
	}
	upd.Author, upd.Genre = vals[1], vals[2]
	var err error
	if upd.Cost, err = parseOptionalFloat(vals[3]); err != nil {
		s.printf("Invalid cost: %s\n", *vals[3])
		return
	}
	if upd.SalePrice, err = parseOptionalFloat(vals[4]); err != nil {
		s.printf("Invalid sale price: %s\n", *vals[4])
		return
	}

	b, err := s.mgr.Catalog.Edit(title, upd)
	if err != nil {
		s.printf("Error editing book: %v\n", err)
		return
	}
	s.printf("Updated %s\n", b)
}

func (s *shell) handleRemoveBook() {
	title, ok := s.ask("Title")
	if !ok {
		return
	}
	// Any sale of this title blocks removal, even one of a same-titled book
	// by another author: the remaining copy would inherit it on reload.
	if n := len(s.mgr.Sales.ByBook(title)); n > 0 {
		s.printf("Cannot remove book '%s': %d sale(s) recorded against it\n", title, n)
		return
	}
	if s.mgr.Catalog.Remove(title) {
		s.printf("Removed book '%s'\n", title)
	} else {
		s.printf("No book titled '%s'\n", title)
	}
}

// ------------------ Sales ------------------

func (s *shell) handleAddSale() {
	name, ok := s.ask("Employee name")
	if !ok {
		return
	}
	title, ok := s.ask("Book title")
	if !ok {
		return
	}
	date, ok := s.ask("Date (YYYY-MM-DD, blank for today)")
	if !ok {
		return
	}
	priceStr, ok := s.ask("Price (blank for list price)")
	if !ok {
		return
	}

	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		s.printf("Invalid date: %s\n", date)
		return
	}

	var price float64
	if priceStr == "" {
		if b, found := s.mgr.Catalog.Find(title); found {
			price = b.SalePrice
		}
	} else {
		var err error
		if price, err = strconv.ParseFloat(priceStr, 64); err != nil {
			s.printf("Invalid price: %s\n", priceStr)
			return
		}
	}

	sale, err := s.mgr.Sales.AddSale(name, title, date, price)
	switch {
	case errors.Is(err, ledger.ErrEmployeeNotFound):
		s.printf("Unknown employee '%s'\n", name)
	case errors.Is(err, ledger.ErrBookNotFound):
		s.printf("Unknown book '%s'\n", title)
	case err != nil:
		s.printf("Error recording sale: %v\n", err)
	default:
		s.printf("Recorded %s\n", sale)
	}
}

func (s *shell) handleListSales() {
	sales := s.mgr.Sales.List()
	if len(sales) == 0 {
		s.println("No sales recorded.")
		return
	}
	s.printf("%-12s %-20s %-30s %8s\n", "Date", "Employee", "Book", "Price")
	s.println(strings.Repeat("-", 74))
	for _, sl := range sales {
		s.printf("%-12s %-20s %-30s %8s\n",
			sl.Date,
			truncateString(sl.Employee.Name, 20),
			truncateString(sl.Book.Title, 30),
			ledger.FormatPrice(sl.ActualPrice))
	}
}

func (s *shell) handleSalesOnDate() {
	date, ok := s.ask("Date")
	if !ok {
		return
	}
	s.printReport(s.mgr.Reports.SalesByDateReport(date), "No sales on "+date+".")
}

// ------------------ Reports ------------------

func (s *shell) handleSalesReport() {
	from, ok := s.ask("From")
	if !ok {
		return
	}
	to, ok := s.ask("To")
	if !ok {
		return
	}
	s.printReport(s.mgr.Reports.SalesReport(from, to), "No sales in that period.")
}

func (s *shell) handleEmployeeReport() {
	name, ok := s.ask("Employee name")
	if !ok {
		return
	}
	s.println(s.mgr.Reports.EmployeeSalesReport(name))
}

func (s *shell) handleTopBooks() {
	nStr, ok := s.ask("How many (blank for 5)")
	if !ok {
		return
	}
	n := 5
	if nStr != "" {
		var err error
		if n, err = strconv.Atoi(nStr); err != nil || n < 0 {
			s.printf("Invalid count: %s\n", nStr)
			return
		}
	}
	s.println(s.mgr.Reports.TopBooksReport(n))
}

func (s *shell) handleSave(ctx context.Context) {
	if err := s.mgr.Save(ctx); err != nil {
		s.printf("Error saving: %v\n", err)
		return
	}
	s.println("Saved.")
}

func (s *shell) printReport(report, empty string) {
	if report == "" {
		s.println(empty)
		return
	}
	s.println(report)
}

func parseOptionalFloat(v *string) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
