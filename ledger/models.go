package ledger

import "fmt"

// Employee is a member of staff who can be credited with sales.
// Name and Email are each unique within an EmployeeDirectory.
type Employee struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (e *Employee) String() string {
	return fmt.Sprintf("Employee(Name: %s, Position: %s, Phone: %s, Email: %s)",
		e.Name, e.Position, e.Phone, e.Email)
}

// Book is a catalog entry. The (Title, Author) pair is unique within a Catalog.
// SalePrice is the list price; the realized price lives on each Sale.
type Book struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Author    string  `json:"author"`
	Genre     string  `json:"genre"`
	Cost      float64 `json:"cost"`
	SalePrice float64 `json:"sale_price"`
}

func (b *Book) String() string {
	return fmt.Sprintf("Book(Title: %s, Year: %d, Author: %s, Genre: %s, Cost: %s, Sale Price: %s)",
		b.Title, b.Year, b.Author, b.Genre, FormatPrice(b.Cost), FormatPrice(b.SalePrice))
}

// Sale records one transaction. Employee and Book point at the entries owned
// by the directory and catalog, so later edits show through old sales.
type Sale struct {
	Employee    *Employee
	Book        *Book
	Date        string
	ActualPrice float64
}

func (s *Sale) String() string {
	return fmt.Sprintf("Sale(Employee: %s, Book: %s, Date: %s, Actual Sale Price: %s)",
		s.Employee.Name, s.Book.Title, s.Date, FormatPrice(s.ActualPrice))
}

// EmployeeUpdate lists the fields to overwrite in EmployeeDirectory.Edit.
// A nil field is left unchanged.
type EmployeeUpdate struct {
	Position *string
	Phone    *string
	Email    *string
}

// BookUpdate lists the fields to overwrite in Catalog.Edit.
// A nil field is left unchanged.
type BookUpdate struct {
	Year      *int
	Author    *string
	Genre     *string
	Cost      *float64
	SalePrice *float64
}
