package ledger

import (
	"fmt"

	"go.uber.org/zap"
)

// EmployeeDirectory owns the shop's employees and keeps names and emails unique.
// It is not safe for concurrent use.
type EmployeeDirectory struct {
	employees []*Employee
	log       *zap.Logger
}

// NewEmployeeDirectory returns an empty directory. A nil logger discards notices.
func NewEmployeeDirectory(log *zap.Logger) *EmployeeDirectory {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmployeeDirectory{log: log.Named("employees")}
}

// Add appends a new employee. It fails with ErrDuplicateKey if the name or
// the email is already taken, in which case nothing is inserted.
func (d *EmployeeDirectory) Add(name, position, phone, email string) error {
	for _, e := range d.employees {
		if e.Name == name || e.Email == email {
			return fmt.Errorf("employee %q <%s> already exists: %w", name, email, ErrDuplicateKey)
		}
	}
	d.employees = append(d.employees, &Employee{
		Name:     name,
		Position: position,
		Phone:    phone,
		Email:    email,
	})
	return nil
}

// Remove deletes the first employee called name. A missing name is logged
// and otherwise ignored. Sales already referencing the employee keep it.
func (d *EmployeeDirectory) Remove(name string) bool {
	for i, e := range d.employees {
		if e.Name == name {
			d.employees = append(d.employees[:i:i], d.employees[i+1:]...)
			return true
		}
	}
	d.log.Warn("employee not found, nothing removed", zap.String("name", name))
	return false
}

// Edit overwrites the provided fields of the employee called name in place
// and returns it.
func (d *EmployeeDirectory) Edit(name string, upd EmployeeUpdate) (*Employee, error) {
	e, ok := d.Find(name)
	if !ok {
		return nil, fmt.Errorf("edit %q: %w", name, ErrEmployeeNotFound)
	}
	if upd.Email != nil && *upd.Email != e.Email {
		for _, other := range d.employees {
			if other != e && other.Email == *upd.Email {
				return nil, fmt.Errorf("edit %q: email %s belongs to %q: %w", name, *upd.Email, other.Name, ErrDuplicateKey)
			}
		}
	}

	if upd.Position != nil {
		e.Position = *upd.Position
	}
	if upd.Phone != nil {
		e.Phone = *upd.Phone
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	return e, nil
}

// Find returns the employee with exactly this name.
func (d *EmployeeDirectory) Find(name string) (*Employee, bool) {
	for _, e := range d.employees {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// List returns the live, insertion-ordered slice of employees.
// Callers must not modify it and should not treat it as a snapshot.
func (d *EmployeeDirectory) List() []*Employee { return d.employees }

func (d *EmployeeDirectory) Len() int { return len(d.employees) }
