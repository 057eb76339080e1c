package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when an insert or edit would break a uniqueness rule.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is the common cause of the lookup failures below.
	ErrNotFound = errors.New("not found")

	ErrEmployeeNotFound = fmt.Errorf("employee %w", ErrNotFound)
	ErrBookNotFound     = fmt.Errorf("book %w", ErrNotFound)

	// ErrDanglingSale is returned by Save when a sale would not reload onto
	// the same employee and book it was recorded against.
	ErrDanglingSale = errors.New("sale would not reload")
)
