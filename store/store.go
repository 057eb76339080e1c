// Package store persists ledger snapshots to a flat JSON file or a SQLite
// database.
package store

import (
	"fmt"

	"bookstore-ledger/ledger"
)

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open returns the store of the given kind rooted at path.
func Open(kind, path string) (ledger.Store, error) {
	switch kind {
	case KindJSON:
		return NewJSONFile(path), nil
	case KindSQLite:
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q (want %s or %s)", kind, KindJSON, KindSQLite)
	}
}

// Files lists the on-disk files a store of this kind may create at path.
func Files(kind, path string) []string {
	if kind == KindSQLite {
		return []string{path, path + "-shm", path + "-wal"}
	}
	return []string{path}
}
