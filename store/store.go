// Package store provides the key/value stores the ledger is persisted in.
//
// A store is selected by a URI:
//
//	memory:           nothing is persisted, for tests and demos
//	file:<dir>        one JSON file per key in dir
//	sqlite:<path>     a key/value table in a SQLite database
package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/invest"
)

// Store is an invest.Store holding resources that must be released.
type Store interface {
	invest.Store
	io.Closer
}

// Open opens the store described by uri.
func Open(uri string) (Store, error) {
	scheme, arg, _ := strings.Cut(uri, ":")
	switch scheme {
	case "memory":
		return NewMemory(), nil
	case "file":
		if arg == "" {
			return nil, fmt.Errorf("store %q: a directory is required", uri)
		}
		return NewFile(arg), nil
	case "sqlite":
		if arg == "" {
			return nil, fmt.Errorf("store %q: a database path is required", uri)
		}
		return OpenSQLite(arg)
	default:
		return nil, fmt.Errorf("unknown store %q, want memory:, file:<dir> or sqlite:<path>", uri)
	}
}
