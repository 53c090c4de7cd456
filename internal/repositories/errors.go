package repositories

import "errors"

// ErrDatabaseError is returned for unexpected database errors.
// It can be used to wrap more specific driver errors.
var ErrDatabaseError = errors.New("database error")

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}
