// Translation of SQLite result codes into marketplace errors.
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// failure classifies a driver error.
type failure int

const (
	failureOther failure = iota
	failureBusy
	failureUnique
	failureForeignKey
)

// classify inspects err for a SQLite result code. The driver reports
// extended codes; the primary code is the low byte.
func classify(err error) failure {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return failureOther
	}
	code := se.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return failureUnique
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return failureForeignKey
	}
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return failureBusy
	case sqlite3.SQLITE_CONSTRAINT:
		msg := se.Error()
		if strings.Contains(msg, "UNIQUE") {
			return failureUnique
		}
		if strings.Contains(msg, "FOREIGN KEY") {
			return failureForeignKey
		}
	}
	return failureOther
}

// storageError wraps a driver error for op. Lock contention becomes
// ErrStorageUnavailable and foreign key violations become
// ErrReferenceNotFound; anything else is wrapped as is.
func storageError(op string, err error) error {
	switch classify(err) {
	case failureBusy:
		return fmt.Errorf("%s: %w (%v)", op, types.ErrStorageUnavailable, err)
	case failureForeignKey:
		return fmt.Errorf("%s: %w", op, types.ErrReferenceNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
