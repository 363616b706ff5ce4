package engine

import (
	"errors"
	"fmt"
)

// Failure kinds reported by engine operations. Every storage-interacting
// operation returns one of these, wrapped around the driver diagnostic so
// both the kind (errors.Is) and the underlying text stay reachable.
var (
	// ErrOpenFailed reports that the database handle could not be opened.
	ErrOpenFailed = errors.New("open failed")
	// ErrInvalidDatabase reports that the opened file failed the
	// validation query and is not a usable database.
	ErrInvalidDatabase = errors.New("invalid database")
	// ErrSchemaUnavailable reports that no columns could be discovered for
	// a table. Callers must treat it as "cannot proceed", not "zero columns".
	ErrSchemaUnavailable = errors.New("schema unavailable")
	// ErrQueryFailed reports a read query error.
	ErrQueryFailed = errors.New("query failed")
	// ErrInvalidRequest reports a precondition violation detected before
	// any storage interaction took place.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTransactionUnavailable reports that a transaction could not be started.
	ErrTransactionUnavailable = errors.New("transaction unavailable")
	// ErrDeleteFailed reports that clearing a table failed; the transaction
	// was rolled back.
	ErrDeleteFailed = errors.New("delete failed")
	// ErrInsertFailed reports that writing rows failed; the transaction was
	// rolled back. Row-level failures carry an *InsertError.
	ErrInsertFailed = errors.New("insert failed")
	// ErrCommitFailed reports that the final commit failed; the transaction
	// was rolled back.
	ErrCommitFailed = errors.New("commit failed")
)

// InsertError reports the grid row whose insert failed during a commit.
// It matches ErrInsertFailed under errors.Is and unwraps to the driver error.
type InsertError struct {
	Row int
	Err error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert failed at row %d: %v", e.Row, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

func (e *InsertError) Is(target error) bool { return target == ErrInsertFailed }
