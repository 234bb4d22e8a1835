package store

import "errors"

// Store error taxonomy. Absence on a get is not an error: Get returns a nil
// record instead.
var (
	// ErrStoreUnavailable means the database could not be opened or a lock
	// could not be acquired, typically because another instance holds an
	// incompatible handle. The remediation is asking the user to close other
	// open instances.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMigrationFailed means the upgrade transaction errored and was rolled
	// back. No partial schema state is persisted.
	ErrMigrationFailed = errors.New("schema migration failed")

	// ErrRecordInvalid means the caller passed a malformed record or targeted
	// an undeclared collection or index. The caller must fix the input.
	ErrRecordInvalid = errors.New("record invalid")
)
