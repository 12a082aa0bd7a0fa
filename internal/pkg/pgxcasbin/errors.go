package pgxcasbin

import "errors"

var (
	// ErrInsertRow indicates a row insert failure.
	ErrInsertRow = errors.New("failed to insert row")
	// ErrSelectWhere indicates a filtered select failure.
	ErrSelectWhere = errors.New("failed to select where")
	// ErrScanRow indicates a row scan failure.
	ErrScanRow = errors.New("failed to scan row")
	// ErrDeleteRow indicates a row delete failure.
	ErrDeleteRow = errors.New("failed to delete row")
	// ErrDeleteWhere indicates a filtered delete failure.
	ErrDeleteWhere = errors.New("failed to delete where")
	// ErrEmptyPtype indicates a missing policy type.
	ErrEmptyPtype = errors.New("ptype is empty")
	// ErrArgsTooLong indicates the provided args exceed the field count.
	ErrArgsTooLong = errors.New("args length exceeds field count")
	// ErrRuleTooLong indicates a rule exceeds the field count.
	ErrRuleTooLong = errors.New("rule length exceeds field count")
	// ErrBatchExec indicates a batch execution failure.
	ErrBatchExec = errors.New("failed to execute batch")
	// ErrBatchClose indicates a batch close failure.
	ErrBatchClose = errors.New("failed to close batch")
	// ErrBeginTx indicates a transaction begin failure.
	ErrBeginTx = errors.New("failed to begin transaction")
	// ErrCommitTx indicates a transaction commit failure.
	ErrCommitTx = errors.New("failed to commit transaction")
	// ErrRollbackTx indicates a transaction rollback failure.
	ErrRollbackTx = errors.New("failed to rollback transaction")
	// ErrDeleteAll indicates a truncate failure.
	ErrDeleteAll = errors.New("failed to delete all rows")
)
