package store

import "errors"

var (
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// SQL stage errors. Repositories wrap the driver error with one of these so
// the HTTP layer can answer 500 without knowing the driver.
var (
	ErrBuildingSQLQuery     = errors.New("build sql query")
	ErrExecutingQuery       = errors.New("execute sql query")
	ErrBeginningTransaction = errors.New("begin transaction")
	ErrCommitingTransaction = errors.New("commit transaction")
	ErrExecutingStatement   = errors.New("execute sql statement")
	ErrScanningRow          = errors.New("scan row")
)
