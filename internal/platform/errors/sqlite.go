package errors

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteErrorCode maps a modernc sqlite error to an ErrorCode using its extended result code
func sqliteErrorCode(err error) (ErrorCode, bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return ErrorCodeUnknown, false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrorCodeInvalidArgument, true
	}
	// primary result code lives in the low byte
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_READONLY:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}
