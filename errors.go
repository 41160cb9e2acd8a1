package b2creds

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no configured source yields usable
// credentials: the environment variables are absent or incomplete, the
// account-info file does not exist, or it holds no usable account row.
// Match with errors.Is.
var ErrNotFound = errors.New("no b2 credentials found")

// DatabaseError reports an account-info file that exists but could not be
// read as the b2 CLI's SQLite database: garbage content, a missing or
// renamed account table, or a permission failure after the file was seen.
// Match with errors.As. Callers should surface this distinctly from
// ErrNotFound since it usually means a corrupt or incompatible file rather
// than a logged-out state.
type DatabaseError struct {
	Path string
	Err  error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("account info database %s: %v", e.Path, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }
