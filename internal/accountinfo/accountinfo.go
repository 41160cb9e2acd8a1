// Package accountinfo reads the account table of the SQLite database the
// b2 command-line tool maintains. The schema is owned by that tool; this
// package is the only place that knows its table and column names, so a
// schema change upstream is absorbed here.
package accountinfo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNoAccount is returned by Read when the account table holds no row with
// usable key material for the requested account.
var ErrNoAccount = errors.New("no matching account row")

// Account is one row of the CLI's account table. KeyID carries the
// account_id_or_app_key_id column: the CLI stores either a plain account id
// or an application key id there, and both authenticate the same way.
type Account struct {
	AccountID string
	KeyID     string
	Key       string
}

// Read opens the account-info database at path read-only and returns the
// first account row carrying a non-empty key id and key. When accountID is
// non-empty only rows for that account are considered. The connection is
// closed before Read returns on every path.
//
// Failures other than ErrNoAccount mean the file could not be used as an
// account-info database at all (not SQLite, missing table, unreadable).
func Read(ctx context.Context, path, accountID string) (Account, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return Account{}, fmt.Errorf("open account info: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return Account{}, fmt.Errorf("open account info: %w", err)
	}

	query := `SELECT account_id, application_key, account_id_or_app_key_id FROM account`
	var args []any
	if accountID != "" {
		query += ` WHERE account_id = ?`
		args = append(args, accountID)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return Account{}, fmt.Errorf("query account table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acct Account
		var key, keyID sql.NullString
		if err := rows.Scan(&acct.AccountID, &key, &keyID); err != nil {
			return Account{}, fmt.Errorf("scan account row: %w", err)
		}
		// The CLI writes NULL key columns for accounts that were logged
		// out without being removed; those rows are unusable.
		if !key.Valid || key.String == "" || !keyID.Valid || keyID.String == "" {
			continue
		}
		acct.Key = key.String
		acct.KeyID = keyID.String
		return acct, nil
	}
	if err := rows.Err(); err != nil {
		return Account{}, fmt.Errorf("iterate account rows: %w", err)
	}

	return Account{}, ErrNoAccount
}
