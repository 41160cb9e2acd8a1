// Package b2creds locates Backblaze B2 API credentials the same way the
// official b2 command-line tool does, so a Go program can reuse an existing
// CLI login without its own configuration.
//
// Lookup order:
//
//  1. The B2_APPLICATION_KEY_ID and B2_APPLICATION_KEY environment
//     variables, when both are set and non-empty.
//  2. The SQLite account-info database written by the CLI, at the path in
//     B2_ACCOUNT_INFO or at ~/.b2_account_info.
//
// Typical use:
//
//	creds, err := b2creds.Locate(ctx)
//	if err != nil {
//		// errors.Is(err, b2creds.ErrNotFound): not logged in anywhere.
//		// errors.As(err, &dbErr): account-info file present but unreadable.
//	}
//
// The package never writes: the account-info database is opened read-only
// and its schema remains owned by the CLI.
package b2creds
