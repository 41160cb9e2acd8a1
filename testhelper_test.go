package b2creds

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// accountRow mirrors one row of the CLI's account table. Key columns are
// pointers so fixtures can store NULL.
type accountRow struct {
	accountID string
	key       *string
	keyID     *string
}

func strPtr(s string) *string { return &s }

// writeAccountInfo creates an account-info database fixture under a temp
// dir with the CLI's schema and the given rows, and returns its path.
func writeAccountInfo(t *testing.T, rows ...accountRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".b2_account_info")
	writeFixtureAt(t, path, rows...)
	return path
}

// writeFixtureAt creates an account-info database fixture at an exact path.
func writeFixtureAt(t *testing.T, path string, rows ...accountRow) {
	t.Helper()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", path))
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	const schema = `CREATE TABLE account (
		account_id TEXT NOT NULL,
		application_key TEXT,
		account_id_or_app_key_id TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create account table: %v", err)
	}

	const insert = `INSERT INTO account (account_id, application_key, account_id_or_app_key_id) VALUES (?, ?, ?)`
	for _, row := range rows {
		if _, err := db.Exec(insert, row.accountID, row.key, row.keyID); err != nil {
			t.Fatalf("insert account row: %v", err)
		}
	}
}

// writeWrongSchemaDB creates a valid SQLite file whose tables do not match
// the CLI's account-info layout.
func writeWrongSchemaDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".b2_account_info")
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", path))
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE person (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		t.Fatalf("create person table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO person (name) VALUES (?)`, "matt"); err != nil {
		t.Fatalf("insert person row: %v", err)
	}
	return path
}

// writeGarbageFile creates a file that is not a SQLite database.
func writeGarbageFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".b2_account_info")
	if err := os.WriteFile(path, []byte("definitely not a sqlite database"), 0o600); err != nil {
		t.Fatalf("write garbage file: %v", err)
	}
	return path
}

// b2EnvVars lists every B2_ env var the locator reads.
var b2EnvVars = []string{
	"B2_APPLICATION_KEY_ID",
	"B2_APPLICATION_KEY",
	"B2_ACCOUNT_INFO",
}

// clearB2Env saves and unsets all B2_ env vars so tests don't inherit
// credentials from the host environment. t.Cleanup restores the original
// values after the test.
func clearB2Env(t *testing.T) {
	t.Helper()
	for _, key := range b2EnvVars {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

// noHomeLocator returns a Locator whose home resolver points at an empty
// temp dir, so the default path never hits the real ~/.b2_account_info.
func noHomeLocator(t *testing.T) Locator {
	t.Helper()
	home := t.TempDir()
	return Locator{
		HomeDir: func() (string, error) { return home, nil },
	}
}
