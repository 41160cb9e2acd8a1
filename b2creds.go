package b2creds

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ericfisherdev/b2creds/internal/accountinfo"
)

// Environment variables consumed, matching the b2 CLI.
const (
	keyIDEnvVar       = "B2_APPLICATION_KEY_ID"
	keyEnvVar         = "B2_APPLICATION_KEY"
	accountInfoEnvVar = "B2_ACCOUNT_INFO"
)

// defaultFileName is the account-info database the b2 CLI writes under the
// user's home directory.
const defaultFileName = ".b2_account_info"

// Credentials holds the application key id and application key pair issued
// by B2 for API authentication. Both fields are non-empty on any value
// returned by this package.
type Credentials struct {
	ApplicationKeyID string
	ApplicationKey   string
}

// Locator resolves credentials from ambient process state. The zero value
// reads the real environment and the real home directory; tests inject
// LookupEnv and HomeDir to stay independent of the host.
type Locator struct {
	// LookupEnv reads an environment variable. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// HomeDir resolves the user's home directory for the default
	// account-info path. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)

	// Path overrides the account-info database location. When empty, the
	// B2_ACCOUNT_INFO variable and then ~/.b2_account_info are used.
	Path string

	// AccountID selects which stored account to read when the database
	// holds several. Empty selects the first usable account, which is
	// what the b2 CLI itself does.
	AccountID string
}

// Locate returns credentials following the b2 CLI's lookup order: the
// B2_APPLICATION_KEY_ID and B2_APPLICATION_KEY environment variables first,
// then the account-info database. Absence at the environment step falls
// through; any database failure other than absence propagates.
func (l *Locator) Locate(ctx context.Context) (Credentials, error) {
	creds, err := l.FromEnv()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Credentials{}, err
	}
	return l.FromFile(ctx)
}

// FromEnv returns credentials from the environment. Both variables must be
// set and non-empty; partial presence is reported as ErrNotFound so that
// Locate falls through to the account-info database rather than returning
// a half-populated pair.
func (l *Locator) FromEnv() (Credentials, error) {
	keyID, _ := l.lookupEnv(keyIDEnvVar)
	key, _ := l.lookupEnv(keyEnvVar)
	if keyID == "" || key == "" {
		return Credentials{}, fmt.Errorf("environment variables %s and %s: %w", keyIDEnvVar, keyEnvVar, ErrNotFound)
	}
	return Credentials{ApplicationKeyID: keyID, ApplicationKey: key}, nil
}

// FromFile returns credentials from the account-info database, resolving
// its path from the Path field, then B2_ACCOUNT_INFO, then the default
// home-relative location. A missing file is ErrNotFound; a file that exists
// but cannot be read as the CLI's database is a *DatabaseError.
func (l *Locator) FromFile(ctx context.Context) (Credentials, error) {
	path, err := l.resolvePath()
	if err != nil {
		return Credentials{}, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("account info file %s: %w", path, ErrNotFound)
		}
		return Credentials{}, &DatabaseError{Path: path, Err: err}
	}

	acct, err := accountinfo.Read(ctx, path, l.AccountID)
	if errors.Is(err, accountinfo.ErrNoAccount) {
		return Credentials{}, fmt.Errorf("account info file %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Credentials{}, &DatabaseError{Path: path, Err: err}
	}

	return Credentials{ApplicationKeyID: acct.KeyID, ApplicationKey: acct.Key}, nil
}

// DefaultPath returns the account-info database location the b2 CLI uses
// when B2_ACCOUNT_INFO is unset: .b2_account_info in the home directory.
func (l *Locator) DefaultPath() (string, error) {
	home, err := l.homeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultFileName), nil
}

func (l *Locator) resolvePath() (string, error) {
	if l.Path != "" {
		return l.Path, nil
	}
	if path, ok := l.lookupEnv(accountInfoEnvVar); ok && path != "" {
		return path, nil
	}
	return l.DefaultPath()
}

func (l *Locator) lookupEnv(key string) (string, bool) {
	if l.LookupEnv != nil {
		return l.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (l *Locator) homeDir() (string, error) {
	if l.HomeDir != nil {
		return l.HomeDir()
	}
	return os.UserHomeDir()
}

// Locate resolves credentials from the real process environment and
// filesystem. See Locator.Locate for the lookup order.
func Locate(ctx context.Context) (Credentials, error) {
	var l Locator
	return l.Locate(ctx)
}

// FromEnv resolves credentials from the real process environment only.
func FromEnv() (Credentials, error) {
	var l Locator
	return l.FromEnv()
}

// FromFile resolves credentials from the account-info database. path and
// accountID may be empty; see Locator.FromFile and Locator.AccountID.
func FromFile(ctx context.Context, path, accountID string) (Credentials, error) {
	l := Locator{Path: path, AccountID: accountID}
	return l.FromFile(ctx)
}

// DefaultPath returns ~/.b2_account_info for the current user.
func DefaultPath() (string, error) {
	var l Locator
	return l.DefaultPath()
}
