package types

import (
	"errors"
	"fmt"
)

// Config holds backend selection and parameters for Marketplace.Attach.
type Config struct {
	Backend        string `json:"backend" yaml:"backend"`
	DataDir        string `json:"data_dir" yaml:"data_dir"`
	BusyTimeoutMS  int    `json:"busy_timeout_ms" yaml:"busy_timeout_ms"`
	PasswordScheme string `json:"password_scheme" yaml:"password_scheme"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Password storage schemes. PasswordPlain stores the password verbatim and
// is the default so existing database files keep working.
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

// DefaultBusyTimeoutMS is how long a connection waits on a locked database
// file before the operation fails with ErrStorageUnavailable.
const DefaultBusyTimeoutMS = 5000

// Config validation errors.
var (
	ErrBackendEmpty          = errors.New("backend must not be empty")
	ErrBackendUnknown        = errors.New("unknown backend")
	ErrBusyTimeoutInvalid    = errors.New("busy timeout must not be negative")
	ErrPasswordSchemeUnknown = errors.New("unknown password scheme")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownPasswordSchemes = map[string]bool{
	"":             true,
	PasswordPlain:  true,
	PasswordBcrypt: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	if c.BusyTimeoutMS < 0 {
		return ErrBusyTimeoutInvalid
	}
	if !knownPasswordSchemes[c.PasswordScheme] {
		return fmt.Errorf("%w: %q", ErrPasswordSchemeUnknown, c.PasswordScheme)
	}
	return nil
}

// GetPasswordScheme returns the effective password scheme.
func (c Config) GetPasswordScheme() string {
	if c.PasswordScheme == "" {
		return PasswordPlain
	}
	return c.PasswordScheme
}
