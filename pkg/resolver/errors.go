package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL rejects input that does not carry an http or https scheme.
	ErrInvalidURL = errors.New("resolver: URL must start with http/https")

	// ErrNoAddresses is the cause inside a LookupError when the upstream
	// answered but returned zero addresses.
	ErrNoAddresses = errors.New("resolver: no addresses found")

	// ErrAlreadyInitialized is returned by Instance when options are passed
	// after the shared instance has been created. The existing instance is
	// returned alongside it.
	ErrAlreadyInitialized = errors.New("resolver: shared instance already initialized, options ignored")
)

// ProviderError reports an unsupported provider name.
type ProviderError struct {
	Provider string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("resolver: provider '%s' is not supported; use SetServers for a custom server list", e.Provider)
}

// LookupError wraps an upstream lookup failure with the hostname that failed,
// so callers can tell upstream failures apart from validation errors while
// still reaching the original cause through errors.Is and errors.As.
type LookupError struct {
	Host string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("resolver: lookup for '%s' failed: %v", e.Host, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
