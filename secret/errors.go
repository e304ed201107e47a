package secret

import "errors"

var (
	// ErrUnknownScheme indicates a reference used a scheme with no
	// registered provider.
	ErrUnknownScheme = errors.New("secret: unknown reference scheme")

	// ErrBadReference indicates a reference that names nothing resolvable.
	ErrBadReference = errors.New("secret: bad reference")

	// ErrEmptyValue indicates a provider resolved a reference to an
	// empty credential.
	ErrEmptyValue = errors.New("secret: reference resolved to empty value")
)
