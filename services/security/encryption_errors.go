package security

import "fmt"

var (
	ErrBadKeySize            = fmt.Errorf("master key must be exactly 32 bytes")
	ErrInvalidEnvelope       = fmt.Errorf("envelope is malformed")
	ErrAuthenticationFailure = fmt.Errorf("envelope authentication failed")
	ErrMissingMasterKey      = fmt.Errorf("no master key material configured")
)
