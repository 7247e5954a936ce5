package email

import (
	"errors"
	"fmt"
)

// AuthError indicates the mailbox rejected the supplied credentials.
// It is fatal for the whole run.
type AuthError struct {
	Account string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %v", e.Account, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ConnectivityError indicates the IMAP server could not be reached.
// It is fatal for the whole run.
type ConnectivityError struct {
	Addr string
	Err  error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach IMAP server %s: %v", e.Addr, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsConnectivityError reports whether err is a ConnectivityError.
func IsConnectivityError(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// ProtocolError indicates a malformed or unexpected server response while
// an authenticated session was otherwise healthy. It is recorded per
// message and does not abort the run.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("imap %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}
