package core

import "fmt"

// ConnError reports a failure to establish the secure transport connection:
// DNS resolution, TCP refusal, or the TLS handshake itself.
type ConnError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connect to %s:%d failed: %v", e.Host, e.Port, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// IOError reports a write or read failure on an established connection.
// Op is "write" or "read".
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
