package transport

import (
	"context"
	"net"
	"time"

	"github.com/wireget/wireget/internal/core"
)

// TCPTransport establishes unencrypted connections. Useful against local
// development servers where TLS is not available.
type TCPTransport struct {
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// NewTCPTransport creates a TCPTransport with sensible defaults.
func NewTCPTransport() *TCPTransport {
	return &TCPTransport{
		DialTimeout: 30 * time.Second,
		IOTimeout:   30 * time.Second,
	}
}

// Connect dials host:port over plain TCP.
func (t *TCPTransport) Connect(ctx context.Context, host string, port int) (core.Conn, error) {
	dialer := &net.Dialer{Timeout: t.DialTimeout}

	addr := core.Endpoint{Host: host, Port: port}.Addr()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	return &streamConn{conn: conn, timeout: t.IOTimeout}, nil
}
