// Package transport provides the concrete connections wireget fetches over:
// TLS for normal use and plain TCP for local development servers.
package transport

import (
	"context"
	"io"
	"net"
	"sync"
	"time"
)

// readChunkSize is the per-read buffer size. Chunk boundaries are
// transport-dependent and carry no meaning.
const readChunkSize = 1024

// streamConn adapts a net.Conn to the core.Conn contract: whole-buffer
// writes, chunked reads, and an empty chunk once the peer closes.
type streamConn struct {
	conn    net.Conn
	timeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

func (c *streamConn) Write(ctx context.Context, p []byte) error {
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}
	_, err := c.conn.Write(p)
	return err
}

func (c *streamConn) Read(ctx context.Context) ([]byte, error) {
	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	buf := make([]byte, readChunkSize)
	n, err := c.conn.Read(buf)
	if n > 0 {
		// Deliver the data; a pending error resurfaces on the next read.
		return buf[:n], nil
	}
	if err == io.EOF {
		return nil, nil
	}
	return nil, err
}

func (c *streamConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// applyDeadline sets the connection deadline from the context if it has one,
// falling back to the per-operation timeout. A zero timeout means no limit.
func (c *streamConn) applyDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(deadline)
	}
	if c.timeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	return c.conn.SetDeadline(time.Time{})
}
