package core

import "context"

// Conn is a bidirectional byte stream owned by a single fetch for its
// lifetime. A Read returning an empty chunk means the peer closed the stream.
type Conn interface {
	// Write transmits all given bytes as one unit.
	Write(ctx context.Context, p []byte) error

	// Read returns the next available chunk, or an empty chunk once the
	// peer has closed the stream.
	Read(ctx context.Context) ([]byte, error)

	// Close releases the connection. Idempotent.
	Close() error
}

// Transport establishes connections. Implementations include TLS and plain
// TCP; tests inject MockTransport.
type Transport interface {
	Connect(ctx context.Context, host string, port int) (Conn, error)
}

// MockTransport is a mock implementation of Transport for testing.
type MockTransport struct {
	ConnectErr error
	Conn       *MockConn

	ConnectCalls int
}

// NewMockTransport creates a MockTransport that hands out the given conn.
func NewMockTransport(conn *MockConn) *MockTransport {
	return &MockTransport{Conn: conn}
}

// Connect returns the scripted connection or error.
func (m *MockTransport) Connect(ctx context.Context, host string, port int) (Conn, error) {
	m.ConnectCalls++
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	return m.Conn, nil
}

// MockConn is a scripted connection. Reads return the queued chunks in order;
// once the queue is exhausted, reads return empty chunks (peer closed).
type MockConn struct {
	Chunks   [][]byte
	WriteErr error
	ReadErr  error
	// ReadErrAfter fails the read issued after this many successful reads.
	// Ignored when ReadErr is nil.
	ReadErrAfter int

	Written    []byte
	WriteCalls int
	ReadCalls  int
	Closed     bool
}

// NewMockConn creates a MockConn that will serve the given chunks.
func NewMockConn(chunks ...string) *MockConn {
	c := &MockConn{}
	for _, chunk := range chunks {
		c.Chunks = append(c.Chunks, []byte(chunk))
	}
	return c
}

// Write records the bytes.
func (c *MockConn) Write(ctx context.Context, p []byte) error {
	c.WriteCalls++
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.Written = append(c.Written, p...)
	return nil
}

// Read returns the next scripted chunk.
func (c *MockConn) Read(ctx context.Context) ([]byte, error) {
	if c.ReadErr != nil && c.ReadCalls >= c.ReadErrAfter {
		c.ReadCalls++
		return nil, c.ReadErr
	}
	c.ReadCalls++
	if len(c.Chunks) == 0 {
		return nil, nil
	}
	chunk := c.Chunks[0]
	c.Chunks = c.Chunks[1:]
	return chunk, nil
}

// Close marks the connection closed.
func (c *MockConn) Close() error {
	c.Closed = true
	return nil
}
