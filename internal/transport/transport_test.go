package transport

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/wireget/wireget/internal/core"
)

// setupTestServer starts a one-connection TCP server on a loopback port and
// returns its port. serverLogic runs with the accepted connection, which is
// closed when it returns.
func setupTestServer(t *testing.T, serverLogic func(net.Conn)) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test server: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		serverLogic(conn)
		conn.Close()
	}()

	return listener.Addr().(*net.TCPAddr).Port
}

// readRequest consumes header lines until the blank line.
func readRequest(t *testing.T, conn net.Conn) string {
	t.Helper()

	var request strings.Builder
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Errorf("server failed to read request: %v", err)
			return request.String()
		}
		request.WriteString(line)
		if line == "\r\n" {
			return request.String()
		}
	}
}

func TestTCPTransport_FetchRoundTrip(t *testing.T) {
	requests := make(chan string, 1)
	port := setupTestServer(t, func(conn net.Conn) {
		requests <- readRequest(t, conn)
		conn.Write([]byte("HTTP/1.1 200 OK\r\n\r\n"))
		time.Sleep(10 * time.Millisecond)
		conn.Write([]byte("hello"))
	})

	fetcher := core.NewFetcher(NewTCPTransport())
	fetcher.Options.Port = port

	body, err := fetcher.Fetch(context.Background(), "127.0.0.1", "/")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := "HTTP/1.1 200 OK\r\n\r\nhello"
	if body != want {
		t.Errorf("Fetch() = %q, want %q", body, want)
	}

	gotRequest := <-requests
	if !strings.HasPrefix(gotRequest, "GET / HTTP/1.1\r\n") {
		t.Errorf("server received %q, want GET request line first", gotRequest)
	}
	if !strings.Contains(gotRequest, "Connection: close\r\n") {
		t.Errorf("server received %q, want Connection: close header", gotRequest)
	}
}

func TestTCPTransport_ImmediateClose(t *testing.T) {
	port := setupTestServer(t, func(conn net.Conn) {
		// Close without writing anything.
	})

	fetcher := core.NewFetcher(NewTCPTransport())
	fetcher.Options.Port = port

	body, err := fetcher.Fetch(context.Background(), "127.0.0.1", "/")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != "" {
		t.Errorf("Fetch() = %q, want empty string", body)
	}
}

func TestTCPTransport_Connect_Refused(t *testing.T) {
	// Grab a free port, then close the listener so the dial is refused.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	tr := NewTCPTransport()
	if _, err := tr.Connect(context.Background(), "127.0.0.1", port); err == nil {
		t.Error("Connect() expected error on refused port")
	}
}

func TestTCPTransport_Connect_CanceledContext(t *testing.T) {
	port := setupTestServer(t, func(conn net.Conn) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewTCPTransport()
	if _, err := tr.Connect(ctx, "127.0.0.1", port); err == nil {
		t.Error("Connect() expected error with canceled context")
	}
}

func TestStreamConn_CloseIdempotent(t *testing.T) {
	port := setupTestServer(t, func(conn net.Conn) {})

	tr := NewTCPTransport()
	conn, err := tr.Connect(context.Background(), "127.0.0.1", port)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewTLSTransport_Defaults(t *testing.T) {
	tr := NewTLSTransport()

	if tr.DialTimeout != 30*time.Second {
		t.Errorf("DialTimeout = %v, want 30s", tr.DialTimeout)
	}
	if tr.IOTimeout != 30*time.Second {
		t.Errorf("IOTimeout = %v, want 30s", tr.IOTimeout)
	}
	if tr.InsecureSkipVerify {
		t.Error("InsecureSkipVerify should default to false")
	}
}

func TestTLSTransport_Connect_Refused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	tr := NewTLSTransport()
	if _, err := tr.Connect(context.Background(), "127.0.0.1", port); err == nil {
		t.Error("Connect() expected error on refused port")
	}
}
