// Package core implements the one-shot fetch: build a raw HTTP/1.1 request,
// send it over an encrypted stream, and read until the peer closes.
package core

import (
	"fmt"
	"strings"
)

// DefaultPort is the port used when the caller does not override it.
const DefaultPort = 443

// Endpoint identifies the peer to connect to.
type Endpoint struct {
	Host string
	Port int
}

// Addr formats the endpoint as a dialable host:port address.
// IPv6 literals are bracketed.
func (e Endpoint) Addr() string {
	if strings.Contains(e.Host, ":") {
		return fmt.Sprintf("[%s]:%d", e.Host, e.Port)
	}
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// RequestOptions holds the request parameters that were hardcoded in earlier
// versions of this tool. Defaults are pinned so the wire format stays stable.
type RequestOptions struct {
	Port       int
	UserAgent  string
	Accept     string
	Connection string
}

// DefaultRequestOptions returns the pinned defaults.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		Port:       DefaultPort,
		UserAgent:  "Mozilla/5.0",
		Accept:     "*/*",
		Connection: "close",
	}
}

// BuildRequest assembles the full HTTP/1.1 request text: the request line,
// four headers in fixed order, and the terminating blank line, all
// CRLF-terminated. Pure string assembly, no I/O.
func BuildRequest(host, path string, opts RequestOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GET %s HTTP/1.1\r\n", path)
	fmt.Fprintf(&b, "Host: %s\r\n", host)
	fmt.Fprintf(&b, "User-Agent: %s\r\n", opts.UserAgent)
	fmt.Fprintf(&b, "Accept: %s\r\n", opts.Accept)
	fmt.Fprintf(&b, "Connection: %s\r\n", opts.Connection)
	b.WriteString("\r\n")
	return b.String()
}
