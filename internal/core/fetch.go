package core

import (
	"context"
	"log/slog"
	"strings"
)

// Fetcher performs one-shot fetches: connect, send a single GET, read until
// the peer closes the stream. No retries, no redirects, no connection reuse.
type Fetcher struct {
	Transport Transport
	Options   RequestOptions
	Logger    *slog.Logger
}

// NewFetcher creates a Fetcher with the pinned request defaults.
func NewFetcher(transport Transport) *Fetcher {
	return &Fetcher{
		Transport: transport,
		Options:   DefaultRequestOptions(),
		Logger:    slog.Default(),
	}
}

// Fetch issues a single GET for path against host and returns the raw bytes
// received until the peer closed the stream, as a string. The response is not
// parsed in any way; callers get the status line, headers, and body verbatim.
//
// On failure nothing is returned: a *ConnError if the connection could not be
// established, a *IOError if the write or a read failed afterwards. The
// connection is released on every exit path.
func (f *Fetcher) Fetch(ctx context.Context, host, path string) (string, error) {
	endpoint := Endpoint{Host: host, Port: f.Options.Port}

	conn, err := f.Transport.Connect(ctx, host, endpoint.Port)
	if err != nil {
		return "", &ConnError{Host: host, Port: endpoint.Port, Err: err}
	}
	defer conn.Close()

	request := BuildRequest(host, path, f.Options)
	f.Logger.Debug("sending request", "addr", endpoint.Addr(), "request", request)

	if err := conn.Write(ctx, []byte(request)); err != nil {
		return "", &IOError{Op: "write", Err: err}
	}

	var body strings.Builder
	for {
		chunk, err := conn.Read(ctx)
		if err != nil {
			return "", &IOError{Op: "read", Err: err}
		}
		if len(chunk) == 0 {
			// Peer closed the stream.
			break
		}
		body.Write(chunk)
	}

	f.Logger.Debug("response complete", "addr", endpoint.Addr(), "bytes", body.Len())
	return body.String(), nil
}
