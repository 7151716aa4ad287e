// Package main provides the CLI entry point for wireget.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wireget/wireget/internal/core"
	"github.com/wireget/wireget/internal/transport"
	"github.com/wireget/wireget/internal/tui"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "wireget",
		Short: "wireget - one-shot raw HTTP/1.1 fetch tool",
		Long: `wireget issues a single raw HTTP/1.1 GET over TLS and prints
everything the server sends until it closes the connection. No redirects,
no retries, no response parsing.

Start the interactive TUI:
  wireget

Or use CLI commands:
  wireget get example.com /
  wireget get localhost /health --plain --port 8080
  wireget request example.com /index.html`,
		Run: func(cmd *cobra.Command, args []string) {
			// Default: launch TUI
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use 'wireget get <host> <path>'")
				os.Exit(1)
			}
			if err := tui.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	// Get command
	getCmd = &cobra.Command{
		Use:   "get <host> <path>",
		Short: "Fetch a path from a host and print the raw response",
		Args:  cobra.ExactArgs(2),
		Run:   runGet,
	}

	// Request command
	requestCmd = &cobra.Command{
		Use:   "request <host> <path>",
		Short: "Print the request that would be sent, without connecting",
		Args:  cobra.ExactArgs(2),
		Run:   runRequest,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Get command flags
	getCmd.Flags().Int("port", core.DefaultPort, "Port to connect to")
	getCmd.Flags().Duration("timeout", 30*time.Second, "Overall fetch timeout (0 = none)")
	getCmd.Flags().Bool("plain", false, "Use plain TCP instead of TLS")
	getCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	rootCmd.AddCommand(getCmd)

	// Request command flags
	requestCmd.Flags().Int("port", core.DefaultPort, "Port (informational only)")
	rootCmd.AddCommand(requestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runGet(cmd *cobra.Command, args []string) {
	host, path := args[0], args[1]
	port, _ := cmd.Flags().GetInt("port")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	plain, _ := cmd.Flags().GetBool("plain")
	insecure, _ := cmd.Flags().GetBool("insecure")

	if host == "" {
		fmt.Fprintln(os.Stderr, "Error: host must not be empty")
		os.Exit(1)
	}
	if !strings.HasPrefix(path, "/") {
		fmt.Fprintf(os.Stderr, "Error: path must begin with '/', got %q\n", path)
		os.Exit(1)
	}

	var tr core.Transport
	if plain {
		tr = transport.NewTCPTransport()
	} else {
		tlsTr := transport.NewTLSTransport()
		tlsTr.InsecureSkipVerify = insecure
		tr = tlsTr
	}

	fetcher := core.NewFetcher(tr)
	fetcher.Options.Port = port
	fetcher.Logger = newLogger()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := fetcher.Fetch(ctx, host, path)
	if err != nil {
		if jsonOutput {
			out := map[string]interface{}{
				"host":  host,
				"path":  path,
				"port":  port,
				"error": err.Error(),
				"kind":  errorKind(err),
			}
			data, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(data))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if jsonOutput {
		out := map[string]interface{}{
			"host":  host,
			"path":  path,
			"port":  port,
			"bytes": len(body),
			"body":  body,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Print(body)
}

// errorKind names the error category for JSON output.
func errorKind(err error) string {
	var connErr *core.ConnError
	if errors.As(err, &connErr) {
		return "connection"
	}
	var ioErr *core.IOError
	if errors.As(err, &ioErr) {
		return "io"
	}
	return "unknown"
}

func runRequest(cmd *cobra.Command, args []string) {
	host, path := args[0], args[1]
	port, _ := cmd.Flags().GetInt("port")

	opts := core.DefaultRequestOptions()
	opts.Port = port
	request := core.BuildRequest(host, path, opts)

	if jsonOutput {
		out := map[string]interface{}{
			"addr":    core.Endpoint{Host: host, Port: port}.Addr(),
			"request": request,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Print(request)
}
