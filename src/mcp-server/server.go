// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/config"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the version set by the last call to [Run].
func GetVersion() string {
	return appVersion
}

// Run serves the fixture tools over stdio until stdin closes or the process
// receives SIGINT or SIGTERM.
//
// Parameters:
//   - version: Version reported to clients
//   - configPath: Configuration file; empty falls back to $X509_FIXTURES_CONFIG_FILE, then defaults
//
// Returns:
//   - error: Configuration or server error; nil on signal-triggered shutdown
//
// Logs are JSON lines on stderr, since stdout carries the protocol.
func Run(version, configPath string) error {
	appVersion = version

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
}

// serve runs the stdio server on the given streams until ctx is done or in
// reaches EOF.
func serve(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	log := logger.NewJSONLogger(logOut, false).WithComponent("mcp-server")

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(appVersion).
		WithLogger(log).
		WithDefaultTools().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	log.Printf("Starting %s %s (output dir %q)", serverName, appVersion, cfg.Output.Dir)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.NewStdioServer(s).Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down")
		return nil
	}
}
