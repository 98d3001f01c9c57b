// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/cli"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
	verpkg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/version"
)

var version string // set by ldflags or defaults to imported version

const (
	exitOK        = 0
	exitFailure   = 1
	exitInterrupt = 130 // 128 + SIGINT
)

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	os.Exit(run(context.Background(), logger.NewCLILogger()))
}

// run executes the CLI with os.Args and returns the process exit code.
func run(parent context.Context, log logger.Logger) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("CLI execution failed: %v", err)
			return exitFailure
		}
		if cli.OperationPerformed {
			log.Println("Fixture generation completed successfully.")
		}
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Partially written fixtures are never left behind; just let the
		// current step notice the cancellation.
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		return exitInterrupt
	}

	if cli.OperationPerformedSuccessfully {
		log.Println("X.509 chain fixture generator stopped.")
	}
	return exitOK
}
