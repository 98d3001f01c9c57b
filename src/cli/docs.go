// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the chain fixture generator.
// It implements a Cobra-based CLI with three commands:
//   - generate: build built-in or file-based recipes into leaf-first PEM files,
//     optionally with a PKCS #12 bundle of the leaf key and chain
//   - list: show the built-in recipes
//   - inspect: check issuer links and signatures of a chain file and render it
//     as an ASCII tree, a markdown table or JSON
//
// Work is cancelled through the context passed to [Execute]; progress goes to
// the [logger.Logger] it receives.
package cli
