// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-chain-fixtures-mcp is a Model Context Protocol (MCP) server that lets
// AI assistants and automation clients generate and inspect X.509 chain
// fixtures over stdio.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-chain-fixtures/cmd/x509-chain-fixtures-mcp@latest
//
// # Usage
//
//	x509-chain-fixtures-mcp [FLAGS]
//
// # Flags
//
//	--config        Path to configuration file (JSON or YAML)
//	--instructions  Display tool usage instructions and exit
//	--help          Show help information
//	--version       Show version information
//
// # Environment Variables
//
//	X509_FIXTURES_CONFIG_FILE  Path to configuration file (alternative to --config)
//
// # MCP Tools
//
//   - list_fixture_recipes: Names and descriptions of the built-in recipes
//   - generate_fixture_chain: Build a built-in or inline recipe into a chain file, optionally with a PKCS #12 bundle
//   - inspect_fixture_chain: Check issuer links and signatures, rendered as ASCII tree, table, or JSON
//
// # MCP Resources
//
//   - info://version: Version, tools, recipes and signature hashes
//   - config://effective: Configuration the server was started with
//   - recipes://schema: JSON schema for inline recipe documents
//
// # Examples
//
// Start the server with default configuration:
//
//	x509-chain-fixtures-mcp
//
// Load a custom configuration:
//
//	x509-chain-fixtures-mcp --config /path/to/config.yaml
package main
