// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes fixture generation over the Model Context Protocol ([MCP]).
//
// The server speaks MCP over stdio and offers three tools:
//   - list_fixture_recipes: names and descriptions of the built-in recipes
//   - generate_fixture_chain: builds a built-in or inline recipe into a chain file
//   - inspect_fixture_chain: checks issuer links and signatures of a chain file
//
// It also serves read-only resources with the server version, the effective
// configuration and the recipe JSON schema. Configuration is shared with the
// command line tool; see package config.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
