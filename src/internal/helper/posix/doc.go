// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - ExecutableName: Returns the running program's name without extension,
//     used for CLI usage strings and the "[Created by: ...]" line stamped
//     into generated fixture files.
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/x509-chain-fixtures" → "x509-chain-fixtures"
//   - Windows: "C:\bin\x509-chain-fixtures.exe" → "x509-chain-fixtures"
//   - Fallback: Empty args → the caller supplied fallback
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
