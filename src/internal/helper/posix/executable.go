// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is returned by [ExecutableName] when os.Args carries no program name.
const DefaultName = "x509-chain-fixtures"

// ExecutableName returns the executable name without extension, cross-platform compatible.
//
// Both '/' and '\' are treated as separators so that a Windows path seen on a
// Unix system (or the reverse) still yields the base name.
//
// Parameters:
//   - fallback: Name to use when os.Args[0] is missing; DefaultName if empty
//
// Returns:
//   - string: Clean executable name
func ExecutableName(fallback string) string {
	if fallback == "" {
		fallback = DefaultName
	}
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallback
	}

	name := filepath.Base(os.Args[0])
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." {
		return fallback
	}

	return name
}
