// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package recipes describes certificate chain fixtures declaratively and
// builds them with [x509builder].
//
// A recipe lists certificates top-down (each issuer before the certificates
// it signs), optional per-certificate signature hash overrides, and the
// leaf-first order in which the chain is written. Recipes are YAML or JSON
// documents validated against an embedded JSON schema. The fixtures of the
// chain verification suite ship as built-in recipes:
//
//	intermediate-signed-with-md5
//	target-signed-with-md5
//	target-signed-with-sha1
//
// [x509builder]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder
package recipes
