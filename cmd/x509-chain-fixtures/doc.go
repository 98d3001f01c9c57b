// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-chain-fixtures is a command-line tool that generates X.509
// certificate chain fixtures for testing chain verification, including
// chains whose intermediate or leaf is signed with MD5 or SHA-1.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-chain-fixtures/cmd/x509-chain-fixtures@latest
//
// # Usage
//
//	x509-chain-fixtures [--config FILE] COMMAND [FLAGS]
//
// # Commands
//
//	generate [RECIPE...]  Build built-in recipes or recipe files (-f) into -d/<recipe>/<output>
//	list                  List built-in recipes
//	inspect FILE          Check issuer links and signatures (--tree, --table, --json, --at)
//
// # Examples
//
// Generate the Root → Intermediate (MD5) → Target fixture:
//
//	x509-chain-fixtures generate intermediate-signed-with-md5 -d testdata
//
// Generate every built-in recipe with PKCS #12 bundles:
//
//	x509-chain-fixtures generate --all --pkcs12-password changeit
//
// Inspect the result:
//
//	x509-chain-fixtures inspect --table testdata/intermediate-signed-with-md5/chain.pem
//
// Verify with OpenSSL (MD5 must be explicitly allowed at a low security level):
//
//	openssl verify -auth_level 0 -attime 1420113600 \
//	  -CAfile root.pem -untrusted chain.pem chain.pem
package main
