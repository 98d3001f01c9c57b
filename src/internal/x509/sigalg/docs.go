// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509sigalg maps signature-hash names to [X.509] RSA signature algorithms.
// It also verifies signatures made with legacy digests (MD5, SHA-1) that the
// standard library refuses to check, so that intentionally weak fixtures can
// still be inspected.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509sigalg
