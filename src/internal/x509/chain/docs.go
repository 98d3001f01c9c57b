// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain inspects leaf-first [X.509] certificate chains read back
// from fixture files. It provides capabilities to:
//   - Check every issuer link by name and signature, including MD5 and SHA-1
//     signatures the standard library refuses to verify.
//   - Run standard library path validation at a chosen time.
//   - Render the chain as an ASCII tree, a markdown table or JSON.
//
// Everything works offline; AIA and CRL URLs stamped into fixtures are never
// dereferenced.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
