// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509builder constructs linear [X.509] certificate chains for test fixtures.
//
// A chain is declared top-down (root, then intermediates, then the end-entity
// certificate) and each [Certificate] stays an unsigned descriptor until it is
// finalized. Finalization happens on serialization, when a descendant is
// signed, or through an explicit [Builder.Finalize] call. Until then the
// signature hash can be overridden, including with legacy digests such as MD5
// that the standard library refuses to sign with; those are produced by
// re-signing the TBSCertificate directly.
//
// Example, the MD5 intermediate fixture:
//
//	b := x509builder.New(x509builder.DefaultConfig())
//
//	root, _ := b.CreateSelfSignedRoot("Root")
//	intermediate, _ := b.CreateIntermediate("Intermediate", root)
//	_ = b.SetSignatureHash(intermediate, "md5")
//	target, _ := b.CreateEndEntity("Target", intermediate)
//
//	err := b.WriteChain(description, []*x509builder.Certificate{target, intermediate, root}, "chain.pem")
//
// [X.509]: https://grokipedia.com/page/X.509
package x509builder
