// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"errors"

	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

var (
	// ErrGeneration indicates that key generation or certificate construction failed.
	ErrGeneration = errors.New("x509builder: certificate generation failed")

	// ErrInvalidIssuer indicates an attempt to issue a certificate under a non-CA certificate.
	ErrInvalidIssuer = errors.New("x509builder: issuer is not a CA certificate")

	// ErrUnsupportedHash indicates an unknown signature-hash name.
	ErrUnsupportedHash = x509sigalg.ErrUnsupportedHash

	// ErrFinalized indicates a change to a certificate that has already been signed.
	ErrFinalized = errors.New("x509builder: certificate is already signed")

	// ErrNilCertificate indicates a nil certificate where one is required.
	ErrNilCertificate = errors.New("x509builder: nil certificate")

	// ErrEmptyChain indicates that no certificates were given for serialization.
	ErrEmptyChain = errors.New("x509builder: chain is empty")

	// ErrIO indicates that the output artifact could not be written.
	ErrIO = errors.New("x509builder: failed to write output")
)
