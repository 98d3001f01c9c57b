// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"crypto/x509"
	"fmt"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/fsutil"
)

// ExportPKCS12 bundles cert's private key, cert itself and its issuers up to
// the root into a password protected PKCS #12 archive.
//
// The certificate and its issuers are finalized as a side effect.
func (b *Builder) ExportPKCS12(cert *Certificate, password string) ([]byte, error) {
	leaf, err := b.Finalize(cert)
	if err != nil {
		return nil, err
	}

	var cas []*x509.Certificate
	for issuer := cert.issuer; issuer != nil; issuer = issuer.issuer {
		cas = append(cas, issuer.cert)
	}

	data, err := pkcs12.Modern.Encode(cert.key, leaf, cas, password)
	if err != nil {
		return nil, fmt.Errorf("%w: pkcs12 for %q: %w", ErrGeneration, cert.name, err)
	}
	return data, nil
}

// WritePKCS12 writes the output of [Builder.ExportPKCS12] to filename with
// owner-only permissions.
func (b *Builder) WritePKCS12(cert *Certificate, password, filename string) error {
	data, err := b.ExportPKCS12(cert, password)
	if err != nil {
		return err
	}

	if err := fsutil.AtomicWrite(filename, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	b.log.Printf("Wrote PKCS #12 bundle for %q to %s", cert.name, filename)
	return nil
}
