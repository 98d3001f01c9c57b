// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"math/big"

	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

// Kind is the position a certificate takes in a chain.
type Kind int

const (
	// KindRoot is a self-signed CA certificate.
	KindRoot Kind = iota
	// KindIntermediate is a CA certificate issued by another CA.
	KindIntermediate
	// KindEndEntity is a leaf certificate that cannot issue further certificates.
	KindEndEntity
)

// String returns the name used in recipe files.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindIntermediate:
		return "intermediate"
	case KindEndEntity:
		return "end-entity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsCA reports whether certificates of this kind may issue certificates.
func (k Kind) IsCA() bool { return k == KindRoot || k == KindIntermediate }

// ParseKind converts a recipe kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "root":
		return KindRoot, nil
	case "intermediate":
		return KindIntermediate, nil
	case "end-entity":
		return KindEndEntity, nil
	default:
		return 0, fmt.Errorf("x509builder: unknown certificate kind %q", s)
	}
}

// Certificate is a pending certificate: a subject, an issuer, a key pair and
// a signature hash. It becomes a concrete [x509.Certificate] once finalized,
// after which it is immutable.
//
// Certificates belong to the [Builder] that created them and are not safe for
// concurrent use.
type Certificate struct {
	name   string
	kind   Kind
	issuer *Certificate // nil for roots
	key    *rsa.PrivateKey
	serial *big.Int
	hash   x509sigalg.Algorithm

	cert *x509.Certificate // set by Builder.Finalize
}

// Name returns the subject common name.
func (c *Certificate) Name() string { return c.name }

// Kind returns the certificate's position in a chain.
func (c *Certificate) Kind() Kind { return c.kind }

// Issuer returns the issuing certificate. Roots return themselves.
func (c *Certificate) Issuer() *Certificate {
	if c.issuer == nil {
		return c
	}
	return c.issuer
}

// IsSelfIssued reports whether the certificate is its own issuer.
func (c *Certificate) IsSelfIssued() bool { return c.issuer == nil }

// IsCA reports whether the certificate may issue other certificates.
func (c *Certificate) IsCA() bool { return c.kind.IsCA() }

// SignatureHash returns the hash the certificate is (or will be) signed with.
func (c *Certificate) SignatureHash() x509sigalg.Algorithm { return c.hash }

// PrivateKey returns the certificate's private key.
func (c *Certificate) PrivateKey() *rsa.PrivateKey { return c.key }

// Finalized reports whether the certificate has been signed.
func (c *Certificate) Finalized() bool { return c.cert != nil }

// X509 returns the signed certificate, or nil before finalization.
func (c *Certificate) X509() *x509.Certificate { return c.cert }
