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

	x509certs "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/certs"
	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
)

// Builder creates and signs certificates according to a [Config].
//
// A Builder is meant for one straight-line fixture recipe and is not safe
// for concurrent use.
type Builder struct {
	cfg   Config
	log   logger.Logger
	codec *x509certs.Certificate
}

// Option customizes a Builder.
type Option func(*Builder)

// WithLogger routes progress messages to log. By default they are discarded.
func WithLogger(log logger.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a Builder. Zero fields of cfg take their [DefaultConfig] values.
func New(cfg Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:   cfg.withDefaults(),
		log:   logger.NewJSONLogger(nil, true),
		codec: x509certs.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the effective configuration.
func (b *Builder) Config() Config { return b.cfg }

// CreateSelfSignedRoot creates a CA certificate whose issuer and subject are both CN=name.
//
// Parameters:
//   - name: Subject common name
//
// Returns:
//   - *Certificate: Pending root certificate
//   - error: ErrGeneration if key generation fails
func (b *Builder) CreateSelfSignedRoot(name string) (*Certificate, error) {
	return b.create(name, KindRoot, nil)
}

// CreateIntermediate creates a CA certificate issued by issuer.
//
// The new certificate is signed with issuer's key but with its own signature
// hash, which starts as the configured default.
//
// Parameters:
//   - name: Subject common name
//   - issuer: Root or intermediate certificate
//
// Returns:
//   - *Certificate: Pending intermediate certificate
//   - error: ErrInvalidIssuer if issuer is nil or not a CA, ErrGeneration on key failure
func (b *Builder) CreateIntermediate(name string, issuer *Certificate) (*Certificate, error) {
	return b.create(name, KindIntermediate, issuer)
}

// CreateEndEntity creates a leaf certificate issued by issuer. It carries
// CA:FALSE and cannot be used as an issuer.
//
// Parameters:
//   - name: Subject common name
//   - issuer: Root or intermediate certificate
//
// Returns:
//   - *Certificate: Pending end-entity certificate
//   - error: ErrInvalidIssuer if issuer is nil or not a CA, ErrGeneration on key failure
func (b *Builder) CreateEndEntity(name string, issuer *Certificate) (*Certificate, error) {
	return b.create(name, KindEndEntity, issuer)
}

func (b *Builder) create(name string, kind Kind, issuer *Certificate) (*Certificate, error) {
	if kind != KindRoot {
		if issuer == nil {
			return nil, fmt.Errorf("%w: %q has no issuer", ErrInvalidIssuer, name)
		}
		if !issuer.IsCA() {
			return nil, fmt.Errorf("%w: %q cannot issue %q", ErrInvalidIssuer, issuer.name, name)
		}
	}

	key, err := rsa.GenerateKey(b.cfg.Rand, b.cfg.KeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: key for %q: %w", ErrGeneration, name, err)
	}

	serial, err := b.newSerial()
	if err != nil {
		return nil, fmt.Errorf("%w: serial for %q: %w", ErrGeneration, name, err)
	}

	return &Certificate{
		name:   name,
		kind:   kind,
		issuer: issuer,
		key:    key,
		serial: serial,
		hash:   b.cfg.SignatureHash,
	}, nil
}

// newSerial returns a positive random 128-bit serial number.
func (b *Builder) newSerial() (*big.Int, error) {
	raw := make([]byte, 16)
	if _, err := b.cfg.Rand.Read(raw); err != nil {
		return nil, err
	}
	raw[0] &= 0x7f
	raw[0] |= 0x01
	return new(big.Int).SetBytes(raw), nil
}

// SetSignatureHash overrides the hash cert will be signed with.
//
// Overrides are accepted until the certificate is signed. Signing happens on
// serialization or when a certificate it issued is signed, so the override
// must come before either of those.
//
// Parameters:
//   - cert: Pending certificate
//   - algorithm: Hash name, e.g. "sha256" or "md5"
//
// Returns:
//   - error: ErrUnsupportedHash for unknown names, ErrFinalized once signed
func (b *Builder) SetSignatureHash(cert *Certificate, algorithm string) error {
	if cert == nil {
		return ErrNilCertificate
	}
	alg, err := x509sigalg.Parse(algorithm)
	if err != nil {
		return err
	}
	if cert.Finalized() {
		return fmt.Errorf("%w: cannot change %q to %s", ErrFinalized, cert.name, alg)
	}

	cert.hash = alg
	return nil
}

// Finalize signs cert, signing its issuers first if needed, and returns the
// parsed result. Finalizing an already signed certificate returns the
// existing result.
//
// Returns:
//   - *x509.Certificate: Signed certificate
//   - error: ErrGeneration if signing or re-parsing fails
func (b *Builder) Finalize(cert *Certificate) (*x509.Certificate, error) {
	if cert == nil {
		return nil, ErrNilCertificate
	}
	if cert.cert != nil {
		return cert.cert, nil
	}

	tmpl := b.template(cert)
	parent := tmpl
	signer := cert.key
	if cert.issuer != nil {
		issued, err := b.Finalize(cert.issuer)
		if err != nil {
			return nil, err
		}
		parent = issued
		signer = cert.issuer.key
	}

	der, err := b.sign(tmpl, parent, &cert.key.PublicKey, signer, cert.hash)
	if err != nil {
		return nil, fmt.Errorf("%w: signing %q: %w", ErrGeneration, cert.name, err)
	}

	parsed, err := b.codec.Decode(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrGeneration, cert.name, err)
	}

	cert.cert = parsed
	b.log.Printf("Signed %s certificate %q (issuer %q, %s)", cert.kind, cert.name, cert.Issuer().name, cert.hash)

	return parsed, nil
}
