// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"time"

	x509certs "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/certs"
	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

var (
	// ErrEmptyChain indicates a chain without certificates.
	ErrEmptyChain = errors.New("x509chain: chain is empty")

	// ErrBrokenLink indicates a certificate that is not issued by the next one in the chain.
	ErrBrokenLink = errors.New("x509chain: broken issuer link")
)

// LinkStatus is the result of checking one certificate against its issuer,
// which is the next certificate in the chain or, for the last entry, itself.
type LinkStatus struct {
	// Index is the certificate's position, 0 being the leaf.
	Index int
	// Subject and Issuer are the certificate's subject and issuer names.
	Subject string
	Issuer  string
	// SignatureAlgorithm is the algorithm the certificate is signed with.
	SignatureAlgorithm x509.SignatureAlgorithm
	// Legacy is set for MD5 and SHA-1 signatures.
	Legacy bool
	// NameMatch reports whether the issuer name equals the issuer's subject.
	NameMatch bool
	// SignatureErr is nil when the issuer's key verifies the signature.
	SignatureErr error
}

// OK reports whether the link holds.
func (l LinkStatus) OK() bool { return l.NameMatch && l.SignatureErr == nil }

// String returns a short status label used by the renderers.
func (l LinkStatus) String() string {
	switch {
	case !l.NameMatch:
		return "issuer mismatch"
	case l.SignatureErr != nil:
		return "bad signature"
	case l.Legacy:
		return "valid (legacy)"
	default:
		return "valid"
	}
}

// Chain is an ordered, leaf-first list of [X.509] certificates loaded from a
// fixture file.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu    sync.RWMutex
	Certs []*x509.Certificate
	*x509certs.Certificate
}

// New creates a Chain over certs, which must be ordered leaf first.
func New(certs []*x509.Certificate) *Chain {
	return &Chain{
		Certs:       append([]*x509.Certificate(nil), certs...),
		Certificate: x509certs.New(),
	}
}

// Load decodes a fixture file (commented PEM, DER, or PKCS #7) into a Chain.
//
// Parameters:
//   - data: File contents
//
// Returns:
//   - *Chain: Chain in file order
//   - error: Decoding error, or ErrEmptyChain if data holds no certificate
func Load(data []byte) (*Chain, error) {
	codec := x509certs.New()
	certs, err := codec.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	if len(certs) == 0 {
		return nil, ErrEmptyChain
	}
	return &Chain{Certs: certs, Certificate: codec}, nil
}

// Len returns the number of certificates.
func (ch *Chain) Len() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.Certs)
}

// IsSelfSigned checks if a certificate is signed by its own key. Legacy
// signature algorithms are accepted.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawIssuer, cert.RawSubject) && x509sigalg.CheckSignature(cert, cert) == nil
}

// IsRootNode determines if a certificate is a root node in the chain.
func (ch *Chain) IsRootNode(cert *x509.Certificate) bool {
	return ch.IsSelfSigned(cert)
}

// FilterIntermediates returns every certificate except the leaf and the root.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FilterIntermediates() []*x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.intermediatesLocked()
}

func (ch *Chain) intermediatesLocked() []*x509.Certificate {
	if len(ch.Certs) <= 2 {
		return nil
	}
	return ch.Certs[1 : len(ch.Certs)-1]
}

// EncodeBundle returns the certificates without fixture comments, as
// concatenated PEM blocks or, when der is set, concatenated DER.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) EncodeBundle(der bool) []byte {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if der {
		return ch.EncodeMultipleDER(ch.Certs)
	}
	return ch.EncodeMultiplePEM(ch.Certs)
}

// VerifyLinks checks every certificate against the next one: the issuer name
// must match the next certificate's subject and the next certificate's key
// must verify the signature. The last certificate is checked against itself.
//
// Signatures use [x509sigalg.CheckSignature], so MD5 and SHA-1 links verify
// when the bytes are right, even though the standard library rejects them.
//
// Returns:
//   - []LinkStatus: One entry per certificate, leaf first
//   - error: ErrBrokenLink joined for every failing link, ErrEmptyChain for an empty chain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyLinks() ([]LinkStatus, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return nil, ErrEmptyChain
	}

	links := ch.linksLocked()

	var errs []error
	for _, link := range links {
		if link.OK() {
			continue
		}
		if link.SignatureErr != nil {
			errs = append(errs, fmt.Errorf("%w: certificate %d (%s): %w", ErrBrokenLink, link.Index, link.Subject, link.SignatureErr))
			continue
		}
		errs = append(errs, fmt.Errorf("%w: certificate %d (%s) names issuer %q", ErrBrokenLink, link.Index, link.Subject, link.Issuer))
	}

	return links, errors.Join(errs...)
}

func (ch *Chain) linksLocked() []LinkStatus {
	links := make([]LinkStatus, len(ch.Certs))
	for i, cert := range ch.Certs {
		issuer := cert
		if i < len(ch.Certs)-1 {
			issuer = ch.Certs[i+1]
		}

		alg, _ := x509sigalg.FromSignatureAlgorithm(cert.SignatureAlgorithm)
		links[i] = LinkStatus{
			Index:              i,
			Subject:            cert.Subject.String(),
			Issuer:             cert.Issuer.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm,
			Legacy:             alg.Legacy,
			NameMatch:          bytes.Equal(cert.RawIssuer, issuer.RawSubject),
			SignatureErr:       x509sigalg.CheckSignature(cert, issuer),
		}
	}
	return links
}

// VerifyChain runs standard library path validation of the leaf with the
// last certificate as the only root and [Chain.FilterIntermediates] as
// intermediates.
//
// Fixtures with legacy signatures are expected to fail here; the error is
// returned as is so callers can report it.
//
// Parameters:
//   - at: Verification time; the zero time means now
//
// Returns:
//   - error: Error from [x509.Certificate.Verify], or ErrEmptyChain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyChain(at time.Time) error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	roots := x509.NewCertPool()
	roots.AddCert(ch.Certs[len(ch.Certs)-1])
	intermediates := x509.NewCertPool()
	for _, cert := range ch.intermediatesLocked() {
		intermediates.AddCert(cert)
	}

	opts := x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		CurrentTime:   at,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}

	// Keep the original error for its diagnostics (expiry, unknown authority, ...).
	_, err := ch.Certs[0].Verify(opts)
	return err
}
