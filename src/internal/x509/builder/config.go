// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"crypto/rand"
	"io"
	"time"

	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

const (
	// DefaultKeyBits is the RSA modulus size for generated keys.
	DefaultKeyBits = 2048

	// DefaultAIABaseURL prefixes the caIssuers URL stamped into issued certificates.
	DefaultAIABaseURL = "http://url-for-aia"

	// DefaultCRLBaseURL prefixes the CRL distribution point stamped into issued certificates.
	DefaultCRLBaseURL = "http://url-for-crl"
)

var (
	// DefaultNotBefore is the start of the default validity window.
	DefaultNotBefore = time.Date(2015, time.January, 1, 12, 0, 0, 0, time.UTC)

	// DefaultNotAfter is the end of the default validity window.
	DefaultNotAfter = time.Date(2016, time.January, 1, 12, 0, 0, 0, time.UTC)
)

// Config holds the defaults applied to every certificate a [Builder] creates.
//
// Fixtures are compared across runs, so the validity window is fixed rather
// than derived from the current time. Verification tests are expected to pin
// their clock inside [NotBefore, NotAfter].
type Config struct {
	// KeyBits is the RSA key size.
	KeyBits int
	// SignatureHash is the hash used unless a certificate overrides it.
	SignatureHash x509sigalg.Algorithm
	// NotBefore and NotAfter bound the validity of every certificate.
	NotBefore time.Time
	NotAfter  time.Time
	// AIABaseURL and CRLBaseURL prefix the per-issuer URLs in non-root
	// certificates. An empty value omits the extension.
	AIABaseURL string
	CRLBaseURL string
	// CreatedBy names the generator in the output header. Empty means the
	// running executable's name.
	CreatedBy string
	// Rand is the entropy source for keys, serial numbers and signatures.
	Rand io.Reader
}

// DefaultConfig returns the configuration used by the built-in recipes.
func DefaultConfig() Config {
	return Config{
		KeyBits:       DefaultKeyBits,
		SignatureHash: x509sigalg.Default,
		NotBefore:     DefaultNotBefore,
		NotAfter:      DefaultNotAfter,
		AIABaseURL:    DefaultAIABaseURL,
		CRLBaseURL:    DefaultCRLBaseURL,
		Rand:          rand.Reader,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.KeyBits <= 0 {
		c.KeyBits = def.KeyBits
	}
	if c.SignatureHash.Name == "" {
		c.SignatureHash = def.SignatureHash
	}
	if c.NotBefore.IsZero() {
		c.NotBefore = def.NotBefore
	}
	if c.NotAfter.IsZero() {
		c.NotAfter = def.NotAfter
	}
	if c.Rand == nil {
		c.Rand = def.Rand
	}
	return c
}
