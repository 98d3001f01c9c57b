// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509sigalg

import (
	"crypto"
	_ "crypto/md5" // registers crypto.MD5
	"crypto/rsa"
	_ "crypto/sha1" // registers crypto.SHA1
	_ "crypto/sha256"
	_ "crypto/sha512"
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

var (
	// ErrUnsupportedHash indicates a signature-hash name that is not in the registry.
	ErrUnsupportedHash = errors.New("x509sigalg: unsupported signature hash algorithm")

	// ErrUnsupportedKey indicates an issuer key type that cannot verify a legacy signature.
	ErrUnsupportedKey = errors.New("x509sigalg: legacy signatures require an RSA issuer key")

	// ErrBadSignature indicates that a legacy signature did not verify.
	ErrBadSignature = errors.New("x509sigalg: signature verification failed")
)

// Algorithm describes one supported RSA signature hash.
type Algorithm struct {
	// Name is the canonical lower-case name, e.g. "sha256" or "md5".
	Name string
	// Hash is the digest used over the TBSCertificate.
	Hash crypto.Hash
	// SignatureAlgorithm is the matching [x509.SignatureAlgorithm] for RSA keys.
	SignatureAlgorithm x509.SignatureAlgorithm
	// OID identifies the algorithm in AlgorithmIdentifier structures.
	OID asn1.ObjectIdentifier
	// Legacy marks digests that the standard library will not sign with.
	Legacy bool
}

// String returns the canonical name.
func (a Algorithm) String() string { return a.Name }

var (
	// SHA256 is the default signature hash.
	SHA256 = Algorithm{
		Name:               "sha256",
		Hash:               crypto.SHA256,
		SignatureAlgorithm: x509.SHA256WithRSA,
		OID:                asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11},
	}
	// SHA384 signs with sha384WithRSAEncryption.
	SHA384 = Algorithm{
		Name:               "sha384",
		Hash:               crypto.SHA384,
		SignatureAlgorithm: x509.SHA384WithRSA,
		OID:                asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12},
	}
	// SHA512 signs with sha512WithRSAEncryption.
	SHA512 = Algorithm{
		Name:               "sha512",
		Hash:               crypto.SHA512,
		SignatureAlgorithm: x509.SHA512WithRSA,
		OID:                asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13},
	}
	// SHA1 signs with sha1WithRSAEncryption.
	SHA1 = Algorithm{
		Name:               "sha1",
		Hash:               crypto.SHA1,
		SignatureAlgorithm: x509.SHA1WithRSA,
		OID:                asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5},
		Legacy:             true,
	}
	// MD5 signs with md5WithRSAEncryption. Broken; fixtures only.
	MD5 = Algorithm{
		Name:               "md5",
		Hash:               crypto.MD5,
		SignatureAlgorithm: x509.MD5WithRSA,
		OID:                asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 4},
		Legacy:             true,
	}
)

// Default is the signature hash used when none is configured.
var Default = SHA256

var registry = map[string]Algorithm{
	SHA256.Name: SHA256,
	SHA384.Name: SHA384,
	SHA512.Name: SHA512,
	SHA1.Name:   SHA1,
	MD5.Name:    MD5,
}

// aliases accepts the spellings OpenSSL and the x509 package print.
var aliases = map[string]string{
	"sha-256": "sha256",
	"sha-384": "sha384",
	"sha-512": "sha512",
	"sha-1":   "sha1",
}

// Parse looks up a signature hash by name. Matching is case-insensitive.
func Parse(name string) (Algorithm, error) {
	key := cases.Fold().String(name)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	alg, ok := registry[key]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
	}
	return alg, nil
}

// Names returns the supported names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromSignatureAlgorithm returns the registry entry for an RSA signature algorithm.
func FromSignatureAlgorithm(sa x509.SignatureAlgorithm) (Algorithm, bool) {
	for _, alg := range registry {
		if alg.SignatureAlgorithm == sa {
			return alg, true
		}
	}
	return Algorithm{}, false
}

// CheckSignature verifies that child was signed by parent's key.
//
// Legacy RSA algorithms are verified directly with PKCS #1 v1.5 because
// [x509.Certificate.CheckSignatureFrom] rejects them as insecure. Everything
// else is delegated to the standard library, which also enforces that parent
// is a CA.
func CheckSignature(child, parent *x509.Certificate) error {
	alg, ok := FromSignatureAlgorithm(child.SignatureAlgorithm)
	if !ok || !alg.Legacy {
		return child.CheckSignatureFrom(parent)
	}

	if parent.Version == 3 && (!parent.BasicConstraintsValid || !parent.IsCA) {
		return x509.ConstraintViolationError{}
	}

	pub, ok := parent.PublicKey.(*rsa.PublicKey)
	if !ok {
		return ErrUnsupportedKey
	}

	h := alg.Hash.New()
	h.Write(child.RawTBSCertificate)
	if err := rsa.VerifyPKCS1v15(pub, alg.Hash, h.Sum(nil), child.Signature); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}
