// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"net/url"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

var errMalformedCertificate = errors.New("x509builder: malformed certificate DER")

// subjectKeyID derives the key identifier from the RSA public key as in
// RFC 5280 section 4.2.1.2, method 1.
func subjectKeyID(pub *rsa.PublicKey) []byte {
	sum := sha1.Sum(x509.MarshalPKCS1PublicKey(pub))
	return sum[:]
}

// template builds the unsigned certificate for cert using the extension
// profile of its kind.
//
// Profiles:
//   - root: CA:TRUE, keyCertSign|cRLSign, SKI, AKI pointing at itself
//   - intermediate: root profile plus caIssuers and CRL distribution point of the issuer
//   - end-entity: CA:FALSE, digitalSignature|keyEncipherment, serverAuth+clientAuth, caIssuers, CRL
func (b *Builder) template(cert *Certificate) *x509.Certificate {
	ski := subjectKeyID(&cert.key.PublicKey)

	tmpl := &x509.Certificate{
		SerialNumber:          cert.serial,
		Subject:               pkix.Name{CommonName: cert.name},
		NotBefore:             b.cfg.NotBefore,
		NotAfter:              b.cfg.NotAfter,
		BasicConstraintsValid: true,
		IsCA:                  cert.kind.IsCA(),
		SubjectKeyId:          ski,
	}

	switch cert.kind {
	case KindRoot:
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		tmpl.AuthorityKeyId = ski
		return tmpl
	case KindIntermediate:
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	case KindEndEntity:
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth}
	}

	issuerName := url.PathEscape(cert.Issuer().name)
	if b.cfg.AIABaseURL != "" {
		tmpl.IssuingCertificateURL = []string{b.cfg.AIABaseURL + "/" + issuerName + ".cer"}
	}
	if b.cfg.CRLBaseURL != "" {
		tmpl.CRLDistributionPoints = []string{b.cfg.CRLBaseURL + "/" + issuerName + ".crl"}
	}

	return tmpl
}

// sign produces the DER certificate for tmpl issued by parent.
//
// Algorithms the standard library signs with go straight through
// [x509.CreateCertificate]. Legacy algorithms are first built with the
// default algorithm and then re-signed by [resign].
func (b *Builder) sign(tmpl, parent *x509.Certificate, pub *rsa.PublicKey, signer *rsa.PrivateKey, alg x509sigalg.Algorithm) ([]byte, error) {
	if !alg.Legacy {
		tmpl.SignatureAlgorithm = alg.SignatureAlgorithm
		return x509.CreateCertificate(b.cfg.Rand, tmpl, parent, pub, signer)
	}

	tmpl.SignatureAlgorithm = x509sigalg.Default.SignatureAlgorithm
	der, err := x509.CreateCertificate(b.cfg.Rand, tmpl, parent, pub, signer)
	if err != nil {
		return nil, err
	}
	return resign(b.cfg.Rand, der, alg, signer)
}

// resign replaces the signature algorithm of a DER certificate and signs the
// rewritten TBSCertificate with signer using RSA PKCS #1 v1.5.
//
//	Certificate ::= SEQUENCE {
//	    tbsCertificate       TBSCertificate,
//	    signatureAlgorithm   AlgorithmIdentifier,
//	    signatureValue       BIT STRING }
//
//	TBSCertificate ::= SEQUENCE {
//	    version         [0] EXPLICIT Version DEFAULT v1,
//	    serialNumber         CertificateSerialNumber,
//	    signature            AlgorithmIdentifier,
//	    ... }
func resign(rand io.Reader, der []byte, alg x509sigalg.Algorithm, signer *rsa.PrivateKey) ([]byte, error) {
	input := cryptobyte.String(der)

	var certificate, tbs cryptobyte.String
	if !input.ReadASN1(&certificate, cryptobyte_asn1.SEQUENCE) ||
		!certificate.ReadASN1(&tbs, cryptobyte_asn1.SEQUENCE) {
		return nil, errMalformedCertificate
	}

	versionTag := cryptobyte_asn1.Tag(0).Constructed().ContextSpecific()
	var version, serial, oldAlg cryptobyte.String
	if tbs.PeekASN1Tag(versionTag) && !tbs.ReadASN1Element(&version, versionTag) {
		return nil, errMalformedCertificate
	}
	if !tbs.ReadASN1Element(&serial, cryptobyte_asn1.INTEGER) ||
		!tbs.ReadASN1(&oldAlg, cryptobyte_asn1.SEQUENCE) {
		return nil, errMalformedCertificate
	}

	algID := func(b *cryptobyte.Builder) {
		b.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(alg.OID)
			b.AddASN1NULL()
		})
	}

	var tbsBuilder cryptobyte.Builder
	tbsBuilder.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddBytes(version)
		b.AddBytes(serial)
		algID(b)
		b.AddBytes(tbs) // issuer through extensions, unchanged
	})
	newTBS, err := tbsBuilder.Bytes()
	if err != nil {
		return nil, err
	}

	h := alg.Hash.New()
	h.Write(newTBS)
	signature, err := rsa.SignPKCS1v15(rand, signer, alg.Hash, h.Sum(nil))
	if err != nil {
		return nil, err
	}

	var out cryptobyte.Builder
	out.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddBytes(newTBS)
		algID(b)
		b.AddASN1BitString(signature)
	})
	return out.Bytes()
}
