// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidBlockType indicates that a PEM block is not a CERTIFICATE block.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrNoCertificates indicates input that holds no certificate at all.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// BlockType is the PEM type of certificate blocks.
const BlockType = "CERTIFICATE"

// Certificate decodes and encodes [X.509] certificates in the formats a
// fixture file can come in: commented PEM bundles, DER, and PKCS #7
// certificate bags.
//
// [X.509]: https://grokipedia.com/page/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate codec.
func New() *Certificate {
	return &Certificate{
		certBlockType: BlockType,
	}
}

// IsPEM reports whether data contains at least one PEM block. Text before
// the first block, such as a fixture's comment header, is ignored.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode decodes the first certificate in data.
//
// PEM input must start with a CERTIFICATE block. Binary input is tried as a
// DER certificate first and as a PKCS #7 bag second.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, _ := pem.Decode(data)
		if block.Type != c.certBlockType {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBlockType, block.Type)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		return cert, nil
	}

	if cert, err := x509.ParseCertificate(data); err == nil {
		return cert, nil
	}

	certs, err := c.decodePKCS7(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// DecodeMultiple decodes every certificate in data, in file order.
//
// PEM bundles may interleave comments with blocks; any block that is not a
// CERTIFICATE block is an error. Binary input is tried as concatenated DER
// and then as a PKCS #7 bag.
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		var certs []*x509.Certificate
		for index := 0; ; index++ {
			var block *pem.Block
			block, data = pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != c.certBlockType {
				return nil, fmt.Errorf("%w: block %d is %q", ErrInvalidBlockType, index, block.Type)
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: block %d: %w", ErrParseCertificate, index, err)
			}
			certs = append(certs, cert)
		}
		return certs, nil
	}

	if len(data) == 0 {
		return nil, ErrNoCertificates
	}

	if certs, err := x509.ParseCertificates(data); err == nil {
		return certs, nil
	}

	return c.decodePKCS7(data)
}

func (c *Certificate) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}

// EncodePEM encodes a certificate as a single CERTIFICATE block.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	})
}

// EncodeDER returns the certificate's DER bytes as signed.
func (c *Certificate) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeMultiplePEM concatenates the PEM blocks of certs in order.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}
	return data
}

// EncodeMultipleDER concatenates the DER encodings of certs in order.
func (c *Certificate) EncodeMultipleDER(certs []*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, c.EncodeDER(cert)...)
	}
	return data
}
