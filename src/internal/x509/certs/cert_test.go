// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509certs "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/certs"
)

const (
	invalidPEM = `
-----BEGIN INVALID-----
MIIEmTCCBD+gAwIBAgIRANFjRCmF+Y2bUYHbhxwkEpowCgYIKoZIzj0EAwIwgY8x
-----END INVALID-----
`

	invalidCERT = `
-----BEGIN CERTIFICATE-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAz6e5VV5F8rF2sFJ0Q4vA
-----END CERTIFICATE-----
`
)

// testChain returns a signed [leaf, intermediate, root] chain whose
// intermediate carries an MD5 signature.
func testChain(t *testing.T) []*x509.Certificate {
	t.Helper()

	cfg := x509builder.DefaultConfig()
	cfg.KeyBits = 1024
	b := x509builder.New(cfg)

	root, err := b.CreateSelfSignedRoot("Root")
	require.NoError(t, err)
	intermediate, err := b.CreateIntermediate("Intermediate", root)
	require.NoError(t, err)
	require.NoError(t, b.SetSignatureHash(intermediate, "md5"))
	leaf, err := b.CreateEndEntity("Target", intermediate)
	require.NoError(t, err)

	_, err = b.Finalize(leaf)
	require.NoError(t, err)

	return []*x509.Certificate{leaf.X509(), intermediate.X509(), root.X509()}
}

func TestCertificateOperations(t *testing.T) {
	decoder := x509certs.New()
	chain := testChain(t)
	cert := chain[0]

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Encode And Decode PEM",
			testFunc: func(t *testing.T) {
				encoded := decoder.EncodePEM(cert)
				block, _ := pem.Decode(encoded)
				require.NotNil(t, block)
				assert.Equal(t, x509certs.BlockType, block.Type)

				decoded, err := decoder.Decode(encoded)
				require.NoError(t, err)
				assert.True(t, cert.Equal(decoded))
			},
		},
		{
			name: "Decode DER",
			testFunc: func(t *testing.T) {
				decoded, err := decoder.Decode(decoder.EncodeDER(cert))
				require.NoError(t, err)
				assert.Equal(t, "Target", decoded.Subject.CommonName)
			},
		},
		{
			name: "Decode Legacy Signature",
			testFunc: func(t *testing.T) {
				decoded, err := decoder.Decode(decoder.EncodePEM(chain[1]))
				require.NoError(t, err)
				assert.Equal(t, x509.MD5WithRSA, decoded.SignatureAlgorithm)
			},
		},
		{
			name: "Multiple PEM Keeps Order",
			testFunc: func(t *testing.T) {
				decoded, err := decoder.DecodeMultiple(decoder.EncodeMultiplePEM(chain))
				require.NoError(t, err)
				require.Len(t, decoded, len(chain))
				for i := range chain {
					assert.True(t, chain[i].Equal(decoded[i]), "block %d", i)
				}
			},
		},
		{
			name: "Multiple DER",
			testFunc: func(t *testing.T) {
				decoded, err := decoder.DecodeMultiple(decoder.EncodeMultipleDER(chain))
				require.NoError(t, err)
				require.Len(t, decoded, len(chain))
				assert.Equal(t, "Root", decoded[2].Subject.CommonName)
			},
		},
		{
			name: "Commented Bundle",
			testFunc: func(t *testing.T) {
				var data []byte
				data = append(data, "# [Created by: test]\n#\n# A fixture.\n\n"...)
				for _, c := range chain {
					data = append(data, "# "+c.Subject.CommonName+"\n"...)
					data = append(data, decoder.EncodePEM(c)...)
				}

				assert.True(t, decoder.IsPEM(data))
				decoded, err := decoder.DecodeMultiple(data)
				require.NoError(t, err)
				assert.Len(t, decoded, 3)

				first, err := decoder.Decode(data)
				require.NoError(t, err)
				assert.True(t, chain[0].Equal(first))
			},
		},
		{
			name: "Empty Lists",
			testFunc: func(t *testing.T) {
				assert.Empty(t, decoder.EncodeMultiplePEM(nil))
				assert.Empty(t, decoder.EncodeMultipleDER(nil))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestDecodeCertificate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{
			name:     "Invalid PEM Block",
			input:    []byte(invalidPEM),
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name:     "Invalid Certificate",
			input:    []byte(invalidCERT),
			expected: x509certs.ErrParseCertificate,
		},
		{
			name:     "Binary Garbage",
			input:    []byte("not a certificate"),
			expected: x509certs.ErrParsePKCS7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := x509certs.New()
			_, err := decoder.Decode(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCertificate_DecodeMultiple_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{
			name:     "Invalid PEM Type",
			input:    []byte(invalidPEM),
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name:     "Invalid Certificate Data",
			input:    []byte(invalidCERT),
			expected: x509certs.ErrParseCertificate,
		},
		{
			name:     "Empty Input",
			input:    nil,
			expected: x509certs.ErrNoCertificates,
		},
		{
			name:     "Binary Garbage",
			input:    []byte{0x30, 0x03, 0x02, 0x01, 0x01},
			expected: x509certs.ErrParsePKCS7,
		},
	}

	decoder := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.DecodeMultiple(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCertificate_IsPEM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{
			name:     "Valid PEM",
			input:    []byte(invalidCERT),
			expected: true,
		},
		{
			name:     "Plain Text",
			input:    []byte("not a pem block"),
			expected: false,
		},
		{
			name:     "Empty Input",
			input:    []byte(""),
			expected: false,
		},
		{
			name:     "PEM-like but invalid base64",
			input:    []byte("-----BEGIN CERTIFICATE-----\ninvalid-base64\n-----END CERTIFICATE-----"),
			expected: false,
		},
		{
			name:     "DER format (binary)",
			input:    []byte{0x30, 0x82, 0x01, 0x23},
			expected: false,
		},
	}

	decoder := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decoder.IsPEM(tt.input), "IsPEM() result incorrect")
		})
	}
}
