// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the chain as an ASCII tree, one line per
// certificate, with a link status marker and the signature algorithm.
//
// Markers: ✓ valid link, ! valid link with a legacy signature, ✗ broken link.
//
// Returns:
//   - string: ASCII tree representation of the certificate chain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderASCIITree() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	links := ch.linksLocked()

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		switch {
		case !links[i].OK():
			statusIcon = "✗"
		case links[i].Legacy:
			statusIcon = "!"
		}

		fmt.Fprintf(&result, "%s[%s] %s (%s) %s\n",
			connector, statusIcon, cert.Subject.CommonName, ch.getCertificateRole(i), cert.SignatureAlgorithm)
	}

	return result.String()
}

// RenderTable renders the chain as a markdown table with role, names,
// signature algorithm, validity, key size and link status.
//
// Returns:
//   - string: Markdown table representation of the certificate chain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderTable() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	links := ch.linksLocked()

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Signature", "Valid", "Key Size", "Link"})

	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		_, keySize := describeKey(cert)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.SignatureAlgorithm.String(),
			cert.NotBefore.UTC().Format("2006-01-02") + " to " + cert.NotAfter.UTC().Format("2006-01-02"),
			keySize,
			links[i].String(),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts the chain to structured JSON: certificate
// details, the signed_by relationships between neighbours and the result of
// each link check.
//
// Returns:
//   - []byte: JSON representation of the certificate chain
//   - error: Error if JSON marshaling fails
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) ToVisualizationJSON() ([]byte, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	type CertificateVizData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		LegacySignature    bool      `json:"legacySignature"`
		PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
		KeySize            int       `json:"keySize"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
		LinkStatus         string    `json:"linkStatus"`
		LinkError          string    `json:"linkError,omitempty"`
	}

	type RelationshipData struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type VisualizationData struct {
		Timestamp     string               `json:"timestamp"`
		ChainLength   int                  `json:"chainLength"`
		LinksValid    bool                 `json:"linksValid"`
		Certificates  []CertificateVizData `json:"certificates"`
		Relationships []RelationshipData   `json:"relationships"`
	}

	links := ch.linksLocked()
	data := VisualizationData{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChainLength:   len(ch.Certs),
		LinksValid:    true,
		Certificates:  make([]CertificateVizData, len(ch.Certs)),
		Relationships: make([]RelationshipData, 0, max(len(ch.Certs)-1, 0)),
	}

	for i, cert := range ch.Certs {
		var keySize int
		pubKeyAlgo := "unknown"
		switch pubKey := cert.PublicKey.(type) {
		case *rsa.PublicKey:
			keySize = pubKey.Size() * 8
			pubKeyAlgo = "RSA"
		case *ecdsa.PublicKey:
			keySize = pubKey.Curve.Params().BitSize
			pubKeyAlgo = "ECDSA"
		}

		link := links[i]
		viz := CertificateVizData{
			Index:              i,
			Role:               ch.getCertificateRole(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			LegacySignature:    link.Legacy,
			PublicKeyAlgorithm: pubKeyAlgo,
			KeySize:            keySize,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			LinkStatus:         link.String(),
		}
		if link.SignatureErr != nil {
			viz.LinkError = link.SignatureErr.Error()
		}
		if !link.OK() {
			data.LinksValid = false
		}
		data.Certificates[i] = viz
	}

	// Each certificate is signed by the next one in the chain.
	for i := 0; i < len(ch.Certs)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipData{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

func describeKey(cert *x509.Certificate) (algorithm, size string) {
	switch key := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", fmt.Sprintf("%d-bit RSA", key.Size()*8)
	case *ecdsa.PublicKey:
		return "ECDSA", fmt.Sprintf("%d-bit ECDSA", key.Curve.Params().BitSize)
	default:
		return "unknown", "unknown"
	}
}

// getCertificateRole returns a label for the certificate at index based on
// its position in the chain. The last entry is only called a root when it
// is self-signed.
func (ch *Chain) getCertificateRole(index int) string {
	cert := ch.Certs[index]
	total := len(ch.Certs)
	switch {
	case total == 1 && ch.IsSelfSigned(cert):
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity Certificate"
	case index == total-1 && ch.IsRootNode(cert):
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}
