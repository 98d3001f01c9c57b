// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509builder

import (
	"crypto/x509"
	"fmt"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/fsutil"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/posix"
)

// EncodeChain finalizes every certificate in chain and renders the fixture
// file contents.
//
// The output starts with description as a "#" comment block, preceded by a
// "[Created by: ...]" line. Each certificate follows as a commented summary
// and a CERTIFICATE PEM block, in the order given.
//
// Parameters:
//   - description: Free text, may span several lines
//   - chain: Certificates, leaf first
//
// Returns:
//   - []byte: File contents
//   - error: ErrEmptyChain, ErrNilCertificate, or a Finalize error
func (b *Builder) EncodeChain(description string, chain []*Certificate) ([]byte, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	signed := make([]*x509.Certificate, len(chain))
	for i, cert := range chain {
		if cert == nil {
			return nil, fmt.Errorf("%w: chain entry %d", ErrNilCertificate, i)
		}
		parsed, err := b.Finalize(cert)
		if err != nil {
			return nil, err
		}
		signed[i] = parsed
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	createdBy := b.cfg.CreatedBy
	if createdBy == "" {
		createdBy = posix.ExecutableName("")
	}
	writeComment(buf, fmt.Sprintf("[Created by: %s]", createdBy))
	writeComment(buf, "")
	writeComment(buf, strings.TrimSpace(description))
	buf.WriteByte('\n')

	for i, cert := range signed {
		writeSummary(buf, i+1, cert)
		buf.Write(b.codec.EncodePEM(cert))
		buf.WriteByte('\n')
	}

	// The buffer goes back to the pool; hand out a copy.
	return append([]byte(nil), buf.Bytes()...), nil
}

// WriteChain writes the output of [Builder.EncodeChain] to filename.
//
// The file is replaced atomically. On any failure, including failures to sign
// the chain, filename is left untouched.
//
// Returns:
//   - error: ErrIO if the file cannot be written, or an [Builder.EncodeChain] error
func (b *Builder) WriteChain(description string, chain []*Certificate, filename string) error {
	data, err := b.EncodeChain(description, chain)
	if err != nil {
		return err
	}

	if err := fsutil.AtomicWrite(filename, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	b.log.Printf("Wrote %d certificates to %s", len(chain), filename)
	return nil
}

// writeComment writes text as "#"-prefixed lines. Blank lines get a bare "#".
func writeComment(buf gc.Buffer, text string) {
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			buf.WriteString("#\n")
			continue
		}
		buf.WriteString("# ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

func writeSummary(buf gc.Buffer, index int, cert *x509.Certificate) {
	constraints := "CA:FALSE"
	if cert.IsCA {
		constraints = "CA:TRUE"
	}

	fmt.Fprintf(buf, "# Certificate %d: %s\n", index, cert.Subject.CommonName)
	fmt.Fprintf(buf, "#   Subject:             %s\n", cert.Subject)
	fmt.Fprintf(buf, "#   Issuer:              %s\n", cert.Issuer)
	fmt.Fprintf(buf, "#   Serial:              %X\n", cert.SerialNumber)
	fmt.Fprintf(buf, "#   Signature Algorithm: %s\n", cert.SignatureAlgorithm)
	fmt.Fprintf(buf, "#   Validity:            %s to %s\n",
		cert.NotBefore.UTC().Format(time.RFC3339), cert.NotAfter.UTC().Format(time.RFC3339))
	fmt.Fprintf(buf, "#   Basic Constraints:   %s\n", constraints)
}
