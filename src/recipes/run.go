// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package recipes

import (
	"context"
	"fmt"
	"path/filepath"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
)

// Result describes a generated fixture.
type Result struct {
	// Path is the written chain file.
	Path string
	// Certificates maps recipe IDs to the signed certificates.
	Certificates map[string]*x509builder.Certificate
	// Chain is the serialized chain, leaf first.
	Chain []*x509builder.Certificate
}

// Leaf returns the first certificate of the chain.
func (res *Result) Leaf() *x509builder.Certificate { return res.Chain[0] }

// Run builds the recipe with b and writes it to dir/<name>/<output>.
//
// Certificates are created in declaration order and each signature hash
// override is applied right after its certificate is created. The context
// is checked between steps; nothing is written if it is cancelled or any
// step fails.
//
// Parameters:
//   - ctx: Cancellation
//   - b: Builder supplying keys and defaults
//   - r: Recipe to build
//   - dir: Base output directory
//
// Returns:
//   - *Result: Output path and certificates
//   - error: ErrInvalidRecipe, a builder error, or ctx.Err()
func Run(ctx context.Context, b *x509builder.Builder, r *Recipe, dir string) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	created := make(map[string]*x509builder.Certificate, len(r.Certificates))
	for _, spec := range r.Certificates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cert, err := create(b, spec, created)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
		}
		if spec.SignatureHash != "" {
			if err := b.SetSignatureHash(cert, spec.SignatureHash); err != nil {
				return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
			}
		}
		created[spec.ID] = cert
	}

	chain := make([]*x509builder.Certificate, len(r.Chain))
	for i, id := range r.Chain {
		chain[i] = created[id]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, r.Name, r.OutputName())
	if err := b.WriteChain(r.Description, chain, path); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
	}

	return &Result{Path: path, Certificates: created, Chain: chain}, nil
}

func create(b *x509builder.Builder, spec CertificateSpec, created map[string]*x509builder.Certificate) (*x509builder.Certificate, error) {
	kind, err := x509builder.ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case x509builder.KindRoot:
		return b.CreateSelfSignedRoot(spec.Subject)
	case x509builder.KindIntermediate:
		return b.CreateIntermediate(spec.Subject, created[spec.Issuer])
	default:
		return b.CreateEndEntity(spec.Subject, created[spec.Issuer])
	}
}
