// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package recipes_test

import (
	"context"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509chain "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

func newTestBuilder() *x509builder.Builder {
	cfg := x509builder.DefaultConfig()
	cfg.KeyBits = 1024
	cfg.CreatedBy = "recipes.test"
	return x509builder.New(cfg)
}

const customYAML = `
name: two-level
output: bundle.pem
certificates:
  - {id: ca, subject: Test CA, kind: root, signatureHash: sha512}
  - {id: leaf, subject: leaf.test, kind: end-entity, issuer: ca}
chain: [leaf, ca]
`

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{
		"intermediate-signed-with-md5",
		"target-signed-with-md5",
		"target-signed-with-sha1",
	}, recipes.Names())

	all, err := recipes.List()
	require.NoError(t, err)
	require.Len(t, all, 3)

	r, err := recipes.Builtin("intermediate-signed-with-md5")
	require.NoError(t, err)
	assert.Equal(t, "chain.pem", r.OutputName())
	assert.Equal(t, []string{"target", "intermediate", "root"}, r.Chain)
	assert.Contains(t, r.Description, "MD5 in the signature algorithm")
	require.Len(t, r.Certificates, 3)
	assert.Equal(t, "md5", r.Certificates[1].SignatureHash)
	assert.Empty(t, r.Certificates[0].SignatureHash)
	assert.Empty(t, r.Certificates[2].SignatureHash)

	// Copies are independent.
	r.Chain[0] = "changed"
	again, err := recipes.Builtin("intermediate-signed-with-md5")
	require.NoError(t, err)
	assert.Equal(t, "target", again.Chain[0])

	_, err = recipes.Builtin("no-such-recipe")
	assert.ErrorIs(t, err, recipes.ErrUnknownRecipe)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  recipes.Format
		wantErr error
	}{
		{
			name:   "YAML",
			data:   customYAML,
			format: recipes.FormatYAML,
		},
		{
			name:   "JSON",
			data:   `{"name":"j","certificates":[{"id":"r","subject":"R","kind":"root"}],"chain":["r"]}`,
			format: recipes.FormatJSON,
		},
		{
			name:    "Unknown Field",
			data:    `{"name":"j","extra":1,"certificates":[{"id":"r","subject":"R","kind":"root"}],"chain":["r"]}`,
			format:  recipes.FormatJSON,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Bad Kind",
			data:    "name: x\ncertificates: [{id: r, subject: R, kind: leaf}]\nchain: [r]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Missing Chain",
			data:    "name: x\ncertificates: [{id: r, subject: R, kind: root}]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Forward Reference",
			data:    "name: x\ncertificates:\n  - {id: leaf, subject: L, kind: end-entity, issuer: r}\n  - {id: r, subject: R, kind: root}\nchain: [leaf, r]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "End-Entity Issuer",
			data:    "name: x\ncertificates:\n  - {id: r, subject: R, kind: root}\n  - {id: a, subject: A, kind: end-entity, issuer: r}\n  - {id: b, subject: B, kind: end-entity, issuer: a}\nchain: [b, a, r]\n",
			format:  recipes.FormatYAML,
			wantErr: x509builder.ErrInvalidIssuer,
		},
		{
			name:    "Unsupported Hash",
			data:    "name: x\ncertificates: [{id: r, subject: R, kind: root, signatureHash: md4}]\nchain: [r]\n",
			format:  recipes.FormatYAML,
			wantErr: x509builder.ErrUnsupportedHash,
		},
		{
			name:    "Output Path",
			data:    "name: x\noutput: ../escape.pem\ncertificates: [{id: r, subject: R, kind: root}]\nchain: [r]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Name Path",
			data:    "name: ../x\ncertificates: [{id: r, subject: R, kind: root}]\nchain: [r]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Chain Out Of Order",
			data:    "name: x\ncertificates:\n  - {id: r, subject: R, kind: root}\n  - {id: ca, subject: CA, kind: intermediate, issuer: r}\n  - {id: leaf, subject: L, kind: end-entity, issuer: ca}\nchain: [leaf, r, ca]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Chain Skips Issuer",
			data:    "name: x\ncertificates:\n  - {id: r, subject: R, kind: root}\n  - {id: ca, subject: CA, kind: intermediate, issuer: r}\n  - {id: leaf, subject: L, kind: end-entity, issuer: ca}\nchain: [leaf, r]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Chain Without Root",
			data:    "name: x\ncertificates:\n  - {id: r, subject: R, kind: root}\n  - {id: ca, subject: CA, kind: intermediate, issuer: r}\n  - {id: leaf, subject: L, kind: end-entity, issuer: ca}\nchain: [leaf, ca]\n",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
		{
			name:    "Empty",
			data:    "",
			format:  recipes.FormatYAML,
			wantErr: recipes.ErrInvalidRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := recipes.Load([]byte(tt.data), tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, r.Name)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, recipes.FormatJSON, recipes.FormatFromPath("recipe.JSON"))
	assert.Equal(t, recipes.FormatYAML, recipes.FormatFromPath("recipe.yml"))
	assert.Equal(t, recipes.FormatYAML, recipes.FormatFromPath("recipe"))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T, dir string)
	}{
		{
			name: "MD5 Intermediate Fixture",
			testFunc: func(t *testing.T, dir string) {
				r, err := recipes.Builtin("intermediate-signed-with-md5")
				require.NoError(t, err)

				res, err := recipes.Run(context.Background(), newTestBuilder(), r, dir)
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(dir, "intermediate-signed-with-md5", "chain.pem"), res.Path)
				assert.Equal(t, "Target", res.Leaf().Name())

				data, err := os.ReadFile(res.Path)
				require.NoError(t, err)
				assert.Contains(t, string(data), "# Certificate chain where the intermediate has a valid signature, however uses\n")

				chain, err := x509chain.Load(data)
				require.NoError(t, err)
				require.Equal(t, 3, chain.Len())
				assert.Equal(t, x509.SHA256WithRSA, chain.Certs[0].SignatureAlgorithm)
				assert.Equal(t, x509.MD5WithRSA, chain.Certs[1].SignatureAlgorithm)
				assert.Equal(t, x509.SHA256WithRSA, chain.Certs[2].SignatureAlgorithm)

				_, err = chain.VerifyLinks()
				assert.NoError(t, err)
			},
		},
		{
			name: "Every Builtin",
			testFunc: func(t *testing.T, dir string) {
				all, err := recipes.List()
				require.NoError(t, err)
				for _, r := range all {
					res, err := recipes.Run(context.Background(), newTestBuilder(), r, dir)
					require.NoError(t, err, r.Name)
					assert.FileExists(t, res.Path)
				}
			},
		},
		{
			name: "Custom Recipe",
			testFunc: func(t *testing.T, dir string) {
				r, err := recipes.Load([]byte(customYAML), recipes.FormatYAML)
				require.NoError(t, err)

				res, err := recipes.Run(context.Background(), newTestBuilder(), r, dir)
				require.NoError(t, err)
				assert.Equal(t, "bundle.pem", filepath.Base(res.Path))
				assert.Equal(t, x509.SHA512WithRSA, res.Certificates["ca"].X509().SignatureAlgorithm)
			},
		},
		{
			name: "Unsupported Hash Writes Nothing",
			testFunc: func(t *testing.T, dir string) {
				r, err := recipes.Builtin("intermediate-signed-with-md5")
				require.NoError(t, err)
				r.Certificates[1].SignatureHash = "md2"

				_, err = recipes.Run(context.Background(), newTestBuilder(), r, dir)
				require.ErrorIs(t, err, x509builder.ErrUnsupportedHash)

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				assert.Empty(t, entries)
			},
		},
		{
			name: "Name Escaping Dir",
			testFunc: func(t *testing.T, dir string) {
				out := filepath.Join(dir, "out")
				for _, name := range []string{"../escaped", "nested/name", "/abs", ".."} {
					r := &recipes.Recipe{
						Name:         name,
						Certificates: []recipes.CertificateSpec{{ID: "r", Subject: "R", Kind: "root"}},
						Chain:        []string{"r"},
					}
					assert.ErrorIs(t, r.Validate(), recipes.ErrInvalidRecipe, name)

					_, err := recipes.Run(context.Background(), newTestBuilder(), r, out)
					assert.ErrorIs(t, err, recipes.ErrInvalidRecipe, name)
				}

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				assert.Empty(t, entries)
			},
		},
		{
			name: "Chain Order Checked Before Building",
			testFunc: func(t *testing.T, dir string) {
				r, err := recipes.Builtin("intermediate-signed-with-md5")
				require.NoError(t, err)
				r.Chain = []string{"intermediate", "target", "root"}

				_, err = recipes.Run(context.Background(), newTestBuilder(), r, dir)
				require.ErrorIs(t, err, recipes.ErrInvalidRecipe)
				assert.NoDirExists(t, filepath.Join(dir, r.Name))
			},
		},
		{
			name: "Cancelled Context",
			testFunc: func(t *testing.T, dir string) {
				r, err := recipes.Builtin("target-signed-with-sha1")
				require.NoError(t, err)

				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				_, err = recipes.Run(ctx, newTestBuilder(), r, dir)
				require.ErrorIs(t, err, context.Canceled)
				assert.NoDirExists(t, filepath.Join(dir, r.Name))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, t.TempDir())
		})
	}
}
