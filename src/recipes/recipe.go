// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package recipes

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

var (
	// ErrInvalidRecipe indicates a recipe that fails schema or consistency checks.
	ErrInvalidRecipe = errors.New("recipes: invalid recipe")

	// ErrUnknownRecipe indicates a built-in recipe name that does not exist.
	ErrUnknownRecipe = errors.New("recipes: unknown recipe")
)

// DefaultOutput is the file name used when a recipe does not set one.
const DefaultOutput = "chain.pem"

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// Schema returns the JSON schema recipe documents are checked against.
func Schema() []byte { return bytes.Clone(schemaJSON) }

// Format is a recipe file encoding.
type Format int

const (
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML Format = iota
	// FormatJSON is JSON (.json).
	FormatJSON
)

// FormatFromPath picks the format from the file extension. Anything other
// than .json is read as YAML, which also accepts JSON documents.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// CertificateSpec declares one certificate of a recipe.
type CertificateSpec struct {
	// ID names the certificate within the recipe.
	ID string `json:"id" yaml:"id"`
	// Subject is the subject common name.
	Subject string `json:"subject" yaml:"subject"`
	// Kind is "root", "intermediate" or "end-entity".
	Kind string `json:"kind" yaml:"kind"`
	// Issuer is the ID of a previously declared CA certificate. Empty for roots.
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	// SignatureHash overrides the builder's default hash.
	SignatureHash string `json:"signatureHash,omitempty" yaml:"signatureHash,omitempty"`
}

// Recipe is a declarative fixture: which certificates to create, in which
// order, and how to serialize them.
type Recipe struct {
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Output       string            `json:"output,omitempty" yaml:"output,omitempty"`
	Certificates []CertificateSpec `json:"certificates" yaml:"certificates"`
	// Chain lists certificate IDs in output order, leaf first.
	Chain []string `json:"chain" yaml:"chain"`
}

// OutputName returns the output file name, defaulting to [DefaultOutput].
func (r *Recipe) OutputName() string {
	if r.Output == "" {
		return DefaultOutput
	}
	return r.Output
}

// Load parses and validates a recipe document.
//
// The document is first checked against the embedded JSON schema, then for
// consistency with [Recipe.Validate].
//
// Parameters:
//   - data: Recipe document
//   - format: Encoding of data
//
// Returns:
//   - *Recipe: Parsed recipe
//   - error: Parse error or ErrInvalidRecipe
func Load(data []byte, format Format) (*Recipe, error) {
	var doc any
	var r Recipe

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
		}
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
		}
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func validateSchema(doc any) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidRecipe)
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecipe, strings.Join(msgs, "; "))
}

// Validate checks the recipe for consistency:
//   - IDs are unique and every non-root names an issuer declared before it
//   - issuers are CA certificates and roots name no issuer
//   - signature hash names are supported
//   - the chain is non-empty and names only declared IDs
//   - the output is a plain file name
//
// Hash errors also match [x509builder.ErrUnsupportedHash].
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecipe)
	}
	if !filepath.IsLocal(r.Name) || filepath.Base(r.Name) != r.Name {
		return fmt.Errorf("%w: name %q must be a single path element", ErrInvalidRecipe, r.Name)
	}
	if out := r.OutputName(); filepath.Base(out) != out || out == "." || out == ".." {
		return fmt.Errorf("%w: output %q must be a file name", ErrInvalidRecipe, out)
	}
	if len(r.Certificates) == 0 {
		return fmt.Errorf("%w: no certificates", ErrInvalidRecipe)
	}

	kinds := make(map[string]x509builder.Kind, len(r.Certificates))
	issuers := make(map[string]string, len(r.Certificates))
	for _, spec := range r.Certificates {
		if spec.ID == "" || spec.Subject == "" {
			return fmt.Errorf("%w: certificates need an id and a subject", ErrInvalidRecipe)
		}
		if _, dup := kinds[spec.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidRecipe, spec.ID)
		}

		kind, err := x509builder.ParseKind(spec.Kind)
		if err != nil {
			return fmt.Errorf("%w: certificate %q: %w", ErrInvalidRecipe, spec.ID, err)
		}

		switch {
		case kind == x509builder.KindRoot && spec.Issuer != "":
			return fmt.Errorf("%w: root %q cannot name an issuer", ErrInvalidRecipe, spec.ID)
		case kind != x509builder.KindRoot:
			issuerKind, ok := kinds[spec.Issuer]
			if !ok {
				return fmt.Errorf("%w: certificate %q: issuer %q is not declared before it", ErrInvalidRecipe, spec.ID, spec.Issuer)
			}
			if !issuerKind.IsCA() {
				return fmt.Errorf("%w: certificate %q: %w", ErrInvalidRecipe, spec.ID, x509builder.ErrInvalidIssuer)
			}
		}

		if spec.SignatureHash != "" {
			if _, err := x509sigalg.Parse(spec.SignatureHash); err != nil {
				return fmt.Errorf("%w: certificate %q: %w", ErrInvalidRecipe, spec.ID, err)
			}
		}

		kinds[spec.ID] = kind
		issuers[spec.ID] = spec.Issuer
	}

	if len(r.Chain) == 0 {
		return fmt.Errorf("%w: empty chain", ErrInvalidRecipe)
	}
	for _, id := range r.Chain {
		if _, ok := kinds[id]; !ok {
			return fmt.Errorf("%w: chain names unknown id %q", ErrInvalidRecipe, id)
		}
	}

	// Leaf first: each entry is issued by the next, ending at a root.
	for i, id := range r.Chain[:len(r.Chain)-1] {
		if next := r.Chain[i+1]; issuers[id] != next {
			return fmt.Errorf("%w: chain entry %q is not issued by %q", ErrInvalidRecipe, id, next)
		}
	}
	if last := r.Chain[len(r.Chain)-1]; kinds[last] != x509builder.KindRoot {
		return fmt.Errorf("%w: chain must end at a root, not %q", ErrInvalidRecipe, last)
	}

	return nil
}
