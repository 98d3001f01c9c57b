// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509sigalg "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/sigalg"
)

// EnvConfigFile names the environment variable consulted when no
// configuration path is given.
const EnvConfigFile = "X509_FIXTURES_CONFIG_FILE"

// DefaultOutputDir is where fixtures are written unless configured otherwise.
const DefaultOutputDir = "fixtures"

// minKeyBits is the smallest RSA key the standard library will generate.
const minKeyBits = 1024

// format represents supported configuration file formats.
type format int

const (
	// formatJSON represents JSON configuration format (.json)
	formatJSON format = iota
	// formatYAML represents YAML configuration format (.yaml, .yml)
	formatYAML
)

// Config is the on-disk configuration shared by the CLI and the MCP server.
//
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Builder holds the defaults applied to every generated certificate.
	Builder struct {
		// KeyBits: RSA modulus size (minimum 1024)
		KeyBits int `json:"keyBits" yaml:"keyBits"`
		// SignatureHash: Default signature hash, e.g. "sha256"
		SignatureHash string `json:"signatureHash" yaml:"signatureHash"`
		// NotBefore and NotAfter: RFC 3339 validity bounds
		NotBefore string `json:"notBefore" yaml:"notBefore"`
		NotAfter  string `json:"notAfter" yaml:"notAfter"`
		// AIABaseURL and CRLBaseURL: Prefixes for per-issuer URLs; "-" disables the extension
		AIABaseURL string `json:"aiaBaseURL" yaml:"aiaBaseURL"`
		CRLBaseURL string `json:"crlBaseURL" yaml:"crlBaseURL"`
		// CreatedBy: Generator name in the fixture header (defaults to the executable name)
		CreatedBy string `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	} `json:"builder" yaml:"builder"`

	// Output: Where generated fixtures go
	Output struct {
		// Dir: Base directory; each recipe writes into Dir/<recipe name>/
		Dir string `json:"dir" yaml:"dir"`
	} `json:"output" yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.Builder.KeyBits = x509builder.DefaultKeyBits
	c.Builder.SignatureHash = x509sigalg.Default.Name
	c.Builder.NotBefore = x509builder.DefaultNotBefore.Format(time.RFC3339)
	c.Builder.NotAfter = x509builder.DefaultNotAfter.Format(time.RFC3339)
	c.Builder.AIABaseURL = x509builder.DefaultAIABaseURL
	c.Builder.CRLBaseURL = x509builder.DefaultCRLBaseURL
	c.Output.Dir = DefaultOutputDir
	return c
}

// detectFormat picks the parser from the file extension, case-insensitively.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func unmarshal(data []byte, c *Config, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration file at path, or the file named by
// [EnvConfigFile] when path is empty, on top of [Default].
//
// Configuration Priority:
//  1. Default values are set
//  2. EnvConfigFile is checked if path is empty
//  3. File values override defaults
//  4. Invalid numeric or empty values are reset to their defaults
//
// Returns:
//   - *Config: Loaded configuration
//   - error: Read or parse failure
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := unmarshal(data, c, detectFormat(path)); err != nil {
		return nil, err
	}

	def := Default()
	if c.Builder.KeyBits < minKeyBits {
		c.Builder.KeyBits = def.Builder.KeyBits
	}
	if c.Builder.SignatureHash == "" {
		c.Builder.SignatureHash = def.Builder.SignatureHash
	}
	if c.Builder.NotBefore == "" {
		c.Builder.NotBefore = def.Builder.NotBefore
	}
	if c.Builder.NotAfter == "" {
		c.Builder.NotAfter = def.Builder.NotAfter
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}

	return c, nil
}

// BuilderConfig converts the builder section into an [x509builder.Config].
//
// Returns:
//   - x509builder.Config: Builder configuration
//   - error: Unknown hash name, malformed time, or an empty validity window
func (c *Config) BuilderConfig() (x509builder.Config, error) {
	cfg := x509builder.DefaultConfig()
	cfg.KeyBits = c.Builder.KeyBits
	cfg.CreatedBy = c.Builder.CreatedBy
	cfg.AIABaseURL = urlPrefix(c.Builder.AIABaseURL)
	cfg.CRLBaseURL = urlPrefix(c.Builder.CRLBaseURL)

	alg, err := x509sigalg.Parse(c.Builder.SignatureHash)
	if err != nil {
		return cfg, fmt.Errorf("config: builder.signatureHash: %w", err)
	}
	cfg.SignatureHash = alg

	if cfg.NotBefore, err = time.Parse(time.RFC3339, c.Builder.NotBefore); err != nil {
		return cfg, fmt.Errorf("config: builder.notBefore: %w", err)
	}
	if cfg.NotAfter, err = time.Parse(time.RFC3339, c.Builder.NotAfter); err != nil {
		return cfg, fmt.Errorf("config: builder.notAfter: %w", err)
	}
	if !cfg.NotAfter.After(cfg.NotBefore) {
		return cfg, fmt.Errorf("config: builder.notAfter %s is not after notBefore %s", c.Builder.NotAfter, c.Builder.NotBefore)
	}

	return cfg, nil
}

// urlPrefix maps "-" to an empty prefix, which omits the extension.
func urlPrefix(s string) string {
	if s == "-" {
		return ""
	}
	return strings.TrimRight(s, "/")
}
