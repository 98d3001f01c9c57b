// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/config"
	x509certs "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

const testVersion = "1.3.3.7-testing"

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Builder.KeyBits = 1024
	cfg.Builder.CreatedBy = "mcpserver.test"
	cfg.Output.Dir = dir
	return cfg
}

type testServer struct {
	srv *mcptest.Server
	dir string
	log *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{dir: t.TempDir(), log: &bytes.Buffer{}}
	b := NewServerBuilder().
		WithConfig(testConfig(ts.dir)).
		WithVersion(testVersion).
		WithLogger(logger.NewJSONLogger(ts.log, false)).
		WithDefaultTools()

	ts.srv = mcptest.NewUnstartedServer(t)
	ts.srv.AddTools(b.ServerTools()...)
	ts.srv.AddResources(b.deps.Resources...)
	require.NoError(t, ts.srv.Start(context.Background()))
	t.Cleanup(ts.srv.Close)
	return ts
}

// call invokes a tool and returns its text and error flag.
func (ts *testServer) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := ts.srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func TestListRecipesTool(t *testing.T) {
	ts := newTestServer(t)

	text, isError := ts.call(t, "list_fixture_recipes", nil)
	require.False(t, isError, text)
	for _, name := range recipes.Names() {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "MD5 in the signature algorithm")
}

func TestGenerateChainTool(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		args     map[string]any
		wantErr  string
		testFunc func(t *testing.T, text string)
	}{
		{
			name: "Builtin Recipe",
			args: map[string]any{"recipe": "intermediate-signed-with-md5"},
			testFunc: func(t *testing.T, text string) {
				path := filepath.Join(ts.dir, "intermediate-signed-with-md5", "chain.pem")
				assert.Contains(t, text, "MD5-RSA")
				assert.Contains(t, text, `"kind": "intermediate"`)

				data, err := os.ReadFile(path)
				require.NoError(t, err)
				certs, err := x509certs.New().DecodeMultiple(data)
				require.NoError(t, err)
				require.Len(t, certs, 3)
				assert.Equal(t, "Target", certs[0].Subject.CommonName)

				assert.Contains(t, ts.log.String(), `"component":"generate_fixture_chain"`)
				assert.Contains(t, ts.log.String(), "Generated intermediate-signed-with-md5")
			},
		},
		{
			name: "PKCS12 And Custom Dir",
			args: map[string]any{
				"recipe":          "target-signed-with-sha1",
				"dir":             filepath.Join(ts.dir, "custom"),
				"pkcs12_password": "changeit",
			},
			testFunc: func(t *testing.T, text string) {
				assert.Contains(t, text, "pkcs12Path")
				assert.FileExists(t, filepath.Join(ts.dir, "custom", "target-signed-with-sha1", "chain.p12"))
				assert.Contains(t, text, "SHA1-RSA")
			},
		},
		{
			name: "Inline Document",
			args: map[string]any{
				"recipe_document": `{"name":"inline","output":"inline.pem","certificates":[{"id":"r","subject":"Inline Root","kind":"root","signatureHash":"sha384"}],"chain":["r"]}`,
			},
			testFunc: func(t *testing.T, text string) {
				assert.Contains(t, text, "SHA384-RSA")
				assert.FileExists(t, filepath.Join(ts.dir, "inline", "inline.pem"))
			},
		},
		{
			name:    "Neither",
			args:    map[string]any{},
			wantErr: "exactly one of recipe or recipe_document",
		},
		{
			name: "Both",
			args: map[string]any{
				"recipe":          "target-signed-with-md5",
				"recipe_document": "name: x",
			},
			wantErr: "exactly one of recipe or recipe_document",
		},
		{
			name:    "Unknown Recipe",
			args:    map[string]any{"recipe": "nope"},
			wantErr: "unknown recipe",
		},
		{
			name:    "Invalid Document",
			args:    map[string]any{"recipe_document": "name: x\ncertificates: []\nchain: []\n"},
			wantErr: "invalid recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := ts.call(t, "generate_fixture_chain", tt.args)
			if tt.wantErr != "" {
				assert.True(t, isError)
				assert.Contains(t, text, tt.wantErr)
				return
			}
			require.False(t, isError, text)
			tt.testFunc(t, text)
		})
	}
}

func TestInspectChainTool(t *testing.T) {
	ts := newTestServer(t)

	text, isError := ts.call(t, "generate_fixture_chain", map[string]any{"recipe": "intermediate-signed-with-md5"})
	require.False(t, isError, text)
	path := filepath.Join(ts.dir, "intermediate-signed-with-md5", "chain.pem")

	chain, err := os.ReadFile(path)
	require.NoError(t, err)
	certs, err := x509certs.New().DecodeMultiple(chain)
	require.NoError(t, err)
	broken := filepath.Join(t.TempDir(), "broken.pem")
	require.NoError(t, os.WriteFile(broken, x509certs.New().EncodeMultiplePEM(certs[:1]), 0o644))

	tests := []struct {
		name     string
		args     map[string]any
		isError  bool
		contains []string
	}{
		{
			name: "Default JSON",
			args: map[string]any{"file": path},
			contains: []string{
				`"legacySignature": true`,
				"Path validation at 2015-01-01T12:00:00Z",
			},
		},
		{
			name:     "Tree",
			args:     map[string]any{"file": path, "format": "tree"},
			contains: []string{"[!] Intermediate", "[✓] Root"},
		},
		{
			name:     "Table",
			args:     map[string]any{"file": path, "format": "table"},
			contains: []string{"MD5-RSA", "valid (legacy)"},
		},
		{
			name:     "Explicit Time",
			args:     map[string]any{"file": path, "format": "tree", "at": "2015-06-01T00:00:00Z"},
			contains: []string{"Path validation at 2015-06-01T00:00:00Z"},
		},
		{
			name:     "Broken Link",
			args:     map[string]any{"file": broken, "format": "tree"},
			isError:  true,
			contains: []string{"[✗] Target"},
		},
		{
			name:     "Bad Format",
			args:     map[string]any{"file": path, "format": "xml"},
			isError:  true,
			contains: []string{"unsupported format"},
		},
		{
			name:     "Bad Time",
			args:     map[string]any{"file": path, "at": "tomorrow"},
			isError:  true,
			contains: []string{"invalid at"},
		},
		{
			name:     "Missing File",
			args:     map[string]any{"file": filepath.Join(ts.dir, "missing.pem")},
			isError:  true,
			contains: []string{"failed to read chain"},
		},
		{
			name:     "Missing Argument",
			args:     map[string]any{},
			isError:  true,
			contains: []string{"file parameter required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := ts.call(t, "inspect_fixture_chain", tt.args)
			assert.Equal(t, tt.isError, isError, text)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestResources(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		uri      string
		mimeType string
		contains []string
	}{
		{
			name:     "Version",
			uri:      versionURI,
			mimeType: "application/json",
			contains: []string{testVersion, "generate_fixture_chain", "intermediate-signed-with-md5", `"md5"`},
		},
		{
			name:     "Config",
			uri:      configURI,
			mimeType: "application/json",
			contains: []string{`"keyBits": 1024`, `"createdBy": "mcpserver.test"`},
		},
		{
			name:     "Schema",
			uri:      schemaURI,
			mimeType: "application/schema+json",
			contains: []string{`"$schema"`, `"certificates"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ts.srv.Client().ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			require.NoError(t, err)
			require.Len(t, result.Contents, 1)

			content, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok, "expected text resource, got %T", result.Contents[0])
			assert.Equal(t, tt.mimeType, content.MIMEType)
			for _, want := range tt.contains {
				assert.Contains(t, content.Text, want)
			}
		})
	}

	_, err := ts.srv.Client().ReadResource(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "nonexistent://resource"},
	})
	assert.Error(t, err)
}

func TestServerBuilder(t *testing.T) {
	t.Run("Missing Config", func(t *testing.T) {
		_, err := NewServerBuilder().WithDefaultTools().Build()
		assert.ErrorIs(t, err, ErrNoConfig)
	})

	t.Run("Without Tools", func(t *testing.T) {
		s, err := NewServerBuilder().WithVersion(testVersion).Build()
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("Instructions", func(t *testing.T) {
		b := NewServerBuilder().WithConfig(testConfig(t.TempDir())).WithDefaultTools()
		for _, name := range []string{"list_fixture_recipes", "generate_fixture_chain", "inspect_fixture_chain", "target-signed-with-md5"} {
			assert.Contains(t, b.deps.Instructions, name)
		}
		assert.Len(t, b.ServerTools(), 3)
		assert.Len(t, b.deps.Resources, 3)
	})

	t.Run("Custom Instructions", func(t *testing.T) {
		b := NewServerBuilder().
			WithConfig(testConfig(t.TempDir())).
			WithDefaultTools().
			WithInstructions("Use generate_fixture_chain for MD5 fixtures.")
		s, err := b.Build()
		require.NoError(t, err)
		assert.NotNil(t, s)
		assert.Equal(t, "Use generate_fixture_chain for MD5 fixtures.", b.deps.Instructions)
		assert.Len(t, b.ServerTools(), 3)
	})
}

func TestServe_Shutdown(t *testing.T) {
	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	var logBuf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, testConfig(t.TempDir()), in, io.Discard, &logBuf)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Contains(t, logBuf.String(), `"component":"mcp-server"`)
		assert.Contains(t, logBuf.String(), "Starting "+serverName)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	err := Run(testVersion, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.Equal(t, testVersion, GetVersion())
}
