// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509chain "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

// handleListRecipes lists the built-in recipes.
//
// Returns:
//   - JSON array of {name, description, output, certificates, chain}
func handleListRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all, err := recipes.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load recipes: %v", err)), nil
	}

	out := make([]map[string]any, 0, len(all))
	for _, r := range all {
		out = append(out, map[string]any{
			"name":         r.Name,
			"description":  strings.TrimSpace(r.Description),
			"output":       r.OutputName(),
			"certificates": len(r.Certificates),
			"chain":        r.Chain,
		})
	}
	return jsonResult(out)
}

// handleGenerateChain builds a built-in or inline recipe and writes the
// chain file, plus a PKCS #12 bundle when a password is given.
//
// Parameters:
//   - ctx: Cancellation, checked between certificates
//   - request: recipe or recipe_document (exactly one), optional dir and pkcs12_password
//   - deps: Configuration supplying builder defaults and the output directory
//
// Returns:
//   - JSON summary with the written paths and each certificate's signature algorithm
func handleGenerateChain(ctx context.Context, request mcp.CallToolRequest, deps ToolDeps) (*mcp.CallToolResult, error) {
	name := request.GetString("recipe", "")
	document := request.GetString("recipe_document", "")
	if (name == "") == (document == "") {
		return mcp.NewToolResultError("provide exactly one of recipe or recipe_document"), nil
	}

	var (
		r   *recipes.Recipe
		err error
	)
	if name != "" {
		r, err = recipes.Builtin(name)
	} else {
		// YAML is a superset of JSON, so one parser serves both.
		r, err = recipes.Load([]byte(document), recipes.FormatYAML)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid recipe: %v", err)), nil
	}

	builderCfg, err := deps.Config.BuilderConfig()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid configuration: %v", err)), nil
	}
	dir := request.GetString("dir", deps.Config.Output.Dir)

	b := x509builder.New(builderCfg, x509builder.WithLogger(deps.Log))
	res, err := recipes.Run(ctx, b, r, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate %s: %v", r.Name, err)), nil
	}

	summary := map[string]any{
		"recipe": r.Name,
		"path":   res.Path,
	}

	if password := request.GetString("pkcs12_password", ""); password != "" {
		p12 := strings.TrimSuffix(res.Path, filepath.Ext(res.Path)) + ".p12"
		if err := b.WritePKCS12(res.Leaf(), password, p12); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to write PKCS #12: %v", err)), nil
		}
		summary["pkcs12Path"] = p12
	}

	certs := make([]map[string]any, 0, len(res.Chain))
	for _, c := range res.Chain {
		cert := c.X509()
		certs = append(certs, map[string]any{
			"subject":            cert.Subject.CommonName,
			"issuer":             cert.Issuer.CommonName,
			"kind":               c.Kind().String(),
			"serialNumber":       fmt.Sprintf("%X", cert.SerialNumber),
			"signatureAlgorithm": cert.SignatureAlgorithm.String(),
		})
	}
	summary["chain"] = certs

	deps.Log.Printf("Generated %s: %s", r.Name, res.Path)
	return jsonResult(summary)
}

// handleInspectChain renders a chain file and reports link and path
// validation results.
//
// A broken issuer link is a tool error; a failed path validation is only
// reported, since the standard library rejects MD5 and SHA-1 signatures.
func handleInspectChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("file parameter required: %v", err)), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read chain: %v", err)), nil
	}
	chain, err := x509chain.Load(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode chain: %v", err)), nil
	}

	var rendered string
	switch format := request.GetString("format", "json"); format {
	case "tree":
		rendered = chain.RenderASCIITree()
	case "table":
		rendered = chain.RenderTable()
	case "json":
		viz, err := chain.ToVisualizationJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render chain: %v", err)), nil
		}
		rendered = string(viz)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (want tree, table or json)", format)), nil
	}

	at := chain.Certs[0].NotBefore
	if s := request.GetString("at", ""); s != "" {
		if at, err = time.Parse(time.RFC3339, s); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid at: %v", err)), nil
		}
	}

	var sb strings.Builder
	sb.WriteString(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		sb.WriteByte('\n')
	}
	if err := chain.VerifyChain(at); err != nil {
		fmt.Fprintf(&sb, "\nPath validation at %s: %v\n", at.Format(time.RFC3339), err)
	} else {
		fmt.Fprintf(&sb, "\nPath validation at %s: ok\n", at.Format(time.RFC3339))
	}

	if _, err := chain.VerifyLinks(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s\n%v", sb.String(), err)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}
