// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

// versionResourceHandler reports the server version and what it offers.
func versionResourceHandler(deps *ServerDependencies) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tools := make([]string, 0, len(deps.Tools)+len(deps.ToolsWithConfig))
		for _, t := range deps.Tools {
			tools = append(tools, t.Tool.Name)
		}
		for _, t := range deps.ToolsWithConfig {
			tools = append(tools, t.Tool.Name)
		}

		info := map[string]any{
			"name":    serverName,
			"version": deps.Version,
			"type":    "MCP Server",
			"capabilities": map[string]any{
				"tools": tools,
			},
			"recipes":         recipes.Names(),
			"signatureHashes": hashNames(),
		}
		return jsonResource(versionURI, "application/json", info)
	}
}

// configResourceHandler serves the configuration the server was started with.
func configResourceHandler(deps *ServerDependencies) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if deps.Config == nil {
			return nil, ErrNoConfig
		}
		return jsonResource(configURI, "application/json", deps.Config)
	}
}

// handleSchemaResource serves the embedded recipe schema verbatim.
func handleSchemaResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      schemaURI,
			MIMEType: "application/schema+json",
			Text:     string(recipes.Schema()),
		},
	}, nil
}

func jsonResource(uri, mimeType string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeType,
			Text:     string(data),
		},
	}, nil
}
