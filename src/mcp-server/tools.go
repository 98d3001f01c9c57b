// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools returns every tool definition, split by whether the handler
// needs the server configuration.
//
// The tools are:
//   - list_fixture_recipes: Lists built-in recipes
//   - generate_fixture_chain: Builds a recipe and writes its chain file
//   - inspect_fixture_chain: Checks links and signatures of a chain file
func createTools() ([]ToolDefinition, []ToolDefinitionWithConfig) {
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("list_fixture_recipes",
				mcp.WithDescription("List the built-in certificate chain fixture recipes with their descriptions"),
			),
			Handler: handleListRecipes,
		},
		{
			Tool: mcp.NewTool("inspect_fixture_chain",
				mcp.WithDescription("Check issuer links and signatures (including MD5 and SHA-1) of a leaf-first certificate chain file"),
				mcp.WithString("file",
					mcp.Required(),
					mcp.Description("Path to a chain file (commented PEM, DER or PKCS #7)"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'tree', 'table' or 'json' (default: json)"),
					mcp.DefaultString("json"),
				),
				mcp.WithString("at",
					mcp.Description("RFC 3339 time for path validation (default: the leaf's notBefore)"),
				),
			),
			Handler: handleInspectChain,
		},
	}

	toolsWithConfig := []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool("generate_fixture_chain",
				mcp.WithDescription("Generate a certificate chain fixture from a built-in recipe name or an inline recipe document"),
				mcp.WithString("recipe",
					mcp.Description("Built-in recipe name, see list_fixture_recipes"),
				),
				mcp.WithString("recipe_document",
					mcp.Description("Inline recipe as YAML or JSON, see the recipes://schema resource"),
				),
				mcp.WithString("dir",
					mcp.Description("Base output directory (default: output.dir from the configuration)"),
				),
				mcp.WithString("pkcs12_password",
					mcp.Description("When set, also write the leaf key and chain as a .p12 file beside the chain"),
				),
			),
			Handler: handleGenerateChain,
		},
	}

	return tools, toolsWithConfig
}
