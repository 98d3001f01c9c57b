// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

const instructionsTemplate = `This server generates X.509 certificate chain fixtures for testing chain
verification, including chains signed with legacy MD5 or SHA-1 hashes.

Tools:
{{- range .Tools}}
  - {{.Name}}: {{.Description}}
{{- end}}

Built-in recipes: {{join .Recipes ", "}}
Signature hashes: {{join .Hashes ", "}}

Typical workflow: call list_fixture_recipes, then generate_fixture_chain with a
recipe name (or a recipe_document following the recipes://schema resource),
then inspect_fixture_chain on the returned path. Generated fixtures carry fixed
historical validity, so path validation defaults to the leaf's notBefore.
`

// instructionData populates instructionsTemplate.
type instructionData struct {
	Tools   []toolInfo
	Recipes []string
	Hashes  []string
}

// toolInfo describes one tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

var instructions = template.Must(template.New("instructions").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(instructionsTemplate))

// loadInstructions renders the server instructions sent to clients at
// initialization, listing the registered tools.
func loadInstructions(tools []ToolDefinition, toolsWithConfig []ToolDefinitionWithConfig) (string, error) {
	data := instructionData{
		Recipes: recipes.Names(),
		Hashes:  hashNames(),
	}
	for _, tool := range tools {
		data.Tools = append(data.Tools, toolInfo{Name: tool.Tool.Name, Description: tool.Tool.Description})
	}
	for _, tool := range toolsWithConfig {
		data.Tools = append(data.Tools, toolInfo{Name: tool.Tool.Name, Description: tool.Tool.Description})
	}

	var sb strings.Builder
	if err := instructions.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render instructions: %w", err)
	}
	return sb.String(), nil
}
