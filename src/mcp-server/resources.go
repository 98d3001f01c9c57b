// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	versionURI = "info://version"
	configURI  = "config://effective"
	schemaURI  = "recipes://schema"
)

// createResources returns the read-only resources. Handlers read deps at
// call time, so builder options applied later are still honored.
func createResources(deps *ServerDependencies) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(versionURI, "Version",
				mcp.WithResourceDescription("Server name, version, tools and built-in recipes"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: versionResourceHandler(deps),
		},
		{
			Resource: mcp.NewResource(configURI, "Effective Configuration",
				mcp.WithResourceDescription("Builder defaults and output directory used by generate_fixture_chain"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: configResourceHandler(deps),
		},
		{
			Resource: mcp.NewResource(schemaURI, "Recipe Schema",
				mcp.WithResourceDescription("JSON schema for recipe documents accepted by generate_fixture_chain"),
				mcp.WithMIMEType("application/schema+json"),
			),
			Handler: handleSchemaResource,
		},
	}
}
