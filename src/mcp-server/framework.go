// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/config"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
)

const serverName = "X509 Chain Fixtures"

// ErrNoConfig is returned by [ServerBuilder.Build] when tools that need
// configuration are registered without one.
var ErrNoConfig = errors.New("mcpserver: tools require a configuration")

// ToolHandler matches the handler signature the [MCP] server expects.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig is a tool handler that also receives the server
// configuration and a logger tagged with the tool name.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, deps ToolDeps) (*mcp.CallToolResult, error)

// ToolDeps carries what configured tools need at call time.
type ToolDeps struct {
	Config *config.Config
	Log    *logger.JSONLogger
}

// ToolDefinition pairs a tool with a handler that needs no configuration.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// ToolDefinitionWithConfig pairs a tool with a handler that needs configuration.
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
}

// ServerDependencies holds everything needed to create the MCP server.
// It is filled by [ServerBuilder] and should not be built directly.
type ServerDependencies struct {
	Config          *config.Config
	Version         string
	Logger          *logger.JSONLogger
	Instructions    string
	Tools           []ToolDefinition
	ToolsWithConfig []ToolDefinitionWithConfig
	Resources       []server.ServerResource
}

// ServerBuilder constructs the MCP server with a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("0.1.0").
//	    WithDefaultTools().
//	    Build()
type ServerBuilder struct {
	deps ServerDependencies
	err  error
}

// NewServerBuilder creates a builder with no dependencies configured.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the configuration handed to configured tools.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithVersion sets the version reported to clients.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithLogger sets the structured logger. Without one, logs are discarded.
//
// Stdout carries the protocol, so the logger must write elsewhere.
func (b *ServerBuilder) WithLogger(log *logger.JSONLogger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithInstructions sets the usage guide sent to clients at initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithTools adds tools that need no configuration.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithConfig adds tools that need configuration.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithResources adds read-only resources.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithDefaultTools registers every fixture tool and resource, and the
// instructions describing them.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	tools, toolsWithConfig := createTools()
	b.WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithResources(createResources(&b.deps)...)

	text, err := loadInstructions(tools, toolsWithConfig)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithInstructions(text)
}

// Build creates the MCP server.
//
// Returns:
//   - *server.MCPServer: Server with every registered tool and resource
//   - error: ErrNoConfig when configured tools lack a configuration, or an
//     error recorded by an earlier builder call
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.deps.ToolsWithConfig) > 0 && b.deps.Config == nil {
		return nil, ErrNoConfig
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}
	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	s.AddTools(b.ServerTools()...)
	s.AddResources(b.deps.Resources...)
	return s, nil
}

// ServerTools returns every registered tool with configured handlers bound
// to the builder's configuration and a logger tagged with the tool name.
func (b *ServerBuilder) ServerTools() []server.ServerTool {
	log := b.deps.Logger
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}

	out := make([]server.ServerTool, 0, len(b.deps.Tools)+len(b.deps.ToolsWithConfig))
	for _, tool := range b.deps.Tools {
		out = append(out, server.ServerTool{Tool: tool.Tool, Handler: tool.Handler})
	}
	for _, tool := range b.deps.ToolsWithConfig {
		deps := ToolDeps{Config: b.deps.Config, Log: log.WithComponent(tool.Tool.Name)}
		handler := tool.Handler
		out = append(out, server.ServerTool{
			Tool: tool.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, deps)
			},
		})
	}
	return out
}
