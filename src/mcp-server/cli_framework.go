// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/config"
)

// NewCommand returns the command that starts the stdio server.
//
// Flags:
//   - --config: Configuration file; defaults to $X509_FIXTURES_CONFIG_FILE
//   - --instructions: Print the usage guide sent to clients and exit
func NewCommand(version string) *cobra.Command {
	var (
		configPath       string
		showInstructions bool
	)

	cmd := &cobra.Command{
		Use:   "x509-chain-fixtures-mcp",
		Short: "MCP server for X.509 certificate chain fixtures",
		Long: `Serves fixture generation and inspection over the Model Context Protocol on
stdio. Logs are written to stderr as JSON lines.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showInstructions {
				tools, toolsWithConfig := createTools()
				text, err := loadInstructions(tools, toolsWithConfig)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			return Run(version, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "configuration file (JSON or YAML); defaults to $"+config.EnvConfigFile)
	cmd.Flags().BoolVar(&showInstructions, "instructions", false, "print tool usage instructions and exit")
	return cmd
}
