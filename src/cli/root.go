// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/config"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/fsutil"
	x509builder "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/builder"
	x509chain "github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/logger"
	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/recipes"
)

var (
	// ErrNoRecipe indicates a generate call without recipe names, files or --all.
	ErrNoRecipe = errors.New("cli: no recipe given (name one, use --file, or --all)")

	// ErrAllWithNames indicates recipe names given together with --all.
	ErrAllWithNames = errors.New("cli: --all cannot be combined with recipe names")

	// ErrConflictingFormats indicates more than one inspect output format.
	ErrConflictingFormats = errors.New("cli: choose only one of --tree, --table, --json")
)

var (
	// OperationPerformed is set once a command started doing real work.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set once that work completed.
	OperationPerformedSuccessfully bool
)

// Execute runs the root command with os.Args.
//
// Parameters:
//   - ctx: Cancellation, checked between fixture steps
//   - version: Reported by --version
//   - log: Progress output
//
// Returns:
//   - error: First failure; the process should exit non-zero
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand assembles the command tree.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "x509-chain-fixtures",
		Short:         "Generate X.509 certificate chain fixtures",
		Long:          "Builds leaf-first PEM certificate chains, including chains signed with MD5 or SHA-1, for chain verification test suites.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (JSON or YAML); defaults to $"+config.EnvConfigFile)

	loadConfig := func() (*config.Config, error) { return config.Load(configPath) }

	rootCmd.AddCommand(
		newGenerateCommand(log, loadConfig),
		newListCommand(),
		newInspectCommand(),
	)
	return rootCmd
}

func newGenerateCommand(log logger.Logger, loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		dir            string
		files          []string
		all            bool
		pkcs12Password string
	)

	cmd := &cobra.Command{
		Use:   "generate [RECIPE...]",
		Short: "Build fixtures from built-in recipes or recipe files",
		Example: `  x509-chain-fixtures generate intermediate-signed-with-md5
  x509-chain-fixtures generate --all -d testdata
  x509-chain-fixtures generate -f my-chain.yaml --pkcs12-password changeit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			builderCfg, err := cfg.BuilderConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Output.Dir
			}

			list, err := collectRecipes(args, files, all)
			if err != nil {
				return err
			}

			OperationPerformed = true
			exportPKCS12 := cmd.Flags().Changed("pkcs12-password")
			for _, r := range list {
				// One builder per recipe keeps key material independent.
				b := x509builder.New(builderCfg, x509builder.WithLogger(log))
				res, err := recipes.Run(cmd.Context(), b, r, dir)
				if err != nil {
					return err
				}
				log.Printf("Generated %s: %s", r.Name, res.Path)

				if exportPKCS12 {
					p12 := strings.TrimSuffix(res.Path, filepath.Ext(res.Path)) + ".p12"
					if err := b.WritePKCS12(res.Leaf(), pkcs12Password, p12); err != nil {
						return err
					}
				}
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output base directory (default from config, \""+config.DefaultOutputDir+"\")")
	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "recipe file (YAML or JSON); repeatable")
	cmd.Flags().BoolVar(&all, "all", false, "generate every built-in recipe")
	cmd.Flags().StringVar(&pkcs12Password, "pkcs12-password", "", "also write the leaf key and chain as <output>.p12")
	return cmd
}

func collectRecipes(names, files []string, all bool) ([]*recipes.Recipe, error) {
	var out []*recipes.Recipe

	if all && len(names) > 0 {
		return nil, ErrAllWithNames
	}
	if all {
		builtins, err := recipes.List()
		if err != nil {
			return nil, err
		}
		out = append(out, builtins...)
	} else {
		for _, name := range names {
			r, err := recipes.Builtin(name)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading recipe: %w", err)
		}
		r, err := recipes.Load(data, recipes.FormatFromPath(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return nil, ErrNoRecipe
	}
	return out, nil
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := recipes.List()
			if err != nil {
				return err
			}
			for _, r := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", r.Name, summary(r.Description))
			}
			return nil
		},
	}
}

// summary returns the first paragraph of a description on one line.
func summary(description string) string {
	paragraph, _, _ := strings.Cut(strings.TrimSpace(description), "\n\n")
	return strings.Join(strings.Fields(paragraph), " ")
}

func newInspectCommand() *cobra.Command {
	var (
		tree, table, asJSON bool
		at, export          string
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Check issuer links and signatures of a chain file",
		Long: `Reads a leaf-first chain (commented PEM, DER or PKCS #7), checks every
issuer link including legacy MD5/SHA-1 signatures, and reports standard
library path validation. Path validation failures are reported, not fatal;
broken issuer links are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if countTrue(tree, table, asJSON) > 1 {
				return ErrConflictingFormats
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			chain, err := x509chain.Load(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				viz, err := chain.ToVisualizationJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(viz))
			case table:
				fmt.Fprint(out, chain.RenderTable())
			default:
				fmt.Fprint(out, chain.RenderASCIITree())
			}

			if export != "" {
				der := strings.EqualFold(filepath.Ext(export), ".der")
				if err := fsutil.AtomicWrite(export, chain.EncodeBundle(der), 0o644); err != nil {
					return fmt.Errorf("--export: %w", err)
				}
			}

			verifyAt, err := verificationTime(at, chain)
			if err != nil {
				return err
			}
			if err := chain.VerifyChain(verifyAt); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Path validation at %s: %v\n", verifyAt.Format(time.RFC3339), err)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "Path validation at %s: ok\n", verifyAt.Format(time.RFC3339))
			}

			_, err = chain.VerifyLinks()
			return err
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "render as ASCII tree (default)")
	cmd.Flags().BoolVar(&table, "table", false, "render as markdown table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "render as JSON")
	cmd.Flags().StringVar(&at, "at", "", "RFC 3339 verification time (default: the leaf's notBefore)")
	cmd.Flags().StringVar(&export, "export", "", "also write the certificates without comments (DER when the name ends in .der, PEM otherwise)")
	return cmd
}

// verificationTime parses at, or falls back to the leaf's notBefore so
// fixtures with fixed historical validity still verify.
func verificationTime(at string, chain *x509chain.Chain) (time.Time, error) {
	if at == "" {
		return chain.Certs[0].NotBefore, nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return t, nil
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
