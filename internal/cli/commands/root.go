// Package commands implements the edmoas command line: loading a model
// fixture, converting its paths and rendering the decisions.
package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	// Global flags
	modelPath  string
	configPath string
	noColor    bool
	verbose    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "edmoas",
		Short: "Decide how OData paths map to OpenAPI operations",
		Long: `edmoas reads an entity data model with its Capabilities and Core
vocabulary annotations and decides, for every request path, which HTTP
operations exist, what they are called, how they are tagged and which
query options and request bodies they accept.

Models are YAML fixtures. Settings come from an optional YAML file and
EDMOAS_* environment variables.`,
		Example: `  # List the paths of a model
  edmoas paths --model trippin.yaml

  # Show the decisions for one path
  edmoas inspect --model trippin.yaml /People/{UserName}/Friends --detail

  # Write an OpenAPI document
  edmoas openapi --model trippin.yaml --output docs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&modelPath, "model", "m", "", "Model fixture (YAML)")
	flags.StringVarP(&configPath, "config", "c", "", "Settings file")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log every decision to stderr")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewPathsCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewOpenAPICommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the edmoas version, Git commit, build date, and Go version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			if noColor {
				titleColor.DisableColor()
			}
			w := cmd.OutOrStdout()
			for _, line := range [][2]string{
				{"edmoas version", Version},
				{"Git commit", GitCommit},
				{"Build date", BuildDate},
				{"Go version", goVer},
			} {
				titleColor.Fprintf(w, "%s: ", line[0])
				fmt.Fprintln(w, line[1])
			}
		},
	}
}

// reportedError marks an error whose explanation was already written
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
