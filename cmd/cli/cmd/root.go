// Package cmd provides the CLI commands for mandashop.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mandashop/core/notation"
	"mandashop/internal/app"
	"mandashop/internal/config"
	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

const version = "1.0.0"

var (
	cfgFile     string
	pricingFile string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mandashop",
	Short: "Validate IV notation and quote Pokémon orders",
	Long: `mandashop validates IV notation, resolves tiers and prices orders
for the standard, competitive and no-gender product lines.

Examples:
  mandashop validate "F4, 0atk, -spe"
  mandashop quote "F5, 0atk" --line no-gender --breeding breedable
  mandashop spread --atk 0 --spe 20
  mandashop pricing check --pricing configs/pricing.hcl`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
	}
	return err
}

// errorMessage expands notation errors with the accepted formats
func errorMessage(err error) string {
	var verr *notation.ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&pricingFile, "pricing", "", "price table file (HCL), overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	cfg.ApplyEnv()
	if pricingFile != "" {
		cfg.Pricing.TablePath = pricingFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadApp wires the components for commands that price anything
func loadApp() (*app.App, error) {
	cfg := config.Get()
	a, err := app.New(cfg, logging.Logger)
	if err != nil {
		return nil, err
	}
	logging.Debug("price table loaded",
		zap.String("currency", a.Table.Currency),
		zap.Int("missing", len(a.Table.Missing())))
	return a, nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mandashop version %s\n", version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Get().YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
