package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/lcexplorer/internal/config"
	"github.com/KaramelBytes/lcexplorer/internal/dataset"
	"github.com/KaramelBytes/lcexplorer/internal/explorer"
	"github.com/KaramelBytes/lcexplorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lcexplorer",
	Short: "Explore and compare astronomical light curves",
	Long:  `lcexplorer loads light-curve CSV files (';' fields, ',' decimals), plots magnitude against time since eruption and shows per-file summary statistics, either as a web dashboard or from the command line.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.lcexplorer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	logger = utils.NewLogger(debug)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// currentConfig returns the loaded configuration, loading it on demand.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// datasetOptions builds the CSV format from config, letting non-empty flag
// values override it.
func datasetOptions(c *cfgpkg.Global, delimiter, decimal string) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if c != nil {
		if r := cfgpkg.Rune(c.Delimiter); r != 0 {
			opt.Delimiter = r
		}
		if r := cfgpkg.Rune(c.DecimalSeparator); r != 0 {
			opt.DecimalSeparator = r
		}
	}
	if delimiter != "" {
		r := cfgpkg.Rune(delimiter)
		if r == 0 {
			return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
		}
		opt.Delimiter = r
	}
	if decimal != "" {
		r := cfgpkg.Rune(decimal)
		if r != ',' && r != '.' {
			return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", decimal)
		}
		opt.DecimalSeparator = r
	}
	if opt.Delimiter == opt.DecimalSeparator {
		return opt, fmt.Errorf("delimiter and decimal separator must differ (both %q)", opt.Delimiter)
	}
	return opt, nil
}

func explorerOptions(c *cfgpkg.Global, ds dataset.Options) explorer.Options {
	opt := explorer.DefaultOptions()
	opt.Dataset = ds
	if c == nil {
		return opt
	}
	if c.MinCircleSize > 0 {
		opt.MinCircleSize = c.MinCircleSize
	}
	if c.MaxCircleSize > 0 {
		opt.MaxCircleSize = c.MaxCircleSize
	}
	if c.DefaultCircleSize > 0 {
		opt.DefaultCircleSize = c.DefaultCircleSize
	}
	return opt
}
