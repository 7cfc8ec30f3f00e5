// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the convertpdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the convertpdf CLI.
var rootCmd = &cobra.Command{
	Use:   "convertpdf",
	Short: "Convert office documents to PDF with LibreOffice",
	Long: `convertpdf converts office documents (Word, Excel, PowerPoint,
OpenDocument, RTF, plain text) to PDF by driving a local LibreOffice
installation in headless mode.

The converter executable is auto-detected from the usual install locations;
point --converter (or converter.path in the config file) at a specific
binary to override. Every conversion is recorded in a local journal unless
--no-journal is given.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./convertpdf.yaml or ~/.config/convertpdf/config.yaml)")
	rootCmd.PersistentFlags().String("converter", "", "converter executable (overrides auto-detection)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("convertpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "convertpdf"))
		}
	}

	viper.SetEnvPrefix("CONVERTPDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// converterConfig assembles the orchestrator configuration from flags and
// the config file; flags win.
func converterConfig(cmd *cobra.Command) types.ConverterConfig {
	path, _ := cmd.Flags().GetString("converter")
	if path == "" {
		path = viper.GetString("converter.path")
	}
	return types.ConverterConfig{
		Path:      path,
		OutputDir: viper.GetString("converter.output_dir"),
	}
}

// journalConfig assembles the journal configuration from flags and the
// config file; flags win. The journal lives under ~/.convertpdf when
// nothing else is configured.
func journalConfig(cmd *cobra.Command) types.JournalConfig {
	dir, _ := cmd.Flags().GetString("journal-dir")
	if dir == "" {
		dir = viper.GetString("journal.dir")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".convertpdf")
	}

	disabled, _ := cmd.Flags().GetBool("no-journal")
	return types.JournalConfig{
		Dir:      dir,
		Disabled: disabled || viper.GetBool("journal.disabled"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
