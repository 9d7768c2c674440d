// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pmc-stream CLI: search PubMed
// Central, download full-text articles as self-contained JSON records, and
// inspect what a previous session downloaded.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmc-stream/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pmc-stream CLI.
var rootCmd = &cobra.Command{
	Use:   "pmc-stream",
	Short: "Download PubMed Central full-text articles",
	Long: `pmc-stream searches PubMed Central by keyword and downloads full-text
articles through the NCBI E-utilities endpoints. Each article is saved as one
JSON record carrying extracted metadata plus the raw JATS XML and/or a
derived plain-text copy.

An NCBI API key (flag, .secrets/ncbi-api-key, or NCBI_API_KEY) raises the
allowed request rate from 3 to 10 requests per second.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pmc-stream.yaml or ~/.config/pmc-stream/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pmc-stream")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pmc-stream"))
		}
	}

	viper.SetEnvPrefix("PMC_STREAM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
