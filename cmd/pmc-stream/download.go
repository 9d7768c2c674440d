// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pmc-stream/internal/download"
	"github.com/pdiddy/pmc-stream/internal/httputil"
	"github.com/pdiddy/pmc-stream/internal/manifest"
	"github.com/pdiddy/pmc-stream/internal/pmc"
	"github.com/pdiddy/pmc-stream/internal/ratelimit"
	"github.com/pdiddy/pmc-stream/internal/secrets"
	"github.com/pdiddy/pmc-stream/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxResults = 100
	defaultWorkers    = 5
	defaultOutputDir  = "publications"
)

var downloadCmd = &cobra.Command{
	Use:   "download <keyword>",
	Short: "Search PMC and download full-text articles",
	Long: `Download searches PMC for the keyword and fetches up to --max-results
full-text articles into <output-dir>/<keyword-slug>/, one JSON record per
article. Articles downloaded by an earlier session are skipped without a
network call.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of articles to download")
	downloadCmd.Flags().String("format", "text", "record contents: xml, text, or both (legacy json/txt map to text)")
	downloadCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key or NCBI_API_KEY)")
	downloadCmd.Flags().Bool("sequential", false, "use sequential downloads instead of the worker pool")
	downloadCmd.Flags().Int("workers", defaultWorkers, "number of concurrent download workers")
	downloadCmd.Flags().Bool("exclude-text", false, "omit the plain-text field from records to save space")
	downloadCmd.Flags().StringP("output-dir", "o", defaultOutputDir, "base output directory for downloads")
	downloadCmd.Flags().String("user-agent", "", "override the HTTP User-Agent header")
	downloadCmd.Flags().String("email", "", "NCBI contact email (default: .secrets/ncbi-email or NCBI_EMAIL)")
	downloadCmd.Flags().Duration("rate-limit", 0, "minimum interval between requests (auto: 100ms with API key, 340ms without)")
	downloadCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(downloadCmd)
}

// stringSetting returns the flag value, falling back to the viper config
// key when the flag was left at its default.
func stringSetting(cmd *cobra.Command, flag, viperKey, fallback string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) {
		if cv := viper.GetString(viperKey); cv != "" {
			return cv
		}
	}
	if v == "" {
		return fallback
	}
	return v
}

func intSetting(cmd *cobra.Command, flag, viperKey string, fallback int) int {
	v, _ := cmd.Flags().GetInt(flag)
	if !cmd.Flags().Changed(flag) {
		if cv := viper.GetInt(viperKey); cv > 0 {
			return cv
		}
	}
	if v <= 0 {
		return fallback
	}
	return v
}

func runDownload(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := types.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	emailFlag, _ := cmd.Flags().GetString("email")
	apiKey := secrets.Resolve(apiKeyFlag, loadedSecrets, secrets.KeyAPIKey, secrets.EnvAPIKey)
	email := secrets.Resolve(emailFlag, loadedSecrets, secrets.KeyEmail, secrets.EnvEmail)

	sequential, _ := cmd.Flags().GetBool("sequential")
	excludeText, _ := cmd.Flags().GetBool("exclude-text")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	rateLimit, _ := cmd.Flags().GetDuration("rate-limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	cfg := types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: httputil.BuildUserAgent(userAgent, email),
		},
		MaxResults:  intSetting(cmd, "max-results", "download.max_results", defaultMaxResults),
		Format:      format,
		APIKey:      apiKey,
		Sequential:  sequential,
		Workers:     intSetting(cmd, "workers", "download.workers", defaultWorkers),
		IncludeText: !excludeText,
		OutputDir:   stringSetting(cmd, "output-dir", "download.output_dir", defaultOutputDir),
		RateLimit:   rateLimit,
	}

	client := &pmc.Client{
		HTTP:    httputil.NewClient(cfg.Timeout, cfg.UserAgent),
		Limiter: ratelimit.New(cfg.EffectiveRateLimit()),
		APIKey:  cfg.APIKey,
	}

	store, err := manifest.Open(cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: manifest unavailable: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	stats := download.Run(cmd.Context(), client, keyword, cfg, store, os.Stdout)

	// Skipped articles are still usable output; only a session that
	// produced nothing usable fails.
	switch {
	case stats.Successful > 0:
		return nil
	case stats.Skipped > 0 && stats.Errors == 0:
		return nil
	case stats.Requested == 0:
		return fmt.Errorf("no articles found for %q", keyword)
	default:
		return fmt.Errorf("no articles downloaded: %d unavailable, %d errors", stats.Unavailable, stats.Errors)
	}
}
