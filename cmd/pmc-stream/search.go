// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmc-stream/internal/httputil"
	"github.com/pdiddy/pmc-stream/internal/pmc"
	"github.com/pdiddy/pmc-stream/internal/ratelimit"
	"github.com/pdiddy/pmc-stream/internal/secrets"
	"github.com/pdiddy/pmc-stream/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search PMC and list matching article identifiers",
	Long: `Search queries PMC for the keyword and prints the matching identifiers in
relevance order together with the archive's total match count, without
downloading anything. The identifier list can be saved to a YAML file and fed
to a later download.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of identifiers to return")
	searchCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key or NCBI_API_KEY)")
	searchCmd.Flags().String("email", "", "NCBI contact email (default: .secrets/ncbi-email or NCBI_EMAIL)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the search results to a YAML file")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	maxResults, _ := cmd.Flags().GetInt("max-results")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	emailFlag, _ := cmd.Flags().GetString("email")
	asJSON, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	apiKey := secrets.Resolve(apiKeyFlag, loadedSecrets, secrets.KeyAPIKey, secrets.EnvAPIKey)
	email := secrets.Resolve(emailFlag, loadedSecrets, secrets.KeyEmail, secrets.EnvEmail)

	cfg := types.DownloadConfig{APIKey: apiKey}
	client := &pmc.Client{
		HTTP:    httputil.NewClient(timeout, httputil.BuildUserAgent("", email)),
		Limiter: ratelimit.New(cfg.EffectiveRateLimit()),
		APIKey:  apiKey,
	}

	ids, total := client.Search(cmd.Context(), keyword, maxResults, os.Stderr)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Keyword   string    `json:"keyword"`
			Total     int       `json:"total"`
			IDs       []string  `json:"ids"`
			Timestamp time.Time `json:"timestamp"`
		}{keyword, total, ids, time.Now().UTC()}); err != nil {
			return err
		}
	} else if len(ids) == 0 {
		fmt.Printf("No results found for %q\n", keyword)
	} else {
		for _, id := range ids {
			_, display := pmc.NormalizeID(id)
			fmt.Println(display)
		}
		fmt.Printf("\n%d identifiers (total PMC results: %d)\n", len(ids), total)
	}

	if savePath != "" {
		if err := pmc.WriteResultFile(savePath, keyword, maxResults, ids, total); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved search to %s\n", savePath)
	}
	return nil
}
