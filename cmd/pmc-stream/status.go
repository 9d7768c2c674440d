// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pmc-stream/internal/manifest"
	"github.com/pdiddy/pmc-stream/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status [keyword]",
	Short: "Report downloaded articles and their record contents",
	Long: `Status reads the download manifest and the record files on disk. With a
keyword it reports that session only; without one it covers everything under
the output directory. For each record it shows which content fields (xml,
text) the file carries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringP("output-dir", "o", defaultOutputDir, "base output directory for downloads")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	keyword := ""
	if len(args) == 1 {
		keyword = args[0]
	}

	store, err := manifest.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(keyword)
	if err != nil {
		return err
	}
	counts, err := store.Summary(keyword)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No downloads recorded.")
		return nil
	}

	fmt.Printf("%-14s  %-11s  %-6s  %-8s  %-9s  %s\n",
		"PMCID", "Outcome", "Year", "Has XML", "Has text", "Title")
	fmt.Println(strings.Repeat("-", 100))

	for _, e := range entries {
		hasXML, hasText := recordContents(e.Path)
		fmt.Printf("%-14s  %-11s  %-6s  %-8s  %-9s  %s\n",
			e.PMCID, string(e.Outcome), e.Year,
			yesNo(hasXML), yesNo(hasText), truncate(e.Title, 40))
	}

	fmt.Printf("\n%d recorded: %d success, %d skipped, %d unavailable, %d errors\n",
		len(entries),
		counts[types.OutcomeSuccess], counts[types.OutcomeExists],
		counts[types.OutcomeUnavailable], counts[types.OutcomeError])
	return nil
}

// recordContents reports which optional content fields the persisted record
// at path carries. A missing or unreadable file reports neither.
func recordContents(path string) (hasXML, hasText bool) {
	if path == "" {
		return false, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, false
	}
	var record types.Article
	if err := json.Unmarshal(data, &record); err != nil {
		return false, false
	}
	return record.XML != "", record.Text != ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
