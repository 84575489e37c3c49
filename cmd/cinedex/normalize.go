package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinedex/internal/config"
	"github.com/vmunix/cinedex/internal/enrich"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <filename>...",
	Short: "Normalize filenames to search titles (local, no server needed)",
	Long: `Normalize release filenames to the clean titles the daemon would
query the metadata source with.

Noise tokens come from --tokens when given, otherwise from the config
file's library.noise_tokens. A missing config file means no noise tokens.

Examples:
  cinedex normalize "The.Matrix.1999.mkv"
  cinedex normalize --tokens "1080p,BluRay,x265" "Bitter.Moon.1992.1080p.BluRay.x265.mp4"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalizeCmd,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().String("tokens", "", "Comma-separated noise tokens (overrides config)")
}

type normalizeResult struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

func runNormalizeCmd(cmd *cobra.Command, args []string) error {
	rawTokens, _ := cmd.Flags().GetString("tokens")

	var tokens enrich.TokenSet
	if rawTokens != "" {
		lib := config.LibraryConfig{NoiseTokens: rawTokens}
		tokens = enrich.NewTokenSet(lib.NoiseTokenList())
	} else if cfg, err := config.Load(configPath); err == nil {
		tokens = enrich.NewTokenSet(cfg.Library.NoiseTokenList())
	} else {
		tokens = enrich.NewTokenSet(nil)
	}

	results := make([]normalizeResult, 0, len(args))
	for _, name := range args {
		results = append(results, normalizeResult{
			Filename: name,
			Title:    enrich.Normalize(name, tokens),
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Printf("%s\n  -> %q\n", r.Filename, r.Title)
	}
	return nil
}
