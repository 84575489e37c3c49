package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinedex/internal/config"
	"github.com/vmunix/cinedex/internal/enrich"
	"github.com/vmunix/cinedex/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the library root and print discovered files",
	Long: `Scan the configured library root and print each discovered video
file with its technical duration and normalized search title.

Examples:
  cinedex scan
  cinedex scan --no-probe --json`,
	Args: cobra.NoArgs,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("no-probe", false, "Skip ffprobe duration extraction")
}

type scanResult struct {
	Path            string `json:"path"`
	DurationMinutes int    `json:"duration_minutes"`
	Title           string `json:"title"`
}

// nullProber reports every duration as 0.
type nullProber struct{}

func (nullProber) DurationMinutes(ctx context.Context, path string) (int, error) {
	return 0, nil
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	noProbe, _ := cmd.Flags().GetBool("no-probe")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var probe scanner.DurationProber = scanner.FFprobe{}
	if noProbe {
		probe = nullProber{}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sc := scanner.New(cfg.Library.Root, cfg.Library.Extensions, probe, log)
	tokens := enrich.NewTokenSet(cfg.Library.NoiseTokenList())

	files := sc.Scan(cmd.Context())
	results := make([]scanResult, 0, len(files))
	for _, f := range files {
		results = append(results, scanResult{
			Path:            f.Path,
			DurationMinutes: f.DurationMinutes,
			Title:           enrich.Normalize(f.Path, tokens),
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Printf("%s\n  duration: %d min  title: %q\n", r.Path, r.DurationMinutes, r.Title)
	}
	return nil
}
