package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// DurationProber extracts a technical duration from a media file.
type DurationProber interface {
	DurationMinutes(ctx context.Context, path string) (int, error)
}

// FFprobe shells out to ffprobe for container-level metadata.
type FFprobe struct {
	Binary string // defaults to "ffprobe" when empty
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// DurationMinutes runs ffprobe against the file and returns the container
// duration rounded to whole minutes. A missing or unparsable duration is
// reported as 0 without error; only execution failures error.
func (p FFprobe) DurationMinutes(ctx context.Context, path string) (int, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var result probeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64)
	if err != nil || seconds <= 0 {
		return 0, nil
	}
	return int(math.Round(seconds / 60)), nil
}
