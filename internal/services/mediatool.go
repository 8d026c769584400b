package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// MediaTool wraps the yt-dlp binary. It is used two ways: dumping metadata
// without downloading the payload, and extracting an audio-only file.
type MediaTool struct {
	binaryPath string
}

func NewMediaTool(binaryPath string) *MediaTool {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &MediaTool{binaryPath: binaryPath}
}

// DumpMetadata runs a metadata-only extraction and returns the raw JSON dump.
func (t *MediaTool) DumpMetadata(ctx context.Context, videoURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binaryPath,
		videoURL,
		"--dump-json",
		"--no-warnings",
		"--skip-download",
		"--socket-timeout", "30",
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata dump failed: %w: %s", err, firstLine(stderr.String()))
	}

	return out.Bytes(), nil
}

// ExtractAudio downloads the audio track of the video into outPath as mp3.
// Retries and the file-size cap are enforced at the tool level.
func (t *MediaTool) ExtractAudio(ctx context.Context, videoURL, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binaryPath,
		videoURL,
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "5",
		"-o", outPath,
		"--no-playlist",
		"--max-filesize", "50m",
		"--no-warnings",
		"--no-check-certificates",
		"--prefer-free-formats",
		"--socket-timeout", "30",
		"--retries", "5",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s", toolErrorMessage(err, stderr.String()))
	}

	return nil
}

func toolErrorMessage(err error, stderr string) string {
	if msg := firstLine(stderr); msg != "" {
		return msg
	}
	return err.Error()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
