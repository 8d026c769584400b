package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"receitas-backend/internal/models"
)

const tooLargeMessage = "Mídia muito grande para transcrição. Use um vídeo mais curto."

// Hard cap on a single remote download, independent of the upload ceiling.
// Oversized media is still fetched so the transcoder can shrink it, but not
// without bound.
const maxDownloadBytes = 512 * 1024 * 1024

// Extensions the transcription providers accept as-is.
var allowedMediaExts = map[string]bool{
	".mp3": true, ".m4a": true, ".mp4": true, ".wav": true, ".ogg": true,
	".oga": true, ".webm": true, ".weba": true, ".aac": true, ".flac": true,
	".mov": true, ".mpeg": true, ".mpga": true,
}

var contentTypeExts = map[string]string{
	"audio/mpeg":      ".mp3",
	"audio/mp3":       ".mp3",
	"audio/mp4":       ".m4a",
	"audio/x-m4a":     ".m4a",
	"audio/wav":       ".wav",
	"audio/x-wav":     ".wav",
	"audio/ogg":       ".ogg",
	"audio/webm":      ".weba",
	"audio/aac":       ".aac",
	"audio/flac":      ".flac",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
	"video/mpeg":      ".mpeg",
	"application/mp4": ".mp4",
}

// Normalizer turns an acquisition result (remote URL or local file) into an
// on-disk audio file the transcription provider will accept: within the upload
// ceiling and in an allowed format, transcoding when necessary.
type Normalizer struct {
	ffmpegPath     string
	maxUploadBytes int64
	httpClient     *http.Client
}

func NewNormalizer(ffmpegPath string, maxUploadBytes int64) *Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{
		ffmpegPath:     ffmpegPath,
		maxUploadBytes: maxUploadBytes,
		httpClient:     &http.Client{Timeout: 10 * time.Minute},
	}
}

// Prepare returns the path to upload. Every file it creates is registered
// through addCleanup so the pipeline deletes it regardless of outcome.
func (n *Normalizer) Prepare(ctx context.Context, acq *models.AcquisitionResult, addCleanup func(func())) (string, error) {
	path := acq.AudioPath
	if path == "" {
		if acq.AudioURL == "" {
			return "", &NormalizationError{Message: "Erro ao baixar vídeo: nenhuma mídia resolvida."}
		}

		downloaded, err := n.downloadToTemp(ctx, acq.AudioURL)
		if err != nil {
			return "", &NormalizationError{Message: fmt.Sprintf("Erro ao baixar vídeo: %v", err)}
		}
		addCleanup(func() { os.Remove(downloaded) })
		path = downloaded
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &NormalizationError{Message: fmt.Sprintf("Erro ao preparar áudio: %v", err)}
	}

	size := info.Size()
	ext := strings.ToLower(filepath.Ext(path))
	withinSize := size <= n.maxUploadBytes
	allowed := allowedMediaExts[ext]

	if withinSize && allowed {
		return path, nil
	}

	log.Printf("normalizing media: size=%d bytes, ext=%s (ceiling=%d)", size, ext, n.maxUploadBytes)

	transcoded := filepath.Join(os.TempDir(), "receitas-"+GenerateID()+".mp3")
	if err := n.transcode(ctx, path, transcoded); err != nil {
		os.Remove(transcoded)
		if withinSize {
			// Original already fit the ceiling; upload it unmodified and let
			// the provider judge the container.
			log.Printf("transcode failed, falling back to original: %v", err)
			return path, nil
		}
		return "", &NormalizationError{Message: tooLargeMessage}
	}
	addCleanup(func() { os.Remove(transcoded) })

	outInfo, err := os.Stat(transcoded)
	if err != nil {
		return "", &NormalizationError{Message: fmt.Sprintf("Erro ao preparar áudio: %v", err)}
	}
	if outInfo.Size() > n.maxUploadBytes {
		// Transcoding could not bring it under the ceiling; hard stop.
		return "", &NormalizationError{Message: tooLargeMessage}
	}

	return transcoded, nil
}

// downloadToTemp streams the remote media to a temp file, inferring the
// extension from Content-Type with a URL-path fallback.
func (n *Normalizer) downloadToTemp(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	ext := extForContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extFromURLPath(mediaURL)
	}
	if ext == "" {
		ext = ".bin"
	}

	path := filepath.Join(os.TempDir(), "receitas-"+GenerateID()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	limited := io.LimitReader(resp.Body, maxDownloadBytes+1)
	written, err := io.Copy(f, limited)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if written > maxDownloadBytes {
		os.Remove(path)
		return "", fmt.Errorf("media stream exceeds %d MB download cap", maxDownloadBytes/(1024*1024))
	}

	return path, nil
}

// transcode produces a mono 16 kHz low-bitrate mp3, the cheapest stream that
// keeps speech intelligible for the providers.
func (n *Normalizer) transcode(ctx context.Context, inPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, n.ffmpegPath,
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-b:a", "32k",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, firstLine(stderr.String()))
	}

	return nil
}

func extForContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	// Strip parameters like "; charset=..."
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return contentTypeExts[strings.TrimSpace(strings.ToLower(contentType))]
}

func extFromURLPath(mediaURL string) string {
	path := mediaURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	ext := strings.ToLower(filepath.Ext(path))
	if allowedMediaExts[ext] {
		return ext
	}
	return ""
}
