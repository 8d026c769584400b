package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"receitas-backend/internal/models"
)

// acquisitionStrategy turns a video URL into playable or downloadable media.
// Strategies that resolve a remote URL must leave no side effects on failure;
// strategies that produce a local file register a cleanup for exactly that file.
type acquisitionStrategy interface {
	name() string
	attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error)
}

// Acquirer selects and runs the per-platform strategy chain. Strategies are
// tried strictly in order; the first success wins. Running unofficial helper
// APIs concurrently would only amplify rate limits.
type Acquirer struct {
	tool        *MediaTool
	tikwm       *TikWMClient
	aweme       *AwemeClient
	oembed      *TikTokOEmbedClient
	ddinstagram *DDInstagramClient
	instasave   *InstaSaveClient
	preferMusic bool
}

func NewAcquirer(tool *MediaTool, preferMusic bool) *Acquirer {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Acquirer{
		tool:        tool,
		tikwm:       NewTikWMClient("", httpClient),
		aweme:       NewAwemeClient("", httpClient),
		oembed:      NewTikTokOEmbedClient("", httpClient),
		ddinstagram: NewDDInstagramClient("", httpClient),
		instasave:   NewInstaSaveClient("", httpClient),
		preferMusic: preferMusic,
	}
}

// Acquire resolves the URL into transcribable media or fails with a
// platform-specific AcquisitionError.
func (a *Acquirer) Acquire(ctx context.Context, videoURL string, platform models.Platform) (*models.AcquisitionResult, error) {
	switch platform {
	case models.PlatformYouTube:
		res, err := a.toolStrategy(models.AudioSourceYouTube).attempt(ctx, videoURL)
		if err != nil {
			// YouTube has no further fallback; the tool failure is fatal.
			return nil, &AcquisitionError{
				Platform: string(platform),
				Message:  fmt.Sprintf("YouTube: %v. Verifique se a URL é válida e o vídeo é público.", err),
			}
		}
		return res, nil

	case models.PlatformTikTok:
		chain := []acquisitionStrategy{
			&tikwmStrategy{client: a.tikwm, preferMusic: a.preferMusic},
			&awemeStrategy{client: a.aweme},
		}
		res := a.runChain(ctx, videoURL, chain)
		if res == nil {
			return nil, &AcquisitionError{
				Platform: string(platform),
				Message:  "Não foi possível obter URL do vídeo do TikTok. Tente um vídeo público.",
			}
		}
		a.fillTikTokCaption(ctx, videoURL, res)
		return res, nil

	case models.PlatformInstagram:
		chain := []acquisitionStrategy{
			&ddinstagramStrategy{client: a.ddinstagram},
			&instasaveStrategy{client: a.instasave},
			a.toolStrategy(models.AudioSourceInstagram),
		}
		res := a.runChain(ctx, videoURL, chain)
		if res == nil {
			// Instagram support is intentionally the weakest of the three;
			// the message steers users toward the platforms that work.
			return nil, &AcquisitionError{
				Platform: string(platform),
				Message:  "Instagram: Não foi possível obter URL. Instagram requer vídeos públicos. Use YouTube ou TikTok para melhores resultados.",
			}
		}
		return res, nil

	default:
		res, err := a.toolStrategy(models.AudioSourceOther).attempt(ctx, videoURL)
		if err != nil {
			return nil, &AcquisitionError{
				Platform: string(platform),
				Message:  fmt.Sprintf("Erro ao baixar vídeo: %v", err),
			}
		}
		return res, nil
	}
}

func (a *Acquirer) runChain(ctx context.Context, videoURL string, chain []acquisitionStrategy) *models.AcquisitionResult {
	for _, strategy := range chain {
		res, err := strategy.attempt(ctx, videoURL)
		if err != nil {
			log.Printf("acquisition strategy %s failed: %v", strategy.name(), err)
			continue
		}
		log.Printf("acquisition strategy %s succeeded", strategy.name())
		return res
	}
	return nil
}

// fillTikTokCaption falls back to the public oEmbed endpoint when the winning
// strategy resolved media but no caption text. Best-effort only.
func (a *Acquirer) fillTikTokCaption(ctx context.Context, videoURL string, res *models.AcquisitionResult) {
	if res.Metadata != nil && res.Metadata.Description != "" {
		return
	}
	caption, thumb, err := a.oembed.Fetch(ctx, videoURL)
	if err != nil {
		log.Printf("tiktok oembed caption lookup failed: %v", err)
		return
	}
	if res.Metadata == nil {
		res.Metadata = &models.VideoMetadata{Platform: models.PlatformTikTok}
	}
	res.Metadata.Description = caption
	if res.Metadata.ThumbnailURL == "" {
		res.Metadata.ThumbnailURL = thumb
	}
}

func (a *Acquirer) toolStrategy(source models.AudioSource) *mediaToolStrategy {
	return &mediaToolStrategy{tool: a.tool, source: source}
}

// mediaToolStrategy extracts audio into a local temp file via the media tool.
// Used as the only YouTube strategy and as the trailing fallback elsewhere.
type mediaToolStrategy struct {
	tool   *MediaTool
	source models.AudioSource
}

func (s *mediaToolStrategy) name() string { return "yt-dlp" }

func (s *mediaToolStrategy) attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error) {
	audioPath := filepath.Join(os.TempDir(), "receitas-"+GenerateID()+".mp3")

	if err := s.tool.ExtractAudio(ctx, videoURL, audioPath); err != nil {
		// Never leave a partial file behind on failure.
		os.Remove(audioPath)
		return nil, err
	}

	return &models.AcquisitionResult{
		AudioPath:   audioPath,
		AudioSource: s.source,
		Cleanup: func() {
			// Delete errors (including already-gone files) are swallowed.
			os.Remove(audioPath)
		},
	}, nil
}

// noopCleanup is the cleanup for strategies that resolve a remote URL and
// allocate nothing locally.
func noopCleanup() {}

func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.ToValidUTF8(s[:max], "") + "..."
}
