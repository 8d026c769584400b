package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"receitas-backend/internal/models"
)

const (
	imageSourceTikTokCover = "tiktok-cover"
	imageSourceYouTube     = "yt-thumb"
	imageSourceInstagram   = "ig-thumb"
	imageSourceFallback    = "fallback"
)

// ThumbnailService resolves a cover image for a video URL without touching
// the audio pipeline. Each platform has its own lookup chain; the YouTube
// static thumbnail URL is the only unconditional fallback.
type ThumbnailService struct {
	metadata    *MetadataService
	tikwm       *TikWMClient
	oembed      *TikTokOEmbedClient
	ddinstagram *DDInstagramClient
	instasave   *InstaSaveClient
	ytClient    *yt.Client
}

func NewThumbnailService(metadata *MetadataService) *ThumbnailService {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &ThumbnailService{
		metadata:    metadata,
		tikwm:       NewTikWMClient("", httpClient),
		oembed:      NewTikTokOEmbedClient("", httpClient),
		ddinstagram: NewDDInstagramClient("", httpClient),
		instasave:   NewInstaSaveClient("", httpClient),
		ytClient:    &yt.Client{},
	}
}

// Resolve returns the image URL and a short source tag describing where it
// came from. Failure of every chain link yields a NotFoundError.
func (s *ThumbnailService) Resolve(ctx context.Context, videoURL string) (imageURL, source string, err error) {
	platform := DetectPlatform(videoURL)

	// The tool dump carries the richest thumbnail list when policy allows it.
	if meta := s.metadata.Extract(ctx, videoURL, platform); meta != nil {
		if best := bestThumbnail(meta); best != "" {
			return best, sourceForPlatform(platform), nil
		}
	}

	switch platform {
	case models.PlatformTikTok:
		if url := s.tiktokCover(ctx, videoURL); url != "" {
			return url, imageSourceTikTokCover, nil
		}

	case models.PlatformInstagram:
		if url := s.instagramThumb(ctx, videoURL); url != "" {
			return url, imageSourceInstagram, nil
		}

	case models.PlatformYouTube:
		if url := s.youtubeThumb(ctx, videoURL); url != "" {
			return url, imageSourceYouTube, nil
		}
		// The static endpoint serves a frame for essentially every public
		// video, so this path only needs a valid ID.
		if id := ParseYouTubeID(videoURL); id != "" {
			return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id), imageSourceFallback, nil
		}
	}

	return "", "", &NotFoundError{Message: "Não foi possível obter uma capa para este vídeo"}
}

func (s *ThumbnailService) tiktokCover(ctx context.Context, videoURL string) string {
	if data, err := s.tikwm.Resolve(ctx, videoURL); err == nil {
		if cover := firstNonEmpty(data.Cover, data.OriginCover); cover != "" {
			return cover
		}
	} else {
		log.Printf("tikwm cover lookup failed: %v", err)
	}

	if _, thumb, err := s.oembed.Fetch(ctx, videoURL); err == nil && thumb != "" {
		return thumb
	}
	return ""
}

func (s *ThumbnailService) instagramThumb(ctx context.Context, videoURL string) string {
	if _, thumb, err := s.ddinstagram.Resolve(ctx, videoURL); err == nil && thumb != "" {
		return thumb
	}
	if _, thumb, err := s.instasave.Resolve(ctx, videoURL); err == nil && thumb != "" {
		return thumb
	}
	return ""
}

// youtubeThumb asks the player API for the thumbnail set and picks the widest.
func (s *ThumbnailService) youtubeThumb(ctx context.Context, videoURL string) string {
	video, err := s.ytClient.GetVideoContext(ctx, videoURL)
	if err != nil {
		log.Printf("youtube thumbnail lookup failed: %v", err)
		return ""
	}

	best := ""
	bestWidth := uint(0)
	for _, t := range video.Thumbnails {
		if t.URL != "" && t.Width >= bestWidth {
			best = t.URL
			bestWidth = t.Width
		}
	}
	return best
}

// bestThumbnail prefers the tool's explicit thumbnail field, then the last
// (largest) entry of the thumbnail list.
func bestThumbnail(meta *models.VideoMetadata) string {
	if meta.ThumbnailURL != "" {
		return meta.ThumbnailURL
	}
	if n := len(meta.Thumbnails); n > 0 {
		return meta.Thumbnails[n-1]
	}
	return ""
}

func sourceForPlatform(platform models.Platform) string {
	switch platform {
	case models.PlatformTikTok:
		return imageSourceTikTokCover
	case models.PlatformInstagram:
		return imageSourceInstagram
	case models.PlatformYouTube:
		return imageSourceYouTube
	default:
		return imageSourceFallback
	}
}
