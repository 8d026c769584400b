package services

import (
	"context"
	"encoding/json"
	"log"

	"receitas-backend/internal/models"
)

// MetadataService extracts title/description/duration/thumbnails through the
// media tool. Every failure is swallowed: the pipeline treats absent metadata
// as normal, never as an error to propagate.
type MetadataService struct {
	tool               metadataDumper
	enableAllPlatforms bool
}

type metadataDumper interface {
	DumpMetadata(ctx context.Context, videoURL string) ([]byte, error)
}

func NewMetadataService(tool metadataDumper, enableAllPlatforms bool) *MetadataService {
	return &MetadataService{tool: tool, enableAllPlatforms: enableAllPlatforms}
}

// toolMetadataJSON mirrors the fields we read out of the yt-dlp dump.
type toolMetadataJSON struct {
	Title       string   `json:"title"`
	FullTitle   string   `json:"fulltitle"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Duration    float64  `json:"duration"`
	Thumbnail   string   `json:"thumbnail"`
	Thumbnails  []struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
}

// Extract returns nil whenever the tool is unavailable, the platform is not
// covered by policy, or the dump cannot be parsed.
func (s *MetadataService) Extract(ctx context.Context, videoURL string, platform models.Platform) *models.VideoMetadata {
	if !s.shouldUse(platform) {
		return nil
	}

	raw, err := s.tool.DumpMetadata(ctx, videoURL)
	if err != nil {
		log.Printf("metadata extraction skipped: %v", err)
		return nil
	}

	var parsed toolMetadataJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("metadata dump unparseable: %v", err)
		return nil
	}

	meta := &models.VideoMetadata{
		Title:        parsed.Title,
		Description:  parsed.Description,
		Hashtags:     parsed.Tags,
		Duration:     parsed.Duration,
		Platform:     platform,
		ThumbnailURL: parsed.Thumbnail,
	}
	if meta.Title == "" {
		meta.Title = parsed.FullTitle
	}
	// yt-dlp lists thumbnails smallest to largest; keep that order.
	for _, t := range parsed.Thumbnails {
		if t.URL != "" {
			meta.Thumbnails = append(meta.Thumbnails, t.URL)
		}
	}

	log.Printf("metadata extracted: title=%d chars, description=%d chars", len(meta.Title), len(meta.Description))
	return meta
}

// shouldUse gates the tool call: YouTube and unknown platforms always, others
// only when explicitly enabled (the tool usually fails on them and the call
// costs seconds of latency).
func (s *MetadataService) shouldUse(platform models.Platform) bool {
	if platform == models.PlatformYouTube || platform == models.PlatformOther {
		return true
	}
	return s.enableAllPlatforms
}

// MergeMetadata combines tool-extracted metadata with the helper-API fallback.
// Tool values win field by field; the platform tag defaults to the detected
// one when neither side carries it.
func MergeMetadata(tool, fallback *models.VideoMetadata, platform models.Platform) *models.VideoMetadata {
	if tool == nil && fallback == nil {
		return nil
	}
	if tool == nil {
		merged := *fallback
		if merged.Platform == "" {
			merged.Platform = platform
		}
		return &merged
	}

	merged := *tool
	if fallback != nil {
		if merged.Title == "" {
			merged.Title = fallback.Title
		}
		if merged.Description == "" {
			merged.Description = fallback.Description
		}
		if len(merged.Hashtags) == 0 {
			merged.Hashtags = fallback.Hashtags
		}
		if merged.Duration == 0 {
			merged.Duration = fallback.Duration
		}
		if merged.ThumbnailURL == "" {
			merged.ThumbnailURL = fallback.ThumbnailURL
		}
		if len(merged.Thumbnails) == 0 {
			merged.Thumbnails = fallback.Thumbnails
		}
	}
	if merged.Platform == "" {
		merged.Platform = platform
	}
	return &merged
}
