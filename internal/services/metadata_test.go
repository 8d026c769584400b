package services

import (
	"context"
	"errors"
	"testing"

	"receitas-backend/internal/models"
)

type fakeDumper struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeDumper) DumpMetadata(ctx context.Context, videoURL string) ([]byte, error) {
	f.calls++
	return f.payload, f.err
}

func TestMetadataExtract_ParsesToolDump(t *testing.T) {
	dumper := &fakeDumper{payload: []byte(`{
		"title": "Bolo de cenoura",
		"description": "3 cenouras, 2 ovos",
		"tags": ["bolo", "receita"],
		"duration": 95.5,
		"thumbnail": "https://i.ytimg.com/vi/abc/maxres.jpg",
		"thumbnails": [{"url": "https://i.ytimg.com/vi/abc/small.jpg"}, {"url": "https://i.ytimg.com/vi/abc/large.jpg"}]
	}`)}

	s := NewMetadataService(dumper, false)
	meta := s.Extract(context.Background(), "https://youtu.be/abc123def45", models.PlatformYouTube)
	if meta == nil {
		t.Fatal("Extract() = nil, want metadata")
	}

	if meta.Title != "Bolo de cenoura" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Duration != 95.5 {
		t.Errorf("Duration = %v", meta.Duration)
	}
	if len(meta.Hashtags) != 2 {
		t.Errorf("Hashtags = %v", meta.Hashtags)
	}
	if len(meta.Thumbnails) != 2 || meta.Thumbnails[1] != "https://i.ytimg.com/vi/abc/large.jpg" {
		t.Errorf("Thumbnails = %v", meta.Thumbnails)
	}
}

func TestMetadataExtract_ToolFailureYieldsNil(t *testing.T) {
	s := NewMetadataService(&fakeDumper{err: errors.New("yt-dlp exited 1")}, false)
	if meta := s.Extract(context.Background(), "https://youtu.be/abc123def45", models.PlatformYouTube); meta != nil {
		t.Errorf("Extract() = %+v, want nil on tool failure", meta)
	}
}

func TestMetadataExtract_PlatformPolicy(t *testing.T) {
	tests := []struct {
		name      string
		platform  models.Platform
		enableAll bool
		wantCalls int
	}{
		{"youtube always allowed", models.PlatformYouTube, false, 1},
		{"unknown always allowed", models.PlatformOther, false, 1},
		{"tiktok gated off by default", models.PlatformTikTok, false, 0},
		{"instagram gated off by default", models.PlatformInstagram, false, 0},
		{"tiktok allowed when enabled", models.PlatformTikTok, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dumper := &fakeDumper{payload: []byte(`{"title":"x"}`)}
			s := NewMetadataService(dumper, tt.enableAll)
			s.Extract(context.Background(), "https://example.com/v", tt.platform)
			if dumper.calls != tt.wantCalls {
				t.Errorf("tool called %d times, want %d", dumper.calls, tt.wantCalls)
			}
		})
	}
}

func TestMergeMetadata(t *testing.T) {
	toolMeta := &models.VideoMetadata{Title: "Bolo", Duration: 90}
	fallback := &models.VideoMetadata{Title: "ignored", Description: "3 cenouras", ThumbnailURL: "https://cdn.example/c.jpg"}

	t.Run("tool wins field by field", func(t *testing.T) {
		merged := MergeMetadata(toolMeta, fallback, models.PlatformYouTube)
		if merged.Title != "Bolo" {
			t.Errorf("Title = %q", merged.Title)
		}
		if merged.Description != "3 cenouras" {
			t.Errorf("Description = %q, fallback should fill the gap", merged.Description)
		}
		if merged.ThumbnailURL != "https://cdn.example/c.jpg" {
			t.Errorf("ThumbnailURL = %q", merged.ThumbnailURL)
		}
		if merged.Platform != models.PlatformYouTube {
			t.Errorf("Platform = %q", merged.Platform)
		}
	})

	t.Run("only fallback", func(t *testing.T) {
		merged := MergeMetadata(nil, fallback, models.PlatformTikTok)
		if merged == nil || merged.Description != "3 cenouras" {
			t.Fatalf("merged = %+v", merged)
		}
		if merged.Platform != models.PlatformTikTok {
			t.Errorf("Platform = %q", merged.Platform)
		}
	})

	t.Run("both nil", func(t *testing.T) {
		if merged := MergeMetadata(nil, nil, models.PlatformYouTube); merged != nil {
			t.Errorf("merged = %+v, want nil", merged)
		}
	})
}
