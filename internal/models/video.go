package models

type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformOther     Platform = "other"
)

type AudioSource string

const (
	AudioSourceYouTube     AudioSource = "youtube"
	AudioSourceTikTokVideo AudioSource = "tiktok-video"
	AudioSourceTikTokMusic AudioSource = "tiktok-music"
	AudioSourceInstagram   AudioSource = "instagram"
	AudioSourceOther       AudioSource = "other"
)

// VideoMetadata holds best-effort descriptive data about a video. Absence of
// any field (or the whole struct) is normal and must not fail the pipeline.
type VideoMetadata struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	Duration     float64  `json:"duration,omitempty"` // seconds
	Platform     Platform `json:"platform,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Thumbnails   []string `json:"thumbnails,omitempty"` // ordered smallest → largest
}

// AcquisitionResult is what a platform strategy resolves a video URL into.
// Exactly one of AudioURL/AudioPath is populated by a given strategy.
// Cleanup must be invoked exactly once per pipeline run; it is a no-op when
// the strategy allocated nothing.
type AcquisitionResult struct {
	AudioURL        string
	AudioPath       string
	AudioSource     AudioSource
	ThumbnailURL    string
	ThumbnailSource string
	// Metadata carries caption/cover data returned by helper APIs. It only
	// fills gaps: tool-extracted metadata wins on merge.
	Metadata *VideoMetadata
	Cleanup  func()
}
