package services

import (
	"regexp"
	"strings"

	"receitas-backend/internal/models"
)

// DetectPlatform classifies a video URL by domain substrings. It never touches
// the network, so the same URL always yields the same platform.
func DetectPlatform(rawURL string) models.Platform {
	url := strings.ToLower(rawURL)

	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return models.PlatformYouTube
	// Covers vm./vt. short links too; any tiktok subdomain carries the suffix.
	case strings.Contains(url, "tiktok.com"):
		return models.PlatformTikTok
	case strings.Contains(url, "instagram.com"):
		return models.PlatformInstagram
	default:
		return models.PlatformOther
	}
}

var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`),
	// Any tiktok subdomain (vm., vt., www., ...)
	regexp.MustCompile(`^(https?://)?([\w-]+\.)?tiktok\.com/.+$`),
	regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/.+$`),
}

// ValidateVideoURL reports whether the URL belongs to a supported platform.
func ValidateVideoURL(rawURL string) bool {
	for _, pattern := range videoURLPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

var youtubeIDRegex = regexp.MustCompile(`(?:youtu\.be/|v=|shorts/)([\w-]{6,})`)

// ParseYouTubeID extracts the video ID from watch, short-link, and shorts URLs.
// Returns "" when the URL carries no recognizable ID.
func ParseYouTubeID(rawURL string) string {
	matches := youtubeIDRegex.FindStringSubmatch(rawURL)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}
