package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"receitas-backend/internal/models"
)

const (
	defaultTikWMBaseURL  = "https://www.tikwm.com"
	defaultAwemeBaseURL  = "https://api16-normal-useast5.us.tiktokv.com"
	defaultOEmbedBaseURL = "https://www.tiktok.com"

	browserUserAgent = "Mozilla/5.0"
)

var awemeIDRegex = regexp.MustCompile(`video/(\d+)`)

// TikWMClient talks to the TikWM helper API, which resolves a TikTok page URL
// into direct media URLs plus cover and caption.
type TikWMClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTikWMClient(baseURL string, httpClient *http.Client) *TikWMClient {
	if baseURL == "" {
		baseURL = defaultTikWMBaseURL
	}
	return &TikWMClient{baseURL: baseURL, httpClient: httpClient}
}

type tikwmData struct {
	Play        string `json:"play"`
	Wmplay      string `json:"wmplay"`
	Hdplay      string `json:"hdplay"`
	Music       string `json:"music"`
	Cover       string `json:"cover"`
	OriginCover string `json:"origin_cover"`
	Title       string `json:"title"`
}

// Resolve posts the video URL and returns the parsed payload. A 200 response
// carrying a non-zero code is a strategy failure, not a transport error.
func (c *TikWMClient) Resolve(ctx context.Context, videoURL string) (*tikwmData, error) {
	body, _ := json.Marshal(map[string]interface{}{"url": videoURL, "hd": 1})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Code int        `json:"code"`
		Data *tikwmData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tikwm response unparseable: %w", err)
	}
	if payload.Code != 0 || payload.Data == nil {
		return nil, fmt.Errorf("tikwm returned code %d", payload.Code)
	}

	return payload.Data, nil
}

type tikwmStrategy struct {
	client      *TikWMClient
	preferMusic bool
}

func (s *tikwmStrategy) name() string { return "tikwm" }

func (s *tikwmStrategy) attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error) {
	data, err := s.client.Resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	mediaURL := firstNonEmpty(data.Play, data.Wmplay, data.Hdplay)
	source := models.AudioSourceTikTokVideo
	if s.preferMusic && data.Music != "" {
		mediaURL = data.Music
		source = models.AudioSourceTikTokMusic
	}
	if mediaURL == "" {
		return nil, fmt.Errorf("tikwm returned no playable media")
	}

	cover := firstNonEmpty(data.Cover, data.OriginCover)

	return &models.AcquisitionResult{
		AudioURL:        mediaURL,
		AudioSource:     source,
		ThumbnailURL:    cover,
		ThumbnailSource: "tiktok-cover",
		Metadata: &models.VideoMetadata{
			Description:  data.Title, // TikWM's title field carries the caption
			Platform:     models.PlatformTikTok,
			ThumbnailURL: cover,
		},
		Cleanup: noopCleanup,
	}, nil
}

// AwemeClient hits TikTok's mobile feed endpoint directly, keyed by the aweme
// ID parsed from the page URL.
type AwemeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAwemeClient(baseURL string, httpClient *http.Client) *AwemeClient {
	if baseURL == "" {
		baseURL = defaultAwemeBaseURL
	}
	return &AwemeClient{baseURL: baseURL, httpClient: httpClient}
}

type awemeVideo struct {
	PlayAddr struct {
		URLList []string `json:"url_list"`
	} `json:"play_addr"`
	Cover struct {
		URLList []string `json:"url_list"`
	} `json:"cover"`
	OriginCover struct {
		URLList []string `json:"url_list"`
	} `json:"origin_cover"`
}

func (c *AwemeClient) Resolve(ctx context.Context, videoURL string) (*awemeVideo, string, error) {
	matches := awemeIDRegex.FindStringSubmatch(videoURL)
	if len(matches) < 2 {
		return nil, "", fmt.Errorf("no aweme id in url")
	}

	endpoint := fmt.Sprintf("%s/aweme/v1/feed/?aweme_id=%s", c.baseURL, matches[1])
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("aweme feed returned status %d", resp.StatusCode)
	}

	var payload struct {
		AwemeList []struct {
			Desc  string      `json:"desc"`
			Video *awemeVideo `json:"video"`
		} `json:"aweme_list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("aweme response unparseable: %w", err)
	}
	if len(payload.AwemeList) == 0 || payload.AwemeList[0].Video == nil {
		return nil, "", fmt.Errorf("aweme feed returned no video")
	}

	return payload.AwemeList[0].Video, payload.AwemeList[0].Desc, nil
}

type awemeStrategy struct {
	client *AwemeClient
}

func (s *awemeStrategy) name() string { return "aweme-feed" }

func (s *awemeStrategy) attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error) {
	video, desc, err := s.client.Resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	if len(video.PlayAddr.URLList) == 0 {
		return nil, fmt.Errorf("aweme feed carried no play address")
	}
	mediaURL := video.PlayAddr.URLList[0]

	cover := ""
	if len(video.Cover.URLList) > 0 {
		cover = video.Cover.URLList[0]
	} else if len(video.OriginCover.URLList) > 0 {
		cover = video.OriginCover.URLList[0]
	}

	return &models.AcquisitionResult{
		AudioURL:        mediaURL,
		AudioSource:     models.AudioSourceTikTokVideo,
		ThumbnailURL:    cover,
		ThumbnailSource: "tiktok-cover",
		Metadata: &models.VideoMetadata{
			Description:  desc,
			Platform:     models.PlatformTikTok,
			ThumbnailURL: cover,
		},
		Cleanup: noopCleanup,
	}, nil
}

// TikTokOEmbedClient fetches the public oEmbed document. Used only as a
// last-resort caption source.
type TikTokOEmbedClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTikTokOEmbedClient(baseURL string, httpClient *http.Client) *TikTokOEmbedClient {
	if baseURL == "" {
		baseURL = defaultOEmbedBaseURL
	}
	return &TikTokOEmbedClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *TikTokOEmbedClient) Fetch(ctx context.Context, videoURL string) (caption, thumbnail string, err error) {
	endpoint := c.baseURL + "/oembed?url=" + url.QueryEscape(videoURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var payload struct {
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", err
	}

	return payload.Title, payload.ThumbnailURL, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
