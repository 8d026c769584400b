package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"receitas-backend/internal/models"
)

const (
	defaultDDInstagramBaseURL = "https://ddinstagram.com"
	defaultInstaSaveBaseURL   = "https://api.insta.save"
)

// DDInstagramClient resolves an Instagram post URL into a downloadable media
// URL plus an optional preview image.
type DDInstagramClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDDInstagramClient(baseURL string, httpClient *http.Client) *DDInstagramClient {
	if baseURL == "" {
		baseURL = defaultDDInstagramBaseURL
	}
	return &DDInstagramClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *DDInstagramClient) Resolve(ctx context.Context, videoURL string) (mediaURL, thumbURL string, err error) {
	body, _ := json.Marshal(map[string]string{"url": videoURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/instagram", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("ddinstagram returned status %d", resp.StatusCode)
	}

	var payload struct {
		Success      bool   `json:"success"`
		DownloadURL  string `json:"download_url"`
		Preview      string `json:"preview"`
		Thumbnail    string `json:"thumbnail"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("ddinstagram response unparseable: %w", err)
	}
	if !payload.Success || payload.DownloadURL == "" {
		return "", "", fmt.Errorf("ddinstagram returned no download url")
	}

	return payload.DownloadURL, firstNonEmpty(payload.Preview, payload.Thumbnail, payload.ThumbnailURL), nil
}

type ddinstagramStrategy struct {
	client *DDInstagramClient
}

func (s *ddinstagramStrategy) name() string { return "ddinstagram" }

func (s *ddinstagramStrategy) attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error) {
	mediaURL, thumb, err := s.client.Resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	return &models.AcquisitionResult{
		AudioURL:        mediaURL,
		AudioSource:     models.AudioSourceInstagram,
		ThumbnailURL:    thumb,
		ThumbnailSource: "ig-thumb",
		Cleanup:         noopCleanup,
	}, nil
}

// InstaSaveClient is the second, structurally different Instagram helper API.
type InstaSaveClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInstaSaveClient(baseURL string, httpClient *http.Client) *InstaSaveClient {
	if baseURL == "" {
		baseURL = defaultInstaSaveBaseURL
	}
	return &InstaSaveClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *InstaSaveClient) Resolve(ctx context.Context, videoURL string) (mediaURL, thumbURL string, err error) {
	endpoint := c.baseURL + "/v1/media?url=" + url.QueryEscape(videoURL)
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
		return "", "", fmt.Errorf("insta.save returned status %d", resp.StatusCode)
	}

	var payload struct {
		VideoURL     string `json:"video_url"`
		Thumbnail    string `json:"thumbnail"`
		Thumb        string `json:"thumb"`
		Preview      string `json:"preview"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("insta.save response unparseable: %w", err)
	}
	if payload.VideoURL == "" {
		return "", "", fmt.Errorf("insta.save returned no video url")
	}

	return payload.VideoURL, firstNonEmpty(payload.Thumbnail, payload.Thumb, payload.Preview, payload.ThumbnailURL), nil
}

type instasaveStrategy struct {
	client *InstaSaveClient
}

func (s *instasaveStrategy) name() string { return "insta.save" }

func (s *instasaveStrategy) attempt(ctx context.Context, videoURL string) (*models.AcquisitionResult, error) {
	mediaURL, thumb, err := s.client.Resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	return &models.AcquisitionResult{
		AudioURL:        mediaURL,
		AudioSource:     models.AudioSourceInstagram,
		ThumbnailURL:    thumb,
		ThumbnailSource: "ig-thumb",
		Cleanup:         noopCleanup,
	}, nil
}
