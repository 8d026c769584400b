package models

// Request/response envelopes for the two processing routes. The web client
// depends on this exact shape, including the flat success/error fields.

type ProcessVideoRequest struct {
	VideoURL string `json:"videoUrl"`
}

type ProcessVideoResponse struct {
	Success bool    `json:"success"`
	Recipe  *Recipe `json:"recipe,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type RecipeImageResponse struct {
	Success        bool   `json:"success"`
	ImageURL       string `json:"imageUrl,omitempty"`
	ImageSource    string `json:"imageSource,omitempty"`
	ImageFetchedAt string `json:"imageFetchedAt,omitempty"`
	Error          string `json:"error,omitempty"`
}
