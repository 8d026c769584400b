package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"receitas-backend/internal/models"
	"receitas-backend/internal/services"
)

type thumbnailResolver interface {
	Resolve(ctx context.Context, videoURL string) (imageURL, source string, err error)
}

// ImageHandler owns the /recipe-image route, which resolves a cover image for
// a recipe card independently of the processing pipeline.
type ImageHandler struct {
	thumbnails thumbnailResolver
}

func NewImageHandler(thumbnails thumbnailResolver) *ImageHandler {
	return &ImageHandler{thumbnails: thumbnails}
}

func (h *ImageHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.RecipeImageResponse{
			Error: "Body da requisição inválido",
		})
		return
	}

	if req.VideoURL == "" {
		writeJSON(w, http.StatusBadRequest, models.RecipeImageResponse{
			Error: "URL do vídeo é obrigatória",
		})
		return
	}

	if !services.ValidateVideoURL(req.VideoURL) {
		writeJSON(w, http.StatusBadRequest, models.RecipeImageResponse{
			Error: "URL inválida. Use links do YouTube, TikTok ou Instagram.",
		})
		return
	}

	imageURL, source, err := h.thumbnails.Resolve(r.Context(), req.VideoURL)
	if err != nil {
		log.Printf("thumbnail lookup failed for %s: %v", req.VideoURL, err)
		writeJSON(w, statusForError(err), models.RecipeImageResponse{
			Error: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.RecipeImageResponse{
		Success:        true,
		ImageURL:       imageURL,
		ImageSource:    source,
		ImageFetchedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Status answers GET probes on the image route.
func (h *ImageHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Endpoint de imagem de receita operacional",
	})
}
