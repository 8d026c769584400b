package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"receitas-backend/internal/models"
	"receitas-backend/internal/services"
)

type videoProcessor interface {
	Process(ctx context.Context, videoURL string) (*models.Recipe, error)
}

// VideoHandler owns the /process-video and /health routes.
type VideoHandler struct {
	pipeline     videoProcessor
	hasOpenAIKey bool
	hasGeminiKey bool
}

func NewVideoHandler(pipeline videoProcessor, hasOpenAIKey, hasGeminiKey bool) *VideoHandler {
	return &VideoHandler{
		pipeline:     pipeline,
		hasOpenAIKey: hasOpenAIKey,
		hasGeminiKey: hasGeminiKey,
	}
}

// Process runs the full URL-to-recipe pipeline for one request.
func (h *VideoHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ProcessVideoResponse{
			Error: "Body da requisição inválido",
		})
		return
	}

	if req.VideoURL == "" {
		writeJSON(w, http.StatusBadRequest, models.ProcessVideoResponse{
			Error: "URL do vídeo é obrigatória",
		})
		return
	}

	if !services.ValidateVideoURL(req.VideoURL) {
		writeJSON(w, http.StatusBadRequest, models.ProcessVideoResponse{
			Error: "URL inválida. Use links do YouTube, TikTok ou Instagram.",
		})
		return
	}

	recipe, err := h.pipeline.Process(r.Context(), req.VideoURL)
	if err != nil {
		log.Printf("pipeline failed for %s: %v", req.VideoURL, err)
		writeJSON(w, statusForError(err), models.ProcessVideoResponse{
			Error: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ProcessVideoResponse{
		Success: true,
		Recipe:  recipe,
	})
}

// Status answers GET probes on the processing route: liveness plus which
// provider credentials are configured, without exposing the keys themselves.
func (h *VideoHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"message":      "API de processamento de vídeos operacional",
		"hasOpenAIKey": h.hasOpenAIKey,
		"hasGeminiKey": h.hasGeminiKey,
	})
}
