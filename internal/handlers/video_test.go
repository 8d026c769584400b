package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"receitas-backend/internal/models"
	"receitas-backend/internal/services"
)

type stubPipeline struct {
	recipe *models.Recipe
	err    error
	gotURL string
}

func (s *stubPipeline) Process(ctx context.Context, videoURL string) (*models.Recipe, error) {
	s.gotURL = videoURL
	return s.recipe, s.err
}

func postProcess(t *testing.T, h *VideoHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/process-video", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Process(rec, req)
	return rec
}

func decodeProcessResponse(t *testing.T, rec *httptest.ResponseRecorder) models.ProcessVideoResponse {
	t.Helper()
	var resp models.ProcessVideoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp
}

func TestProcess_Success(t *testing.T) {
	pipeline := &stubPipeline{recipe: &models.Recipe{ID: "1-abc", Titulo: "Bolo de cenoura"}}
	h := NewVideoHandler(pipeline, true, false)

	rec := postProcess(t, h, `{"videoUrl":"https://youtu.be/abc123def45"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeProcessResponse(t, rec)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Recipe == nil || resp.Recipe.Titulo != "Bolo de cenoura" {
		t.Errorf("Recipe = %+v", resp.Recipe)
	}
	if pipeline.gotURL != "https://youtu.be/abc123def45" {
		t.Errorf("pipeline received %q", pipeline.gotURL)
	}
}

func TestProcess_InputValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"malformed json", `{"videoUrl":`, "Body da requisição inválido"},
		{"missing url", `{}`, "URL do vídeo é obrigatória"},
		{"unsupported platform", `{"videoUrl":"https://vimeo.com/12345"}`, "URL inválida. Use links do YouTube, TikTok ou Instagram."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &stubPipeline{}
			h := NewVideoHandler(pipeline, true, false)

			rec := postProcess(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}

			resp := decodeProcessResponse(t, rec)
			if resp.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", resp.Error, tt.wantError)
			}
			if pipeline.gotURL != "" {
				t.Error("pipeline should not run on invalid input")
			}
		})
	}
}

func TestProcess_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"acquisition failure", &services.AcquisitionError{Platform: "tiktok", Message: "Não foi possível obter URL do vídeo do TikTok. Tente um vídeo público."}, http.StatusInternalServerError},
		{"media too large", &services.NormalizationError{Message: "Mídia muito grande para transcrição. Use um vídeo mais curto."}, http.StatusInternalServerError},
		{"transcription failure", &services.TranscriptionError{Message: "Erro ao transcrever áudio: transcrição vazia"}, http.StatusInternalServerError},
		{"extraction failure", &services.ExtractionError{Message: "Resposta da IA inválida"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewVideoHandler(&stubPipeline{err: tt.err}, true, false)

			rec := postProcess(t, h, `{"videoUrl":"https://youtu.be/abc123def45"}`)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			resp := decodeProcessResponse(t, rec)
			if resp.Success {
				t.Error("Success = true on failure")
			}
			if resp.Error != tt.err.Error() {
				t.Errorf("Error = %q, want %q", resp.Error, tt.err.Error())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	h := NewVideoHandler(&stubPipeline{}, true, false)

	req := httptest.NewRequest(http.MethodGet, "/process-video", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v", resp["status"])
	}
	if resp["hasOpenAIKey"] != true || resp["hasGeminiKey"] != false {
		t.Errorf("key flags = %v / %v", resp["hasOpenAIKey"], resp["hasGeminiKey"])
	}
}
