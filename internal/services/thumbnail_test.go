package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testThumbnailService(metadata *MetadataService, tikwm, oembed, ddinsta, instasave *httptest.Server) *ThumbnailService {
	client := &http.Client{}
	return &ThumbnailService{
		metadata:    metadata,
		tikwm:       NewTikWMClient(serverURL(tikwm), client),
		oembed:      NewTikTokOEmbedClient(serverURL(oembed), client),
		ddinstagram: NewDDInstagramClient(serverURL(ddinsta), client),
		instasave:   NewInstaSaveClient(serverURL(instasave), client),
	}
}

func offlineMetadata() *MetadataService {
	return NewMetadataService(&fakeDumper{err: errors.New("tool unavailable")}, false)
}

func TestThumbnailResolve_ToolMetadataWins(t *testing.T) {
	dumper := &fakeDumper{payload: []byte(`{"thumbnail":"https://i.ytimg.com/vi/abc/maxres.jpg"}`)}
	s := testThumbnailService(NewMetadataService(dumper, false), nil, nil, nil, nil)

	url, source, err := s.Resolve(context.Background(), "https://youtu.be/abc123def45")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://i.ytimg.com/vi/abc/maxres.jpg" {
		t.Errorf("url = %q", url)
	}
	if source != imageSourceYouTube {
		t.Errorf("source = %q, want %q", source, imageSourceYouTube)
	}
}

func TestThumbnailResolve_TikTokCoverChain(t *testing.T) {
	tikwm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"play":"https://cdn.example/v.mp4","origin_cover":"https://cdn.example/origin.jpg"}}`))
	}))
	defer tikwm.Close()

	s := testThumbnailService(offlineMetadata(), tikwm, nil, nil, nil)

	url, source, err := s.Resolve(context.Background(), tiktokTestURL)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://cdn.example/origin.jpg" {
		t.Errorf("url = %q", url)
	}
	if source != imageSourceTikTokCover {
		t.Errorf("source = %q", source)
	}
}

func TestThumbnailResolve_TikTokFallsBackToOEmbed(t *testing.T) {
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Coxinha","thumbnail_url":"https://cdn.example/oembed.jpg"}`))
	}))
	defer oembed.Close()

	s := testThumbnailService(offlineMetadata(), nil, oembed, nil, nil)

	url, _, err := s.Resolve(context.Background(), tiktokTestURL)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://cdn.example/oembed.jpg" {
		t.Errorf("url = %q", url)
	}
}

func TestThumbnailResolve_InstagramChain(t *testing.T) {
	instasave := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"video_url":"https://cdn.example/reel.mp4","thumb":"https://cdn.example/reel-thumb.jpg"}`))
	}))
	defer instasave.Close()

	s := testThumbnailService(offlineMetadata(), nil, nil, nil, instasave)

	url, source, err := s.Resolve(context.Background(), "https://www.instagram.com/reel/Cxyz123/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://cdn.example/reel-thumb.jpg" {
		t.Errorf("url = %q", url)
	}
	if source != imageSourceInstagram {
		t.Errorf("source = %q", source)
	}
}

func TestThumbnailResolve_ExhaustionIsNotFound(t *testing.T) {
	s := testThumbnailService(offlineMetadata(), nil, nil, nil, nil)

	_, _, err := s.Resolve(context.Background(), tiktokTestURL)
	if err == nil {
		t.Fatal("Resolve() should fail when every source fails")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if notFound.Message != "Não foi possível obter uma capa para este vídeo" {
		t.Errorf("Message = %q", notFound.Message)
	}
}
