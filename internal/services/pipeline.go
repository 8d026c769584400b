package services

import (
	"context"
	"log"

	"receitas-backend/internal/models"
)

// Narrow interfaces over the pipeline stages so tests can substitute spies.

type metadataExtractor interface {
	Extract(ctx context.Context, videoURL string, platform models.Platform) *models.VideoMetadata
}

type mediaAcquirer interface {
	Acquire(ctx context.Context, videoURL string, platform models.Platform) (*models.AcquisitionResult, error)
}

type audioNormalizer interface {
	Prepare(ctx context.Context, acq *models.AcquisitionResult, addCleanup func(func())) (string, error)
}

// Pipeline runs a single video URL through resolve → metadata → acquire →
// normalize → transcribe → detect language → extract. One request, one task:
// stages run strictly in sequence, and every registered cleanup executes
// exactly once on every exit path.
type Pipeline struct {
	metadata    metadataExtractor
	acquirer    mediaAcquirer
	normalizer  audioNormalizer
	transcriber TranscriptionProvider
	extractor   ExtractionProvider
}

func NewPipeline(
	metadata metadataExtractor,
	acquirer mediaAcquirer,
	normalizer audioNormalizer,
	transcriber TranscriptionProvider,
	extractor ExtractionProvider,
) *Pipeline {
	return &Pipeline{
		metadata:    metadata,
		acquirer:    acquirer,
		normalizer:  normalizer,
		transcriber: transcriber,
		extractor:   extractor,
	}
}

func (p *Pipeline) Process(ctx context.Context, videoURL string) (*models.Recipe, error) {
	platform := DetectPlatform(videoURL)
	log.Printf("processing video: platform=%s", platform)

	var cleanups []func()
	addCleanup := func(fn func()) { cleanups = append(cleanups, fn) }
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// Best-effort: a nil result here is normal.
	meta := p.metadata.Extract(ctx, videoURL, platform)

	acq, err := p.acquirer.Acquire(ctx, videoURL, platform)
	if err != nil {
		return nil, err
	}
	if acq.Cleanup != nil {
		addCleanup(acq.Cleanup)
	}

	meta = MergeMetadata(meta, acq.Metadata, platform)

	audioPath, err := p.normalizer.Prepare(ctx, acq, addCleanup)
	if err != nil {
		return nil, err
	}

	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	log.Printf("transcription done: %d chars", len(transcript))

	lang := DetectLanguage(transcript)

	in := ExtractionInput{
		Transcript: transcript,
		Language:   lang,
		VideoURL:   videoURL,
	}
	if meta != nil {
		in.Title = meta.Title
		in.Description = CleanDescription(meta.Description)
	}

	recipe, err := p.extractor.Extract(ctx, in)
	if err != nil {
		return nil, err
	}

	log.Printf("recipe extracted: %s", recipe.Titulo)
	return recipe, nil
}
