package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// AI providers. At least one key must be set; OpenAI is primary when
	// both are present.
	OpenAIAPIKey string
	GeminiAPIKey string

	// Per-stage model overrides
	WhisperModel          string
	ChatModel             string
	GeminiTranscribeModel string
	GeminiExtractModel    string

	// External tools
	YtDlpPath  string
	FFmpegPath string

	// Pipeline behavior
	EnableToolMetadata bool  // run yt-dlp metadata dump on non-YouTube platforms too
	PreferTikTokMusic  bool  // prefer TikTok's music-only stream over the video stream
	MaxUploadBytes     int64 // transcription upload ceiling

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:          getEnvOrDefault("OPENAI_API_KEY", ""),
		GeminiAPIKey:          getEnvOrDefault("GEMINI_API_KEY", ""),
		WhisperModel:          getEnvOrDefault("WHISPER_MODEL", "whisper-1"),
		ChatModel:             getEnvOrDefault("CHAT_MODEL", "gpt-4o-mini"),
		GeminiTranscribeModel: getEnvOrDefault("GEMINI_TRANSCRIBE_MODEL", "gemini-1.5-flash"),
		GeminiExtractModel:    getEnvOrDefault("GEMINI_EXTRACT_MODEL", "gemini-1.5-flash"),
		YtDlpPath:             getEnvOrDefault("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:            getEnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		EnableToolMetadata:    getEnvAsBoolOrDefault("ENABLE_YTDLP_METADATA", false),
		PreferTikTokMusic:     getEnvAsBoolOrDefault("PREFER_TIKTOK_MUSIC", false),
		MaxUploadBytes:        getEnvAsInt64OrDefault("MAX_UPLOAD_BYTES", 24*1024*1024),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.OpenAIAPIKey == "" && cfg.GeminiAPIKey == "" {
		panic("either OPENAI_API_KEY or GEMINI_API_KEY must be set")
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsInt64OrDefault(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
