package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

var Version = "dev"

var (
	Port    string
	EnvMode string

	// PublicOrigin, when set, overrides the request host/scheme when
	// composing download URLs (useful behind a reverse proxy).
	PublicOrigin string

	ScratchDir string

	MaxConcurrentJobs int
	ConvertTimeout    time.Duration
	OutputRetention   time.Duration

	DiscordWebhookURL string
	DiscordPingUserID string
	DiscordAlerts     bool
)

const (
	FileSizeLimit      = 2 * 1024 * 1024 * 1024
	MultipartMemoryMax = 32 << 20
	DiskSpaceMinGB     = 5
	MaxBatchFiles      = 20
	SweepInterval      = 5 * time.Minute
)

// Encoding preset and quality are fixed; transcode tuning is out of scope.
const (
	EncodePreset = "fast"
	EncodeCRF    = 28
)

var VideoMIMEs = map[string]string{
	"mp4":  "video/mp4",
	"webm": "video/webm",
}

var VideoCodecs = map[string]string{
	"mp4":  "libx264",
	"webm": "libvpx",
}

var ImageMIMEs = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
	"gif":  "image/gif",
}

var (
	AllowedVideoFormats = []string{"mp4", "webm"}
	AllowedImageFormats = []string{"png", "jpg", "jpeg", "webp", "gif"}
)

func Load() {
	Port = envOrDefault("PORT", "3001")
	EnvMode = envOrDefault("NODE_ENV", "development")
	PublicOrigin = os.Getenv("PUBLIC_ORIGIN")

	ScratchDir = envOrDefault("SCRATCH_DIR", filepath.Join(os.TempDir(), "transmux"))

	MaxConcurrentJobs = envInt("MAX_CONCURRENT_JOBS", runtime.NumCPU())
	if MaxConcurrentJobs < 1 {
		MaxConcurrentJobs = 1
	}

	timeoutMin := envInt("CONVERT_TIMEOUT_MIN", 10)
	if timeoutMin < 1 {
		timeoutMin = 10
	}
	ConvertTimeout = time.Duration(timeoutMin) * time.Minute

	retentionMin := envInt("OUTPUT_RETENTION_MIN", 20)
	if retentionMin < 1 {
		retentionMin = 20
	}
	OutputRetention = time.Duration(retentionMin) * time.Minute

	DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	DiscordPingUserID = os.Getenv("DISCORD_PING_USER_ID")
	DiscordAlerts = DiscordWebhookURL != ""
	if !DiscordAlerts {
		log.Println("[WARN] DISCORD_WEBHOOK_URL not set, failure alerts disabled")
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func Contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
