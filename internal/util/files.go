package util

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"transmux/internal/alerts"
	"transmux/internal/config"
)

var unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
var multiSpaceRe = regexp.MustCompile(`\s+`)

// EnsureScratchDir creates the scratch root and removes any artifacts left
// over from a previous run.
func EnsureScratchDir() {
	dir := config.ScratchDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create scratch dir %s: %v", dir, err)
		}
		log.Printf("✓ Created scratch dir %s", dir)
		return
	}
	for _, e := range entries {
		os.RemoveAll(filepath.Join(dir, e.Name()))
	}
	log.Printf("✓ Cleared scratch dir %s", dir)
}

// SweepScratchDir deletes artifacts older than the retention window and
// reports free space on the scratch volume.
func SweepScratchDir() {
	now := time.Now()
	entries, err := os.ReadDir(config.ScratchDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > config.OutputRetention {
			if err := os.Remove(filepath.Join(config.ScratchDir, e.Name())); err == nil {
				log.Printf("[Sweep] Removed expired artifact: %s", e.Name())
			}
		}
	}

	if ds, err := GetDiskSpace(config.ScratchDir); err == nil {
		log.Printf("[DiskSpace] %.1fGB free / %.1fGB total (%.1fGB used)", ds.AvailGB, ds.TotalGB, ds.UsedGB)
		if ds.AvailGB < float64(config.DiskSpaceMinGB) {
			log.Printf("[DiskSpace] WARNING: Only %.1fGB free, below %dGB threshold!", ds.AvailGB, config.DiskSpaceMinGB)
			alerts.DiskSpaceLow(ds.AvailGB)
		}
	}
}

func StartSweepInterval() {
	ticker := time.NewTicker(config.SweepInterval)
	go func() {
		for range ticker.C {
			SweepScratchDir()
		}
	}()
}

func SanitizeFilename(filename string) string {
	s := unsafeFilenameRe.ReplaceAllString(filename, "_")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
