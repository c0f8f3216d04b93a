package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"transmux/internal/alerts"
	"transmux/internal/config"
)

// UploadedFile is one multipart upload, held in memory for the duration of
// the request. Never persisted beyond the job's input temp file.
type UploadedFile struct {
	OriginalName string
	MimeType     string
	Content      []byte
	Size         int64
}

// ConversionResult is the per-file outcome. Success populates NewName,
// MimeType, DownloadRef and Size; failure populates Error and leaves
// DownloadURL as "#". Size is omitted on failure so clients can tell the
// shapes apart by field presence.
type ConversionResult struct {
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
	MimeType     string `json:"mimeType"`
	DownloadURL  string `json:"downloadUrl"`
	Size         int64  `json:"size,omitempty"`
	Error        string `json:"error,omitempty"`

	// DownloadRef is the basename-derived delivery reference; the transport
	// layer combines it with the request origin to form DownloadURL.
	DownloadRef string `json:"-"`
}

// Converter fans a batch of uploads out to the encoder, one job per file.
type Converter struct {
	Workspace *Workspace
	Encoder   Encoder

	// MaxConcurrent caps in-flight encoder processes per batch.
	MaxConcurrent int
	// JobTimeout bounds a single encode.
	JobTimeout time.Duration
}

func NewConverter(ws *Workspace, enc Encoder) *Converter {
	return &Converter{
		Workspace:     ws,
		Encoder:       enc,
		MaxConcurrent: config.MaxConcurrentJobs,
		JobTimeout:    config.ConvertTimeout,
	}
}

// ConvertBatch validates the target format up front, then converts every
// file concurrently. A per-file failure never fails the batch; the returned
// slice is one-to-one with files, in submission order. The returned error is
// non-nil only for validation failures, before any filesystem work.
func (c *Converter) ConvertBatch(ctx context.Context, files []UploadedFile, format string) ([]ConversionResult, error) {
	if !config.Contains(config.AllowedVideoFormats, format) {
		return nil, fmt.Errorf("invalid or missing format. Supported formats: %s",
			strings.Join(config.AllowedVideoFormats, ", "))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no video files uploaded")
	}

	results := make([]ConversionResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	limit := c.MaxConcurrent
	if limit <= 0 {
		limit = -1
	}
	g.SetLimit(limit)

	for i := range files {
		i := i
		g.Go(func() error {
			results[i] = c.convertOne(ctx, &files[i], format)
			return nil
		})
	}
	g.Wait()

	return results, nil
}

func (c *Converter) convertOne(ctx context.Context, file *UploadedFile, format string) ConversionResult {
	job := c.Workspace.Allocate(file.OriginalName, format, config.VideoCodecs[format])

	log.Printf("[%s] Converting %q to %s", job.ID, file.OriginalName, format)

	size, err := c.runJob(ctx, job, file.Content)
	if err != nil {
		log.Printf("[%s] Conversion failed: %v", job.ID, err)
		var convErr *ConversionError
		if errors.As(err, &convErr) && convErr.Kind == KindSpawnFailed {
			alerts.EncoderMissing(convErr.Detail)
		} else {
			alerts.ConversionFailed(job.ID, format, err)
		}
		os.Remove(job.OutputPath)
		return ConversionResult{
			OriginalName: file.OriginalName,
			MimeType:     "application/octet-stream",
			DownloadURL:  "#",
			Error:        err.Error(),
		}
	}

	log.Printf("[%s] Conversion complete (%d bytes)", job.ID, size)
	return ConversionResult{
		OriginalName: file.OriginalName,
		NewName:      job.Reference(),
		MimeType:     config.VideoMIMEs[format],
		DownloadRef:  job.Reference(),
		Size:         size,
	}
}

// runJob persists the input, runs the encoder under the job deadline, and
// deletes the input on every exit path.
func (c *Converter) runJob(ctx context.Context, job *Job, content []byte) (int64, error) {
	if err := os.WriteFile(job.InputPath, content, 0644); err != nil {
		return 0, &ConversionError{Kind: KindIO, Detail: fmt.Sprintf("failed to write input file: %v", err)}
	}
	defer os.Remove(job.InputPath)

	jobCtx := ctx
	if c.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, c.JobTimeout)
		defer cancel()
	}

	return c.Encoder.Run(jobCtx, job)
}
