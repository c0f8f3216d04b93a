package services

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsMP4(t *testing.T) {
	job := &Job{
		InputPath:  "/scratch/id_input.mov",
		OutputPath: "/scratch/id_output.mp4",
		Format:     "mp4",
		Codec:      "libx264",
	}

	args := BuildArgs(job)

	assert.Equal(t, []string{
		"-y",
		"-i", "/scratch/id_input.mov",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "28",
		"-threads", "0",
		"/scratch/id_output.mp4",
	}, args)
}

func TestBuildArgsWebmUsesLibvpx(t *testing.T) {
	job := &Job{
		InputPath:  "/scratch/id_input.avi",
		OutputPath: "/scratch/id_output.webm",
		Format:     "webm",
		Codec:      "libvpx",
	}

	args := BuildArgs(job)

	assert.Contains(t, args, "libvpx")
	assert.Equal(t, "/scratch/id_output.webm", args[len(args)-1], "output path must be last")
	assert.Equal(t, "-y", args[0])
}

func encoderTestJob(t *testing.T) *Job {
	t.Helper()
	ws := NewWorkspace(t.TempDir())
	job := ws.Allocate("clip.mov", "mp4", "libx264")
	require.NoError(t, os.WriteFile(job.InputPath, []byte("not a real video"), 0644))
	return job
}

func TestRunClassifiesSpawnFailure(t *testing.T) {
	job := encoderTestJob(t)
	enc := &FFmpegEncoder{Binary: filepath.Join(t.TempDir(), "missing-encoder")}

	_, err := enc.Run(context.Background(), job)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, KindSpawnFailed, convErr.Kind)
}

func TestRunClassifiesEncodeFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not on PATH")
	}
	job := encoderTestJob(t)
	enc := &FFmpegEncoder{Binary: "false"}

	_, err := enc.Run(context.Background(), job)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, KindEncodeFailed, convErr.Kind)
}

func TestRunClassifiesOutputMissing(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not on PATH")
	}
	job := encoderTestJob(t)
	enc := &FFmpegEncoder{Binary: "true"}

	_, err := enc.Run(context.Background(), job)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, KindOutputMissing, convErr.Kind, "exit 0 without an artifact is still a failure")
}

func TestRunClassifiesExpiredDeadline(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not on PATH")
	}
	job := encoderTestJob(t)
	enc := &FFmpegEncoder{Binary: "true"}

	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	_, err := enc.Run(ctx, job)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, KindTimeout, convErr.Kind)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}
