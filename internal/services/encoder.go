package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"

	"transmux/internal/config"
)

// ErrorKind distinguishes why a conversion failed. Spawn failures point at
// the environment (missing binary), encode failures at the input.
type ErrorKind string

const (
	KindIO            ErrorKind = "io"
	KindSpawnFailed   ErrorKind = "spawn_failed"
	KindEncodeFailed  ErrorKind = "encode_failed"
	KindOutputMissing ErrorKind = "output_missing"
	KindTimeout       ErrorKind = "timeout"
)

type ConversionError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ConversionError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return e.Detail
}

// Encoder turns a persisted input file into the job's output artifact and
// reports its final byte size.
type Encoder interface {
	Run(ctx context.Context, job *Job) (int64, error)
}

// FFmpegEncoder shells out to ffmpeg, one process per job.
type FFmpegEncoder struct {
	// Binary is the encoder executable, "ffmpeg" unless overridden.
	Binary string
	// Timeout bounds a single encode; the process is killed on expiry.
	Timeout func() (context.Context, context.CancelFunc)
}

func NewFFmpegEncoder() *FFmpegEncoder {
	return &FFmpegEncoder{Binary: "ffmpeg"}
}

// BuildArgs constructs the fixed-preset ffmpeg invocation for a job.
// Output path last so ffmpeg treats everything before it as input options.
func BuildArgs(job *Job) []string {
	return []string{
		"-y",
		"-i", job.InputPath,
		"-c:v", job.Codec,
		"-preset", config.EncodePreset,
		"-crf", strconv.Itoa(config.EncodeCRF),
		"-threads", "0",
		job.OutputPath,
	}
}

func (e *FFmpegEncoder) Run(ctx context.Context, job *Job) (int64, error) {
	cmd := exec.CommandContext(ctx, e.Binary, BuildArgs(job)...)
	cmd.Stdin = nil

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return 0, &ConversionError{Kind: KindSpawnFailed, Detail: err.Error()}
	}

	if err := cmd.Start(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, &ConversionError{Kind: KindTimeout, Detail: "encoder deadline expired before start"}
		}
		return 0, &ConversionError{Kind: KindSpawnFailed, Detail: err.Error()}
	}

	stderrBytes, _ := io.ReadAll(stderrPipe)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, &ConversionError{
				Kind:   KindTimeout,
				Detail: fmt.Sprintf("encoder killed after deadline (%s)", config.ConvertTimeout),
			}
		}
		errStr := string(stderrBytes)
		if len(errStr) > 500 {
			errStr = errStr[len(errStr)-500:]
		}
		log.Printf("[%s] ffmpeg failed (code %d). Last 500 chars: %s", job.ID, cmd.ProcessState.ExitCode(), errStr)
		return 0, &ConversionError{
			Kind:   KindEncodeFailed,
			Detail: fmt.Sprintf("encoding failed (code %d): %s", cmd.ProcessState.ExitCode(), errStr),
		}
	}

	// Exit 0 alone doesn't prove a usable artifact.
	stat, err := os.Stat(job.OutputPath)
	if err != nil {
		return 0, &ConversionError{Kind: KindOutputMissing, Detail: "encoder exited cleanly but produced no output"}
	}
	return stat.Size(), nil
}
