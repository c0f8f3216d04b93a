package services

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Job holds the per-file conversion state: a collision-resistant identifier
// and the input/output paths namespaced by it under the scratch root.
type Job struct {
	ID         string
	InputPath  string
	OutputPath string
	Format     string
	Codec      string
}

// Workspace allocates temp paths under a single injected scratch root.
// It never touches the filesystem; file creation is the caller's job.
type Workspace struct {
	Root string
}

func NewWorkspace(root string) *Workspace {
	return &Workspace{Root: root}
}

// Allocate returns a fresh Job with unique input/output paths. The input
// keeps the original extension so ffmpeg can sniff the container; the
// output carries the target format.
func (ws *Workspace) Allocate(originalName, format, codec string) *Job {
	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(originalName))
	return &Job{
		ID:         id,
		InputPath:  filepath.Join(ws.Root, id+"_input"+ext),
		OutputPath: filepath.Join(ws.Root, id+"_output."+format),
		Format:     format,
		Codec:      codec,
	}
}

// Reference returns the basename clients use against the download endpoint.
func (j *Job) Reference() string {
	return filepath.Base(j.OutputPath)
}
