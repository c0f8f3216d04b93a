package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Generated output artifacts are always <uuid>_output.<ext>. Anything else
// in a download request is rejected before touching the filesystem.
var artifactNameRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}_output\.[a-z0-9]{1,5}$`)

// ValidArtifactName reports whether name matches the generated-artifact
// pattern and, joined to root, stays inside it. Guards the delivery
// endpoint against path traversal.
func ValidArtifactName(root, name string) bool {
	if !artifactNameRe.MatchString(name) {
		return false
	}
	cleaned := filepath.Clean(filepath.Join(root, name))
	return strings.HasPrefix(cleaned, root+string(filepath.Separator))
}
