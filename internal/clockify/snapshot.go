package clockify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SnapshotWriter dumps raw API payloads to timestamped files for
// debugging. Dumps are purely diagnostic and never read back; write
// failures are logged, not propagated.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter creates a writer that stores snapshots under dir.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{dir: dir}
}

// Dump writes one payload. A nil receiver disables snapshots, so callers
// never need to guard the call. The uuid suffix keeps names unique when
// concurrent window fetches dump within the same second.
func (w *SnapshotWriter) Dump(kind string, payload []byte) {
	if w == nil {
		return
	}
	name := fmt.Sprintf("%s-%s-%s.json",
		kind, time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(w.dir, name)

	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		slog.Warn("creating snapshot directory failed", "dir", w.dir, "error", err)
		return
	}

	// Atomic write: temp file then rename, so a crash never leaves a
	// half-written snapshot.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		slog.Warn("writing snapshot failed", "path", path, "error", err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		slog.Warn("renaming snapshot failed", "path", path, "error", err)
	}
}
