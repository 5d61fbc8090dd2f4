// Package indexer drives a full index build: discover documents under a
// root, build the in-memory index, and serialize the artifacts into the
// root's hidden index directory.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/gwenf/tinysearch/internal/index"
	"github.com/gwenf/tinysearch/internal/segment"
	"github.com/gwenf/tinysearch/internal/walker"
	"github.com/gwenf/tinysearch/pkg/config"
	pkgerrors "github.com/gwenf/tinysearch/pkg/errors"
	"github.com/gwenf/tinysearch/pkg/logger"
)

// LockFile is the exclusive build lock inside the index directory.
const LockFile = "build.lock"

// Stats summarises one completed build.
type Stats struct {
	Documents int
	Terms     int
	Elapsed   time.Duration
}

// Run builds the index for root from scratch, overwriting any previous
// artifacts. It holds an exclusive file lock for the duration so two
// builds cannot interleave artifact writes; a held lock fails fast with
// pkg/errors.ErrIndexLocked.
func Run(ctx context.Context, cfg *config.Config, root string) (*Stats, error) {
	start := time.Now()
	log := logger.WithComponent("indexer")

	dir := filepath.Join(root, cfg.Index.DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring build lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrIndexLocked, root)
	}
	defer lock.Unlock()

	sources, err := walker.Collect(root, cfg.Index.DirName, cfg.Index.Extensions)
	if err != nil {
		return nil, fmt.Errorf("discovering documents: %w", err)
	}
	log.Info("documents discovered", "root", root, "count", len(sources))

	mem, err := index.BuildParallel(ctx, sources, cfg.Index.Workers)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	if err := segment.NewWriter(dir).Write(mem); err != nil {
		return nil, fmt.Errorf("writing index: %w", err)
	}

	stats := &Stats{
		Documents: len(mem.Docs),
		Terms:     len(mem.Terms),
		Elapsed:   time.Since(start),
	}
	log.Info("index built",
		"root", root,
		"documents", stats.Documents,
		"terms", stats.Terms,
		"elapsed", stats.Elapsed,
	)
	return stats, nil
}

// Open returns a reader over the artifacts previously built for root.
func Open(cfg *config.Config, root string) (*segment.Reader, error) {
	return segment.Open(filepath.Join(root, cfg.Index.DirName))
}
