package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/xyhuang/mlbox/pkg/mlbox"
	"github.com/xyhuang/mlbox/pkg/platform"
	"github.com/xyhuang/mlbox/pkg/runner/docker"
	"github.com/xyhuang/mlbox/pkg/stores"
)

// ledgerFile is the run ledger database inside a box directory.
const ledgerFile = ".mlbox/runs.db"

func openBox() (*mlbox.Box, error) {
	if boxPath == "" {
		return nil, fmt.Errorf("--mlbox is required")
	}
	return mlbox.Open(boxPath)
}

func buildConfig(box *mlbox.Box, taskName string) (*platform.Config, error) {
	if platformPath == "" {
		return nil, fmt.Errorf("--platform is required")
	}
	return platform.Build(box, platformPath, taskName)
}

// openLedger opens the box's run ledger. Returns nil when recording is
// disabled; the caller must Close a non-nil store.
func openLedger(ctx context.Context, box *mlbox.Box) (*stores.SQLiteStore, error) {
	if noLedger {
		return nil, nil
	}
	path := filepath.Join(box.Root, ledgerFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger directory: %w", err)
	}
	store, err := stores.NewSQLiteStore(stores.Config{Path: path})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// newRunner wires a docker runner for the box, with the run ledger
// attached unless disabled. The returned cleanup closes the ledger.
func newRunner(ctx context.Context, box *mlbox.Box, cfg *platform.Config) (*docker.Runner, func(), error) {
	store, err := openLedger(ctx, box)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close run ledger")
		}
	}

	opts := docker.Options{}
	if store != nil {
		opts.Ledger = store
	}
	runner, err := docker.New(box, cfg, opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return runner, cleanup, nil
}
