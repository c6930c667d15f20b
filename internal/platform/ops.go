package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/core"
)

// Init prepares the backing repository for the given path.
// The path is adapter-specific: the JSON/YAML file for "fs", the database
// file for "sqlite". An empty path selects the default location in $HOME.
//
// It returns the initialized core.Repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	return initRepository(context.Background(), path, buildOptions(opts))
}

func initRepository(ctx context.Context, path string, o *options) (core.Repository, error) {
	if o.repository != nil {
		if err := o.repository.Initialize(ctx); err != nil {
			return nil, err
		}
		return o.repository, nil
	}

	resolved := resolvePath(path, o)

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = fs.NewRepository(fs.Config{
			Path:         resolved,
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			ErrorHandler: o.watchHandler,
		})
	case AdapterSQLite:
		repo = sqlite.NewRepository(sqlite.Config{
			Path:      resolved,
			MustExist: o.mustExist,
			ReadOnly:  o.readOnly,
			Logger:    o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// resolvePath applies the dev sandbox rules and logs the outcome.
func resolvePath(path string, o *options) string {
	// Bypass the sandbox when read-only (inherently safe) or explicitly disabled.
	bypassSafety := o.readOnly || !o.devSafety
	dev := IsDevRun()
	useTemp := o.forceTemp || (dev && !bypassSafety)

	resolved := ResolveDataPath(path, DefaultDataPath(o.adapter), useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
		case dev && o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case dev:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	return resolved
}
