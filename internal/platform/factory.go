package platform

import (
	"context"

	"github.com/aretw0/notepad/pkg/core"
)

// Open initializes the repository and loads the note collection.
//
//	svc, err := notepad.Open("", notepad.WithLogger(logger))
//
// A corrupt backing store does not fail Open: the service starts empty and
// the cause is available through Service.LoadErr. Only errors preparing the
// repository itself (unknown adapter, unreachable directory) are returned.
func Open(path string, opts ...Option) (*core.Service, error) {
	ctx := context.Background()
	o := buildOptions(opts)

	repo, err := initRepository(ctx, path, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []core.ServiceOption{core.WithServiceReadOnly(o.readOnly)}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithServiceLogger(o.logger))
	}
	if o.clock != nil {
		svcOpts = append(svcOpts, core.WithClock(o.clock))
	}

	service := core.NewService(repo, svcOpts...)

	// Load logs the failure and keeps it in LoadErr.
	_ = service.Load(ctx)

	return service, nil
}
