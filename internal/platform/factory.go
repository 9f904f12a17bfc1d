package platform

import (
	"github.com/aretw0/sidenote/pkg/adapters/fs"
	"github.com/aretw0/sidenote/pkg/engine"
	"github.com/aretw0/sidenote/pkg/render"
)

// New assembles an engine from functional options.
//
//	eng, err := sidenote.New(sidenote.WithStorePath("./notes.json"))
//
// When no store (or path) is given, the store location is resolved from the
// environment, the project tree and the user config file, in that order.
func New(opts ...Option) (*engine.Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		path, err := ResolveStorePath(o.storePath, "", "")
		if err != nil {
			return nil, err
		}
		store = fs.NewStore(fs.Config{
			Path:   path,
			Logger: o.logger,
			Clock:  o.clock,
		})
	}

	host := o.host
	if host == nil {
		host = engine.NopHost{}
	}

	return engine.New(engine.Config{
		Store:          store,
		Resolver:       render.NewResolver(o.wrapWidth),
		Host:           host,
		Editor:         o.editor,
		Confirmer:      o.confirmer,
		Logger:         o.logger,
		ClickDebounce:  o.debounce,
		ClickWindow:    o.clickWindow,
		OpenSettle:     o.settleDelays,
		MutationSettle: 0,
	})
}
