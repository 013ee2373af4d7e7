package main

import (
	"context"
	"fmt"

	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/persist"
	"github.com/ttpr0/transit-catalogue/preproc"
	"github.com/ttpr0/transit-catalogue/render"
	"github.com/ttpr0/transit-catalogue/routing"
	"github.com/ttpr0/transit-catalogue/storage"
	"golang.org/x/exp/slog"
)

// BuildTransitManager builds the graph and solves the route index for a
// filled catalogue.
func BuildTransitManager(cat *catalogue.TransportCatalogue, render_settings []byte, settings comps.RoutingSettings) (*TransitManager, error) {
	renderer, err := _NewRenderer(render_settings)
	if err != nil {
		return nil, err
	}
	g, err := preproc.BuildTransitGraph(cat, settings)
	if err != nil {
		return nil, err
	}
	router := routing.BuildTransitRouter(g)
	snapshot := persist.NewSnapshot(cat, render_settings, settings, router)
	slog.Info(fmt.Sprintf("built snapshot %v", snapshot.ID))

	return &TransitManager{
		snapshot: snapshot,
		handler:  NewRequestHandler(cat, router, renderer, settings),
	}, nil
}

// LoadTransitManager restores the most recent snapshot from the store. The
// route index is taken as stored.
func LoadTransitManager(ctx context.Context, store storage.Store) (*TransitManager, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := persist.Decode(data)
	if err != nil {
		return nil, err
	}
	router, err := snapshot.Router()
	if err != nil {
		return nil, err
	}
	renderer, err := _NewRenderer(snapshot.RenderSettings)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded snapshot %v created at %v", snapshot.ID, snapshot.CreatedAt))

	return &TransitManager{
		snapshot: snapshot,
		handler:  NewRequestHandler(snapshot.Catalogue, router, renderer, snapshot.Routing),
	}, nil
}

type TransitManager struct {
	snapshot *persist.Snapshot
	handler  *RequestHandler
}

func (self *TransitManager) Save(ctx context.Context, store storage.Store) error {
	data, err := persist.Encode(self.snapshot)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save snapshot %v: %w", self.snapshot.ID, err)
	}
	slog.Info(fmt.Sprintf("saved snapshot %v (%v bytes)", self.snapshot.ID, len(data)))
	return nil
}

func (self *TransitManager) GetHandler() *RequestHandler {
	return self.handler
}

func (self *TransitManager) GetSnapshot() *persist.Snapshot {
	return self.snapshot
}

func _NewRenderer(data []byte) (*render.MapRenderer, error) {
	settings, err := render.ParseSettings(data)
	if err != nil {
		return nil, err
	}
	return render.NewMapRenderer(settings), nil
}
