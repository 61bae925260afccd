package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildsrc/internal/adapters/logger"
	"go.trai.ch/buildsrc/internal/core/ports"
)

const (
	NodeID         graft.ID = "adapter.config_loader"
	CatalogNodeID  graft.ID = "adapter.catalog_loader"
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.CatalogLoader]{
		ID:        CatalogNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogLoader, error) {
			return NewCatalogLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}
