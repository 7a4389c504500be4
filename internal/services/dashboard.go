package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/dto"
	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
)

// dashboardService hands out one grid controller per product, created on
// first use.
type dashboardService struct {
	store layoutStore

	mu    sync.Mutex
	grids map[models.ProductID]*gridController
}

func NewDashboardService(store layoutStore) *dashboardService {
	return &dashboardService{
		store: store,
		grids: make(map[models.ProductID]*gridController),
	}
}

func (s *dashboardService) grid(ctx context.Context, product models.ProductID) (*gridController, error) {
	if !product.Valid() {
		return nil, errs.NewNotFoundError(fmt.Sprintf("unknown product %q", product))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grids[product]
	if !ok {
		g = NewGridController(ctx, product, s.store, catalog.DefaultLayout(product))
		s.grids[product] = g
	}
	return g, nil
}

func (s *dashboardService) GetLayout(ctx context.Context, product models.ProductID) (dto.LayoutResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.LayoutResponse{}, err
	}
	return s.layout(ctx, g, g.Items()), nil
}

func (s *dashboardService) ApplyGeometryChange(ctx context.Context, product models.ProductID, req dto.GeometryChangeRequest) (dto.LayoutResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.LayoutResponse{}, err
	}
	if err := g.ApplyGeometryChange(ctx, req.Items); err != nil {
		return dto.LayoutResponse{}, err
	}
	return s.layout(ctx, g, g.Items()), nil
}

func (s *dashboardService) AddWidget(ctx context.Context, product models.ProductID, req dto.AddWidgetRequest) (dto.AddWidgetResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.AddWidgetResponse{}, err
	}
	p, err := g.AddWidget(ctx, req.WidgetID)
	if err != nil {
		return dto.AddWidgetResponse{}, err
	}
	def, _ := catalog.WidgetByID(p.ID)
	return dto.AddWidgetResponse{Placement: p, Notice: "Added " + def.Title}, nil
}

func (s *dashboardService) RemoveWidget(ctx context.Context, product models.ProductID, widgetID string) (dto.RemoveWidgetResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.RemoveWidgetResponse{}, err
	}
	return dto.RemoveWidgetResponse{Removed: g.RemoveWidget(ctx, widgetID)}, nil
}

func (s *dashboardService) ResetLayout(ctx context.Context, product models.ProductID) (dto.LayoutResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.LayoutResponse{}, err
	}
	return s.layout(ctx, g, g.ResetLayout(ctx)), nil
}

func (s *dashboardService) GetCatalog(ctx context.Context, product models.ProductID) (dto.CatalogResponse, error) {
	g, err := s.grid(ctx, product)
	if err != nil {
		return dto.CatalogResponse{}, err
	}
	return dto.CatalogResponse{
		Product:    product,
		Widgets:    catalog.WidgetsForProduct(product),
		Available:  g.AvailableWidgets(),
		Categories: catalog.Categories(),
	}, nil
}

func (s *dashboardService) GetWidget(_ context.Context, widgetID string) (models.WidgetDefinition, error) {
	w, ok := catalog.WidgetByID(widgetID)
	if !ok {
		return models.WidgetDefinition{}, errs.NewNotFoundError(fmt.Sprintf("widget %q not found", widgetID))
	}
	return w, nil
}

func (s *dashboardService) layout(ctx context.Context, g *gridController, items []models.WidgetPlacement) dto.LayoutResponse {
	return dto.LayoutResponse{
		Product:    g.Product(),
		Version:    store.CurrentVersion,
		Items:      items,
		Customized: g.Customized(ctx),
	}
}
