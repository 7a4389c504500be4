package dto

import (
	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
)

// --- Request types ---

// GeometryChangeRequest carries the complete set of placements reported by
// the grid surface after a drag or resize gesture.
type GeometryChangeRequest struct {
	Items []models.WidgetPlacement `json:"items" validate:"required"`
}

type AddWidgetRequest struct {
	WidgetID string `json:"widgetId" validate:"required"`
}

// --- Response types ---

type LayoutResponse struct {
	Product    models.ProductID         `json:"product"`
	Version    int                      `json:"version"`
	Items      []models.WidgetPlacement `json:"items"`
	Customized bool                     `json:"customized"`
}

type AddWidgetResponse struct {
	Placement models.WidgetPlacement `json:"placement"`
	Notice    string                 `json:"notice"`
}

type RemoveWidgetResponse struct {
	Removed bool `json:"removed"`
}

// CatalogResponse backs the add-widget menu: every widget of the product,
// the ones not yet placed, and the category filters.
type CatalogResponse struct {
	Product    models.ProductID          `json:"product"`
	Widgets    []models.WidgetDefinition `json:"widgets"`
	Available  []models.WidgetDefinition `json:"available"`
	Categories []catalog.Category        `json:"categories"`
}
