package models

// ProductID identifies one dashboard context.
type ProductID string

const (
	ProductVBR ProductID = "vbr" // Backup & Replication
	ProductVBM ProductID = "vbm" // Backup for Microsoft 365
)

// Products lists every known dashboard in display order.
var Products = []ProductID{ProductVBR, ProductVBM}

func (p ProductID) Valid() bool {
	return p == ProductVBR || p == ProductVBM
}

type WidgetCategory string

const (
	CategoryStats  WidgetCategory = "stats"
	CategoryCharts WidgetCategory = "charts"
	CategoryTables WidgetCategory = "tables"
	CategoryInfo   WidgetCategory = "info"
)

// WidgetSize is a width/height pair in grid units.
type WidgetSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// WidgetDefinition is an immutable catalog entry.
type WidgetDefinition struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    WidgetCategory `json:"category"`
	DefaultSize WidgetSize     `json:"defaultSize"`
	MinSize     WidgetSize     `json:"minSize"`
	MaxSize     WidgetSize     `json:"maxSize"`
	Component   string         `json:"component"`
	Product     ProductID      `json:"product"`
}
