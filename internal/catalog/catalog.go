// Package catalog is the fixed registry of widgets each dashboard can show.
// Everything here is built at init and never mutated; lookups hand out copies.
package catalog

import "github.com/GregMSThompson/backup-dashboard/internal/models"

// SpacerID is the locked, non-interactive placement that forces a vertical
// gap between the VBR stat row and the main widgets.
const SpacerID = "vbr-gap"

var statSize = models.WidgetSize{W: 2, H: 14}

var vbrWidgets = []models.WidgetDefinition{
	{
		ID:          "vbr-total-jobs",
		Title:       "Total Jobs",
		Description: "Total backup jobs with active count",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 42},
		Component:   "TotalJobsCard",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-server",
		Title:       "VBR Server",
		Description: "Server hostname, version and platform",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 42},
		Component:   "VBRServerCard",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-license",
		Title:       "License Usage",
		Description: "License consumption with progress bar",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 42},
		Component:   "LicenseCard",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-malware",
		Title:       "Malware Events",
		Description: "Malware detections with unresolved count",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 42},
		Component:   "MalwareEventsCard",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-security",
		Title:       "Security Score",
		Description: "Best practices compliance with progress bar",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 42},
		Component:   "SecurityScoreCard",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-sessions",
		Title:       "Sessions Overview",
		Description: "Recent backup sessions with chart and filtering",
		Category:    models.CategoryCharts,
		DefaultSize: models.WidgetSize{W: 6, H: 91},
		MinSize:     models.WidgetSize{W: 4, H: 56},
		MaxSize:     models.WidgetSize{W: 10, H: 140},
		Component:   "SessionsOverview",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-storage",
		Title:       "Storage Capacity",
		Description: "Repository storage usage and efficiency",
		Category:    models.CategoryInfo,
		DefaultSize: models.WidgetSize{W: 4, H: 35},
		MinSize:     models.WidgetSize{W: 3, H: 28},
		MaxSize:     models.WidgetSize{W: 8, H: 70},
		Component:   "StorageCapacityWidget",
		Product:     models.ProductVBR,
	},
	{
		ID:          "vbr-transfer",
		Title:       "Transfer Rate",
		Description: "Data transfer rates over time",
		Category:    models.CategoryCharts,
		DefaultSize: models.WidgetSize{W: 4, H: 49},
		MinSize:     models.WidgetSize{W: 3, H: 28},
		MaxSize:     models.WidgetSize{W: 8, H: 70},
		Component:   "TransferRateChart",
		Product:     models.ProductVBR,
	},
}

var vbmWidgets = []models.WidgetDefinition{
	{
		ID:          "vbm-orgs",
		Title:       "Organizations",
		Description: "M365 organizations count",
		Category:    models.CategoryStats,
		DefaultSize: statSize,
		MinSize:     statSize,
		MaxSize:     models.WidgetSize{W: 4, H: 21},
		Component:   "VBMOrgsCard",
		Product:     models.ProductVBM,
	},
	{
		ID:          "vbm-sessions",
		Title:       "Sessions Overview",
		Description: "Recent M365 backup sessions",
		Category:    models.CategoryCharts,
		DefaultSize: models.WidgetSize{W: 7, H: 91},
		MinSize:     models.WidgetSize{W: 6, H: 56},
		MaxSize:     models.WidgetSize{W: 12, H: 140},
		Component:   "SessionsOverview",
		Product:     models.ProductVBM,
	},
	{
		ID:          "vbm-proxies",
		Title:       "Backup Proxies",
		Description: "Proxy servers status",
		Category:    models.CategoryInfo,
		DefaultSize: models.WidgetSize{W: 5, H: 35},
		MinSize:     models.WidgetSize{W: 4, H: 28},
		MaxSize:     models.WidgetSize{W: 8, H: 70},
		Component:   "VBMProxiesWidget",
		Product:     models.ProductVBM,
	},
	{
		ID:          "vbm-repos",
		Title:       "Repositories",
		Description: "Backup repository capacity",
		Category:    models.CategoryInfo,
		DefaultSize: models.WidgetSize{W: 5, H: 49},
		MinSize:     models.WidgetSize{W: 4, H: 35},
		MaxSize:     models.WidgetSize{W: 8, H: 84},
		Component:   "VBMReposWidget",
		Product:     models.ProductVBM,
	},
}

var byID = index(vbrWidgets, vbmWidgets)

func index(sets ...[]models.WidgetDefinition) map[string]models.WidgetDefinition {
	m := make(map[string]models.WidgetDefinition)
	for _, set := range sets {
		for _, w := range set {
			m[w.ID] = w
		}
	}
	return m
}

// WidgetsForProduct returns the product's widgets in declaration order.
// Unknown products get an empty list.
func WidgetsForProduct(product models.ProductID) []models.WidgetDefinition {
	var src []models.WidgetDefinition
	switch product {
	case models.ProductVBR:
		src = vbrWidgets
	case models.ProductVBM:
		src = vbmWidgets
	}
	out := make([]models.WidgetDefinition, len(src))
	copy(out, src)
	return out
}

// WidgetByID resolves an id across every product. Ids are case-sensitive.
func WidgetByID(id string) (models.WidgetDefinition, bool) {
	w, ok := byID[id]
	return w, ok
}

// WidgetForProduct resolves an id only if it belongs to the given product.
func WidgetForProduct(product models.ProductID, id string) (models.WidgetDefinition, bool) {
	w, ok := byID[id]
	if !ok || w.Product != product {
		return models.WidgetDefinition{}, false
	}
	return w, true
}

// IsSpacer reports whether id is the locked gap placement.
func IsSpacer(id string) bool {
	return id == SpacerID
}

// Category is a filter entry for the add-widget catalog.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var categories = []Category{
	{ID: "all", Label: "All"},
	{ID: string(models.CategoryStats), Label: "Statistics"},
	{ID: string(models.CategoryCharts), Label: "Charts"},
	{ID: string(models.CategoryTables), Label: "Tables"},
	{ID: string(models.CategoryInfo), Label: "Info"},
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
