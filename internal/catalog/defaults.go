package catalog

import "github.com/GregMSThompson/backup-dashboard/internal/models"

// Default VBR layout on a 10 column grid:
// row 0 holds the five stat cards, the spacer keeps a gap at row 14,
// and sessions / storage / transfer start at row 17.
var defaultVBR = []models.WidgetPlacement{
	{ID: "vbr-total-jobs", X: 0, Y: 0, W: 2, H: 14},
	{ID: "vbr-server", X: 2, Y: 0, W: 2, H: 14},
	{ID: "vbr-license", X: 4, Y: 0, W: 2, H: 14},
	{ID: "vbr-malware", X: 6, Y: 0, W: 2, H: 14},
	{ID: "vbr-security", X: 8, Y: 0, W: 2, H: 14},
	{ID: SpacerID, X: 0, Y: 14, W: 10, H: 3},
	{ID: "vbr-sessions", X: 0, Y: 17, W: 6, H: 91},
	{ID: "vbr-storage", X: 6, Y: 17, W: 4, H: 35},
	{ID: "vbr-transfer", X: 6, Y: 52, W: 4, H: 49},
}

var defaultVBM = []models.WidgetPlacement{
	{ID: "vbm-orgs", X: 0, Y: 0, W: 2, H: 14},
	{ID: "vbm-sessions", X: 0, Y: 14, W: 7, H: 91},
	{ID: "vbm-proxies", X: 7, Y: 14, W: 5, H: 35},
	{ID: "vbm-repos", X: 7, Y: 49, W: 5, H: 49},
}

// DefaultLayout returns a fresh copy of the product's default layout.
func DefaultLayout(product models.ProductID) []models.WidgetPlacement {
	switch product {
	case models.ProductVBR:
		return models.ClonePlacements(defaultVBR)
	case models.ProductVBM:
		return models.ClonePlacements(defaultVBM)
	}
	return []models.WidgetPlacement{}
}
