package services

import (
	"context"

	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

// layoutLoader is the read side of the layout store.
type layoutLoader interface {
	Load(ctx context.Context, product models.ProductID) ([]models.WidgetPlacement, bool)
}

type layoutReconciler struct {
	store layoutLoader
}

func NewLayoutReconciler(store layoutLoader) *layoutReconciler {
	return &layoutReconciler{store: store}
}

// Reconcile returns the layout to render when a dashboard mounts. With
// nothing usable stored it is a copy of defaults; otherwise the stored items
// minus any placement whose id is neither a catalog widget of the product
// nor the spacer. The filtered result is not written back.
func (r *layoutReconciler) Reconcile(ctx context.Context, product models.ProductID, defaults []models.WidgetPlacement) []models.WidgetPlacement {
	stored, ok := r.store.Load(ctx, product)
	if !ok {
		return models.ClonePlacements(defaults)
	}

	out := make([]models.WidgetPlacement, 0, len(stored))
	for _, p := range stored {
		if placementAllowed(product, p.ID) {
			out = append(out, p)
			continue
		}
		logger.FromContext(ctx).Info("dropping unknown widget from stored layout", "product", product, "widget_id", p.ID)
	}
	return out
}

func placementAllowed(product models.ProductID, id string) bool {
	if catalog.IsSpacer(id) {
		return true
	}
	_, ok := catalog.WidgetForProduct(product, id)
	return ok
}
