package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/metrics"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

// layoutStore is the full layout persistence interface used by the grid.
type layoutStore interface {
	layoutLoader
	Save(ctx context.Context, product models.ProductID, items []models.WidgetPlacement)
	Clear(ctx context.Context, product models.ProductID)
	Exists(ctx context.Context, product models.ProductID) bool
}

// gridController owns the live layout of one product's dashboard. Every
// mutation replaces the item slice and saves the complete snapshot before
// returning; the mutex keeps concurrent requests from interleaving.
type gridController struct {
	mu       sync.Mutex
	product  models.ProductID
	store    layoutStore
	defaults []models.WidgetPlacement
	items    []models.WidgetPlacement
}

// NewGridController reconciles the initial layout and blocks until it is
// ready, so callers never see the default flash before the stored layout.
func NewGridController(ctx context.Context, product models.ProductID, store layoutStore, defaults []models.WidgetPlacement) *gridController {
	defaults = models.ClonePlacements(defaults)
	return &gridController{
		product:  product,
		store:    store,
		defaults: defaults,
		items:    NewLayoutReconciler(store).Reconcile(ctx, product, defaults),
	}
}

func (c *gridController) Product() models.ProductID {
	return c.product
}

// Items returns a copy of the current placements.
func (c *gridController) Items() []models.WidgetPlacement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.ClonePlacements(c.items)
}

// Customized reports whether a layout is stored for the product. It is
// read from the store on every call.
func (c *gridController) Customized(ctx context.Context) bool {
	return c.store.Exists(ctx, c.product)
}

// ApplyGeometryChange replaces the layout with a complete snapshot reported
// at the end of a drag or resize gesture. Spacer placements keep their
// locked geometry whatever the snapshot says.
func (c *gridController) ApplyGeometryChange(ctx context.Context, snapshot []models.WidgetPlacement) error {
	if err := c.validateSnapshot(snapshot); err != nil {
		metrics.WidgetRejectionsTotal.WithLabelValues(string(c.product), "invalid_snapshot").Inc()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.lockSpacers(snapshot)
	c.store.Save(ctx, c.product, c.items)
	return nil
}

// AddWidget appends a catalog widget at its default size below all existing
// content. Unknown, foreign, spacer and duplicate ids are rejected with a
// notice and leave the layout untouched.
func (c *gridController) AddWidget(ctx context.Context, widgetID string) (models.WidgetPlacement, error) {
	log := logger.FromContext(ctx)

	if catalog.IsSpacer(widgetID) {
		c.reject("spacer", widgetID, log.Warn)
		return models.WidgetPlacement{}, errs.NewValidationError("the spacer cannot be added")
	}
	def, ok := catalog.WidgetForProduct(c.product, widgetID)
	if !ok {
		c.reject("unknown", widgetID, log.Warn)
		return models.WidgetPlacement{}, errs.NewNotFoundError(fmt.Sprintf("widget %q is not available for %s", widgetID, c.product))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if indexOf(c.items, widgetID) >= 0 {
		c.reject("duplicate", widgetID, log.Info)
		return models.WidgetPlacement{}, errs.NewAlreadyExistsError(fmt.Sprintf("%s is already on the dashboard", def.Title))
	}

	p := models.WidgetPlacement{
		ID: widgetID,
		X:  0,
		Y:  bottom(c.items),
		W:  def.DefaultSize.W,
		H:  def.DefaultSize.H,
	}
	next := make([]models.WidgetPlacement, 0, len(c.items)+1)
	next = append(append(next, c.items...), p)
	c.items = next
	c.store.Save(ctx, c.product, c.items)

	log.Info("widget added", "product", c.product, "widget_id", widgetID)
	return p, nil
}

// RemoveWidget drops the widget if present. Absent ids and the spacer are
// a no-op and do not trigger a save.
func (c *gridController) RemoveWidget(ctx context.Context, widgetID string) bool {
	if catalog.IsSpacer(widgetID) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, widgetID)
	if i < 0 {
		return false
	}
	next := make([]models.WidgetPlacement, 0, len(c.items)-1)
	next = append(append(next, c.items[:i]...), c.items[i+1:]...)
	c.items = next
	c.store.Save(ctx, c.product, c.items)

	logger.FromContext(ctx).Info("widget removed", "product", c.product, "widget_id", widgetID)
	return true
}

// ResetLayout discards the stored layout and restores the defaults. There is
// no undo.
func (c *gridController) ResetLayout(ctx context.Context) []models.WidgetPlacement {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Clear(ctx, c.product)
	c.items = models.ClonePlacements(c.defaults)
	metrics.LayoutResetsTotal.WithLabelValues(string(c.product)).Inc()
	logger.FromContext(ctx).Info("dashboard layout reset", "product", c.product)
	return models.ClonePlacements(c.items)
}

// AvailableWidgets lists catalog widgets of the product not yet on the grid.
func (c *gridController) AvailableWidgets() []models.WidgetDefinition {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := catalog.WidgetsForProduct(c.product)
	out := make([]models.WidgetDefinition, 0, len(all))
	for _, w := range all {
		if indexOf(c.items, w.ID) < 0 {
			out = append(out, w)
		}
	}
	return out
}

func (c *gridController) validateSnapshot(snapshot []models.WidgetPlacement) error {
	seen := make(map[string]struct{}, len(snapshot))
	for _, p := range snapshot {
		if p.ID == "" {
			return errs.NewValidationError("placement id is required")
		}
		if _, dup := seen[p.ID]; dup {
			return errs.NewValidationError(fmt.Sprintf("duplicate placement id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.X < 0 || p.Y < 0 {
			return errs.NewValidationError(fmt.Sprintf("placement %q has negative coordinates", p.ID))
		}
		if p.W <= 0 || p.H <= 0 {
			return errs.NewValidationError(fmt.Sprintf("placement %q must have positive size", p.ID))
		}
		if catalog.IsSpacer(p.ID) {
			if indexOf(c.defaults, p.ID) < 0 {
				return errs.NewValidationError(fmt.Sprintf("spacer %q is not part of the %s layout", p.ID, c.product))
			}
			continue
		}
		if !placementAllowed(c.product, p.ID) {
			return errs.NewValidationError(fmt.Sprintf("widget %q is not available for %s", p.ID, c.product))
		}
	}
	return nil
}

// lockSpacers pins every spacer in the snapshot to its default geometry
// and re-appends spacers that are on the grid but missing from the
// snapshot. It must be called with c.mu held.
func (c *gridController) lockSpacers(snapshot []models.WidgetPlacement) []models.WidgetPlacement {
	locked := make(map[string]models.WidgetPlacement)
	for _, p := range c.defaults {
		if catalog.IsSpacer(p.ID) {
			locked[p.ID] = p
		}
	}

	out := make([]models.WidgetPlacement, 0, len(snapshot)+len(locked))
	seen := make(map[string]struct{}, len(snapshot))
	for _, p := range snapshot {
		if l, ok := locked[p.ID]; ok {
			p = l
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	for _, p := range c.items {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		if l, ok := locked[p.ID]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (c *gridController) reject(reason, widgetID string, logf func(msg string, args ...any)) {
	metrics.WidgetRejectionsTotal.WithLabelValues(string(c.product), reason).Inc()
	logf("widget add rejected", "product", c.product, "widget_id", widgetID, "reason", reason)
}

func indexOf(items []models.WidgetPlacement, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func bottom(items []models.WidgetPlacement) int {
	y := 0
	for _, p := range items {
		if b := p.Bottom(); b > y {
			y = b
		}
	}
	return y
}
