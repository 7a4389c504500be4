package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/GregMSThompson/backup-dashboard/internal/metrics"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/pkg/helpers"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

const (
	// CurrentVersion must be bumped whenever LayoutDocument or
	// WidgetPlacement change incompatibly. Stored documents with any other
	// version are discarded.
	CurrentVersion = 3

	KeyPrefix = "veeam-dashboard-layout-"
)

// KV is the local key-value backend holding serialized documents.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type layoutStore struct {
	kv       KV
	now      func() time.Time
	validate *validator.Validate
}

func NewLayoutStore(kv KV) *layoutStore {
	return &layoutStore{
		kv:       kv,
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Key derives the storage key for a product.
func Key(product models.ProductID) string {
	return KeyPrefix + string(product)
}

// Save replaces the product's document with a fresh snapshot of items.
// Failures are logged and swallowed; the caller's in-memory layout stays
// authoritative for the session.
func (s *layoutStore) Save(ctx context.Context, product models.ProductID, items []models.WidgetPlacement) {
	log := logger.FromContext(ctx)

	doc := models.LayoutDocument{
		Version:   CurrentVersion,
		Items:     models.ClonePlacements(items),
		Timestamp: s.now().UnixMilli(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		log.Error("failed to encode dashboard layout", "product", product, "error", err)
		metrics.LayoutSavesTotal.WithLabelValues(string(product), "error").Inc()
		return
	}
	if err := s.kv.Set(ctx, Key(product), string(raw)); err != nil {
		log.Error("failed to save dashboard layout", "product", product, "error", err)
		metrics.LayoutSavesTotal.WithLabelValues(string(product), "error").Inc()
		return
	}
	metrics.LayoutSavesTotal.WithLabelValues(string(product), "ok").Inc()
	log.Debug("dashboard layout saved", "product", product, "items", len(doc.Items))
}

// Load returns the stored items, or false when nothing usable is stored:
// missing key, unreadable backend, malformed document or version mismatch.
func (s *layoutStore) Load(ctx context.Context, product models.ProductID) ([]models.WidgetPlacement, bool) {
	log := logger.FromContext(ctx)
	p := string(product)

	raw, ok, err := s.kv.Get(ctx, Key(product))
	if err != nil {
		log.Error("failed to load dashboard layout", "product", product, "error", err)
		metrics.LayoutLoadsTotal.WithLabelValues(p, metrics.LoadError).Inc()
		return nil, false
	}
	if !ok {
		metrics.LayoutLoadsTotal.WithLabelValues(p, metrics.LoadAbsent).Inc()
		return nil, false
	}

	doc, err := s.decode(raw)
	if err != nil {
		log.Warn("discarding malformed dashboard layout", "product", product, "error", err)
		metrics.LayoutLoadsTotal.WithLabelValues(p, metrics.LoadMalformed).Inc()
		return nil, false
	}
	if doc.Version != CurrentVersion {
		log.Info("layout version mismatch, using default layout",
			"product", product, "stored_version", doc.Version, "current_version", CurrentVersion)
		metrics.LayoutLoadsTotal.WithLabelValues(p, metrics.LoadVersionMismatch).Inc()
		return nil, false
	}

	metrics.LayoutLoadsTotal.WithLabelValues(p, metrics.LoadStored).Inc()
	return doc.Items, true
}

// Clear removes the product's document. Clearing an absent key is fine.
func (s *layoutStore) Clear(ctx context.Context, product models.ProductID) {
	if err := s.kv.Remove(ctx, Key(product)); err != nil {
		logger.FromContext(ctx).Error("failed to clear dashboard layout", "product", product, "error", err)
	}
}

// Exists reports whether anything is stored for the product, valid or not.
func (s *layoutStore) Exists(ctx context.Context, product models.ProductID) bool {
	_, ok, err := s.kv.Get(ctx, Key(product))
	if err != nil {
		logger.FromContext(ctx).Error("failed to check dashboard layout", "product", product, "error", err)
		return false
	}
	return ok
}

// storedDocument mirrors LayoutDocument with pointer fields so that a
// missing field can be told apart from a zero value.
type storedDocument struct {
	Version   *int              `json:"version" validate:"required"`
	Items     []storedPlacement `json:"items" validate:"required,dive"`
	Timestamp *int64            `json:"timestamp" validate:"required,min=0"`
}

type storedPlacement struct {
	ID *string `json:"id" validate:"required,min=1"`
	X  *int    `json:"x" validate:"required,min=0"`
	Y  *int    `json:"y" validate:"required,min=0"`
	W  *int    `json:"w" validate:"required,min=1"`
	H  *int    `json:"h" validate:"required,min=1"`
}

func (s *layoutStore) decode(raw string) (models.LayoutDocument, error) {
	var sd storedDocument
	if err := json.Unmarshal([]byte(raw), &sd); err != nil {
		return models.LayoutDocument{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.validate.Struct(sd); err != nil {
		return models.LayoutDocument{}, fmt.Errorf("validate: %w", err)
	}

	doc := models.LayoutDocument{
		Version:   helpers.Value(sd.Version),
		Items:     make([]models.WidgetPlacement, 0, len(sd.Items)),
		Timestamp: helpers.Value(sd.Timestamp),
	}
	seen := make(map[string]struct{}, len(sd.Items))
	for _, it := range sd.Items {
		id := helpers.Value(it.ID)
		if _, dup := seen[id]; dup {
			return models.LayoutDocument{}, fmt.Errorf("duplicate widget id %q", id)
		}
		seen[id] = struct{}{}
		doc.Items = append(doc.Items, models.WidgetPlacement{
			ID: id,
			X:  helpers.Value(it.X),
			Y:  helpers.Value(it.Y),
			W:  helpers.Value(it.W),
			H:  helpers.Value(it.H),
		})
	}
	return doc, nil
}
