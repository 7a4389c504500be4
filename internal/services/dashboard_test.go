package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/dto"
	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
	"github.com/GregMSThompson/backup-dashboard/pkg/helpers"
)

func TestDashboardService_UnknownProduct(t *testing.T) {
	svc := NewDashboardService(newFakeLayoutStore())
	_, err := svc.GetLayout(helpers.TestCtx(), "veeam-one")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T %v", err, err)
	}
}

func TestDashboardService_GetLayout_Defaults(t *testing.T) {
	svc := NewDashboardService(newFakeLayoutStore())
	resp, err := svc.GetLayout(helpers.TestCtx(), models.ProductVBR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Product != models.ProductVBR || resp.Version != store.CurrentVersion {
		t.Fatalf("unexpected header fields %+v", resp)
	}
	if !equalItems(resp.Items, catalog.DefaultLayout(models.ProductVBR)) {
		t.Fatalf("expected default vbr layout, got %+v", resp.Items)
	}
	if resp.Customized {
		t.Fatal("expected not customized")
	}
}

func TestDashboardService_ControllerIsReused(t *testing.T) {
	ctx := helpers.TestCtx()
	fs := newFakeLayoutStore()
	svc := NewDashboardService(fs)

	if _, err := svc.AddWidget(ctx, models.ProductVBM, dto.AddWidgetRequest{WidgetID: "vbm-orgs"}); err == nil {
		t.Fatal("vbm-orgs is in the default layout, expected duplicate notice")
	}
	if _, err := svc.RemoveWidget(ctx, models.ProductVBM, "vbm-orgs"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	resp, err := svc.AddWidget(ctx, models.ProductVBM, dto.AddWidgetRequest{WidgetID: "vbm-orgs"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if resp.Notice != "Added Organizations" {
		t.Fatalf("unexpected notice %q", resp.Notice)
	}

	layout, _ := svc.GetLayout(ctx, models.ProductVBM)
	if countID(layout.Items, "vbm-orgs") != 1 || !layout.Customized {
		t.Fatalf("unexpected layout %+v", layout)
	}
}

func TestDashboardService_ApplyGeometryChange(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewDashboardService(newFakeLayoutStore())

	items := []models.WidgetPlacement{{ID: "vbm-repos", X: 0, Y: 0, W: 5, H: 49}}
	resp, err := svc.ApplyGeometryChange(ctx, models.ProductVBM, dto.GeometryChangeRequest{Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalItems(resp.Items, items) || !resp.Customized {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestDashboardService_ResetLayout(t *testing.T) {
	ctx := helpers.TestCtx()
	fs := newFakeLayoutStore()
	svc := NewDashboardService(fs)

	if _, err := svc.RemoveWidget(ctx, models.ProductVBR, "vbr-server"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	resp, err := svc.ResetLayout(ctx, models.ProductVBR)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if resp.Customized || fs.clears != 1 {
		t.Fatalf("expected cleared layout, got %+v clears=%d", resp, fs.clears)
	}
	if !equalItems(resp.Items, catalog.DefaultLayout(models.ProductVBR)) {
		t.Fatal("expected default layout after reset")
	}
}

func TestDashboardService_GetCatalog(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewDashboardService(newFakeLayoutStore())

	if _, err := svc.RemoveWidget(ctx, models.ProductVBR, "vbr-transfer"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	resp, err := svc.GetCatalog(ctx, models.ProductVBR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Widgets) != 8 {
		t.Fatalf("expected 8 widgets, got %d", len(resp.Widgets))
	}
	if len(resp.Available) != 1 || resp.Available[0].ID != "vbr-transfer" {
		t.Fatalf("expected only vbr-transfer available, got %+v", resp.Available)
	}
	if len(resp.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(resp.Categories))
	}
}

func TestDashboardService_GetWidget(t *testing.T) {
	svc := NewDashboardService(newFakeLayoutStore())
	w, err := svc.GetWidget(helpers.TestCtx(), "vbr-security")
	if err != nil || w.Title != "Security Score" {
		t.Fatalf("unexpected result %+v err=%v", w, err)
	}
	_, err = svc.GetWidget(helpers.TestCtx(), "missing")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}
