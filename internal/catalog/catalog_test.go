package catalog

import (
	"testing"

	"github.com/GregMSThompson/backup-dashboard/internal/models"
)

func TestWidgetsForProduct_DeclarationOrder(t *testing.T) {
	got := WidgetsForProduct(models.ProductVBR)
	want := []string{
		"vbr-total-jobs", "vbr-server", "vbr-license", "vbr-malware",
		"vbr-security", "vbr-sessions", "vbr-storage", "vbr-transfer",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d widgets, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("index %d: expected %q, got %q", i, id, got[i].ID)
		}
	}
	if len(WidgetsForProduct(models.ProductVBM)) != 4 {
		t.Fatal("expected 4 vbm widgets")
	}
	if len(WidgetsForProduct("nope")) != 0 {
		t.Fatal("expected no widgets for unknown product")
	}
}

func TestWidgetsForProduct_ReturnsCopy(t *testing.T) {
	got := WidgetsForProduct(models.ProductVBR)
	got[0].Title = "mutated"
	if WidgetsForProduct(models.ProductVBR)[0].Title != "Total Jobs" {
		t.Fatal("catalog was mutated through returned slice")
	}
}

func TestWidgetByID(t *testing.T) {
	w, ok := WidgetByID("vbm-repos")
	if !ok || w.Product != models.ProductVBM {
		t.Fatalf("expected vbm-repos in vbm, got %+v ok=%v", w, ok)
	}
	if _, ok := WidgetByID("VBM-REPOS"); ok {
		t.Fatal("ids must be case-sensitive")
	}
	if _, ok := WidgetByID(SpacerID); ok {
		t.Fatal("spacer is not a catalog widget")
	}
}

func TestWidgetForProduct_RejectsOtherProduct(t *testing.T) {
	if _, ok := WidgetForProduct(models.ProductVBR, "vbm-orgs"); ok {
		t.Fatal("expected vbm widget to be rejected for vbr")
	}
	if _, ok := WidgetForProduct(models.ProductVBR, "vbr-storage"); !ok {
		t.Fatal("expected vbr-storage to resolve")
	}
}

func TestSizeInvariants(t *testing.T) {
	for _, p := range models.Products {
		for _, w := range WidgetsForProduct(p) {
			if w.MinSize.W > w.DefaultSize.W || w.DefaultSize.W > w.MaxSize.W {
				t.Errorf("%s: width constraints violated", w.ID)
			}
			if w.MinSize.H > w.DefaultSize.H || w.DefaultSize.H > w.MaxSize.H {
				t.Errorf("%s: height constraints violated", w.ID)
			}
			if w.Product != p {
				t.Errorf("%s: declared under %s but product is %s", w.ID, p, w.Product)
			}
		}
	}
}

func TestDefaultLayout_KnownIDsOnly(t *testing.T) {
	for _, p := range models.Products {
		seen := map[string]bool{}
		for _, item := range DefaultLayout(p) {
			if seen[item.ID] {
				t.Errorf("%s: duplicate id %s", p, item.ID)
			}
			seen[item.ID] = true
			if IsSpacer(item.ID) {
				continue
			}
			if _, ok := WidgetForProduct(p, item.ID); !ok {
				t.Errorf("%s: default references unknown widget %s", p, item.ID)
			}
		}
	}
}

func TestDefaultLayout_NoOverlaps(t *testing.T) {
	items := DefaultLayout(models.ProductVBR)
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].Overlaps(items[j]) {
				t.Errorf("%s overlaps %s", items[i].ID, items[j].ID)
			}
		}
	}
}
