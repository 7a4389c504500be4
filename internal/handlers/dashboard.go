package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/backup-dashboard/internal/dto"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/internal/response"
)

type dashboardService interface {
	GetLayout(ctx context.Context, product models.ProductID) (dto.LayoutResponse, error)
	ApplyGeometryChange(ctx context.Context, product models.ProductID, req dto.GeometryChangeRequest) (dto.LayoutResponse, error)
	AddWidget(ctx context.Context, product models.ProductID, req dto.AddWidgetRequest) (dto.AddWidgetResponse, error)
	RemoveWidget(ctx context.Context, product models.ProductID, widgetID string) (dto.RemoveWidgetResponse, error)
	ResetLayout(ctx context.Context, product models.ProductID) (dto.LayoutResponse, error)
	GetCatalog(ctx context.Context, product models.ProductID) (dto.CatalogResponse, error)
	GetWidget(ctx context.Context, widgetID string) (models.WidgetDefinition, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{product}", func(r chi.Router) {
		r.Get("/layout", h.GetLayout)
		r.Put("/layout", h.ApplyGeometryChange)
		r.Post("/widgets", h.AddWidget)
		r.Delete("/widgets/{widgetId}", h.RemoveWidget)
		r.Post("/reset", h.ResetLayout)
		r.Get("/catalog", h.GetCatalog)
	})
	return r
}

func (h *dashboardHandlers) WidgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{widgetId}", h.GetWidget)
	return r
}

func productParam(r *http.Request) models.ProductID {
	return models.ProductID(chi.URLParam(r, "product"))
}

func (h *dashboardHandlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.DashboardSvc.GetLayout(r.Context(), productParam(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, layout)
}

func (h *dashboardHandlers) ApplyGeometryChange(w http.ResponseWriter, r *http.Request) {
	var req dto.GeometryChangeRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	layout, err := h.DashboardSvc.ApplyGeometryChange(r.Context(), productParam(r), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, layout)
}

func (h *dashboardHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.AddWidgetRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.DashboardSvc.AddWidget(r.Context(), productParam(r), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

func (h *dashboardHandlers) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	resp, err := h.DashboardSvc.RemoveWidget(r.Context(), productParam(r), widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) ResetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.DashboardSvc.ResetLayout(r.Context(), productParam(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, layout)
}

func (h *dashboardHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.DashboardSvc.GetCatalog(r.Context(), productParam(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cat)
}

func (h *dashboardHandlers) GetWidget(w http.ResponseWriter, r *http.Request) {
	def, err := h.DashboardSvc.GetWidget(r.Context(), chi.URLParam(r, "widgetId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, def)
}
