package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/models"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/ovenfresh/bakery-platform/internal/utils"
	"github.com/ovenfresh/bakery-platform/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CatalogHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.catalogService.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Category created", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CatalogHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CatalogHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Category deleted", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": "Category deleted"})
	}
}

func (h *CatalogHandler) ListSubcategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var categoryID *int64

		if raw := r.URL.Query().Get("categoryId"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err == nil && id > 0 {
				categoryID = &id
			}
		}

		subs, err := h.catalogService.ListSubcategories(r.Context(), categoryID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, subs)
	}
}

func (h *CatalogHandler) GetSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		sub, err := h.catalogService.GetSubcategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sub)
	}
}

func (h *CatalogHandler) CreateSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateSubcategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sub, err := h.catalogService.CreateSubcategory(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Subcategory created", slog.Int64("subcategoryId", sub.ID))
		response.Success(w, http.StatusCreated, sub)
	}
}

func (h *CatalogHandler) UpdateSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateSubcategoryRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sub, err := h.catalogService.UpdateSubcategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sub)
	}
}

func (h *CatalogHandler) DeleteSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteSubcategory(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Subcategory deleted", slog.Int64("subcategoryId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": "Subcategory deleted"})
	}
}
