package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/ovenfresh/bakery-platform/internal/uploads"
	"github.com/ovenfresh/bakery-platform/internal/utils"
	"github.com/ovenfresh/bakery-platform/internal/utils/response"
)

type ProductHandler struct {
	productService *service.ProductService
	uploadStore    *uploads.Store
	validator      *validator.Validate
}

func NewProductHandler(productService *service.ProductService, uploadStore *uploads.Store) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadStore:    uploadStore,
		validator:      validator.New(),
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := utils.ParsePagination(r)

		filter := &models.ProductFilter{
			Search:   r.URL.Query().Get("search"),
			Page:     page,
			PageSize: pageSize,
		}

		if raw := r.URL.Query().Get("subcategoryId"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err == nil && id > 0 {
				filter.SubcategoryID = &id
			}
		}

		products, total, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []models.Product{}
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product created", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product deleted", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": "Product deleted"})
	}
}

// UploadImage accepts one multipart image under the "image" field and appends
// it to the product gallery.
func (h *ProductHandler) UploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseNumericID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			response.Error(w, errors.BadRequestError("Image file is required"))
			return
		}
		defer file.Close()

		imageURL, err := h.uploadStore.SaveImage(file, header)
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.AddImage(r.Context(), id, imageURL)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product image uploaded",
			slog.Int64("productId", id), slog.String("image", imageURL))
		response.Success(w, http.StatusOK, product)
	}
}
