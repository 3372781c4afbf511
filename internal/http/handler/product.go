package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"commerce-service/internal/domain/product"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productRepo repository.ProductRepository
	pageSize    int
}

func NewProductHandler(productRepo repository.ProductRepository, pageSize int) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		pageSize:    pageSize,
	}
}

type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Skip     int               `json:"skip"`
}

func (h *ProductHandler) List(c echo.Context) error {
	filter := product.ListFilter{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Limit:    parseQueryInt(c.QueryParam("limit"), h.pageSize),
		Skip:     parseQueryInt(c.QueryParam("skip"), 0),
	}
	if raw := c.QueryParam("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	products, total, err := h.productRepo.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListProductsFail)
	}

	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
		Limit:    filter.Limit,
		Skip:     filter.Skip,
	}
	for i := range products {
		resp.Products = append(resp.Products, toProductResponse(&products[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProductID)
	}

	p, err := h.productRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgProductNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgFetchProductFail)
	}

	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.Price < 0 {
		return respondError(c, http.StatusBadRequest, msgNegativePrice)
	}

	p, err := h.productRepo.Create(c.Request().Context(), product.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgProductExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateProductFail)
	}

	return c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProductID)
	}

	var req UpdateProductRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		if err := validator.Name(*req.Name); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}
	if req.Price != nil && *req.Price < 0 {
		return respondError(c, http.StatusBadRequest, msgNegativePrice)
	}

	p, err := h.productRepo.Update(c.Request().Context(), id, product.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgProductNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgUpdateProductFail)
	}

	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProductID)
	}

	if err := h.productRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgProductNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgDeleteProductFail)
	}

	return c.NoContent(http.StatusNoContent)
}

func toProductResponse(p *product.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
	}
}

// parseQueryInt parses a non-negative integer query parameter, falling back
// to def on absence or garbage.
func parseQueryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
