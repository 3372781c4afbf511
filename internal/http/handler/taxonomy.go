package handler

import (
	"errors"
	"net/http"
	"strings"

	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TaxonomyHandler covers the two flat product classifications, categories
// and tags. Both are admin-managed name lists.
type TaxonomyHandler struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

func NewTaxonomyHandler(categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *TaxonomyHandler {
	return &TaxonomyHandler{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

type NameRequest struct {
	Name string `json:"name"`
}

type NameResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryRepo.List(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListCategoriesFail)
	}

	resp := make([]NameResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, NameResponse{ID: cat.ID.String(), Name: cat.Name})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateCategory(c echo.Context) error {
	var req NameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	cat, err := h.categoryRepo.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgCategoryExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateCategoryFail)
	}

	return c.JSON(http.StatusCreated, NameResponse{ID: cat.ID.String(), Name: cat.Name})
}

func (h *TaxonomyHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidCategoryID)
	}

	var req NameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	cat, err := h.categoryRepo.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return respondError(c, http.StatusNotFound, msgCategoryNotExist)
		case errors.Is(err, apperrors.ErrConflict):
			return respondError(c, http.StatusConflict, msgCategoryExists)
		default:
			return respondError(c, http.StatusInternalServerError, msgUpdateCategoryFail)
		}
	}

	return c.JSON(http.StatusOK, NameResponse{ID: cat.ID.String(), Name: cat.Name})
}

func (h *TaxonomyHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidCategoryID)
	}

	if err := h.categoryRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgCategoryNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgDeleteCategoryFail)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListTags(c echo.Context) error {
	tags, err := h.tagRepo.List(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListTagsFail)
	}

	resp := make([]NameResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, NameResponse{ID: tag.ID.String(), Name: tag.Name})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) CreateTag(c echo.Context) error {
	var req NameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagRepo.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgTagExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateTagFail)
	}

	return c.JSON(http.StatusCreated, NameResponse{ID: tag.ID.String(), Name: tag.Name})
}

func (h *TaxonomyHandler) DeleteTag(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTagID)
	}

	if err := h.tagRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTagNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgDeleteTagFail)
	}

	return c.NoContent(http.StatusNoContent)
}
