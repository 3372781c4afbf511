package handler

import (
	"errors"
	"net/http"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"
	"commerce-service/internal/domain/cart"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartHandler(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartHandler {
	return &CartHandler{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type PutCartRequest struct {
	Items []CartItemRequest `json:"items"`
}

type CartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
	Qty       int    `json:"qty"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

func (h *CartHandler) Get(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	owned := ability.Resource{ability.FieldUserID: p.ID}
	if !ability.PolicyFor(p).Can(ability.ActionRead, ability.SubjectCart, owned) {
		return respondError(c, http.StatusForbidden, msgForbidden)
	}

	items, err := h.cartRepo.ListByUser(c.Request().Context(), p.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgFetchCartFail)
	}

	return c.JSON(http.StatusOK, toCartResponse(items))
}

// Put replaces the whole cart with the submitted items, the same way the
// storefront sends its local cart state on every change.
func (h *CartHandler) Put(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	owned := ability.Resource{ability.FieldUserID: p.ID}
	if !ability.PolicyFor(p).Can(ability.ActionUpdate, ability.SubjectCart, owned) {
		return respondError(c, http.StatusForbidden, msgForbidden)
	}

	var req PutCartRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()
	items := make([]cart.Item, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidProductID)
		}
		if err := validator.Quantity(it.Qty); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}

		// Snapshot name and price from the catalog so the stored cart does
		// not trust client-supplied prices.
		prod, err := h.productRepo.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return respondError(c, http.StatusBadRequest, msgProductNotFound)
			}
			return respondError(c, http.StatusInternalServerError, msgUpdateCartFail)
		}

		items = append(items, cart.Item{
			UserID:    p.ID,
			ProductID: prod.ID,
			Name:      prod.Name,
			Price:     prod.Price,
			ImageURL:  prod.ImageURL,
			Qty:       it.Qty,
		})
	}

	if err := h.cartRepo.Replace(ctx, p.ID, items); err != nil {
		return respondError(c, http.StatusInternalServerError, msgUpdateCartFail)
	}

	return c.JSON(http.StatusOK, toCartResponse(items))
}

func toCartResponse(items []cart.Item) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Qty:       item.Qty,
		})
	}
	return resp
}
