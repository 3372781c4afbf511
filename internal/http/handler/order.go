package handler

import (
	"errors"
	"net/http"
	"time"

	"commerce-service/internal/audit"
	"commerce-service/internal/auth"
	"commerce-service/internal/domain/invoice"
	"commerce-service/internal/domain/order"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	audit       *audit.Logger
	pageSize    int
}

func NewOrderHandler(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	auditLogger *audit.Logger,
	pageSize int,
) *OrderHandler {
	return &OrderHandler{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		audit:       auditLogger,
		pageSize:    pageSize,
	}
}

type CreateOrderRequest struct {
	DeliveryAddressID string `json:"delivery_address_id"`
	DeliveryFee       int64  `json:"delivery_fee"`
}

type OrderItemResponse struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	DeliveryFee int64               `json:"delivery_fee"`
	Subtotal    int64               `json:"subtotal"`
	Total       int64               `json:"total"`
	Address     AddressResponse     `json:"address"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Skip   int             `json:"skip"`
}

type InvoiceResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	Subtotal      int64     `json:"subtotal"`
	DeliveryFee   int64     `json:"delivery_fee"`
	Total         int64     `json:"total"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Create checks out the caller's cart: the cart lines and the chosen delivery
// address are snapshotted into a new order and its invoice, and the cart is
// cleared, all in one transaction.
func (h *OrderHandler) Create(c echo.Context) error {
	p := auth.PrincipalFrom(c)

	var req CreateOrderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	addressID, err := uuid.Parse(req.DeliveryAddressID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAddress)
	}
	if req.DeliveryFee < 0 {
		return respondError(c, http.StatusBadRequest, msgNegativePrice)
	}

	ctx := c.Request().Context()

	items, err := h.cartRepo.ListByUser(ctx, p.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgCreateOrderFail)
	}
	if len(items) == 0 {
		return respondError(c, http.StatusBadRequest, msgCartEmpty)
	}

	addr, err := h.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusBadRequest, msgInvalidAddress)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateOrderFail)
	}
	// An address belonging to someone else is indistinguishable from a
	// nonexistent one from the caller's point of view.
	if addr.UserID != p.ID {
		return respondError(c, http.StatusBadRequest, msgInvalidAddress)
	}

	o := &order.Order{
		UserID:      p.ID,
		Status:      order.StatusWaitingPayment,
		DeliveryFee: req.DeliveryFee,
		Address: order.AddressSnapshot{
			Province:    addr.Province,
			City:        addr.City,
			District:    addr.District,
			Subdistrict: addr.Subdistrict,
			Detail:      addr.Detail,
		},
	}
	for _, item := range items {
		o.Items = append(o.Items, order.Item{
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}

	inv := &invoice.Invoice{
		UserID:        p.ID,
		Subtotal:      o.Subtotal(),
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total(),
		PaymentStatus: invoice.PaymentStatusWaiting,
	}

	if err := h.orderRepo.Create(ctx, o, inv); err != nil {
		return respondError(c, http.StatusInternalServerError, msgCreateOrderFail)
	}

	h.audit.LogFromContext(c, audit.ResourceTypeOrder, &o.ID, audit.ActionCreate, audit.StatusSuccess, map[string]any{
		"total": inv.Total,
		"items": len(o.Items),
	})

	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) List(c echo.Context) error {
	p := auth.PrincipalFrom(c)

	limit := parseQueryInt(c.QueryParam("limit"), h.pageSize)
	skip := parseQueryInt(c.QueryParam("skip"), 0)

	orders, total, err := h.orderRepo.ListByUser(c.Request().Context(), p.ID, limit, skip)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListOrdersFail)
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  total,
		Limit:  limit,
		Skip:   skip,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(&orders[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderID)
	}

	o, err := h.orderRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgOrderNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgFetchOrderFail)
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// Invoice serves the invoice attached to an order. The route parameter is
// the order id, not the invoice id.
func (h *OrderHandler) Invoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderID)
	}

	inv, err := h.invoiceRepo.GetByOrderID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgInvoiceNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgFetchInvoiceFail)
	}

	return c.JSON(http.StatusOK, InvoiceResponse{
		ID:            inv.ID.String(),
		OrderID:       inv.OrderID.String(),
		Subtotal:      inv.Subtotal,
		DeliveryFee:   inv.DeliveryFee,
		Total:         inv.Total,
		PaymentStatus: string(inv.PaymentStatus),
		CreatedAt:     inv.CreatedAt,
	})
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID.String(),
		Status:      string(o.Status),
		DeliveryFee: o.DeliveryFee,
		Subtotal:    o.Subtotal(),
		Total:       o.Total(),
		Address: AddressResponse{
			Province:    o.Address.Province,
			City:        o.Address.City,
			District:    o.Address.District,
			Subdistrict: o.Address.Subdistrict,
			Detail:      o.Address.Detail,
		},
		Items:     make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}
	return resp
}
