package handler

import (
	"errors"
	"net/http"
	"strings"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"
	"commerce-service/internal/domain/address"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addressRepo repository.AddressRepository
	pageSize    int
}

func NewAddressHandler(addressRepo repository.AddressRepository, pageSize int) *AddressHandler {
	return &AddressHandler{
		addressRepo: addressRepo,
		pageSize:    pageSize,
	}
}

type CreateAddressRequest struct {
	Label       string `json:"label"`
	Province    string `json:"province"`
	City        string `json:"city"`
	District    string `json:"district"`
	Subdistrict string `json:"subdistrict"`
	Detail      string `json:"detail"`
}

type UpdateAddressRequest struct {
	Label       *string `json:"label"`
	Province    *string `json:"province"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	Subdistrict *string `json:"subdistrict"`
	Detail      *string `json:"detail"`
}

// AddressResponse doubles as the address snapshot inside an order, where ID
// and Label are absent.
type AddressResponse struct {
	ID          string `json:"id,omitempty"`
	Label       string `json:"label,omitempty"`
	Province    string `json:"province"`
	City        string `json:"city"`
	District    string `json:"district"`
	Subdistrict string `json:"subdistrict"`
	Detail      string `json:"detail"`
}

type AddressListResponse struct {
	Addresses []AddressResponse `json:"addresses"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Skip      int               `json:"skip"`
}

// Create stores a new address owned by the caller. The created resource is
// always the caller's own, so the ownership check uses the caller's id as
// the prospective user_id.
func (h *AddressHandler) Create(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	owned := ability.Resource{ability.FieldUserID: p.ID}
	if !ability.PolicyFor(p).Can(ability.ActionCreate, ability.SubjectDeliveryAddress, owned) {
		return respondError(c, http.StatusForbidden, msgForbidden)
	}

	var req CreateAddressRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Label = strings.TrimSpace(req.Label)
	if err := validator.Name(req.Label); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Detail) == "" {
		return respondError(c, http.StatusBadRequest, msgInvalidAddress)
	}

	addr, err := h.addressRepo.Create(c.Request().Context(), address.CreateAddressInput{
		UserID:      p.ID,
		Label:       req.Label,
		Province:    req.Province,
		City:        req.City,
		District:    req.District,
		Subdistrict: req.Subdistrict,
		Detail:      req.Detail,
	})
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgCreateAddressFail)
	}

	return c.JSON(http.StatusCreated, toAddressResponse(addr))
}

func (h *AddressHandler) List(c echo.Context) error {
	p := auth.PrincipalFrom(c)

	limit := parseQueryInt(c.QueryParam("limit"), h.pageSize)
	skip := parseQueryInt(c.QueryParam("skip"), 0)

	addresses, total, err := h.addressRepo.ListByUser(c.Request().Context(), p.ID, limit, skip)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListAddressesFail)
	}

	resp := AddressListResponse{
		Addresses: make([]AddressResponse, 0, len(addresses)),
		Total:     total,
		Limit:     limit,
		Skip:      skip,
	}
	for i := range addresses {
		resp.Addresses = append(resp.Addresses, toAddressResponse(&addresses[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AddressHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAddressID)
	}

	addr, err := h.addressRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAddressNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgFetchAddressFail)
	}

	return c.JSON(http.StatusOK, toAddressResponse(addr))
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAddressID)
	}

	var req UpdateAddressRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Label != nil {
		trimmed := strings.TrimSpace(*req.Label)
		if err := validator.Name(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Label = &trimmed
	}

	addr, err := h.addressRepo.Update(c.Request().Context(), id, address.UpdateAddressInput{
		Label:       req.Label,
		Province:    req.Province,
		City:        req.City,
		District:    req.District,
		Subdistrict: req.Subdistrict,
		Detail:      req.Detail,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAddressNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgUpdateAddressFail)
	}

	return c.JSON(http.StatusOK, toAddressResponse(addr))
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidAddressID)
	}

	if err := h.addressRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAddressNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgDeleteAddressFail)
	}

	return c.NoContent(http.StatusNoContent)
}

func toAddressResponse(a *address.DeliveryAddress) AddressResponse {
	return AddressResponse{
		ID:          a.ID.String(),
		Label:       a.Label,
		Province:    a.Province,
		City:        a.City,
		District:    a.District,
		Subdistrict: a.Subdistrict,
		Detail:      a.Detail,
	}
}
