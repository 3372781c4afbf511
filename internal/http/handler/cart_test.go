package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"
	"commerce-service/internal/domain/cart"
	"commerce-service/internal/domain/product"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	items map[uuid.UUID][]cart.Item
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID][]cart.Item)}
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]cart.Item, error) {
	return r.items[userID], nil
}

func (r *fakeCartRepo) Replace(_ context.Context, userID uuid.UUID, items []cart.Item) error {
	stored := make([]cart.Item, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].ID = uuid.New()
	}
	r.items[userID] = stored
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	delete(r.items, userID)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*product.Product
}

func newFakeProductRepo(products ...*product.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*product.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) List(_ context.Context, _ product.ListFilter) ([]product.Product, int, error) {
	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product not found")
	}
	return p, nil
}

func (r *fakeProductRepo) Create(_ context.Context, input product.CreateProductInput) (*product.Product, error) {
	p := &product.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Tags:        input.Tags,
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id uuid.UUID, _ product.UpdateProductInput) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product not found")
	}
	return p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product not found")
	}
	delete(r.products, id)
	return nil
}

func cartContext(e *echo.Echo, method, body string, p ability.Principal) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/api/cart", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyPrincipal, p)
	return c, rec
}

func TestCartPutSnapshotsCatalogPrices(t *testing.T) {
	e := echo.New()
	tea := &product.Product{ID: uuid.New(), Name: "Oolong Tea", Price: 1500, ImageURL: "/img/oolong.png"}
	h := NewCartHandler(newFakeCartRepo(), newFakeProductRepo(tea))
	customer := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	body, err := json.Marshal(PutCartRequest{Items: []CartItemRequest{
		{ProductID: tea.ID.String(), Qty: 2},
	}})
	require.NoError(t, err)

	c, rec := cartContext(e, http.MethodPut, string(body), customer)
	require.NoError(t, h.Put(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)

	// Price and name come from the catalog, not the request.
	assert.Equal(t, tea.Price, resp.Items[0].Price)
	assert.Equal(t, tea.Name, resp.Items[0].Name)
	assert.Equal(t, 2, resp.Items[0].Qty)

	c, rec = cartContext(e, http.MethodGet, "", customer)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
}

func TestCartPutUnknownProduct(t *testing.T) {
	e := echo.New()
	h := NewCartHandler(newFakeCartRepo(), newFakeProductRepo())
	customer := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	body, _ := json.Marshal(PutCartRequest{Items: []CartItemRequest{
		{ProductID: uuid.NewString(), Qty: 1},
	}})

	c, rec := cartContext(e, http.MethodPut, string(body), customer)
	require.NoError(t, h.Put(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartPutRejectsZeroQuantity(t *testing.T) {
	e := echo.New()
	tea := &product.Product{ID: uuid.New(), Name: "Oolong Tea", Price: 1500}
	h := NewCartHandler(newFakeCartRepo(), newFakeProductRepo(tea))
	customer := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	body, _ := json.Marshal(PutCartRequest{Items: []CartItemRequest{
		{ProductID: tea.ID.String(), Qty: 0},
	}})

	c, rec := cartContext(e, http.MethodPut, string(body), customer)
	require.NoError(t, h.Put(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartForbiddenForGuests(t *testing.T) {
	e := echo.New()
	h := NewCartHandler(newFakeCartRepo(), newFakeProductRepo())

	c, rec := cartContext(e, http.MethodGet, "", ability.Guest)
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = cartContext(e, http.MethodPut, `{"items":[]}`, ability.Guest)
	require.NoError(t, h.Put(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
