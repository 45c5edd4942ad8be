package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/types"
)

// Credentials are a name and password pair as typed by a user.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductInput is the body of a product create or update.
type ProductInput struct {
	Name             string  `json:"name"`
	Heat             float64 `json:"heat"`
	Price            float64 `json:"price"`
	Stock            float64 `json:"stock"`
	ShortDescription string  `json:"shortDescription,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
	LongDescription  string  `json:"longDescription,omitempty"`
}

type orderRequest struct {
	AccountID string             `json:"accountId"`
	Items     []models.OrderItem `json:"items"`
}

// ResetState is the fresh store returned by a reset.
type ResetState struct {
	NextID   int                    `json:"nextId"`
	Accounts []models.PublicAccount `json:"accounts"`
	Products []models.Product       `json:"products"`
	Orders   []models.Order         `json:"orders"`
}

type ResetResult struct {
	Status string     `json:"status"`
	State  ResetState `json:"state"`
}

type loginResponse struct {
	Account models.PublicAccount `json:"account"`
}

func (c *Client) Health(ctx context.Context) (*types.StatusBody, error) {
	var out types.StatusBody
	if err := c.do(ctx, call{method: http.MethodGet, path: "/health", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*models.PublicAccount, error) {
	var out loginResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/login", body: creds, out: &out}); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *Client) Accounts(ctx context.Context) ([]models.PublicAccount, error) {
	var out []models.PublicAccount
	if err := c.do(ctx, call{method: http.MethodGet, path: "/accounts", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, input AccountInput) (*models.PublicAccount, error) {
	var out models.PublicAccount
	if err := c.do(ctx, call{method: http.MethodPost, path: "/accounts", body: input, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) (*models.PublicAccount, error) {
	var out models.PublicAccount
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/accounts/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, call{method: http.MethodGet, path: "/products", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, call{method: http.MethodPost, path: "/products", body: input, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, call{method: http.MethodPut, path: "/products/" + url.PathEscape(id), body: input, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/products/" + url.PathEscape(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists orders, filtered to accountID unless it is empty.
func (c *Client) Orders(ctx context.Context, accountID string) ([]models.PublicOrder, error) {
	req := call{method: http.MethodGet, path: "/orders"}
	if accountID != "" {
		req.query = map[string]string{"accountId": accountID}
	}
	var out []models.PublicOrder
	req.out = &out
	if err := c.do(ctx, req); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PlaceOrder(ctx context.Context, accountID string, items []models.OrderItem) (*models.PublicOrder, error) {
	var out models.PublicOrder
	body := orderRequest{AccountID: accountID, Items: items}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/orders", body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset sends the admin credentials both in the body and in the admin headers.
func (c *Client) Reset(ctx context.Context, creds Credentials) (*ResetResult, error) {
	var out ResetResult
	req := call{
		method: http.MethodPost,
		path:   "/reset",
		body:   creds,
		headers: map[string]string{
			HeaderAdminName:     creds.Name,
			HeaderAdminPassword: creds.Password,
		},
		out: &out,
	}
	if err := c.do(ctx, req); err != nil {
		return nil, err
	}
	return &out, nil
}
