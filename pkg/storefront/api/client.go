// Package api is the typed gateway client for the storefront backend. One
// method per endpoint, bearer auth attached per request, and strict decoding:
// a malformed or incomplete payload is a *DecodeError, never a zero value.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token, or "" when unauthenticated.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// Client talks to the backend. Zero retries anywhere: a failed call is
// surfaced to the caller, who decides whether to re-issue it.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// onUnauthorized runs on every 401 response, before the error is
	// returned. The session store registers its clear routine here so the
	// policy holds for all endpoints, not per call site.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the session store in after construction; the store
// needs the client to log in, so the two are linked in two steps.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook registers the central 401 handler.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

type errorBody struct {
	Error string `json:"error"`
}

// do executes one request and decodes a 2xx body into out (out may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "request failed"
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			msg = eb.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Resource: method + " " + path, Err: err}
	}
	return nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}

// --- auth ---

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return nil, &DecodeError{Resource: "POST /login", Err: fmt.Errorf("missing token or user")}
	}
	return &resp, nil
}

// Register creates an account. It does not authenticate: the caller logs in
// with the new credentials afterwards.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	req := map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}
	var resp User
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.ID == uuid.Nil {
		return nil, &DecodeError{Resource: "POST /register", Err: fmt.Errorf("missing user id")}
	}
	return &resp, nil
}

// CheckAuth validates the current token and returns the profile it belongs to.
func (c *Client) CheckAuth(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/check-auth", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &DecodeError{Resource: "GET /check-auth", Err: fmt.Errorf("missing user")}
	}
	return resp.User, nil
}

// --- catalog ---

// ArtistCategories fetches the fixed category list for the browse menu.
func (c *Client) ArtistCategories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/artist_categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) ListArtists(ctx context.Context, page, limit int) (*ArtistList, error) {
	var resp ArtistList
	if err := c.do(ctx, http.MethodGet, "/artists", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error) {
	var resp Artist
	if err := c.do(ctx, http.MethodGet, "/artists/"+id.String(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistAlbums fetches one artist's discography. sort may be empty for the
// server default (newest release first).
func (c *Client) ArtistAlbums(ctx context.Context, artistID uuid.UUID, sort string, page, limit int) (*AlbumList, error) {
	q := pageQuery(page, limit)
	if sort != "" {
		q.Set("sort", sort)
	}
	var resp AlbumList
	if err := c.do(ctx, http.MethodGet, "/artists/"+artistID.String()+"/albums", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListAlbums(ctx context.Context, page, limit int) (*AlbumList, error) {
	var resp AlbumList
	if err := c.do(ctx, http.MethodGet, "/albums", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error) {
	var resp Album
	if err := c.do(ctx, http.MethodGet, "/albums/"+id.String(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlbumDiscounts fetches the promotion records the product page feeds into
// the local price derivation.
func (c *Client) AlbumDiscounts(ctx context.Context, albumID uuid.UUID) ([]Discount, error) {
	var resp []Discount
	if err := c.do(ctx, http.MethodGet, "/albums/"+albumID.String()+"/discounts", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// --- cart ---

func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var resp Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddToCart(ctx context.Context, versionID uuid.UUID, quantity int) (*Cart, error) {
	req := map[string]any{"version_id": versionID, "quantity": quantity}
	var resp Cart
	if err := c.do(ctx, http.MethodPost, "/cart", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+itemID.String(), nil, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/cart/clear", nil, nil, nil)
}

// --- orders ---

// Checkout creates an order from the user's current cart; the server derives
// the contents, so the request carries no payload.
func (c *Client) Checkout(ctx context.Context) (*Order, error) {
	var resp Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListOrders(ctx context.Context, page, limit int) (*OrderList, error) {
	var resp OrderList
	if err := c.do(ctx, http.MethodGet, "/orders", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var resp Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- wishlist ---

func (c *Client) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var resp []WishlistItem
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) AddToWishlist(ctx context.Context, albumID uuid.UUID) error {
	req := map[string]any{"album_id": albumID}
	return c.do(ctx, http.MethodPost, "/wishlist", nil, req, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, albumID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+albumID.String(), nil, nil, nil)
}

// --- admin ---

func (c *Client) AdminListUsers(ctx context.Context, page, limit int) (*UserList, error) {
	var resp UserList
	if err := c.do(ctx, http.MethodGet, "/admin/users", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id.String(), nil, nil, nil)
}

func (c *Client) AdminListArtists(ctx context.Context, page, limit int) (*ArtistList, error) {
	var resp ArtistList
	if err := c.do(ctx, http.MethodGet, "/admin/artists", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminListAlbums lists albums for the admin console, out_of_stock included.
func (c *Client) AdminListAlbums(ctx context.Context, page, limit int) (*AlbumList, error) {
	var resp AlbumList
	if err := c.do(ctx, http.MethodGet, "/admin/albums", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminCreateArtist(ctx context.Context, req any) (*Artist, error) {
	var resp Artist
	if err := c.do(ctx, http.MethodPost, "/admin/artists", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminUpdateArtist(ctx context.Context, id uuid.UUID, req any) (*Artist, error) {
	var resp Artist
	if err := c.do(ctx, http.MethodPut, "/admin/artists/"+id.String(), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDeleteArtist(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/artists/"+id.String(), nil, nil, nil)
}

func (c *Client) AdminCreateAlbum(ctx context.Context, req any) (*Album, error) {
	var resp Album
	if err := c.do(ctx, http.MethodPost, "/admin/albums", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminUpdateAlbum(ctx context.Context, id uuid.UUID, req any) (*Album, error) {
	var resp Album
	if err := c.do(ctx, http.MethodPut, "/admin/albums/"+id.String(), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDeleteAlbum(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/albums/"+id.String(), nil, nil, nil)
}

func (c *Client) AdminListDiscounts(ctx context.Context, page, limit int) (*DiscountList, error) {
	var resp DiscountList
	if err := c.do(ctx, http.MethodGet, "/admin/discounts", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminCreateDiscount(ctx context.Context, req any) (*Discount, error) {
	var resp Discount
	if err := c.do(ctx, http.MethodPost, "/admin/discounts", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminUpdateDiscount(ctx context.Context, id uuid.UUID, req any) (*Discount, error) {
	var resp Discount
	if err := c.do(ctx, http.MethodPut, "/admin/discounts/"+id.String(), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDeleteDiscount(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/discounts/"+id.String(), nil, nil, nil)
}

func (c *Client) AdminSetDiscountAlbums(ctx context.Context, id uuid.UUID, albumIDs []uuid.UUID) (*Discount, error) {
	req := map[string]any{"album_ids": albumIDs}
	var resp Discount
	if err := c.do(ctx, http.MethodPut, "/admin/discounts/"+id.String()+"/albums", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminListOrders(ctx context.Context, page, limit int) (*OrderList, error) {
	var resp OrderList
	if err := c.do(ctx, http.MethodGet, "/admin/orders", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	req := map[string]string{"status": status}
	var resp Order
	if err := c.do(ctx, http.MethodPatch, "/admin/orders/"+id.String()+"/status", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
