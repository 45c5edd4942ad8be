package storefront

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/shopapi"
)

// Status messages shown after user actions.
const (
	MsgLoggedIn           = "Logged in."
	MsgLoginFailed        = "Login failed."
	MsgLoggedOut          = "Logged out."
	MsgEnterCredentials   = "Enter name and password."
	MsgAccountCreated     = "Account created."
	MsgAccountDeleted     = "Account deleted."
	MsgEnterAccountFields = "Enter name, email, and password."
	MsgProductCreated     = "Product created."
	MsgProductUpdated     = "Product updated."
	MsgProductDeleted     = "Product deleted."
	MsgEditingProduct     = "Editing product."
	MsgFillProductFields  = "Fill out name, Scoville (SHU), price, stock."
	MsgAddedToCart        = "Added to cart."
	MsgLoginToOrder       = "Please log in to place an order."
	MsgCartEmpty          = "Cart is empty."
	MsgOrderPlaced        = "Order placed."
	MsgAdminRequired      = "Admin login required."
	MsgAdminResetRequired = "Admin login required to reset."
	MsgDataReset          = "Data reset."
)

// ErrNotBound is returned when a dispatched binding is not on the visible page.
var ErrNotBound = errors.New("action is not bound on the current page")

// API is the shop API surface the storefront drives.
type API interface {
	Login(ctx context.Context, creds shopapi.Credentials) (*models.PublicAccount, error)
	Accounts(ctx context.Context) ([]models.PublicAccount, error)
	CreateAccount(ctx context.Context, input shopapi.AccountInput) (*models.PublicAccount, error)
	DeleteAccount(ctx context.Context, id string) (*models.PublicAccount, error)
	Products(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input shopapi.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input shopapi.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.Product, error)
	Orders(ctx context.Context, accountID string) ([]models.PublicOrder, error)
	PlaceOrder(ctx context.Context, accountID string, items []models.OrderItem) (*models.PublicOrder, error)
	Reset(ctx context.Context, creds shopapi.Credentials) (*shopapi.ResetResult, error)
}

type Params struct {
	API     API
	Storage Storage
	Logger  *logger.Logger
	// ResetCredentials are sent with the admin reset call. When empty, the
	// credentials the admin logged in with are used.
	ResetCredentials shopapi.Credentials
	Clock            func() time.Time
}

// App is the headless storefront view-controller. It mirrors server collections,
// owns the cart and session, and re-renders every region after each change.
type App struct {
	api       API
	storage   Storage
	logg      *logger.Logger
	renderer  *Renderer
	resetAuth shopapi.Credentials
	now       func() time.Time

	mu       sync.Mutex
	route    Route
	session  *Session
	auth     *Auth
	accounts []models.PublicAccount
	products []models.Product
	orders   []models.PublicOrder
	cart     Cart
	editing  string
	form     ProductForm
	status   Status
	frame    *Frame
}

func New(params Params) (*App, error) {
	if params.API == nil {
		return nil, errors.New("storefront api is required")
	}
	if params.Storage == nil {
		params.Storage = NewMemoryStorage()
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &App{
		api:       params.API,
		storage:   params.Storage,
		logg:      params.Logger,
		renderer:  renderer,
		resetAuth: params.ResetCredentials,
		now:       params.Clock,
		route:     Route{View: ViewShop},
	}, nil
}

// Start restores the stored session, applies the initial fragment and loads all collections.
func (a *App) Start(ctx context.Context, fragment string) error {
	a.restoreSession(ctx)
	a.Navigate(ctx, fragment)
	return a.loadAll(ctx)
}

func (a *App) restoreSession(ctx context.Context) {
	raw, ok, err := a.storage.Load(ctx)
	if err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "storefront.session.load_failed")
		return
	}
	if !ok {
		return
	}
	session, auth, ok := DecodeSession(raw)
	if !ok {
		a.logg.Warn(ctx, "storefront.session.discarded")
	}
	a.mu.Lock()
	a.session, a.auth = session, auth
	a.refreshLocked(ctx)
	a.mu.Unlock()
}

// Navigate applies a fragment change. Detail pages are re-rendered from cached data.
func (a *App) Navigate(ctx context.Context, fragment string) Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.navigateLocked(ctx, ParseFragment(fragment))
}

func (a *App) navigateLocked(ctx context.Context, route Route) Route {
	switch route.View {
	case ViewAdmin:
		if !a.session.IsAdmin() {
			a.status.Set(MsgAdminRequired, a.now())
			route = Route{View: ViewLogin}
		}
	case ViewShop, ViewCart, ViewOrders, ViewOrder, ViewProduct, ViewLogin:
	}
	a.route = route
	a.refreshLocked(ctx)
	return route
}

func (a *App) refreshLocked(ctx context.Context) {
	message, _ := a.status.Current(a.now())
	state := viewState{
		route:    a.route,
		session:  a.session,
		accounts: a.accounts,
		products: a.products,
		orders:   a.orders,
		cart:     a.cart.Items(),
		form:     a.form,
		status:   message,
	}
	frame, err := a.renderer.Render(state)
	if err != nil {
		a.logg.Error(ctx, "storefront.render_failed", err)
		return
	}
	a.frame = frame
}

func (a *App) update(ctx context.Context, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
	a.refreshLocked(ctx)
}

func (a *App) setStatus(ctx context.Context, message string) {
	a.update(ctx, func() { a.status.Set(message, a.now()) })
}

// fail surfaces err as the status message and returns it unchanged.
func (a *App) fail(ctx context.Context, event string, err error) error {
	a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), event)
	a.setStatus(ctx, ErrorMessage(err))
	return err
}

// ErrorMessage is the user-facing text of a failed call.
func ErrorMessage(err error) string {
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}

// Frame renders the current state so the status line reflects its expiry.
func (a *App) Frame(ctx context.Context) *Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshLocked(ctx)
	return a.frame
}

// Document is the full markup of the current state.
func (a *App) Document(ctx context.Context) string {
	if frame := a.Frame(ctx); frame != nil {
		return frame.Document
	}
	return ""
}

func (a *App) Route() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	copied := *a.session
	return &copied
}

func (a *App) Cart() []CartItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Items()
}

func (a *App) Products() []models.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Product(nil), a.products...)
}

func (a *App) Orders() []models.PublicOrder {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.PublicOrder(nil), a.orders...)
}

func (a *App) Accounts() []models.PublicAccount {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.PublicAccount(nil), a.accounts...)
}

// Status is the visible status message, if any.
func (a *App) Status() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status.Current(a.now())
}

// Form is the current product form contents.
func (a *App) Form() ProductForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// Dispatch runs the action behind a rendered button. Only buttons on the visible
// page of the latest render can be dispatched.
func (a *App) Dispatch(ctx context.Context, b Binding) error {
	a.mu.Lock()
	bound := a.frame.Bound(b)
	a.mu.Unlock()
	if !bound {
		return ErrNotBound
	}
	switch b.Action {
	case ActionAddToCart:
		a.AddToCart(ctx, b.ID)
		return nil
	case ActionEditProduct:
		a.EditProduct(ctx, b.ID)
		return nil
	case ActionDeleteProduct:
		return a.DeleteProduct(ctx, b.ID)
	case ActionDeleteAccount:
		return a.DeleteAccount(ctx, b.ID)
	default:
		return ErrNotBound
	}
}

func (a *App) loadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.loadAccounts(gctx) })
	g.Go(func() error { return a.loadProducts(gctx) })
	g.Go(func() error { return a.loadOrders(gctx) })
	if err := g.Wait(); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	return nil
}

func (a *App) loadAccounts(ctx context.Context) error {
	accounts, err := a.api.Accounts(ctx)
	if err != nil {
		return err
	}
	a.update(ctx, func() { a.accounts = accounts })
	return nil
}

func (a *App) loadProducts(ctx context.Context) error {
	products, err := a.api.Products(ctx)
	if err != nil {
		return err
	}
	a.update(ctx, func() { a.products = products })
	return nil
}

// loadOrders fetches the session account's orders, or every order for the admin.
func (a *App) loadOrders(ctx context.Context) error {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()
	if session == nil {
		a.update(ctx, func() { a.orders = nil })
		return nil
	}
	accountID := session.ID
	if session.IsAdmin() {
		accountID = ""
	}
	orders, err := a.api.Orders(ctx, accountID)
	if err != nil {
		return err
	}
	a.update(ctx, func() { a.orders = orders })
	return nil
}

// Login signs in with the typed credentials and persists the session.
func (a *App) Login(ctx context.Context, name, password string) error {
	creds := shopapi.Credentials{Name: strings.TrimSpace(name), Password: strings.TrimSpace(password)}
	if creds.Name == "" || creds.Password == "" {
		a.setStatus(ctx, MsgEnterCredentials)
		return nil
	}

	account, err := a.api.Login(ctx, creds)
	if err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "storefront.login_failed")
		a.setStatus(ctx, MsgLoginFailed)
		return err
	}

	session := &Session{ID: account.ID, Name: account.Name, Email: account.Email}
	auth := &Auth{Name: creds.Name, Password: creds.Password}
	encoded, err := EncodeSession(*session, auth)
	if err != nil {
		return a.fail(ctx, "storefront.session.encode_failed", err)
	}
	if err := a.storage.Save(ctx, encoded); err != nil {
		return a.fail(ctx, "storefront.session.save_failed", err)
	}

	a.update(ctx, func() {
		a.session, a.auth = session, auth
		a.status.Set(MsgLoggedIn, a.now())
	})
	a.logg.Info(a.logg.WithAccountID(ctx, session.ID), "storefront.logged_in")

	if err := a.loadOrders(ctx); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	a.Navigate(ctx, "#/shop")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.storage.Clear(ctx)
	a.update(ctx, func() {
		a.session, a.auth = nil, nil
		a.orders = nil
		a.status.Set(MsgLoggedOut, a.now())
	})
	a.Navigate(ctx, "#/shop")
	if err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "storefront.session.clear_failed")
	}
	return err
}

func (a *App) CreateAccount(ctx context.Context, input shopapi.AccountInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		a.setStatus(ctx, MsgEnterAccountFields)
		return nil
	}
	if _, err := a.api.CreateAccount(ctx, input); err != nil {
		return a.fail(ctx, "storefront.account.create_failed", err)
	}
	if err := a.loadAccounts(ctx); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	a.setStatus(ctx, MsgAccountCreated)
	return nil
}

func (a *App) DeleteAccount(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := a.api.DeleteAccount(ctx, id); err != nil {
		return a.fail(ctx, "storefront.account.delete_failed", err)
	}
	if err := a.loadAccounts(ctx); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	a.setStatus(ctx, MsgAccountDeleted)
	return nil
}

// EditProduct prefills the product form from the cached product.
func (a *App) EditProduct(ctx context.Context, id string) {
	a.update(ctx, func() {
		for _, p := range a.products {
			if p.ID != id {
				continue
			}
			description := p.ShortDescription
			if description == "" {
				description = p.Description
			}
			a.form = ProductForm{
				Name:        p.Name,
				Heat:        strconv.Itoa(p.Heat),
				Price:       p.Price.String(),
				Stock:       strconv.Itoa(p.Stock),
				Description: description,
			}
			a.editing = p.ID
			a.status.Set(MsgEditingProduct, a.now())
			return
		}
	})
}

// CancelEdit empties the product form and leaves edit mode.
func (a *App) CancelEdit(ctx context.Context) {
	a.update(ctx, func() {
		a.form = ProductForm{}
		a.editing = ""
	})
}

// Editing is the id of the product being edited, or "".
func (a *App) Editing() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editing
}

// SaveProduct creates a product, or updates the one in edit mode.
func (a *App) SaveProduct(ctx context.Context, form ProductForm) error {
	input, ok := form.input()
	if !ok {
		a.update(ctx, func() {
			a.form = form
			a.status.Set(MsgFillProductFields, a.now())
		})
		return nil
	}

	a.mu.Lock()
	editing := a.editing
	a.mu.Unlock()

	message := MsgProductCreated
	var err error
	if editing != "" {
		_, err = a.api.UpdateProduct(ctx, editing, input)
		message = MsgProductUpdated
	} else {
		_, err = a.api.CreateProduct(ctx, input)
	}
	if err != nil {
		return a.fail(ctx, "storefront.product.save_failed", err)
	}

	a.update(ctx, func() {
		a.form = ProductForm{}
		a.editing = ""
		a.status.Set(message, a.now())
	})
	if err := a.loadProducts(ctx); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	return nil
}

// input converts typed form fields the way a number input does: blank is zero.
func (f ProductForm) input() (shopapi.ProductInput, bool) {
	name := strings.TrimSpace(f.Name)
	heat, okHeat := formNumber(f.Heat)
	price, okPrice := formNumber(f.Price)
	stock, okStock := formNumber(f.Stock)
	if name == "" || !okHeat || !okPrice || !okStock {
		return shopapi.ProductInput{}, false
	}
	return shopapi.ProductInput{
		Name:             name,
		Heat:             heat,
		Price:            price,
		Stock:            stock,
		ShortDescription: strings.TrimSpace(f.Description),
	}, true
}

func formNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func (a *App) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := a.api.DeleteProduct(ctx, id); err != nil {
		return a.fail(ctx, "storefront.product.delete_failed", err)
	}
	if err := a.loadProducts(ctx); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}
	a.setStatus(ctx, MsgProductDeleted)
	return nil
}

// AddToCart adds one unit. Guests may fill a cart.
func (a *App) AddToCart(ctx context.Context, productID string) {
	a.update(ctx, func() {
		a.cart.Add(productID)
		message := MsgAddedToCart
		for _, p := range a.products {
			if p.ID == productID {
				message = p.Name + " added to cart."
				break
			}
		}
		a.status.Set(message, a.now())
	})
}

// PlaceOrder submits the cart for the session account and lands on the cart page.
func (a *App) PlaceOrder(ctx context.Context) error {
	a.mu.Lock()
	session := a.session
	items := a.cart.OrderItems()
	a.mu.Unlock()

	if session == nil {
		a.setStatus(ctx, MsgLoginToOrder)
		a.Navigate(ctx, "#/login")
		return nil
	}
	if len(items) == 0 {
		a.setStatus(ctx, MsgCartEmpty)
		return nil
	}

	order, err := a.api.PlaceOrder(ctx, session.ID, items)
	if err != nil {
		return a.fail(ctx, "storefront.order.place_failed", err)
	}
	a.update(ctx, func() { a.cart.Clear() })

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.loadOrders(gctx) })
	g.Go(func() error { return a.loadProducts(gctx) })
	if err := g.Wait(); err != nil {
		return a.fail(ctx, "storefront.load_failed", err)
	}

	a.logg.Info(a.logg.WithField(ctx, "order_id", order.ID), "storefront.order_placed")
	a.setStatus(ctx, MsgOrderPlaced)
	a.Navigate(ctx, "#/cart")
	return nil
}

// Reset restores the server seed. Only the admin session may trigger it.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	admin := a.session.IsAdmin()
	creds := a.resetAuth
	if creds.Name == "" && a.auth != nil {
		creds = shopapi.Credentials{Name: a.auth.Name, Password: a.auth.Password}
	}
	a.mu.Unlock()
	if !admin {
		a.setStatus(ctx, MsgAdminResetRequired)
		return nil
	}

	if _, err := a.api.Reset(ctx, creds); err != nil {
		return a.fail(ctx, "storefront.reset_failed", err)
	}
	a.update(ctx, func() { a.cart.Clear() })
	if err := a.loadAll(ctx); err != nil {
		return err
	}
	a.setStatus(ctx, MsgDataReset)
	return nil
}
