package storefront

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

func TestFormatters(t *testing.T) {
	if got := FormatEuro(decimal.RequireFromString("4.5")); got != "€4.50" {
		t.Fatalf("FormatEuro = %q", got)
	}
	if got := FormatEuro(decimal.Zero); got != "€0.00" {
		t.Fatalf("FormatEuro zero = %q", got)
	}
	if got := FormatSHU(1000000); got != "1.000.000" {
		t.Fatalf("FormatSHU = %q", got)
	}
	if got := FormatSHU(500); got != "500" {
		t.Fatalf("FormatSHU small = %q", got)
	}
}

func testState() viewState {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return viewState{
		route: Route{View: ViewShop},
		accounts: []models.PublicAccount{
			{ID: "1", Name: "Chili Lover", Email: "chili@example.com", CreatedAt: created},
		},
		products: []models.Product{
			{ID: "10", Name: "Habanero", Heat: 350000, Price: decimal.RequireFromString("4.50"), Stock: 25, ImageURL: "/peppers/habanero.jpg", ShortDescription: "Fruity heat."},
			{ID: "20", Name: "Mystery", Heat: 1000, Price: decimal.RequireFromString("2"), Stock: 1},
		},
		orders: []models.PublicOrder{
			{
				Order: models.Order{
					ID: "100", AccountID: "1", CreatedAt: created,
					Items: []models.OrderItem{{ProductID: "10", Qty: 2}, {ProductID: "gone", Qty: 1}},
					Total: decimal.RequireFromString("9"),
				},
				AccountName:  "Chili Lover",
				AccountEmail: "chili@example.com",
			},
		},
	}
}

func mustRender(t *testing.T, state viewState) *Frame {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	frame, err := renderer.Render(state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return frame
}

func TestRenderProductGrid(t *testing.T) {
	frame := mustRender(t, testState())
	grid := string(frame.Regions[RegionProductList].HTML)

	for _, want := range []string{
		`id="product-10"`,
		"350.000 SHU",
		"Price: €4.50",
		"Fruity heat.",
		"A pepper with personality.",
		"/peppers/pepper-generic.jpg",
		`href="#/product/20"`,
	} {
		if !strings.Contains(grid, want) {
			t.Fatalf("grid missing %q:\n%s", want, grid)
		}
	}

	bindings := frame.Bindings()
	if len(bindings) != 2 || bindings[0] != (Binding{Action: ActionAddToCart, ID: "10"}) {
		t.Fatalf("unexpected shop bindings %+v", bindings)
	}
	if frame.Bound(Binding{Action: ActionDeleteProduct, ID: "10"}) {
		t.Fatalf("admin buttons must not be bound on the shop page")
	}
}

func TestRenderDocumentVisibilityAndNav(t *testing.T) {
	state := testState()
	state.route = Route{View: ViewCart}
	state.cart = []CartItem{{ProductID: "10", Qty: 3}}
	frame := mustRender(t, state)
	doc := frame.Document

	if !strings.Contains(doc, `class="page"`) || !strings.Contains(doc, `id="page-cart" data-page="cart" class="page"`) {
		t.Fatalf("cart page should be visible:\n%s", doc)
	}
	if !strings.Contains(doc, `id="page-shop" data-page="shop" class="page hidden"`) {
		t.Fatalf("shop page should be hidden")
	}
	if !strings.Contains(doc, `data-cy="nav-cart" class="active"`) {
		t.Fatalf("cart nav should be active")
	}
	if !strings.Contains(doc, `<span id="cart-count" class="badge">3</span>`) {
		t.Fatalf("cart count not rendered")
	}
	if !strings.Contains(doc, "Not logged in") || !strings.Contains(doc, "Guest (login to checkout)") {
		t.Fatalf("guest header not rendered")
	}
	if !strings.Contains(doc, "you need to log in to checkout") {
		t.Fatalf("guest hint not rendered")
	}
	if !strings.Contains(string(frame.Regions[RegionCartItems].HTML), "Subtotal: €13.50") {
		t.Fatalf("cart subtotal not rendered: %s", frame.Regions[RegionCartItems].HTML)
	}
}

func TestRenderEmptyCart(t *testing.T) {
	frame := mustRender(t, testState())
	if !strings.Contains(string(frame.Regions[RegionCartItems].HTML), "Cart is empty.") {
		t.Fatalf("expected empty cart message")
	}
}

func TestRenderProductDetail(t *testing.T) {
	state := testState()
	state.route = Route{View: ViewProduct, ID: "20"}
	frame := mustRender(t, state)
	detail := string(frame.Regions[RegionProductDetail].HTML)

	if !strings.Contains(detail, "A bold pepper with a clean kick.") {
		t.Fatalf("detail short fallback missing:\n%s", detail)
	}
	if !strings.Contains(detail, "Once upon a dinner plan, Mystery walked in like it owned the kitchen.") {
		t.Fatalf("detail long fallback missing:\n%s", detail)
	}
	if !frame.Bound(Binding{Action: ActionAddToCart, ID: "20"}) {
		t.Fatalf("detail add-to-cart should be bound")
	}

	state.route = Route{View: ViewProduct, ID: "404"}
	frame = mustRender(t, state)
	if !strings.Contains(string(frame.Regions[RegionProductDetail].HTML), "Product not found.") {
		t.Fatalf("expected not found detail")
	}
	if len(frame.Bindings()) != 0 {
		t.Fatalf("missing product must not bind buttons")
	}
}

func TestRenderOrders(t *testing.T) {
	state := testState()
	state.route = Route{View: ViewOrders}

	frame := mustRender(t, state)
	if !strings.Contains(string(frame.Regions[RegionOrderList].HTML), "Log in to view your order history.") {
		t.Fatalf("guest order list should ask for login")
	}

	state.session = &Session{ID: "1", Name: "Chili Lover"}
	frame = mustRender(t, state)
	list := string(frame.Regions[RegionOrderList].HTML)
	if !strings.Contains(list, "Order 100") || !strings.Contains(list, "Items: 3") || !strings.Contains(list, "Total: €9.00") {
		t.Fatalf("order card incomplete:\n%s", list)
	}
	if strings.Contains(list, "Account: Chili Lover") {
		t.Fatalf("owner must only show for admin")
	}

	state.session = &Session{ID: "4", Name: "admin"}
	frame = mustRender(t, state)
	if !strings.Contains(string(frame.Regions[RegionOrderList].HTML), "Account: Chili Lover") {
		t.Fatalf("admin should see the owner")
	}

	state.orders = nil
	frame = mustRender(t, state)
	if !strings.Contains(string(frame.Regions[RegionOrderList].HTML), "No orders yet.") {
		t.Fatalf("expected empty order list")
	}
}

func TestRenderOrderDetailUsesCurrentPrice(t *testing.T) {
	state := testState()
	state.route = Route{View: ViewOrder, ID: "100"}
	state.session = &Session{ID: "4", Name: "admin"}
	state.products[0].Price = decimal.RequireFromString("5")

	frame := mustRender(t, state)
	detail := string(frame.Regions[RegionOrderDetail].HTML)
	for _, want := range []string{
		"Order 100",
		"Account: Chili Lover (chili@example.com)",
		"Total: €9.00",
		"Line total: €10.00",
		"Unknown pepper",
		"Line total: €0.00",
	} {
		if !strings.Contains(detail, want) {
			t.Fatalf("order detail missing %q:\n%s", want, detail)
		}
	}

	state.route = Route{View: ViewOrder, ID: "999"}
	frame = mustRender(t, state)
	detail = string(frame.Regions[RegionOrderDetail].HTML)
	if !strings.Contains(detail, "Order not found.") || !strings.Contains(detail, `href="#/orders"`) {
		t.Fatalf("expected not found order detail:\n%s", detail)
	}

	state.session = nil
	frame = mustRender(t, state)
	if !strings.Contains(string(frame.Regions[RegionOrderDetail].HTML), "Log in to view order details.") {
		t.Fatalf("guest order detail should ask for login")
	}
}

func TestRenderAdminRegions(t *testing.T) {
	state := testState()
	state.route = Route{View: ViewAdmin}
	state.session = &Session{ID: "4", Name: "admin"}
	state.form = ProductForm{Name: "Habanero", Heat: "350000"}

	frame := mustRender(t, state)
	if !strings.Contains(frame.Document, `id="reset-button"`) || !strings.Contains(frame.Document, "active-admin") {
		t.Fatalf("admin controls missing")
	}
	if !strings.Contains(frame.Document, `id="product-name" value="Habanero"`) {
		t.Fatalf("form prefill missing")
	}
	if !strings.Contains(string(frame.Regions[RegionProductAdmin].HTML), `data-delete-id="10"`) {
		t.Fatalf("admin table missing delete button")
	}
	for _, b := range []Binding{
		{Action: ActionDeleteAccount, ID: "1"},
		{Action: ActionEditProduct, ID: "10"},
		{Action: ActionDeleteProduct, ID: "20"},
	} {
		if !frame.Bound(b) {
			t.Fatalf("expected %+v to be bound", b)
		}
	}
	if frame.Bound(Binding{Action: ActionAddToCart, ID: "10"}) {
		t.Fatalf("shop buttons must not be bound on the admin page")
	}
}
