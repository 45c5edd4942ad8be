package storefront

import "strings"

// View is one of the closed set of storefront pages.
type View int

const (
	ViewShop View = iota
	ViewCart
	ViewOrders
	ViewOrder
	ViewAdmin
	ViewProduct
	ViewLogin
)

var viewNames = [...]string{
	ViewShop:    "shop",
	ViewCart:    "cart",
	ViewOrders:  "orders",
	ViewOrder:   "order",
	ViewAdmin:   "admin",
	ViewProduct: "product",
	ViewLogin:   "login",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return viewNames[ViewShop]
	}
	return viewNames[v]
}

// Route is the resolved page plus the selected product or order id for detail pages.
type Route struct {
	View View
	ID   string
}

// DefaultFragment is used when the location carries no fragment at all.
const DefaultFragment = "#/shop"

// ParseFragment resolves a "#/<route>[/<id>]" location fragment. It depends on nothing
// but its input, so a reload of the same fragment always lands on the same page.
func ParseFragment(fragment string) Route {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || fragment == "#" {
		fragment = DefaultFragment
	}
	parts := strings.Split(strings.TrimPrefix(fragment, "#"), "/")
	var name, id string
	if len(parts) > 1 {
		name = parts[1]
	}
	if len(parts) > 2 {
		id = parts[2]
	}

	switch {
	case name == "product" && id != "":
		return Route{View: ViewProduct, ID: id}
	case name == "orders" && id != "":
		return Route{View: ViewOrder, ID: id}
	case name == "cart":
		return Route{View: ViewCart}
	case name == "orders":
		return Route{View: ViewOrders}
	case name == "admin":
		return Route{View: ViewAdmin}
	case name == "login":
		return Route{View: ViewLogin}
	default:
		return Route{View: ViewShop}
	}
}

// Fragment is the canonical location fragment for the route.
func (r Route) Fragment() string {
	switch r.View {
	case ViewProduct:
		return "#/product/" + r.ID
	case ViewOrder:
		return "#/orders/" + r.ID
	case ViewCart:
		return "#/cart"
	case ViewOrders:
		return "#/orders"
	case ViewAdmin:
		return "#/admin"
	case ViewLogin:
		return "#/login"
	default:
		return "#/shop"
	}
}

// Page is the data-page name of the section that shows the route.
func (r Route) Page() string {
	return r.View.String()
}

// ActiveNav returns the data-cy of the highlighted menu link, or "" when none is.
func ActiveNav(v View) string {
	switch v {
	case ViewCart:
		return "nav-cart"
	case ViewOrders, ViewOrder:
		return "nav-orders"
	case ViewShop, ViewProduct:
		return "nav-shop"
	case ViewAdmin, ViewLogin:
		return ""
	default:
		return ""
	}
}
