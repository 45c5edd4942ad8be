package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/angelmondragon/spicy-pepper-shop/internal/orders"
	"github.com/angelmondragon/spicy-pepper-shop/internal/products"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Region ids, matching the element ids the markup is placed into.
const (
	RegionProductList   = "product-list"
	RegionProductDetail = "product-detail"
	RegionCartItems     = "cart-items"
	RegionOrderList     = "order-list"
	RegionOrderDetail   = "order-detail"
	RegionAccountList   = "account-list"
	RegionProductAdmin  = "product-admin-body"
)

// Actions a rendered button can trigger.
const (
	ActionAddToCart     = "add-to-cart"
	ActionEditProduct   = "edit-product"
	ActionDeleteProduct = "delete-product"
	ActionDeleteAccount = "delete-account"
)

const (
	fallbackGridShort   = "A pepper with personality."
	fallbackDetailShort = "A bold pepper with a clean kick."
	unknownPepper       = "Unknown pepper"
)

// Binding attaches an action to the entity id carried by a rendered button.
type Binding struct {
	Action string
	ID     string
}

// Region is the freshly rendered markup of one replaceable area together with
// the bindings its buttons need.
type Region struct {
	ID       string
	Page     string
	HTML     template.HTML
	Bindings []Binding
}

// Frame is one full render of the storefront.
type Frame struct {
	Document string
	Route    Route
	Regions  map[string]Region
}

// Bindings returns the bindings of regions on the visible page.
func (f *Frame) Bindings() []Binding {
	if f == nil {
		return nil
	}
	var out []Binding
	for _, id := range regionOrder {
		region, ok := f.Regions[id]
		if !ok || region.Page != f.Route.Page() {
			continue
		}
		out = append(out, region.Bindings...)
	}
	return out
}

// Bound reports whether b is attached to a button on the visible page.
func (f *Frame) Bound(b Binding) bool {
	for _, candidate := range f.Bindings() {
		if candidate == b {
			return true
		}
	}
	return false
}

var regionOrder = []string{
	RegionProductList,
	RegionProductDetail,
	RegionCartItems,
	RegionOrderList,
	RegionOrderDetail,
	RegionAccountList,
	RegionProductAdmin,
}

// ProductForm is the admin product form as typed.
type ProductForm struct {
	Name        string
	Heat        string
	Price       string
	Stock       string
	Description string
}

type viewState struct {
	route    Route
	session  *Session
	accounts []models.PublicAccount
	products []models.Product
	orders   []models.PublicOrder
	cart     []CartItem
	form     ProductForm
	status   string
}

func (v viewState) isAdmin() bool {
	return v.session.IsAdmin()
}

func (v viewState) product(id string) (models.Product, bool) {
	for _, p := range v.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (v viewState) account(id string) (models.PublicAccount, bool) {
	for _, a := range v.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.PublicAccount{}, false
}

func (v viewState) ownerOf(order models.PublicOrder) (string, string) {
	name, email := order.AccountName, order.AccountEmail
	if account, ok := v.account(order.AccountID); ok {
		if name == "" {
			name = account.Name
		}
		if email == "" {
			email = account.Email
		}
	}
	if name == "" {
		name = orders.UnknownAccountName
	}
	if email == "" {
		email = orders.UnknownAccountEmail
	}
	return name, email
}

// Renderer projects storefront state into markup using the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("storefront").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse storefront templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"euro":     FormatEuro,
		"shu":      FormatSHU,
		"datetime": formatDateTime,
	}
}

var shuPrinter = message.NewPrinter(language.MustParse("nl-NL"))

// FormatEuro renders an amount as €x.xx.
func FormatEuro(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

// FormatSHU renders a Scoville value with Dutch digit grouping.
func FormatSHU(heat int) string {
	return shuPrinter.Sprintf("%d", heat)
}

func formatDateTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

type productCard struct {
	ID       string
	Name     string
	ImageURL string
	Heat     int
	Price    decimal.Decimal
	Stock    int
	Short    string
	Long     string
}

func imageOf(p models.Product) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return products.DefaultImageURL
}

func shortOf(p models.Product, fallback string) string {
	if p.ShortDescription != "" {
		return p.ShortDescription
	}
	if p.Description != "" {
		return p.Description
	}
	return fallback
}

func longOf(p models.Product) string {
	if p.LongDescription != "" {
		return p.LongDescription
	}
	return fmt.Sprintf("Once upon a dinner plan, %s walked in like it owned the kitchen. Everyone said, \"Just one bite.\" "+
		"Five minutes later there were dramatic faces, proud tears, and someone claiming they \"totally meant\" to drink a full glass of milk.", p.Name)
}

func card(p models.Product, fallbackShort string) productCard {
	return productCard{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: imageOf(p),
		Heat:     p.Heat,
		Price:    p.Price,
		Stock:    p.Stock,
		Short:    shortOf(p, fallbackShort),
		Long:     longOf(p),
	}
}

func (r *Renderer) productList(v viewState) (Region, error) {
	cards := make([]productCard, 0, len(v.products))
	bindings := make([]Binding, 0, len(v.products))
	for _, p := range v.products {
		cards = append(cards, card(p, fallbackGridShort))
		bindings = append(bindings, Binding{Action: ActionAddToCart, ID: p.ID})
	}
	html, err := r.execute(RegionProductList, cards)
	return Region{ID: RegionProductList, Page: ViewShop.String(), HTML: html, Bindings: bindings}, err
}

func (r *Renderer) productDetail(v viewState) (Region, error) {
	region := Region{ID: RegionProductDetail, Page: ViewProduct.String()}
	var data *productCard
	if v.route.View == ViewProduct {
		if p, ok := v.product(v.route.ID); ok {
			c := card(p, fallbackDetailShort)
			data = &c
			region.Bindings = []Binding{{Action: ActionAddToCart, ID: p.ID}}
		}
	}
	html, err := r.execute(RegionProductDetail, data)
	region.HTML = html
	return region, err
}

type cartLine struct {
	Name     string
	Qty      int
	Subtotal decimal.Decimal
}

func (r *Renderer) cartItems(v viewState) (Region, error) {
	lines := make([]cartLine, 0, len(v.cart))
	for _, item := range v.cart {
		line := cartLine{Name: unknownPepper, Qty: item.Qty, Subtotal: decimal.Zero}
		if p, ok := v.product(item.ProductID); ok {
			line.Name = p.Name
			line.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		}
		lines = append(lines, line)
	}
	html, err := r.execute(RegionCartItems, lines)
	return Region{ID: RegionCartItems, Page: ViewCart.String(), HTML: html}, err
}

type orderCard struct {
	ID        string
	Owner     string
	ItemCount int
	Total     decimal.Decimal
	CreatedAt time.Time
}

type orderListData struct {
	LoggedIn  bool
	ShowOwner bool
	Orders    []orderCard
}

func (r *Renderer) orderList(v viewState) (Region, error) {
	data := orderListData{LoggedIn: v.session != nil, ShowOwner: v.isAdmin()}
	for _, order := range v.orders {
		owner, _ := v.ownerOf(order)
		data.Orders = append(data.Orders, orderCard{
			ID:        order.ID,
			Owner:     owner,
			ItemCount: order.ItemCount(),
			Total:     order.Total,
			CreatedAt: order.CreatedAt,
		})
	}
	html, err := r.execute(RegionOrderList, data)
	return Region{ID: RegionOrderList, Page: ViewOrders.String(), HTML: html}, err
}

type orderLine struct {
	Name      string
	Alt       string
	ImageURL  string
	Qty       int
	LineTotal decimal.Decimal
}

type orderDetailData struct {
	LoggedIn   bool
	Found      bool
	ShowOwner  bool
	ID         string
	OwnerName  string
	OwnerEmail string
	CreatedAt  time.Time
	Total      decimal.Decimal
	Lines      []orderLine
}

// Line totals use the product's current price, not the price paid.
func (r *Renderer) orderDetail(v viewState) (Region, error) {
	data := orderDetailData{LoggedIn: v.session != nil, ShowOwner: v.isAdmin()}
	if data.LoggedIn && v.route.View == ViewOrder {
		for _, order := range v.orders {
			if order.ID != v.route.ID {
				continue
			}
			data.Found = true
			data.ID = order.ID
			data.OwnerName, data.OwnerEmail = v.ownerOf(order)
			data.CreatedAt = order.CreatedAt
			data.Total = order.Total
			for _, item := range order.Items {
				line := orderLine{Name: unknownPepper, ImageURL: products.DefaultImageURL, Qty: item.Qty, LineTotal: decimal.Zero}
				if p, ok := v.product(item.ProductID); ok {
					line.Name = p.Name
					line.Alt = p.Name
					line.ImageURL = imageOf(p)
					line.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
				}
				data.Lines = append(data.Lines, line)
			}
			break
		}
	}
	html, err := r.execute(RegionOrderDetail, data)
	return Region{ID: RegionOrderDetail, Page: ViewOrder.String(), HTML: html}, err
}

func (r *Renderer) accountList(v viewState) (Region, error) {
	bindings := make([]Binding, 0, len(v.accounts))
	for _, account := range v.accounts {
		bindings = append(bindings, Binding{Action: ActionDeleteAccount, ID: account.ID})
	}
	html, err := r.execute(RegionAccountList, v.accounts)
	return Region{ID: RegionAccountList, Page: ViewAdmin.String(), HTML: html, Bindings: bindings}, err
}

func (r *Renderer) productAdmin(v viewState) (Region, error) {
	bindings := make([]Binding, 0, 2*len(v.products))
	for _, p := range v.products {
		bindings = append(bindings,
			Binding{Action: ActionEditProduct, ID: p.ID},
			Binding{Action: ActionDeleteProduct, ID: p.ID},
		)
	}
	html, err := r.execute(RegionProductAdmin, v.products)
	return Region{ID: RegionProductAdmin, Page: ViewAdmin.String(), HTML: html, Bindings: bindings}, err
}

type documentData struct {
	Page       string
	ActiveNav  string
	Session    *Session
	IsAdmin    bool
	Status     string
	CartCount  int
	OrderCount int
	Form       ProductForm
	Regions    map[string]template.HTML
}

// Render replaces every region and the surrounding document.
func (r *Renderer) Render(v viewState) (*Frame, error) {
	frame := &Frame{Route: v.route, Regions: make(map[string]Region, len(regionOrder))}
	steps := []func(viewState) (Region, error){
		r.productList,
		r.productDetail,
		r.cartItems,
		r.orderList,
		r.orderDetail,
		r.accountList,
		r.productAdmin,
	}
	doc := documentData{
		Page:       v.route.Page(),
		ActiveNav:  ActiveNav(v.route.View),
		Session:    v.session,
		IsAdmin:    v.isAdmin(),
		Status:     v.status,
		OrderCount: len(v.orders),
		Form:       v.form,
		Regions:    make(map[string]template.HTML, len(steps)),
	}
	for _, item := range v.cart {
		doc.CartCount += item.Qty
	}
	for _, step := range steps {
		region, err := step(v)
		if err != nil {
			return nil, err
		}
		frame.Regions[region.ID] = region
		doc.Regions[region.ID] = region.HTML
	}
	html, err := r.execute("document", doc)
	if err != nil {
		return nil, err
	}
	frame.Document = string(html)
	return frame, nil
}
