package docs

import "strings"

// Document is the subset of OpenAPI 3.0.3 the shop API needs.
type Document struct {
	OpenAPI string               `json:"openapi"`
	Info    Info                 `json:"info"`
	Servers []Server             `json:"servers"`
	Paths   map[string]*PathItem `json:"paths"`
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type Server struct {
	URL string `json:"url"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Description string              `json:"description,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Schema   Schema `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema"`
}

type Schema struct {
	Type       string            `json:"type"`
	Required   []string          `json:"required,omitempty"`
	Properties map[string]Schema `json:"properties,omitempty"`
	Items      *Schema           `json:"items,omitempty"`
	Example    any               `json:"example,omitempty"`
}

type Response struct {
	Description string `json:"description"`
}

// Route is one documented method and path, with chi-style {params}.
type Route struct {
	Method string
	Path   string
}

// Routes lists every documented operation.
func (d Document) Routes() []Route {
	var out []Route
	for path, item := range d.Paths {
		for method, op := range map[string]*Operation{"GET": item.Get, "POST": item.Post, "PUT": item.Put, "DELETE": item.Delete} {
			if op != nil {
				out = append(out, Route{Method: method, Path: path})
			}
		}
	}
	return out
}

var (
	str     = Schema{Type: "string"}
	num     = Schema{Type: "number"}
	idParam = Parameter{Name: "id", In: "path", Required: true, Schema: str}
)

func jsonBody(schema Schema) *RequestBody {
	return &RequestBody{Required: true, Content: map[string]MediaType{"application/json": {Schema: schema}}}
}

func object(required []string, props map[string]Schema) Schema {
	return Schema{Type: "object", Required: required, Properties: props}
}

func responseMap(pairs ...string) map[string]Response {
	out := make(map[string]Response, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = Response{Description: pairs[i+1]}
	}
	return out
}

// NewDocument describes the API served under serverURL.
func NewDocument(serverURL string) Document {
	serverURL = strings.TrimRight(serverURL, "/")
	if serverURL == "" {
		serverURL = "http://localhost:3333"
	}

	product := object([]string{"name", "heat", "price", "stock"}, map[string]Schema{
		"name":             str,
		"heat":             num,
		"price":            num,
		"stock":            num,
		"imageUrl":         str,
		"shortDescription": str,
		"longDescription":  str,
		"description":      str,
	})

	return Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Spicy Pepper Shop API",
			Version:     "1.0.0",
			Description: "Training API for Cypress exercises",
		},
		Servers: []Server{{URL: serverURL}},
		Paths: map[string]*PathItem{
			"/api/health": {
				Get: &Operation{Summary: "Health check", Responses: responseMap("200", "API is alive")},
			},
			"/api/login": {
				Post: &Operation{
					Summary: "Login with account name and password",
					RequestBody: jsonBody(object([]string{"name", "password"}, map[string]Schema{
						"name":     {Type: "string", Example: "Chili Lover"},
						"password": {Type: "string", Example: "pepper123"},
					})),
					Responses: responseMap("200", "Logged in", "400", "Name or password missing", "401", "Invalid credentials"),
				},
			},
			"/api/accounts": {
				Get: &Operation{Summary: "List accounts", Responses: responseMap("200", "List of accounts")},
				Post: &Operation{
					Summary: "Create account",
					RequestBody: jsonBody(object([]string{"name", "email", "password"}, map[string]Schema{
						"name":     str,
						"email":    str,
						"password": str,
					})),
					Responses: responseMap("201", "Account created", "400", "Missing fields"),
				},
			},
			"/api/accounts/{id}": {
				Delete: &Operation{
					Summary:    "Delete account",
					Parameters: []Parameter{idParam},
					Responses:  responseMap("200", "Account removed", "404", "Account not found"),
				},
			},
			"/api/products": {
				Get: &Operation{Summary: "List products", Responses: responseMap("200", "List of products")},
				Post: &Operation{
					Summary:     "Create product",
					RequestBody: jsonBody(product),
					Responses:   responseMap("201", "Product created", "400", "Invalid product"),
				},
			},
			"/api/products/{id}": {
				Put: &Operation{
					Summary:     "Update product",
					Parameters:  []Parameter{idParam},
					RequestBody: jsonBody(product),
					Responses:   responseMap("200", "Product updated", "400", "Invalid product", "404", "Product not found"),
				},
				Delete: &Operation{
					Summary:    "Delete product",
					Parameters: []Parameter{idParam},
					Responses:  responseMap("200", "Product removed", "404", "Product not found"),
				},
			},
			"/api/orders": {
				Get: &Operation{
					Summary:     "List orders",
					Description: "Use accountId to filter per user. Without filter, all orders are returned.",
					Parameters:  []Parameter{{Name: "accountId", In: "query", Schema: str}},
					Responses:   responseMap("200", "List of orders"),
				},
				Post: &Operation{
					Summary: "Create order",
					RequestBody: jsonBody(object([]string{"accountId", "items"}, map[string]Schema{
						"accountId": str,
						"items": {
							Type: "array",
							Items: &Schema{
								Type:     "object",
								Required: []string{"productId", "qty"},
								Properties: map[string]Schema{
									"productId": str,
									"qty":       num,
								},
							},
						},
					})),
					Responses: responseMap("201", "Order created", "400", "Invalid order or insufficient stock"),
				},
			},
			"/api/reset": {
				Post: &Operation{
					Summary:     "Reset all data",
					Description: "Requires admin credentials: name=admin, password=admin. Send them as JSON body fields or as x-admin-name / x-admin-password headers.",
					Responses:   responseMap("200", "Data reset", "401", "Unauthorized"),
				},
			},
		},
	}
}
