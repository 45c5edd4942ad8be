package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/api/validators"
	ordersvc "github.com/angelmondragon/spicy-pepper-shop/internal/orders"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
)

type orderRequest struct {
	AccountID validators.Text `json:"accountId" validate:"required"`
	Items     orderItems      `json:"items" validate:"required,min=1"`
}

type orderItemRequest struct {
	ProductID validators.Text    `json:"productId" validate:"required"`
	Qty       *validators.Number `json:"qty" validate:"required,finite,whole,safeint,gt=0"`
}

// orderItems treats a non-array value as missing and an entry that is not a
// well-formed object as an empty item, so both fail field validation instead
// of body decoding.
type orderItems []orderItemRequest

func (o *orderItems) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*o = nil
		return nil
	}
	items := make(orderItems, len(raw))
	for i, entry := range raw {
		if !bytes.HasPrefix(bytes.TrimSpace(entry), []byte("{")) {
			continue
		}
		if err := json.Unmarshal(entry, &items[i]); err != nil {
			items[i] = orderItemRequest{}
		}
	}
	*o = items
	return nil
}

// ListOrders returns every order, or only those of ?accountId= when given.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context(), validators.QueryText(r, "accountId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// PlaceOrder checks the request shape here; account, product and stock checks
// happen atomically in the service.
func PlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validators.Struct(&payload, ordersvc.MsgAccountAndItemsRequired); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.CreateInput{AccountID: payload.AccountID.String()}
		for i := range payload.Items {
			if err := validators.Struct(&payload.Items[i], ordersvc.MsgInvalidItems); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Items = append(input.Items, ordersvc.ItemInput{
				ProductID: payload.Items[i].ProductID.String(),
				Qty:       payload.Items[i].Qty.Int(),
			})
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, order)
	}
}
