package models

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a pepper in the catalog. Heat is the Scoville rating shown to shoppers.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Heat             int             `json:"heat"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	ImageURL         string          `json:"imageUrl"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Description      string          `json:"description,omitempty"`
}
