package products

import "github.com/shopspring/decimal"

// ProductInput carries the validated fields of a create or update request.
// Text fields may be blank; blanks fall back to the existing product (on update)
// and then to generated defaults.
type ProductInput struct {
	Name             string
	Heat             int
	Price            decimal.Decimal
	Stock            int
	ImageURL         string
	ShortDescription string
	Description      string
	LongDescription  string
}
