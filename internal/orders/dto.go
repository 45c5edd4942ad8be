package orders

// ItemInput is one validated order line.
type ItemInput struct {
	ProductID string
	Qty       int
}

// CreateInput is a validated order submission. Items keep submission order.
type CreateInput struct {
	AccountID string
	Items     []ItemInput
}
