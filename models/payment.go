package models

// PaymentMethod is a stored payment instrument reference.
type PaymentMethod struct {
	ID    string `bson:"id" json:"id"`
	Type  string `bson:"type" json:"type"` // "card" or "cash"
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

// PaymentRequest is the charge instruction handed to the payment gateway.
type PaymentRequest struct {
	Amount        float64
	Currency      string
	PaymentMethod PaymentMethod
	BookingID     string
	Description   string
}

// PaymentResult is the settled outcome of a gateway call. A declined charge
// is a result, not an error; transport failures surface as errors.
type PaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId,omitempty"`
	Error     string `json:"error,omitempty"`
}
