package models

// Payment is a manually registered payment for a customer account.
type Payment struct {
	ID         int     `json:"id"`
	AccountID  int     `json:"account_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method"`
	PaidAt     string  `json:"paid_at"`
	Notes      *string `json:"notes,omitempty"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
}

type PaymentInput struct {
	AccountID  int     `json:"account_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method"`
	PaidAt     string  `json:"paid_at"`
	Notes      *string `json:"notes,omitempty"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
}
