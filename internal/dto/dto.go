package dto

import "time"

type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	CatalogID     string  `json:"catalog_id"`
	AccountID     string  `json:"account_id,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	Items         []*Item `json:"items"`
	PaymentMethod string  `json:"payment_method"`
	PointOfSale   bool    `json:"point_of_sale"`
}

// Pricing amounts are two-decimal strings to keep exact cents on the wire.
type Pricing struct {
	Subtotal      string `json:"subtotal"`
	TaxAmount     string `json:"tax_amount"`
	OriginalTotal string `json:"original_total"`
	SubsidyValue  string `json:"subsidy_value"`
	FinalAmount   string `json:"final_amount"`
}

type CheckoutResponse struct {
	Pricing     Pricing `json:"pricing"`
	PinRequired bool    `json:"pin_required"`
	ChallengeID string  `json:"challenge_id,omitempty"`
	OrderID     string  `json:"order_id,omitempty"`
	OrderStatus string  `json:"order_status,omitempty"`
}

type PinVerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Pin         string `json:"pin"`
}

type TransactionStatus struct {
	ID               string    `json:"id"`
	Description      string    `json:"description"`
	TotalAmount      string    `json:"total_amount"`
	DueDate          time.Time `json:"due_date"`
	Status           string    `json:"status"`
	DaysLate         int       `json:"days_late"`
	LateFee          string    `json:"late_fee"`
	TotalWithLateFee string    `json:"total_with_late_fee"`
}
