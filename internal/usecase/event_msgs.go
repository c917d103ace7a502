package usecase

// Published to RabbitMQ after a checkout persists.
type SaleCompletedMsg struct {
	SaleID        string `json:"saleId"`
	Fecha         string `json:"fecha"`
	PaymentMethod string `json:"paymentMethod"`
	TotalAmount   string `json:"totalAmount"`
	LineCount     int    `json:"lineCount"`
}

// Published per failed inventory decrement so reconciliation can act on the
// ledger/inventory divergence.
type ReconcileMsg struct {
	SaleID    string `json:"saleId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"` // e.g. "insufficient_stock"
}

// Consumed from Kafka when a supplier delivery lands.
type RestockMsg struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Supplier  string `json:"supplier,omitempty"`
}
