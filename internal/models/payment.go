package models

// Payment is a payment history record from the backend. Amount is in minor
// currency units (paise/cents).
type Payment struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"userName"`
	Email         string `json:"email_id"`
	Mobile        string `json:"mobile_no"`
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	PlanName      string `json:"planName"`
	PlanType      string `json:"planType"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Method        string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
	PurchaseDate  string `json:"purchaseDate"`
	ExpiryDate    string `json:"expiryDate"`
}

// Payment status values.
const (
	PaymentSuccess   = "Success"
	PaymentFailed    = "Failed"
	PaymentPending   = "Pending"
	PaymentCancelled = "Cancelled"
)
