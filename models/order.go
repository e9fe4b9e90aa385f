package models

import "time"

// Fulfillment status values.
const (
	OrderProcessing = "Processing"
	OrderPlaced     = "Placed"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
	OrderFailed     = "Failed"
)

// Payment-gateway approval values, tracked independently of fulfillment.
const (
	ReqPending  = "Pending"
	ReqApproved = "Approved"
	ReqRejected = "Rejected"
)

// OrderItem is the immutable line snapshot. Price is intentionally not stored:
// it is derivable from the validated total and time-varying on the stock.
type OrderItem struct {
	ProductID string `json:"product" bson:"product"`
	StockID   string `json:"stock" bson:"stock"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type Order struct {
	OrderID        string      `json:"orderid" bson:"orderid"`
	UserID         string      `json:"userid" bson:"userid"`
	Status         string      `json:"status" bson:"status"`
	ReqType        string      `json:"req_type" bson:"req_type"`
	OrderItems     []OrderItem `json:"order_items" bson:"order_items"`
	AddressID      string      `json:"address" bson:"address"`
	TotalAmount    int64       `json:"total_amount" bson:"total_amount"`
	CouponUsed     string      `json:"coupon_used,omitempty" bson:"coupon_used,omitempty"`
	GatewayOrderID string      `json:"gateway_order_id,omitempty" bson:"gateway_order_id,omitempty"`
	TransactionID  string      `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	ModifiedAt     time.Time   `json:"modified_at" bson:"modified_at"`
}

type Transaction struct {
	TransactionID    string    `json:"transactionid" bson:"transactionid"`
	UserID           string    `json:"userid" bson:"userid"`
	OrderID          string    `json:"orderid" bson:"orderid"`
	GatewayOrderID   string    `json:"gateway_order_id" bson:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id" bson:"gateway_payment_id"`
	GatewaySignature string    `json:"gateway_signature" bson:"gateway_signature"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// IdempotencyRecord caches a mutating response keyed by the client's
// Idempotency-Key header. ExpiresAt drives a Mongo TTL index.
type IdempotencyRecord struct {
	Key         string                 `bson:"key"`
	Method      string                 `bson:"method"`
	Path        string                 `bson:"path"`
	UserID      string                 `bson:"userid"`
	RequestHash string                 `bson:"request_hash"`
	Response    map[string]interface{} `bson:"response,omitempty"`
	CreatedAt   time.Time              `bson:"created_at"`
	ExpiresAt   time.Time              `bson:"expires_at"`
}

// Index represents an indexing-related message emitted on catalog mutations.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
