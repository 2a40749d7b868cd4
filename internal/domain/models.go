package domain

import "database/sql"

// Order fulfillment states. Transitions are forward-only:
// PENDING -> SHIPPED -> RETURNED.
const (
	OrderPending  = "PENDING"
	OrderShipped  = "SHIPPED"
	OrderReturned = "RETURNED"
)

// Swap request decision states, set once by the owner of the requested item.
const (
	RequestPending  = "PENDING"
	RequestAccepted = "ACCEPTED"
	RequestDeclined = "DECLINED"
)

// Swap fulfillment states, same forward-only discipline as orders.
const (
	SwapPending  = "PENDING"
	SwapShipped  = "SHIPPED"
	SwapReturned = "RETURNED"
)

type Product struct {
	ID           string          `db:"id" json:"id"`
	OwnerID      string          `db:"owner_id" json:"ownerId"`
	Name         string          `db:"name" json:"name"`
	Size         string          `db:"size" json:"size"`
	Color        string          `db:"color" json:"color"`
	Gender       string          `db:"gender" json:"gender"`
	Condition    string          `db:"condition" json:"condition"`
	Image        string          `db:"image" json:"image"`
	Price        sql.NullFloat64 `db:"price" json:"price"`
	DurationDays int             `db:"duration_days" json:"durationDays"`
	Available    bool            `db:"available" json:"available"`
	Removed      bool            `db:"removed" json:"removed"`
	CreatedAt    string          `db:"created_at" json:"createdAt"`
}

// Rentable reports whether the product can accept a new commitment.
// A removed product stays in the catalog for order history but is inert.
func (p Product) Rentable() bool { return p.Available && !p.Removed }

type Order struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"userId"` // renter
	ProductID    string `db:"product_id" json:"productId"`
	OwnerID      string `db:"owner_id" json:"ownerId"`
	DurationDays int    `db:"duration_days" json:"durationDays"`
	Status       string `db:"status" json:"status"`
	PlacedAt     string `db:"placed_at" json:"placedAt"`
}

type SwapRequest struct {
	ID                 string `db:"id" json:"id"`
	OwnerID            string `db:"owner_id" json:"ownerId"`
	RequestedByID      string `db:"requested_by_id" json:"requestedById"`
	OfferedProductID   string `db:"offered_product_id" json:"offeredProductId"`
	RequestedProductID string `db:"requested_product_id" json:"requestedProductId"`
	RequestStatus      string `db:"request_status" json:"requestStatus"`
	SwapStatus         string `db:"swap_status" json:"swapStatus"`
	CreatedAt          string `db:"created_at" json:"createdAt"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	UserID    string `db:"user_id" json:"userId"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Payment struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"orderId"`
	UserID    string  `db:"user_id" json:"userId"`
	Amount    float64 `db:"amount" json:"amount"`
	Method    string  `db:"method" json:"method"`
	Status    string  `db:"status" json:"status"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}
