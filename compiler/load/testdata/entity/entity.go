package entity

import "time"

// Status of an order.
type Status int

// Base is embedded by the mapped models.
type Base struct {
	ID        int64
	CreatedAt time.Time `db:"created"`
}

// Order is a purchase.
//
//mapgen:table orders
//mapgen:query recent created > :since
type Order struct {
	Base
	CustomerID int64
	Status     Status
	Total      int64  `mapgen:"handler=CentsHandler,type=int64"`
	Note       string `db:"-"`
	cache      string
}

type audit struct {
	UpdatedBy string
	revision  int
}

// OrderItem is one line of an order.
//
//mapgen:table
type OrderItem struct {
	audit
	OrderID  int64 `db:"order_ref"`
	SKU      string
	Quantity int
	Hidden   bool `mapgen:"-"`
}

// Draft is not mapped to a table.
type Draft struct {
	Body string
}

// Broken carries a malformed directive.
//
//mapgen:table
//mapgen:bogus
type Broken struct {
	Name string
}

// Empty has no persisted fields.
//
//mapgen:table empties
type Empty struct {
	secret string
}
