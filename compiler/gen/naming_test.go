package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := map[string]string{
		"Username":   "username",
		"FullName":   "full_name",
		"HTTPCode":   "http_code",
		"customerId": "customer_id",
		"CustomerID": "customer_id",
		"ID":         "id",
		"id":         "id",
		"SKU":        "sku",
		"OrderItems": "order_items",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, snake(in), in)
	}
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "orders", TableName("Order"))
	assert.Equal(t, "order_items", TableName("OrderItem"))
	assert.Equal(t, "categories", TableName("Category"))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "orderMapper", lowerFirst("OrderMapper"))
	assert.Equal(t, "", lowerFirst(""))
	assert.Equal(t, "éclair", lowerFirst("Éclair"))
}
