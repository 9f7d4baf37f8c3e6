package domain

import (
	"math"
	"strings"
	"time"
)

// OrderStatus is the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order represents a customer order
type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"orderNumber"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone,omitempty"`
	Items           []OrderItem   `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Shipping        float64       `json:"shipping"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	ShippingAddress Address       `json:"shippingAddress"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderItem is one line of an order, referencing a product variant
type OrderItem struct {
	ID                string            `json:"id"`
	ProductID         string            `json:"productId"`
	ProductName       string            `json:"productName"`
	VariantID         string            `json:"variantId"`
	VariantSKU        string            `json:"variantSku"`
	VariantAttributes map[string]string `json:"variantAttributes"`
	Quantity          int               `json:"quantity"`
	UnitPrice         float64           `json:"unitPrice"`
	TotalPrice        float64           `json:"totalPrice"`
}

// Address is a shipping address
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Recalculate recomputes line totals, subtotal, tax and total in cents precision
func (o *Order) Recalculate(taxRate, shipping float64) {
	subtotal := 0.0
	for i := range o.Items {
		o.Items[i].TotalPrice = roundCents(o.Items[i].UnitPrice * float64(o.Items[i].Quantity))
		subtotal += o.Items[i].TotalPrice
	}
	o.Subtotal = roundCents(subtotal)
	o.Tax = roundCents(o.Subtotal * taxRate)
	o.Shipping = shipping
	o.Total = roundCents(o.Subtotal + o.Tax + o.Shipping)
}

// Clone returns a deep copy
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		for i, it := range o.Items {
			it.VariantAttributes = cloneStringMap(it.VariantAttributes)
			items[i] = it
		}
		o.Items = items
	}
	return o
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderFilters narrows an order listing
type OrderFilters struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
}

// Match reports whether an order satisfies every filter
func (f OrderFilters) Match(o *Order) bool {
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.OrderNumber), search) &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), search) {
			return false
		}
	}
	if f.Status != "" && string(o.Status) != f.Status {
		return false
	}
	if f.PaymentStatus != "" && string(o.PaymentStatus) != f.PaymentStatus {
		return false
	}
	return true
}

// UpdateOrderStatusRequest changes fulfillment status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

// UpdatePaymentStatusRequest changes payment status
type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required" validate:"required,oneof=pending paid failed refunded"`
}
