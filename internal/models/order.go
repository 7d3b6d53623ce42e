package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderType tags which catalog an order item came from.
type OrderType string

const (
	OrderTypeProgram   OrderType = "program"
	OrderTypeHotel     OrderType = "hotel"
	OrderTypeTransport OrderType = "transport"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeProgram, OrderTypeHotel, OrderTypeTransport:
		return true
	}
	return false
}

// OrderStatus is the booking lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus is the payment lifecycle state, maintained independently of
// OrderStatus: cancelling a paid order leaves it at "completed".
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentMethod is how the tourist pays.
type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "card"
	PaymentQPay      PaymentMethod = "qpay"
	PaymentSocialPay PaymentMethod = "socialpay"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentQPay, PaymentSocialPay:
		return true
	}
	return false
}

// OrderDetails is the type-dependent sub-record stored alongside an order.
// Only the fields relevant to the order type are populated.
type OrderDetails struct {
	// Programs
	Duration string `json:"duration,omitempty"`
	// Hotels
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
	Guests   int        `json:"guests,omitempty"`
	RoomType string     `json:"roomType,omitempty"`
	// Transport
	Date       *time.Time `json:"date,omitempty"`
	Passengers int        `json:"passengers,omitempty"`
	// Common contact fields
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	PassportID         string `json:"passportId,omitempty"`
}

// Order is a booking made by a tourist for a catalog item.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	Type          OrderType     `json:"type"`
	ItemID        string        `json:"itemId"`
	ItemName      string        `json:"itemName"`
	ItemImage     string        `json:"itemImage"`
	Price         float64       `json:"price"`
	TotalAmount   float64       `json:"totalAmount"`
	ServiceFee    float64       `json:"serviceFee"`
	Discount      float64       `json:"discount"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Details       OrderDetails  `json:"details"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
