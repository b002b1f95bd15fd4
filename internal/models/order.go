package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods accepted at checkout. There is no gateway behind either:
// COD is settled at the door, EASYPAISA against an uploaded transfer proof.
const (
	PaymentMethodCOD       = "COD"
	PaymentMethodEasypaisa = "EASYPAISA"
)

const (
	PaymentStatusPending             = "PENDING"
	PaymentStatusPaid                = "PAID"
	PaymentStatusVerificationPending = "VERIFICATION_PENDING"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

func IsValidPaymentMethod(method string) bool {
	return method == PaymentMethodCOD || method == PaymentMethodEasypaisa
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusVerificationPending:
		return true
	}
	return false
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the persisted order document. Status fields are only ever mutated
// from the admin console after creation.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	CustomerPhone   string             `bson:"customerPhone" json:"customerPhone"`
	CustomerEmail   string             `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	DeliveryAddress string             `bson:"deliveryAddress" json:"deliveryAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentProofURL string             `bson:"paymentProofUrl,omitempty" json:"paymentProofUrl,omitempty"`
	OrderStatus     string             `bson:"orderStatus" json:"orderStatus"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	DeliveryCharges float64            `bson:"deliveryCharges" json:"deliveryCharges"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	WhatsappSent    bool               `bson:"whatsappSent" json:"whatsappSent"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem snapshots name and price at purchase time, so later product edits
// never change what a past order says it sold.
type OrderItem struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID      primitive.ObjectID  `bson:"orderId" json:"orderId"`
	ProductID    *primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName  string              `bson:"productName" json:"productName"`
	ProductPrice float64             `bson:"productPrice" json:"productPrice"`
	Quantity     int                 `bson:"quantity" json:"quantity"`
	Subtotal     float64             `bson:"subtotal" json:"subtotal"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
