package notify

import (
	"net/url"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func sampleOrder() (models.Order, []models.OrderItem) {
	orderID := primitive.NewObjectID()
	order := models.Order{
		ID:              orderID,
		OrderNumber:     "KM-000042",
		CustomerName:    "Ali Khan",
		CustomerPhone:   "+92 300 1234567",
		DeliveryAddress: "House 12, Street 4, Kohat",
		PaymentMethod:   models.PaymentMethodCOD,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPending,
		Subtotal:        1500,
		TotalAmount:     1500,
	}
	items := []models.OrderItem{
		{OrderID: orderID, ProductName: "Desi Honey", ProductPrice: 1200, Quantity: 1, Subtotal: 1200},
		{OrderID: orderID, ProductName: "Green Tea", ProductPrice: 150, Quantity: 2, Subtotal: 300},
	}
	return order, items
}

func TestOrderLinkIsWaMeURLWithEncodedText(t *testing.T) {
	w := WhatsApp{Number: "923155770026", StoreName: "Khattak MART"}
	order, items := sampleOrder()

	link := w.OrderLink(order, items)
	if !strings.HasPrefix(link, "https://wa.me/923155770026?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	text := parsed.Query().Get("text")
	for _, want := range []string{
		"Order Number: *KM-000042*",
		"Ali Khan",
		"Desi Honey",
		"Qty: 2 x Rs. 150",
		"*Total Amount: Rs. 1,500*",
		"Delivery Charges: FREE",
		"Order ID: " + order.ID.Hex(),
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected message to contain %q, got:\n%s", want, text)
		}
	}
}

func TestOrderMessagePaymentLabels(t *testing.T) {
	w := WhatsApp{Number: "923155770026", StoreName: "Khattak MART"}
	order, items := sampleOrder()

	msg := w.orderMessage(order, items)
	if !strings.Contains(msg, "Method: Cash on Delivery") || !strings.Contains(msg, "Status: Pending - COD") {
		t.Fatalf("expected COD labels, got:\n%s", msg)
	}

	order.PaymentMethod = models.PaymentMethodEasypaisa
	order.PaymentStatus = models.PaymentStatusVerificationPending
	msg = w.orderMessage(order, items)
	if !strings.Contains(msg, "Method: Easypaisa") || !strings.Contains(msg, "Status: Verification Pending") {
		t.Fatalf("expected Easypaisa labels, got:\n%s", msg)
	}
}

func TestStatusLinkCarriesOrderState(t *testing.T) {
	w := WhatsApp{Number: "923155770026", StoreName: "Khattak MART"}
	order, _ := sampleOrder()
	order.OrderStatus = models.OrderStatusConfirmed

	link := w.StatusLink(order)
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	text := parsed.Query().Get("text")
	if !strings.Contains(text, "Status: CONFIRMED") {
		t.Fatalf("expected order status in message, got:\n%s", text)
	}
	if !strings.Contains(text, "Payment: COD - PENDING") {
		t.Fatalf("expected payment summary in message, got:\n%s", text)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		950:     "950",
		1500:    "1,500",
		1234567: "1,234,567",
		99.5:    "99.50",
	}
	for amount, want := range cases {
		if got := formatAmount(amount); got != want {
			t.Fatalf("formatAmount(%v) = %q, want %q", amount, got, want)
		}
	}
}
