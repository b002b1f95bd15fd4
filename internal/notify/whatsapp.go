package notify

import (
	"fmt"
	"net/url"
	"strings"

	"backend/internal/models"
)

// WhatsApp builds wa.me deep links addressed to the store owner. Dispatch is
// the caller's problem: the API returns the link and the client opens it, no
// message is sent from the server.
type WhatsApp struct {
	Number    string
	StoreName string
}

// OrderLink returns the deep link carrying the full new-order summary.
func (w WhatsApp) OrderLink(order models.Order, items []models.OrderItem) string {
	return w.link(w.orderMessage(order, items))
}

// StatusLink returns the deep link for the admin "send update" action.
func (w WhatsApp) StatusLink(order models.Order) string {
	return w.link(w.statusMessage(order))
}

func (w WhatsApp) link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.Number, url.QueryEscape(message))
}

func (w WhatsApp) orderMessage(order models.Order, items []models.OrderItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New Order - %s*\n\n", w.StoreName)
	fmt.Fprintf(&b, "Order Number: *%s*\n\n", order.OrderNumber)

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", order.CustomerPhone)
	email := order.CustomerEmail
	if email == "" {
		email = "N/A"
	}
	fmt.Fprintf(&b, "Email: %s\n\n", email)

	fmt.Fprintf(&b, "*Delivery Address:*\n%s\n\n", order.DeliveryAddress)

	b.WriteString("*Order Items:*\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
		fmt.Fprintf(&b, "   Qty: %d x Rs. %s\n", item.Quantity, formatAmount(item.ProductPrice))
		fmt.Fprintf(&b, "   Subtotal: Rs. %s", formatAmount(item.Subtotal))
	}

	b.WriteString("\n\n*Payment Details:*\n")
	fmt.Fprintf(&b, "Method: %s\n", paymentMethodLabel(order.PaymentMethod))
	fmt.Fprintf(&b, "Status: %s\n\n", paymentStatusLabel(order))

	fmt.Fprintf(&b, "*Total Amount: Rs. %s*\n", formatAmount(order.TotalAmount))
	b.WriteString("Delivery Charges: FREE\n\n")

	if order.Notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n\n", order.Notes)
	}

	fmt.Fprintf(&b, "Order ID: %s", order.ID.Hex())

	return b.String()
}

func (w WhatsApp) statusMessage(order models.Order) string {
	return fmt.Sprintf("*Order Update - %s*\n\n"+
		"Order Number: *%s*\n"+
		"Customer: %s\n"+
		"Phone: %s\n"+
		"Status: %s\n"+
		"Payment: %s - %s",
		w.StoreName,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		order.OrderStatus,
		order.PaymentMethod,
		order.PaymentStatus,
	)
}

func paymentMethodLabel(method string) string {
	if method == models.PaymentMethodCOD {
		return "Cash on Delivery"
	}
	return "Easypaisa"
}

func paymentStatusLabel(order models.Order) string {
	if order.PaymentMethod == models.PaymentMethodCOD {
		return "Pending - COD"
	}
	if order.PaymentStatus == models.PaymentStatusVerificationPending {
		return "Verification Pending"
	}
	return "Pending"
}

// formatAmount renders rupee amounts with thousands separators and no
// trailing zeros for whole values, matching the storefront display.
func formatAmount(amount float64) string {
	whole := int64(amount)
	fraction := amount - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	formatted := strings.Join(parts, ",")

	if cents := fmt.Sprintf("%.2f", fraction); fraction > 0 && cents != "0.00" {
		formatted += strings.TrimPrefix(cents, "0")
	}
	return formatted
}
