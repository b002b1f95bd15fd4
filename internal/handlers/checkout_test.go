package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/cart"
	"backend/internal/models"
)

func validInput() checkoutInput {
	return checkoutInput{
		CustomerName:    "Ali Khan",
		CustomerPhone:   "+92 300 1234567",
		DeliveryAddress: "House 12, Street 4, Kohat",
		PaymentMethod:   models.PaymentMethodCOD,
	}
}

func TestValidateCheckoutRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*checkoutInput)
		want   error
	}{
		{"missing name", func(i *checkoutInput) { i.CustomerName = "" }, errNameRequired},
		{"missing phone", func(i *checkoutInput) { i.CustomerPhone = "" }, errPhoneRequired},
		{"missing address", func(i *checkoutInput) { i.DeliveryAddress = "" }, errAddressRequired},
		{"unknown method", func(i *checkoutInput) { i.PaymentMethod = "CARD" }, errInvalidMethod},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		if err := validateCheckout(input, false); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidateCheckoutEasypaisaRequiresProof(t *testing.T) {
	input := validInput()
	input.PaymentMethod = models.PaymentMethodEasypaisa

	if err := validateCheckout(input, false); err != errProofRequired {
		t.Fatalf("expected proof requirement error, got %v", err)
	}
	if err := validateCheckout(input, true); err != nil {
		t.Fatalf("expected no error with proof present, got %v", err)
	}
}

func TestValidateCheckoutCODNeedsNoProof(t *testing.T) {
	if err := validateCheckout(validInput(), false); err != nil {
		t.Fatalf("expected COD without proof to validate, got %v", err)
	}
}

func TestPaymentStatusFor(t *testing.T) {
	if got := paymentStatusFor(models.PaymentMethodCOD, false); got != models.PaymentStatusPending {
		t.Fatalf("COD: expected PENDING, got %s", got)
	}
	if got := paymentStatusFor(models.PaymentMethodEasypaisa, true); got != models.PaymentStatusVerificationPending {
		t.Fatalf("Easypaisa with proof: expected VERIFICATION_PENDING, got %s", got)
	}
	if got := paymentStatusFor(models.PaymentMethodEasypaisa, false); got != models.PaymentStatusPending {
		t.Fatalf("Easypaisa without proof: expected PENDING, got %s", got)
	}
}

func TestBuildOrderItemsSubtotalsSumToCartTotal(t *testing.T) {
	crt := cart.Cart{}
	crt.Add(cart.Line{ProductID: primitive.NewObjectID().Hex(), Name: "Honey", Price: 1200, Quantity: 2})
	crt.Add(cart.Line{ProductID: primitive.NewObjectID().Hex(), Name: "Green Tea", Price: 150.5, Quantity: 3})

	orderID := primitive.NewObjectID()
	items := buildOrderItems(orderID, crt, time.Now())

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	sum := 0.0
	for _, item := range items {
		if item.OrderID != orderID {
			t.Fatalf("expected item to reference order %s, got %s", orderID.Hex(), item.OrderID.Hex())
		}
		if item.ProductID == nil {
			t.Fatal("expected product reference to survive the snapshot")
		}
		if item.Subtotal != item.ProductPrice*float64(item.Quantity) {
			t.Fatalf("item subtotal mismatch: %+v", item)
		}
		sum += item.Subtotal
	}

	if sum != crt.Total() {
		t.Fatalf("expected item subtotals %v to equal cart total %v", sum, crt.Total())
	}
}

func TestParseCheckoutFormTrimsAndUppercasesMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("customerName", "  Ali Khan ")
	_ = writer.WriteField("customerPhone", "+92 300 1234567")
	_ = writer.WriteField("deliveryAddress", "Kohat")
	_ = writer.WriteField("paymentMethod", "easypaisa")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/checkout", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	input := parseCheckoutForm(c)
	if input.CustomerName != "Ali Khan" {
		t.Fatalf("expected trimmed name, got %q", input.CustomerName)
	}
	if input.PaymentMethod != models.PaymentMethodEasypaisa {
		t.Fatalf("expected uppercased method, got %q", input.PaymentMethod)
	}
}
