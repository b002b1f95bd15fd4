package models

import (
	"testing"
	"time"
)

func TestOrderStatusValidation(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
		if !IsValidOrderStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	for _, status := range []string{"", "SHIPPED", "pending"} {
		if IsValidOrderStatus(status) {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestPaymentStatusValidation(t *testing.T) {
	for _, status := range []string{PaymentStatusPending, PaymentStatusPaid, PaymentStatusVerificationPending} {
		if !IsValidPaymentStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if IsValidPaymentStatus("REFUNDED") {
		t.Fatal("expected REFUNDED to be invalid")
	}
}

func TestPaymentMethodValidation(t *testing.T) {
	if !IsValidPaymentMethod(PaymentMethodCOD) || !IsValidPaymentMethod(PaymentMethodEasypaisa) {
		t.Fatal("expected known methods to be valid")
	}
	if IsValidPaymentMethod("CARD") {
		t.Fatal("expected CARD to be invalid")
	}
}

func TestProductDeriveFlags(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	p := Product{Stock: 3, ExpiryDate: &future}
	p.Derive(now)
	if !p.InStock || p.IsExpired {
		t.Fatalf("expected in-stock unexpired product, got %+v", p)
	}

	p = Product{Stock: 0, ExpiryDate: &past}
	p.Derive(now)
	if p.InStock || !p.IsExpired {
		t.Fatalf("expected out-of-stock expired product, got %+v", p)
	}

	p = Product{Stock: 1}
	p.Derive(now)
	if p.IsExpired {
		t.Fatal("expected product without expiry date to never be expired")
	}
}
