package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartRequest(t *testing.T, fields map[string][]string) *gin.Context {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, value := range values {
			_ = writer.WriteField(key, value)
		}
	}
	_ = writer.Close()

	req := httptest.NewRequest("PUT", "/admin/api/products/1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequest_PicksLastIsAvailableValue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := multipartRequest(t, map[string][]string{
		"isAvailable": {"false", "true"},
		"price":       {"99"},
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.IsAvailableSet || !parsed.IsAvailable {
		t.Fatalf("expected isAvailable=true, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 99 {
		t.Fatalf("expected price=99, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_PresenceFlags(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := multipartRequest(t, map[string][]string{
		"name":  {"  Desi Honey "},
		"stock": {"12"},
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Desi Honey" {
		t.Fatalf("expected trimmed name with set flag, got %+v", parsed)
	}
	if !parsed.StockSet || parsed.Stock != 12 {
		t.Fatalf("expected stock=12, got %+v", parsed)
	}
	if parsed.PriceSet || parsed.IsActiveSet || parsed.ExpiryDateSet {
		t.Fatalf("expected unsent fields to stay unset, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_ParsesDates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := multipartRequest(t, map[string][]string{
		"manufacturingDate": {"2026-01-15"},
		"expiryDate":        {"2027-01-15"},
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.ManufacturingDateSet || parsed.ManufacturingDate.Format("2006-01-02") != "2026-01-15" {
		t.Fatalf("expected manufacturing date 2026-01-15, got %+v", parsed)
	}
	if !parsed.ExpiryDateSet || parsed.ExpiryDate.Format("2006-01-02") != "2027-01-15" {
		t.Fatalf("expected expiry date 2027-01-15, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_RejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := multipartRequest(t, map[string][]string{
		"expiryDate": {"15/01/2027"},
	})

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Desi Honey (1kg)":    "desi-honey-1kg",
		"  Green   Tea  ":     "green-tea",
		"A&B--Special":        "a-b-special",
		"ALL CAPS":            "all-caps",
		"---":                 "",
		"Chai 3 in 1 Sachets": "chai-3-in-1-sachets",
	}
	for name, want := range cases {
		if got := slugify(name); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", name, got, want)
		}
	}
}
