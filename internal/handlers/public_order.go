package handlers

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/notify"
	"backend/internal/storage"
)

/* =========================
   CHECKOUT INPUT
========================= */

type checkoutInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Notes           string
	PaymentMethod   string
}

var (
	errNameRequired    = errors.New("customerName is required")
	errPhoneRequired   = errors.New("customerPhone is required")
	errAddressRequired = errors.New("deliveryAddress is required")
	errInvalidMethod   = errors.New("invalid payment method")
	errProofRequired   = errors.New("payment proof is required for Easypaisa payment")
	errEmptyCart       = errors.New("cart is empty")
)

func parseCheckoutForm(c *gin.Context) checkoutInput {
	return checkoutInput{
		CustomerName:    strings.TrimSpace(c.PostForm("customerName")),
		CustomerPhone:   strings.TrimSpace(c.PostForm("customerPhone")),
		CustomerEmail:   strings.TrimSpace(c.PostForm("customerEmail")),
		DeliveryAddress: strings.TrimSpace(c.PostForm("deliveryAddress")),
		Notes:           strings.TrimSpace(c.PostForm("notes")),
		PaymentMethod:   strings.ToUpper(strings.TrimSpace(c.PostForm("paymentMethod"))),
	}
}

// validateCheckout runs every check before any network side effect happens.
func validateCheckout(input checkoutInput, hasProof bool) error {
	if input.CustomerName == "" {
		return errNameRequired
	}
	if input.CustomerPhone == "" {
		return errPhoneRequired
	}
	if input.DeliveryAddress == "" {
		return errAddressRequired
	}
	if !models.IsValidPaymentMethod(input.PaymentMethod) {
		return errInvalidMethod
	}
	if input.PaymentMethod == models.PaymentMethodEasypaisa && !hasProof {
		return errProofRequired
	}
	return nil
}

// paymentStatusFor mirrors the storefront rule: COD stays PENDING until
// delivery; Easypaisa with a submitted proof goes to verification.
func paymentStatusFor(method string, hasProof bool) string {
	if method == models.PaymentMethodEasypaisa && hasProof {
		return models.PaymentStatusVerificationPending
	}
	return models.PaymentStatusPending
}

func buildOrderItems(orderID primitive.ObjectID, crt cart.Cart, now time.Time) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(crt.Lines))
	for _, line := range crt.Lines {
		item := models.OrderItem{
			OrderID:      orderID,
			ProductName:  line.Name,
			ProductPrice: line.Price,
			Quantity:     line.Quantity,
			Subtotal:     line.Price * float64(line.Quantity),
			CreatedAt:    now,
		}
		if productID, err := primitive.ObjectIDFromHex(line.ProductID); err == nil {
			item.ProductID = &productID
		}
		items = append(items, item)
	}
	return items
}

/* =========================
   PLACE ORDER
========================= */

/*
POST /checkout (multipart)
- reads the session cart, writes the order and its items, clears the cart
- the order insert and the items insert are two separate writes; an items
  failure leaves the order row behind
*/
func PlaceOrder(db *mongo.Database, store *cart.Store, objects *storage.Storage, wa notify.WhatsApp, orderPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		input := parseCheckoutForm(c)

		var proof *multipart.FileHeader
		if file, err := c.FormFile("paymentProof"); err == nil {
			proof = file
		} else if !errors.Is(err, http.ErrMissingFile) &&
			!strings.Contains(err.Error(), "no such file") {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment proof upload")
			return
		}

		if err := validateCheckout(input, proof != nil); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		token := cartToken(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		crt, err := store.Get(ctx, token)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}
		if crt.IsEmpty() {
			respondWithError(c, http.StatusBadRequest, route, errEmptyCart.Error())
			return
		}

		orderNumber := generateOrderNumber(ctx, db, orderPrefix)

		proofURL := ""
		if proof != nil {
			url, err := objects.UploadPaymentProof(ctx, orderNumber, proof)
			if err != nil {
				// Soft path: the order proceeds without a stored proof.
				log.Printf("[%s] payment proof upload failed for %s: %v", route, orderNumber, err)
			} else {
				proofURL = url
			}
		}

		now := time.Now()
		subtotal := crt.Total()
		order := models.Order{
			OrderNumber:     orderNumber,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			CustomerEmail:   input.CustomerEmail,
			DeliveryAddress: input.DeliveryAddress,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   paymentStatusFor(input.PaymentMethod, proof != nil),
			PaymentProofURL: proofURL,
			OrderStatus:     models.OrderStatusPending,
			Subtotal:        subtotal,
			DeliveryCharges: 0,
			TotalAmount:     subtotal,
			Notes:           input.Notes,
			WhatsappSent:    true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		order.ID = res.InsertedID.(primitive.ObjectID)

		items := buildOrderItems(order.ID, crt, now)
		docs := make([]interface{}, 0, len(items))
		for _, item := range items {
			docs = append(docs, item)
		}
		if _, err := db.Collection("order_items").InsertMany(ctx, docs); err != nil {
			log.Printf("[%s] order %s created but items insert failed: %v", route, orderNumber, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := store.Clear(ctx, token); err != nil {
			log.Printf("[%s] failed to clear cart %s: %v", route, token, err)
		}

		log.Printf("[%s] order %s created with %d items, total %.2f", route, orderNumber, len(items), order.TotalAmount)

		c.JSON(http.StatusCreated, gin.H{
			"orderId":     order.ID.Hex(),
			"orderNumber": orderNumber,
			"whatsappUrl": wa.OrderLink(order, items),
		})
	}
}

/* =========================
   ORDER CONFIRMATION
========================= */

/*
GET /orders/:orderNumber
*/
func GetOrderByNumber(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:orderNumber"
		defer handlePanic(c, route)

		orderNumber := strings.TrimSpace(c.Param("orderNumber"))
		if orderNumber == "" {
			respondWithError(c, http.StatusBadRequest, route, "order number required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		items, err := loadOrderItems(ctx, db, order.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order": order,
			"items": items,
		})
	}
}

func loadOrderItems(ctx context.Context, db *mongo.Database, orderID primitive.ObjectID) ([]models.OrderItem, error) {
	cursor, err := db.Collection("order_items").Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.OrderItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
