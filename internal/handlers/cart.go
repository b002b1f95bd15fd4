package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
)

// CartTokenHeader identifies the session cart. The backend mints a token on
// first use and echoes it on every cart response; the client sends it back on
// subsequent requests.
const CartTokenHeader = "X-Cart-Token"

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func cartToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader(CartTokenHeader))
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(CartTokenHeader, token)
	return token
}

func cartResponse(token string, crt cart.Cart) gin.H {
	lines := crt.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"token":           token,
		"lines":           lines,
		"count":           crt.Count(),
		"subtotal":        crt.Total(),
		"deliveryCharges": 0,
		"total":           crt.Total(),
	}
}

func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		token := cartToken(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		crt, err := store.Get(ctx, token)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(token, crt))
	}
}

/*
POST /cart/items
- merges quantity into an existing line for the same product
- refuses inactive or unavailable products
*/
func AddCartItem(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if req.Quantity < 1 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !product.IsActive || !product.IsAvailable {
			respondWithError(c, http.StatusBadRequest, route, "product is not available")
			return
		}

		token := cartToken(c)

		crt, err := store.Get(ctx, token)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		crt.Add(cart.Line{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  req.Quantity,
		})

		if err := store.Save(ctx, token, crt); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(token, crt))
	}
}

/*
PUT /cart/items/:productId
- quantity <= 0 removes the line
*/
func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:productId"
		defer handlePanic(c, route)

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		token := cartToken(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		crt, err := store.Get(ctx, token)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		if !crt.Update(c.Param("productId"), *req.Quantity) {
			respondWithError(c, http.StatusNotFound, route, "cart line not found")
			return
		}

		if err := store.Save(ctx, token, crt); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(token, crt))
	}
}

func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:productId"
		defer handlePanic(c, route)

		token := cartToken(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		crt, err := store.Get(ctx, token)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		if !crt.Remove(c.Param("productId")) {
			respondWithError(c, http.StatusNotFound, route, "cart line not found")
			return
		}

		if err := store.Save(ctx, token, crt); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(token, crt))
	}
}

func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		token := cartToken(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Clear(ctx, token); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(token, cart.Cart{}))
	}
}
