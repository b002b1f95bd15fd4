package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/notify"
)

type orderStatusUpdateRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

type paymentStatusUpdateRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

/*
GET /admin/api/orders
- newest first
- ?status= filters on orderStatus
- ?search= matches order number, customer name or phone
*/
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}

		if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
			if !models.IsValidOrderStatus(status) {
				respondWithError(c, http.StatusBadRequest, route, "invalid status filter")
				return
			}
			filter["orderStatus"] = status
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := bson.M{"$regex": search, "$options": "i"}
			filter["$or"] = []bson.M{
				{"orderNumber": pattern},
				{"customerName": pattern},
				{"customerPhone": pattern},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

/*
GET /admin/api/orders/:id
*/
func GetOrderDetails(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
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

/*
PATCH /admin/api/orders/:id/status
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		var req orderStatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		status := strings.ToUpper(strings.TrimSpace(req.OrderStatus))
		if !models.IsValidOrderStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid order status")
			return
		}

		updateOrderField(c, db, route, bson.M{"orderStatus": status})
	}
}

/*
PATCH /admin/api/orders/:id/payment-status
*/
func UpdatePaymentStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/payment-status"
		defer handlePanic(c, route)

		var req paymentStatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		status := strings.ToUpper(strings.TrimSpace(req.PaymentStatus))
		if !models.IsValidPaymentStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment status")
			return
		}

		updateOrderField(c, db, route, bson.M{"paymentStatus": status})
	}
}

// updateOrderField issues the single-row update shared by both status
// endpoints and returns the updated order.
func updateOrderField(c *gin.Context, db *mongo.Database, route string, fields bson.M) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return
	}

	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var updated models.Order
	err = db.Collection("orders").
		FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": fields},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).
		Decode(&updated)

	if err == mongo.ErrNoDocuments {
		respondWithError(c, http.StatusNotFound, route, "order not found")
		return
	}
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

/*
GET /admin/api/orders/:id/whatsapp
- returns the deep link for the "send update" action
*/
func OrderWhatsAppLink(db *mongo.Database, wa notify.WhatsApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:id/whatsapp"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"whatsappUrl": wa.StatusLink(order)})
	}
}

/*
DELETE /admin/api/orders/:id
- removes the order and its items
*/
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		if _, err := db.Collection("order_items").DeleteMany(ctx, bson.M{"orderId": orderID}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
