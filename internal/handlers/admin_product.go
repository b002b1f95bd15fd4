package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/storage"
)

/*
GET /admin/api/products
- everything, including inactive and unavailable products
- optional ?search= and page+limit pagination
*/
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		filter := bson.M{}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")

		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

/*
POST /admin/api/products (multipart)
*/
func CreateProduct(db *mongo.Database, objects *storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		if input.Name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}
		if !input.PriceSet || input.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be greater than zero")
			return
		}
		if input.StockSet && input.Stock < 0 {
			respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
			return
		}

		slug := input.Slug
		if slug == "" {
			slug = slugify(input.Name)
		}
		if slug == "" {
			respondWithError(c, http.StatusBadRequest, route, "could not derive slug from name")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"slug": slug})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "product with this slug already exists")
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        input.Name,
			Slug:        slug,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
			IsAvailable: true,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if input.IsAvailableSet {
			product.IsAvailable = input.IsAvailable
		}
		if input.IsActiveSet {
			product.IsActive = input.IsActive
		}
		if input.ManufacturingDateSet {
			product.ManufacturingDate = &input.ManufacturingDate
		}
		if input.ExpiryDateSet {
			product.ExpiryDate = &input.ExpiryDate
		}

		if input.CategoryID != "" {
			categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid categoryId")
				return
			}
			product.CategoryID = &categoryID
		}

		if input.Image != nil {
			url, err := objects.UploadProductImage(ctx, input.Image)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			product.ImageURL = url
		}

		result, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.ID = result.InsertedID.(primitive.ObjectID)
		product.Derive(now)

		log.Printf("[%s] created product %s (%s)", route, product.Name, product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

/*
PUT /admin/api/products/:id (multipart)
- partial update driven by the Set flags from the parser
*/
func UpdateProduct(db *mongo.Database, objects *storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		update := bson.M{}

		if input.NameSet {
			if input.Name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			update["name"] = input.Name
		}

		if input.SlugSet {
			if input.Slug == "" {
				respondWithError(c, http.StatusBadRequest, route, "slug cannot be empty")
				return
			}
			update["slug"] = input.Slug
		}

		if input.DescriptionSet {
			update["description"] = input.Description
		}

		if input.PriceSet {
			if input.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be greater than zero")
				return
			}
			update["price"] = input.Price
		}

		if input.StockSet {
			if input.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
				return
			}
			update["stock"] = input.Stock
		}

		if input.IsAvailableSet {
			update["isAvailable"] = input.IsAvailable
		}
		if input.IsActiveSet {
			update["isActive"] = input.IsActive
		}
		if input.ManufacturingDateSet {
			update["manufacturingDate"] = input.ManufacturingDate
		}
		if input.ExpiryDateSet {
			update["expiryDate"] = input.ExpiryDate
		}

		if input.CategoryIDSet {
			if input.CategoryID == "" {
				update["categoryId"] = nil
			} else {
				categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "invalid categoryId")
					return
				}
				update["categoryId"] = categoryID
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		if input.Image != nil {
			url, err := objects.UploadProductImage(ctx, input.Image)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			update["imageUrl"] = url
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		update["updatedAt"] = time.Now()

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updated.Derive(time.Now())
		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/api/products/:id
- deactivates rather than removes, past order items keep their reference
*/
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"isActive":  false,
				"updatedAt": time.Now(),
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
