package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	carts := cart.NewStore(config.AppEnv.RedisAddr, config.AppEnv.CartTTL)
	if err := carts.Ping(context.Background()); err != nil {
		log.Printf("redis warning: %v", err)
	}

	objects, err := storage.Connect(
		config.AppEnv.MinioEndpoint,
		config.AppEnv.MinioAccessKey,
		config.AppEnv.MinioSecretKey,
		config.AppEnv.MinioBucket,
		config.AppEnv.MinioUseSSL,
	)
	if err != nil {
		log.Fatal("object storage:", err)
	}

	wa := notify.WhatsApp{
		Number:    config.AppEnv.WhatsAppNumber,
		StoreName: config.AppEnv.StoreName,
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:slug", handlers.GetProductBySlug(db))

	r.GET("/cart", handlers.GetCart(carts))
	r.POST("/cart/items", handlers.AddCartItem(db, carts))
	r.PUT("/cart/items/:productId", handlers.UpdateCartItem(carts))
	r.DELETE("/cart/items/:productId", handlers.RemoveCartItem(carts))
	r.DELETE("/cart", handlers.ClearCart(carts))

	r.POST("/checkout", handlers.PlaceOrder(db, carts, objects, wa, config.AppEnv.OrderPrefix))
	r.GET("/orders/:orderNumber", handlers.GetOrderByNumber(db))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/admin/logout", handlers.AdminLogout())

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db, objects))
		admin.PUT("/products/:id", handlers.UpdateProduct(db, objects))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.GET("/orders/:id", handlers.GetOrderDetails(db))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.PATCH("/orders/:id/payment-status", handlers.UpdatePaymentStatus(db))
		admin.GET("/orders/:id/whatsapp", handlers.OrderWhatsAppLink(db, wa))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
