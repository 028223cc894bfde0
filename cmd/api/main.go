package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nuttawut-l/storefront-backend/internal/admin"
	"github.com/nuttawut-l/storefront-backend/internal/auth"
	"github.com/nuttawut-l/storefront-backend/internal/cart"
	"github.com/nuttawut-l/storefront-backend/internal/config"
	"github.com/nuttawut-l/storefront-backend/internal/order"
	"github.com/nuttawut-l/storefront-backend/internal/payment"
	"github.com/nuttawut-l/storefront-backend/internal/product"
	"github.com/nuttawut-l/storefront-backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		log.Fatalf("connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("ping MongoDB: %v", err)
	}
	log.Println("connected to MongoDB")

	db := client.Database(cfg.DBName)
	ensureIndexes(ctx, db)

	// repositories and services, wired bottom-up
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiration)

	userService := user.NewService(user.NewMongoRepository(db))
	productService := product.NewService(product.NewMongoRepository(db))
	cartService := cart.NewService(cart.NewMongoRepository(db))
	orderService := order.NewService(order.NewMongoRepository(db), cartService)
	gateway := payment.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	paymentService := payment.NewService(payment.NewMongoRepository(db), gateway, orderService)
	adminService := admin.NewService(productService, orderService)

	if err := userService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("warning: admin seed failed: %v", err)
	}

	userHandler := user.NewHandler(userService, issuer)
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService)
	orderHandler := order.NewHandler(orderService)
	paymentHandler := payment.NewHandler(paymentService)
	adminHandler := admin.NewHandler(adminService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := client.Ping(c.Context(), nil); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// public routes are registered before the JWT middleware so they skip it
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
		},
	}))

	authMW := auth.NewMiddleware(func(ctx context.Context, id string) (auth.Identity, error) {
		u, err := userService.GetByID(ctx, id)
		if err != nil {
			return auth.Identity{}, err
		}
		return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}, nil
	})
	app.Use(authMW.LoadIdentity)

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterAdminRoutes(app, authMW.AdminOnly)
	adminHandler.RegisterProtectedRoutes(app, authMW.AdminOnly)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// ensureIndexes enforces the uniqueness invariants of the data model. Index
// creation is best-effort: a failure is logged, not fatal.
func ensureIndexes(ctx context.Context, db *mongo.Database) {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		collection string
		key        string
	}{
		{"users", "email"},
		{"carts", "user_id"},
		{"payment_transactions", "session_id"},
	}

	for _, idx := range indexes {
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.key, Value: 1}},
			Options: unique,
		})
		if err != nil {
			log.Printf("warning: create index %s.%s: %v", idx.collection, idx.key, err)
		}
	}
}
