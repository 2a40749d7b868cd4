package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"closetloop/internal/config"
	"closetloop/internal/http/handlers"
	applog "closetloop/internal/log"
	"closetloop/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		AppName: "closetloop",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "message": "Something went wrong. Please try again."})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg.JWTSecret)
	api := app.Group("/api")

	// Auth (login throttled)
	api.Post("/users/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	api.Get("/users/:id", handlers.RequireUser(deps.Auth), deps.UserHandler.Profile)

	// Catalog (public read)
	api.Get("/products/all-products", deps.ProductHandler.Browse)
	api.Get("/products/view-product/:id", deps.ProductHandler.Detail)
	api.Get("/reviews/product/:id", deps.ReviewHandler.ForProduct)

	// Listings
	api.Post("/products/add-product", handlers.RequireUser(deps.Auth), deps.ProductHandler.Add)
	api.Get("/products/my-products", handlers.RequireUser(deps.Auth), deps.ProductHandler.Mine)
	api.Patch("/products/toggle-availability/:id", handlers.RequireUser(deps.Auth), deps.ProductHandler.ToggleAvailability)

	// Cart
	cart := api.Group("/cart", handlers.RequireUser(deps.Auth))
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Patch("/update", deps.CartHandler.Update)
	cart.Post("/remove", deps.CartHandler.Remove)
	cart.Post("/clear", deps.CartHandler.Clear)

	// Orders
	orders := api.Group("/orders", handlers.RequireUser(deps.Auth))
	orders.Post("/place-order", deps.OrderHandler.Place)
	orders.Post("/checkout", deps.OrderHandler.Checkout)
	orders.Put("/update-status", deps.OrderHandler.UpdateStatus)
	orders.Get("/user", deps.OrderHandler.MyRentals)
	orders.Get("/owner", deps.OrderHandler.MyListingsOrders)

	// Closet swaps
	swaps := api.Group("/exchanges", handlers.RequireUser(deps.Auth))
	swaps.Post("/request", deps.SwapHandler.Propose)
	swaps.Patch("/status", deps.SwapHandler.Respond)
	swaps.Patch("/swap-status", deps.SwapHandler.AdvanceSwapStatus)
	swaps.Get("/sent", deps.SwapHandler.Sent)
	swaps.Get("/received", deps.SwapHandler.Received)

	// Wishlist
	wish := api.Group("/wishlist", handlers.RequireUser(deps.Auth))
	wish.Get("/:userId", deps.WishlistHandler.List)
	wish.Post("/add", deps.WishlistHandler.Save)
	wish.Post("/remove", deps.WishlistHandler.Unsave)

	// Reviews & payments
	api.Post("/reviews/add", handlers.RequireUser(deps.Auth), deps.ReviewHandler.Add)
	api.Put("/reviews/edit/:id", handlers.RequireUser(deps.Auth), deps.ReviewHandler.Edit)
	api.Delete("/reviews/delete/:id", handlers.RequireUser(deps.Auth), deps.ReviewHandler.Delete)
	api.Post("/payments/process", handlers.RequireUser(deps.Auth), deps.PaymentHandler.Process)
	api.Get("/payments/user", handlers.RequireUser(deps.Auth), deps.PaymentHandler.History)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Delete("/remove-post/:id", deps.AdminHandler.RemovePost)
	admin.Post("/ban-user", deps.AdminHandler.BanUser)
	admin.Post("/unban-user", deps.AdminHandler.UnbanUser)
	admin.Get("/banned-users", deps.AdminHandler.BannedUsers)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
