package main

import (
	"log"
	"os"
	"time"

	"resto-pos/internal/ai"
	"resto-pos/internal/auth"
	"resto-pos/internal/config"
	"resto-pos/internal/database"
	"resto-pos/internal/handlers"
	"resto-pos/internal/middleware"
	"resto-pos/internal/notify"
	"resto-pos/internal/pos"
	"resto-pos/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Database setup failed: ", err)
	}
	if err := database.SeedAdmin(db, os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("Admin seeding failed: ", err)
	}

	tokens, err := auth.NewManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Auth setup failed: ", err)
	}

	repo := store.New(db)

	// Push notifications go to RabbitMQ when configured, else to the log.
	var events pos.Events = pos.LogEvents{}
	if cfg.AMQPURL != "" {
		publisher, err := notify.Dial(cfg.AMQPURL)
		if err != nil {
			log.Printf("Warning: AMQP unreachable, falling back to log notifications: %v", err)
		} else {
			defer publisher.Close()
			events = publisher
			log.Println("✅ Connected to RabbitMQ for push notifications")
		}
	}

	engine := pos.NewEngine(repo, events, cfg.AllowRecipelessSales)
	reporter := pos.NewReporter(repo)
	agent := ai.NewAgent(repo, reporter, cfg.GeminiAPIKey)

	authHandler := handlers.NewAuthHandler(repo, tokens)
	menuHandler := handlers.NewMenuHandler(repo)
	inventoryHandler := handlers.NewInventoryHandler(repo)
	orderHandler := handlers.NewOrderHandler(engine, repo)
	expenseHandler := handlers.NewExpenseHandler(repo)
	reportHandler := handlers.NewReportHandler(reporter)
	auditHandler := handlers.NewAuditHandler(repo)
	aiHandler := handlers.NewAIHandler(agent)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // the React dev server
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authHandler.Login)

	// --- FEATURE FLAG: Registration ---
	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", authHandler.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens))
	api.Use(middleware.Audit(repo))
	{
		// STAFF & ADMIN
		api.GET("/menu", menuHandler.List)
		api.GET("/menu/:id", menuHandler.Get)
		api.GET("/ingredients", inventoryHandler.List)
		api.GET("/ingredients/:id", inventoryHandler.Get)

		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.POST("/orders", orderHandler.Place)
		api.POST("/orders/:id/preparing", orderHandler.StartPreparing)
		api.POST("/orders/:id/ready", orderHandler.MarkReady)
		api.POST("/orders/:id/cancel", orderHandler.Cancel)

		// MANAGER & ADMIN
		backoffice := api.Group("/")
		backoffice.Use(middleware.RequireRole("admin", "manager"))
		{
			backoffice.POST("/menu", menuHandler.Create)
			backoffice.PUT("/menu/:id", menuHandler.Update)
			backoffice.DELETE("/menu/:id", menuHandler.Delete)

			backoffice.POST("/ingredients", inventoryHandler.Create)
			backoffice.PUT("/ingredients/:id", inventoryHandler.Update)
			backoffice.DELETE("/ingredients/:id", inventoryHandler.Delete)
			backoffice.POST("/ingredients/:id/restock", inventoryHandler.Restock)

			backoffice.GET("/expenses", expenseHandler.List)
			backoffice.POST("/expenses", expenseHandler.Create)
			backoffice.PUT("/expenses/:id", expenseHandler.Update)
			backoffice.DELETE("/expenses/:id", expenseHandler.Delete)
		}

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/reports", reportHandler.Financial)
			admin.GET("/audit", auditHandler.List)
			admin.POST("/ask", aiHandler.Ask)
		}
	}

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
