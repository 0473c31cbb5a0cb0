package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/a-nebula-dev/ProjectLaserBunny/cache"
	"github.com/a-nebula-dev/ProjectLaserBunny/config"
	"github.com/a-nebula-dev/ProjectLaserBunny/controller"
	"github.com/a-nebula-dev/ProjectLaserBunny/kafka"
	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/payment"
	"github.com/a-nebula-dev/ProjectLaserBunny/routes"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
	"github.com/a-nebula-dev/ProjectLaserBunny/search"
)

func initDB(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect db:", err)
	}
	if err := db.AutoMigrate(
		&model.Product{}, &model.Category{}, &model.Section{}, &model.Sale{},
	); err != nil {
		log.Fatal(err)
	}
	return db
}

func main() {
	cfg := config.Load()
	db := initDB(cfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		var err error
		redisClient, err = cache.Connect(cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, caching and webhook dedup disabled: %v", err)
			redisClient = nil
		} else {
			log.Println("Redis connected")
		}
	}

	var searchClient *search.Client
	if cfg.ElasticsearchURL != "" {
		var err error
		searchClient, err = search.NewClient(cfg.ElasticsearchURL)
		if err != nil {
			log.Printf("Elasticsearch unavailable, product search disabled: %v", err)
		}
	}

	store := sales.NewGormStore(db)
	saleService := &sales.Service{Products: store, Sales: store}
	if cfg.KafkaBroker != "" {
		producer, err := kafka.NewProducer(cfg.KafkaBroker)
		if err != nil {
			log.Printf("Kafka unavailable, order events disabled: %v", err)
		} else {
			saleService.Events = producer
		}
	}

	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	webhook := &controller.WebhookController{Sales: saleService, Provider: provider}
	if redisClient != nil {
		webhook.Dedup = cache.NewProcessedEvents(redisClient)
	}

	app := fiber.New()
	app.Use(logger.New())

	routes.Register(app, routes.Controllers{
		Products: &controller.ProductController{DB: db, Redis: redisClient, Search: searchClient},
		Category: &controller.CategoryController{DB: db},
		Sections: &controller.SectionController{DB: db},
		Checkout: &controller.CheckoutController{Sales: saleService, Provider: provider},
		Webhook:  webhook,
		Orders:   &controller.OrderController{Sales: saleService},
		Auth: &controller.AuthController{
			AdminPassword:     cfg.AdminPassword,
			AdminPasswordHash: cfg.AdminPasswordHash,
			JWTSecret:         cfg.JWTSecret,
		},
	}, cfg.JWTSecret)

	log.Println("storefront server running on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("fiber error:", err)
	}
}
