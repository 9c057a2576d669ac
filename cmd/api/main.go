package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"

	"github.com/cafevaldore/tienda-api/internal/application/auth"
	"github.com/cafevaldore/tienda-api/internal/application/cart"
	"github.com/cafevaldore/tienda-api/internal/application/catalog"
	"github.com/cafevaldore/tienda-api/internal/application/chat"
	"github.com/cafevaldore/tienda-api/internal/application/contact"
	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/application/orders"
	"github.com/cafevaldore/tienda-api/internal/infrastructure/events"
	infrapdf "github.com/cafevaldore/tienda-api/internal/infrastructure/pdf"
	"github.com/cafevaldore/tienda-api/internal/infrastructure/postgres"
	infraredis "github.com/cafevaldore/tienda-api/internal/infrastructure/redis"
	httpRouter "github.com/cafevaldore/tienda-api/internal/interfaces/http"
	"github.com/cafevaldore/tienda-api/pkg/config"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	convRepo := postgres.NewConversationRepository(pool)
	msgRepo := postgres.NewMessageRepository(pool)
	contactRepo := postgres.NewContactMessageRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	cartRepo := infraredis.NewCartRepository(redisClient, time.Duration(cfg.Redis.CartTTLDays)*24*time.Hour)

	bus := events.NewBus()
	defer bus.Close()

	deductionUC := inventory.NewDeductionUseCase(txRunner, productRepo, inventoryRepo, log)
	inventoryUC := inventory.NewAdminUseCase(txRunner, productRepo, inventoryRepo, movementRepo)
	catalogUC := catalog.NewUseCase(productRepo, inventoryRepo)
	cartUC := cart.NewUseCase(cartRepo, inventoryRepo)
	orderUC := orders.NewUseCase(orderRepo, cartRepo, deductionUC, bus, log)
	chatUC := chat.NewUseCase(convRepo, msgRepo, userRepo, bus, log)
	contactUC := contact.NewUseCase(contactRepo)
	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, cfg.App.AdminEmails)

	// Segundo camino de activación del descuento: consume pedidos.creados.
	// La marca de idempotencia evita el doble descuento.
	go func() {
		if err := events.RunOrderDeductionSubscriber(ctx, bus, deductionUC, log); err != nil {
			log.Error().Err(err).Msg("suscriptor de descuento finalizado")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café Valdoré API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		CartUC:       cartUC,
		OrderUC:      orderUC,
		InventoryUC:  inventoryUC,
		ReportPDF:    infrapdf.NewMarotoPDFGenerator(),
		ChatUC:       chatUC,
		ContactUC:    contactUC,
		JWTSecret:    cfg.JWT.Secret,
		AssetVersion: cfg.App.AssetVersion,
		Assets:       cfg.App.Assets,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
