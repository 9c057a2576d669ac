// Comando seed: carga el catálogo inicial de la tienda y su inventario.
// Idempotente: los SKUs existentes se actualizan, no se duplican.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
	"github.com/cafevaldore/tienda-api/internal/infrastructure/postgres"
	"github.com/cafevaldore/tienda-api/pkg/config"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

type seedProduct struct {
	id          string
	name        string
	description string
	price       int64
	image       string
}

var catalog = []seedProduct{
	{
		id:          promo.SKUCafeCaturra,
		name:        "Café Caturra",
		description: "Café de origen variedad Caturra, tostión media, notas a caramelo y cítricos.",
		price:       25000,
		image:       "/img/cafe-caturra.jpg",
	},
	{
		id:          promo.SKUCafeBourbon,
		name:        "Café Bourbon",
		description: "Café de origen variedad Bourbon, tostión media-alta, notas a chocolate y panela.",
		price:       28000,
		image:       "/img/cafe-bourbon.jpg",
	},
	{
		id:          promo.SKUPromoBC,
		name:        "Promoción Bourbon + Caturra",
		description: "Lleva un Café Bourbon y un Café Caturra a precio especial.",
		price:       48000,
		image:       "/img/promocion-bourbon-caturra.jpg",
	},
	{
		id:          promo.SKUSuperPromo,
		name:        "Súper Promoción",
		description: "Dos Café Caturra y dos Café Bourbon, el combo grande de la casa.",
		price:       95000,
		image:       "/img/super-promocion.jpg",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)

	now := time.Now()
	for _, sp := range catalog {
		existing, err := productRepo.GetByID(sp.id)
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.id).Msg("consultar producto")
		}

		p := &entity.Product{
			ID:          sp.id,
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.NewFromInt(sp.price),
			Image:       sp.image,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if existing == nil {
			if err := productRepo.Create(p); err != nil {
				log.Fatal().Err(err).Str("sku", sp.id).Msg("crear producto")
			}
		} else {
			p.CreatedAt = existing.CreatedAt
			if err := productRepo.Update(p); err != nil {
				log.Fatal().Err(err).Str("sku", sp.id).Msg("actualizar producto")
			}
		}

		rec, err := inventoryRepo.Get(sp.id)
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.id).Msg("consultar inventario")
		}
		if rec != nil {
			log.Info().Str("sku", sp.id).Int("stock", rec.Stock).Msg("inventario existente, se conserva")
			continue
		}

		if err := inventoryRepo.Upsert(&entity.InventoryRecord{
			ProductID:   sp.id,
			Stock:       100,
			StockMin:    10,
			StockMax:    500,
			Active:      true,
			LastUpdated: now,
			LastReason:  "Inicialización",
		}); err != nil {
			log.Fatal().Err(err).Str("sku", sp.id).Msg("crear inventario")
		}
		if err := movementRepo.Create(&entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   sp.id,
			ProductName: sp.name,
			Quantity:    100,
			Reason:      "Inicialización",
			Date:        now,
		}); err != nil {
			log.Fatal().Err(err).Str("sku", sp.id).Msg("registrar movimiento inicial")
		}
		log.Info().Str("sku", sp.id).Msg("producto inicializado")
	}

	log.Info().Msg("seed completado")
}
