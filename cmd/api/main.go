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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/ordenes-inventario/docs"
	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
	"github.com/jhoicas/ordenes-inventario/internal/application/sales"
	"github.com/jhoicas/ordenes-inventario/internal/application/usecase"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/kafka"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ordenes-inventario/internal/interfaces/http"
	"github.com/jhoicas/ordenes-inventario/pkg/config"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
	"github.com/jhoicas/ordenes-inventario/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	// Almacén: PostgreSQL o memoria (demos locales).
	var (
		txRunner ports.TxRunner
		store    repository.Store
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		db := memory.New()
		txRunner, store = db, db.Store()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		txRunner, store = postgres.NewTxRunner(pool), postgres.NewStore(pool)
	}

	// Eventos de movimientos: Kafka si hay brokers.
	var publisher ports.MovementPublisher = ports.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := kafka.NewMovementPublisher(cfg.Kafka)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.MovementsTopic).Msg("publicación de movimientos habilitada")
	}

	clock := ports.SystemClock{}
	ledger := inventory.NewStockLedger(txRunner, store, clock, publisher, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Órdenes e Inventario API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         usecase.NewProductUseCase(store, clock),
		SupplierUC:        usecase.NewSupplierUseCase(store, clock),
		CustomerUC:        usecase.NewCustomerUseCase(store, clock),
		LocationUC:        usecase.NewLocationUseCase(store, clock),
		Ledger:            ledger,
		PurchaseOrderUC:   purchasing.NewPurchaseOrderUseCase(txRunner, store, ledger, clock, log),
		SupplierProductUC: purchasing.NewSupplierProductUseCase(store, clock),
		ReceptionUC:       reception.NewReceptionUseCase(txRunner, store, ledger, clock, log),
		SalesOrderUC:      sales.NewSalesOrderUseCase(txRunner, store, ledger, clock, log),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de tracing")
	}

	log.Info().Msg("aplicación detenida")
}
