package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uniformes/expedicao-api/internal/application/packing"
	"github.com/uniformes/expedicao-api/internal/infrastructure/postgres"
	httpRouter "github.com/uniformes/expedicao-api/internal/interfaces/http"
	"github.com/uniformes/expedicao-api/pkg/config"
	"github.com/uniformes/expedicao-api/pkg/logger"
	"github.com/uniformes/expedicao-api/pkg/timezone"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	normalizer, err := timezone.New(cfg.Display.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de display")
	}

	txRunner := postgres.NewTxRunner(pool, cfg.Tx)
	boxRepo := postgres.NewBoxRepository(pool)
	outputRepo := postgres.NewOutputRecordRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	createBoxUC := packing.NewCreateBoxUseCase(txRunner, userRepo, log)
	adjustBoxUC := packing.NewAdjustBoxUseCase(txRunner, log)
	boxQueryUC := packing.NewBoxQueryUseCase(boxRepo, normalizer)
	outputSummaryUC := packing.NewOutputSummaryUseCase(outputRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateBox:     createBoxUC,
		AdjustBox:     adjustBoxUC,
		BoxQueries:    boxQueryUC,
		OutputSummary: outputSummaryUC,
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

	log.Info().Msg("aplicación detenida")
}
