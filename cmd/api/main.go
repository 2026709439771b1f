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
	"github.com/jhoicas/pasteleria-api/internal/application/auth"
	"github.com/jhoicas/pasteleria-api/internal/application/orderstore"
	"github.com/jhoicas/pasteleria-api/internal/application/usecase"
	"github.com/jhoicas/pasteleria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pasteleria-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/jhoicas/pasteleria-api/internal/interfaces/http"
	"github.com/jhoicas/pasteleria-api/pkg/config"
	"github.com/jhoicas/pasteleria-api/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	lockoutRepo := postgres.NewLockoutRepository(pool)

	// Máquina de bloqueo de login: carga el estado persistido para que un
	// reinicio no salte un candado vigente.
	lockout := auth.NewLockoutMachine(lockoutRepo, nil)
	if err := lockout.Load(); err != nil {
		log.Fatal().Err(err).Msg("cargar estado de bloqueo")
	}

	var checker auth.CredentialChecker = auth.NewPlainPINChecker(userRepo)
	if cfg.Auth.HashPINs {
		checker = auth.NewBcryptPINChecker(userRepo)
	}
	authUC := auth.NewAuthUseCase(checker, lockout, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Feed de cambios de pedidos: opcional, la app funciona sin broker.
	store := orderstore.New()
	var publisher usecase.EventPublisher
	var amqpClient *rabbitmq.Client
	if cfg.AMQP.URL != "" {
		amqpClient, err = rabbitmq.Dial(cfg.AMQP)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpClient.Close()
		publisher = rabbitmq.NewPublisher(amqpClient)
	}

	orderUC := usecase.NewOrderUseCase(orderRepo, store, publisher, log)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	userUC := usecase.NewUserUseCase(userRepo, cfg.Auth.HashPINs)

	// Consumidor del feed: concilia en la lista local los cambios hechos por
	// otras instancias. El Store es idempotente, el eco propio no duplica.
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if amqpClient != nil {
		consumer := rabbitmq.NewConsumer(amqpClient, log)
		go func() {
			if err := consumer.Start(consumerCtx, orderUC.ApplyRemote); err != nil && consumerCtx.Err() == nil {
				log.Error().Err(err).Msg("consumidor del feed finalizado")
			}
		}()
	}

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
		Title:    "Pasteleria Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name}
		if amqpClient != nil {
			status["feed"] = "ok"
			if err := amqpClient.Ping(); err != nil {
				status["feed"] = "down"
			}
		}
		return c.JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		OrderUC:    orderUC,
		RecipeUC:   recipeUC,
		CustomerUC: customerUC,
		UserUC:     userUC,
		JWTSecret:  cfg.JWT.Secret,
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
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
