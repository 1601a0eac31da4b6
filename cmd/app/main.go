package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/contactrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/jobs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	api, err := tgbotapi.NewBotAPI(configs.TelegramBotToken)
	if err != nil {
		log.Fatalf("Error connecting to Telegram: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, api, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(root.SessionStore(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, &root, api, logger); err != nil {
		log.Fatalf("Service stopped: %v", err)
	}
}

func run(
	ctx context.Context,
	configs cmd.Config,
	root *cmd.CompositionRoot,
	api *tgbotapi.BotAPI,
	logger *slog.Logger,
) error {
	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetCouriersQueryHandler(),
		root.Fanout(),
		logger,
	)
	server.RegisterRoutes(e)

	bot := root.CreateTelegramBot()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return bot.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		api.StopReceivingUpdates()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminHandles:      os.Getenv("ADMIN_HANDLES"),
		SessionTTLMinutes: os.Getenv("SESSION_TTL_MINUTES"),
	}
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.MessageDTO{},
		&courierrepo.CourierDTO{},
		&contactrepo.ContactDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}
