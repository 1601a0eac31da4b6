package cmd

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgin "dispatch/internal/adapters/in/telegrambot"
	"dispatch/internal/adapters/out/postgres"
	tgout "dispatch/internal/adapters/out/telegrambot"
	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/application/sessions"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/keylock"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

const defaultSessionTTL = 10 * time.Minute

type CompositionRoot struct {
	gormDB       *gorm.DB
	botAPI       *tgbotapi.BotAPI
	uowFactory   postgres.GormUnitOfWorkFactory
	locks        *keylock.KeyedMutex
	sessionStore *sessions.Store
	admins       []kernel.Handle
	messenger    *tgout.Messenger
	fanout       *notifications.Fanout
	logger       *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	api *tgbotapi.BotAPI,
	logger *slog.Logger,
) (CompositionRoot, error) {
	admins, err := parseAdminHandles(configs.AdminHandles)
	if err != nil {
		return CompositionRoot{}, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	messenger := tgout.NewMessenger(api)

	return CompositionRoot{
		gormDB:       gormDB,
		botAPI:       api,
		uowFactory:   *uowFactory,
		locks:        keylock.NewKeyedMutex(),
		sessionStore: sessions.NewStore(sessionTTL(configs.SessionTTLMinutes)),
		admins:       admins,
		messenger:    messenger,
		fanout:       notifications.NewFanout(uowFactory, messenger, admins, logger),
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.locks, c.admins)
}

func (c *CompositionRoot) CreateAddCourierCommandHandler() commands.AddCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCourierCommandHandler(f, c.admins)
}

func (c *CompositionRoot) CreateRemoveCourierCommandHandler() commands.RemoveCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveCourierCommandHandler(f, c.admins)
}

func (c *CompositionRoot) CreateRecordContactCommandHandler() commands.RecordContactCommandHandler {
	var f commands.ContactUoWFactory = FuncContactUoWFactory(func() commands.ContactUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordContactCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Fanout() *notifications.Fanout {
	return c.fanout
}

func (c *CompositionRoot) SessionStore() *sessions.Store {
	return c.sessionStore
}

func (c *CompositionRoot) CreateTelegramBot() *tgin.Bot {
	return tgin.NewBot(
		c.botAPI,
		c.CreateTransitionOrderCommandHandler(),
		c.CreateAddCourierCommandHandler(),
		c.CreateRemoveCourierCommandHandler(),
		c.CreateRecordContactCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetCouriersQueryHandler(),
		c.fanout,
		c.sessionStore,
		c.admins,
		c.logger,
	)
}

func parseAdminHandles(raw string) ([]kernel.Handle, error) {
	parts := strings.Split(raw, ",")
	admins := make([]kernel.Handle, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		handle, err := kernel.NewHandle(trimmed)
		if err != nil {
			return nil, err
		}
		admins = append(admins, handle)
	}
	return admins, nil
}

func sessionTTL(raw string) time.Duration {
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return defaultSessionTTL
	}
	return time.Duration(minutes) * time.Minute
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncContactUoWFactory func() commands.ContactUoW

func (f FuncContactUoWFactory) Create() commands.ContactUoW {
	return f()
}

type FuncOrderCourierUoWFactory func() commands.OrderCourierUoW

func (f FuncOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	return f()
}
