package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-kit/society-events/internal/api/http"
	"github.com/campus-kit/society-events/internal/api/http/handlers"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/cache"
	"github.com/campus-kit/society-events/internal/config"
	"github.com/campus-kit/society-events/internal/events"
	"github.com/campus-kit/society-events/internal/observability"
	"github.com/campus-kit/society-events/internal/persistence"
	"github.com/campus-kit/society-events/internal/repository"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	verificationRepo := repository.NewVerificationRepository(pool)
	societyRepo := repository.NewSocietyRepository(pool)
	committeeRepo := repository.NewCommitteeRepository(pool)
	followerRepo := repository.NewFollowerRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketTypeRepo := repository.NewTicketTypeRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var sender mailer.Sender
	if cfg.Mail.APIKey != "" {
		sender = mailer.NewMailgun(cfg.Mail)
	}
	notifications := service.NewNotificationService(sender, cfg.App.BaseURL, logger)
	notifications.Register(dispatcher)

	eventCache := cache.NewEventCache(redis.Client, cfg.Redis.EventCacheTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:         userRepo,
		VerificationRepo: verificationRepo,
		Dispatcher:       dispatcher,
	})
	societyService := service.NewSocietyService(service.SocietyDependencies{
		SocietyRepo:   societyRepo,
		CommitteeRepo: committeeRepo,
		UserRepo:      userRepo,
	})
	membershipService := service.NewMembershipService(service.MembershipDependencies{
		FollowerRepo:  followerRepo,
		SocietyRepo:   societyRepo,
		CommitteeRepo: committeeRepo,
		UserRepo:      userRepo,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:      eventRepo,
		TicketTypeRepo: ticketTypeRepo,
		SocietyRepo:    societyRepo,
		CommitteeRepo:  committeeRepo,
		Cache:          eventCache,
	})
	purchaseService := service.NewPurchaseService(service.PurchaseDependencies{
		PurchaseRepo:   purchaseRepo,
		TicketRepo:     ticketRepo,
		TicketTypeRepo: ticketTypeRepo,
		EventRepo:      eventRepo,
		CommitteeRepo:  committeeRepo,
		Dispatcher:     dispatcher,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Societies:      handlers.NewSocietiesHandler(societyService),
		Members:        handlers.NewMembersHandler(membershipService),
		Events:         handlers.NewEventsHandler(eventService, societyService),
		Purchases:      handlers.NewPurchasesHandler(purchaseService),
		Tickets:        handlers.NewTicketsHandler(purchaseService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
