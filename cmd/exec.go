package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"academy-system/config"
	"academy-system/internal/checkout"
	"academy-system/internal/handlers"
	"academy-system/internal/services"
	"academy-system/internal/store"
	"academy-system/monitoring"
	"academy-system/security"
	"academy-system/utils"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// PubNub fans out live seat counts; keys may be empty in development.
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := checkout.NewProvider(checkout.Config{
		Provider:   cfg.CheckoutProvider,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	})
	if err != nil {
		return err
	}

	classStore := store.NewClassStore(app)
	memberStore := store.NewMemberStore(app)
	planStore := store.NewPlanStore(app)

	monitor := monitoring.NewMonitor(classStore)

	subscriptionService := services.NewSubscriptionService(memberStore, monitor)
	bookingService := services.NewBookingService(classStore, memberStore, pn, monitor)
	paymentService := services.NewPaymentService(redisClient, provider, subscriptionService, monitor, cfg.CheckoutSessionTTL)

	classHandler := handlers.NewClassHandler(classStore)
	bookingHandler := handlers.NewBookingHandler(bookingService, memberStore)
	memberHandler := handlers.NewMemberHandler(memberStore)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, memberStore, planStore)
	paymentHandler := handlers.NewPaymentHandler(paymentService, memberStore, provider)

	rateLimiter := security.NewRateLimiter(redisClient)

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	if cfg.EnableMetrics {
		go monitor.Run(ctx, cfg.MetricsInterval)
	}

	go handleShutdown(cancel)

	// Every signup gets a member record so the booking endpoints never see a
	// user without one.
	app.OnRecordCreateRequest("users").BindFunc(func(e *core.RecordRequestEvent) error {
		if err := e.Next(); err != nil {
			return err
		}
		if _, err := memberStore.CreateForUser(e.Request.Context(), e.Record.Id, e.Record.GetString("name")); err != nil {
			slog.Error("member record creation failed", "user", e.Record.Id, "error", err)
		}
		return nil
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Schedule endpoints
		e.Router.GET("/api/v1/classes", classHandler.GetClasses)
		e.Router.GET("/api/v1/classes/{classId}", classHandler.GetClass)
		e.Router.POST("/api/v1/classes/{classId}/spots", classHandler.AdjustSpots).Bind(apis.RequireSuperuserAuth())

		// Booking endpoints
		bookingGuard := rateLimiter.Window(int(cfg.BookingRateLimit), cfg.BookingRateWindow)
		e.Router.GET("/api/v1/members/me/booked-classes", bookingHandler.GetBookedClasses).Bind(apis.RequireAuth())
		e.Router.PUT("/api/v1/members/me/booked-classes", bookingHandler.UpdateBookedClasses).
			Bind(apis.RequireAuth()).BindFunc(rateLimiter.AntiBot()).BindFunc(bookingGuard)
		e.Router.POST("/api/v1/classes/{classId}/book", bookingHandler.BookClass).
			Bind(apis.RequireAuth()).BindFunc(rateLimiter.AntiBot()).BindFunc(bookingGuard)
		e.Router.DELETE("/api/v1/classes/{classId}/book", bookingHandler.CancelClass).
			Bind(apis.RequireAuth()).BindFunc(bookingGuard)

		// Member and subscription endpoints
		e.Router.GET("/api/v1/members/me", memberHandler.GetMe).Bind(apis.RequireAuth())
		e.Router.GET("/api/v1/members/me/subscription", subscriptionHandler.GetSubscription).Bind(apis.RequireAuth())
		e.Router.PATCH("/api/v1/members/{memberId}/extend-subscription/{planId}", subscriptionHandler.ExtendSubscription).
			Bind(apis.RequireSuperuserAuth())
		e.Router.GET("/api/v1/plans", subscriptionHandler.GetPlans)

		// Checkout endpoints
		e.Router.POST("/api/v1/checkout", paymentHandler.CreateCheckout).Bind(apis.RequireAuth())
		e.Router.GET("/api/v1/checkout/session", paymentHandler.GetCheckoutSession).Bind(apis.RequireAuth())

		if cfg.Environment == "development" {
			e.Router.POST("/api/v1/test/simulate-payment", paymentHandler.SimulatePayment)
		}

		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler())).Bind(apis.RequireSuperuserAuth())
		}

		log.Println("Server routes registered")

		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
