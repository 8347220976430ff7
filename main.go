package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"staybook/config"
	"staybook/cron"
	"staybook/database"
	bookingRepoPkg "staybook/database/repository/booking"
	listingRepoPkg "staybook/database/repository/listing"
	userRepoPkg "staybook/database/repository/user"
	"staybook/handlers"
	"staybook/middleware"
	"staybook/routes"
	"staybook/services/availability"
	"staybook/services/booking"
	"staybook/services/listing"
	"staybook/services/storage"
	"staybook/services/tasks"
	"staybook/services/user"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	db := database.Database()
	cacheClient := utils.GetCacheClient()

	var lockClient *redis.Client
	if mode := strings.ToLower(strings.TrimSpace(cfg.BookingGuard)); mode == "" || mode == booking.GuardRedis {
		lockClient = utils.GetLockClient()
	}
	guard, err := booking.NewGuard(cfg.BookingGuard, lockClient, cfg.BookingLockTTL)
	if err != nil {
		logger.Fatal("main: invalid booking guard", zap.Error(err))
	}
	logger.Info("Booking guard configured", zap.String("mode", guard.Mode))

	store, err := storage.NewFromConfig(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize image storage", zap.Error(err))
	}
	if !store.Enabled() {
		logger.Warn("Cloudinary credentials missing; image uploads are disabled")
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	listingRepo := listingRepoPkg.NewMongoListingRepo(db)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)

	// background jobs.
	enqueuer := tasks.NewAsynqEnqueuer(cron.QueueRedisOpt())
	defer enqueuer.Close()
	worker := cron.InitPurgeWorker(store)

	// availability core.
	loc := cfg.Location()
	checker := availability.NewChecker(listingRepo, bookingRepo, availability.SystemClock{}, loc)
	filter := availability.NewFilter(bookingRepo, loc)

	// services.
	userService := user.NewUserService(userRepo, store, enqueuer, cacheClient, cfg.JWTExpiresIn, cfg.AllowAdminSignup)
	listingService := listing.NewListingService(listingRepo, userRepo, filter, store, enqueuer, loc)
	bookingService := booking.NewBookingService(bookingRepo, checker, guard)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  userRepo,
		AuthCache: cacheClient,
		Auth:      handlers.NewAuthHandler(userService, cfg.JWTCookieExpiresDays, config.IsProduction()),
		Users:     handlers.NewUserHandler(userService),
		Listings:  handlers.NewListingHandler(listingService),
		Bookings:  handlers.NewBookingHandler(bookingService, loc),
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	redisClients := []*redis.Client{cacheClient}
	if lockClient != nil {
		redisClients = append(redisClients, lockClient)
	}
	utils.StartHealthMonitor(healthCtx, redisClients, database.MongoClient)

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
