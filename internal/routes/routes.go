package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wayfari/wayfari/internal/bookings"
	"github.com/wayfari/wayfari/internal/catalog"
	"github.com/wayfari/wayfari/internal/config"
	"github.com/wayfari/wayfari/internal/guides"
	"github.com/wayfari/wayfari/internal/middleware"
	"github.com/wayfari/wayfari/internal/notification"
	"github.com/wayfari/wayfari/internal/payments"
	"github.com/wayfari/wayfari/internal/stats"
	"github.com/wayfari/wayfari/internal/store"
	"github.com/wayfari/wayfari/internal/token"
	"github.com/wayfari/wayfari/internal/users"
)

const idempotencyTTL = 24 * time.Hour

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Mongo  *mongo.Client
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var backend store.Store
	if d.Mongo != nil {
		backend = store.NewMongoStore(d.Mongo, d.Cfg.MongoDatabase)
	} else {
		// Development fallback; main refuses to start without Mongo
		// outside dev.
		backend = store.NewMemory()
	}

	tokens := token.New(d.Cfg.TokenSecret, d.Cfg.TokenTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)

	userSvc := users.NewService(backend)
	bookingSvc := bookings.NewService(backend)
	guideSvc := guides.NewService(backend, userSvc, notifier, d.Logger)
	catalogSvc := catalog.NewService(backend)
	statsSvc := stats.NewService(userSvc, bookingSvc, catalogSvc, d.Cache, d.Logger)

	var intents payments.IntentCreator
	if d.Cfg.StripeSecret != "" {
		intents = payments.NewStripeCreator(d.Cfg.StripeSecret)
	} else {
		d.Logger.Warn("STRIPE_SECRET_KEY not set, payment intents are static stubs")
		intents = payments.StaticCreator{}
	}

	userHandler := users.NewHandler(userSvc)
	bookingHandler := bookings.NewHandler(bookingSvc, userSvc)
	guideHandler := guides.NewHandler(guideSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	paymentHandler := payments.NewHandler(intents)
	statsHandler := stats.NewHandler(statsSvc)

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin(userSvc)

	RegisterTokenRoutes(app, tokens, d.Cache)
	RegisterUserRoutes(app, userHandler, requireAuth, requireAdmin)
	RegisterBookingRoutes(app, bookingHandler, requireAuth)
	RegisterGuideRoutes(app, guideHandler, requireAuth, requireAdmin)
	RegisterCatalogRoutes(app, catalogHandler, requireAuth)
	RegisterPaymentRoutes(app, paymentHandler, requireAuth)
	RegisterAdminRoutes(app, statsHandler, requireAuth, requireAdmin)

	return nil
}
