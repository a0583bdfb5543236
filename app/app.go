package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"princegaming/app/controller"
	"princegaming/app/router"
	"princegaming/client"
	"princegaming/config"
	"princegaming/db"
	"princegaming/models"
	"princegaming/repository"
	"princegaming/service"
	"princegaming/utils"
)

// successTTL is how long success banners stay on screen
const successTTL = 3 * time.Second

// App is the storefront process: the session, the cart and the views over them
type App struct {
	Config    *config.Config
	Handler   http.Handler
	Session   *service.SessionService
	Auth      *service.AuthService
	Cart      *service.CartService
	Dashboard *service.Dashboard
	Catalog   *service.CatalogService

	closers []func() error
}

// Initialize wires the application from cfg and restores any saved session
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	a.Session = service.NewSessionService(store)
	if err := a.Session.Init(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	api := client.New(client.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		BreakerFailures: cfg.API.BreakerFailures,
		BreakerCooldown: cfg.API.BreakerCooldown,
	}, a.Session)

	a.Auth = service.NewAuthService(api, a.Session)
	if a.Session.IsAuthenticated() && !a.Auth.ValidateSession(ctx) {
		zap.S().Warnf("⚠️  Stored session is no longer valid, login required")
	}

	a.Cart = service.NewCartService()
	a.Cart.Subscribe(func(snap models.CartSnapshot) {
		zap.S().Debugf("🛒 Cart: %d items, total %s, visible=%t", snap.ItemCount, utils.FormatCOP(snap.Total), snap.Visible)
	})
	checkout := service.NewCheckoutService(a.Cart, cfg.Checkout.WhatsAppPhone)

	opts := service.DashboardOptions{OptimizeImages: cfg.Images.Optimize}
	if cfg.Images.DriveCredentials != "" {
		drive, err := service.NewDriveService(ctx, cfg.Images.DriveCredentials)
		if err != nil {
			zap.S().Warnf("⚠️  Drive import disabled: %v", err)
		} else {
			opts.Drive = drive
		}
	}
	a.Dashboard = service.NewDashboard(api, service.NewNotifier(successTTL), opts)

	a.Catalog, err = service.NewCatalogService(api, cfg.PublicBaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	if a.Session.IsAuthenticated() {
		if err := a.Dashboard.LoadAll(ctx); err != nil {
			zap.S().Warnf("⚠️  Initial dashboard load failed: %v", err)
		}
	}

	a.Handler = router.SetupRoutes(&router.Controllers{
		Auth:      controller.NewAuthController(a.Auth, a.Session, a.Dashboard),
		Cart:      controller.NewCartController(a.Cart, checkout),
		Catalog:   controller.NewCatalogController(a.Catalog),
		Dashboard: controller.NewDashboardController(a.Dashboard),
	})
	return a, nil
}

// openStore connects the configured session backend
func (a *App) openStore(ctx context.Context) (repository.KeyValueStore, error) {
	cfg := a.Config.Session
	switch cfg.Store {
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		zap.S().Infof("✓ Redis session store at %s", opts.Addr)
		return repository.NewRedisStore(rdb, cfg.RedisPrefix), nil

	case config.StorePostgres, config.StoreSQLite:
		driver, dialect, connStr := db.DriverSQLite, repository.DialectSQLite, cfg.SQLitePath
		if cfg.Store == config.StorePostgres {
			driver, dialect, connStr = db.DriverPostgres, repository.DialectPostgres, cfg.DatabaseURL
			if connStr == "" {
				var err error
				if connStr, err = db.PostgresConnString(); err != nil {
					return nil, err
				}
			}
		}
		conn, err := db.InitDB(ctx, driver, connStr)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		store := repository.NewSQLStore(conn, dialect)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.Store)
}

// Close releases the session backend
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
