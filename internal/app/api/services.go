package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	"gorm.io/gorm"

	catalogmemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/persistence/postgres"
	catalogstorage "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/storage"
	catalogapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application"
	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	checkoutcatalog "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/catalog"
	checkoutmemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/observability"
	checkoutredis "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/redisstore"
	checkoutapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application"
	checkoutports "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
	grocerymemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/memory"
	groceryobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/observability"
	grocerypostgres "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/persistence/postgres"
	groceryapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application"
	groceryports "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
	ordermemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/memory"
	orderobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	reportcache "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/cache"
	reportobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/observability"
	reportsources "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/sources"
	reportapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application"
	reportports "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
	usermemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/memory"
	userobs "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/observability"
	userpostgres "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/persistence/postgres"
	usertoken "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/token"
	userapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/application"
	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	platformobservability "github.com/Rajeshrr07/EiliyaBill/internal/platform/observability"
)

// Dependencies are the infrastructure handles a process managed to open.
// A nil DB selects the in-memory adapters; a nil Redis disables the report
// cache and keeps carts in process; a nil Temporal client commits inline.
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Temporal    client.Client
	Instruments *platformobservability.Instruments
	Registerer  prometheus.Registerer
}

// Services holds every bounded context wired for a process.
type Services struct {
	Users     userports.Service
	Sessions  userports.SessionStore
	Catalog   catalogports.Service
	Orders    orderports.Service
	Workflows orderports.WorkflowOrchestrator
	Reports   reportports.Service
	Checkout  checkoutports.Service
	Groceries groceryports.Service

	// CommitSteps is the undecorated order service used by Temporal activities.
	CommitSteps orderports.CommitSteps
	// Images is non-nil when product images are written to local disk.
	Images *catalogstorage.LocalStore
}

// NewServices builds the application services over the given infrastructure.
func NewServices(ctx context.Context, cfg Config, deps Dependencies) (*Services, error) {
	instruments := deps.Instruments
	if instruments == nil {
		return nil, fmt.Errorf("observability instruments are required")
	}
	logger := instruments.Logger
	out := &Services{}

	var (
		userRepo    userports.Repository
		sessions    userports.SessionStore
		catalogRepo catalogports.Repository
		orderRepo   orderports.Repository
		idempotency orderports.IdempotencyStore
		groceryRepo groceryports.Repository
	)
	if deps.DB != nil {
		userRepo = userpostgres.NewRepository(deps.DB)
		sessions = userpostgres.NewSessionStore(deps.DB)
		catalogRepo = catalogpostgres.NewRepository(deps.DB)
		orderRepo = orderpostgres.NewRepository(deps.DB)
		idempotency = orderpostgres.NewIdempotencyStore(deps.DB)
		groceryRepo = grocerypostgres.NewRepository(deps.DB)
	} else {
		userRepo = usermemory.NewRepository()
		sessions = usermemory.NewSessionStore()
		catalogRepo = catalogmemory.NewRepository()
		orderRepo = ordermemory.NewRepository()
		idempotency = ordermemory.NewIdempotencyStore()
		groceryRepo = grocerymemory.NewRepository()
	}
	out.Sessions = sessions

	codec, err := usertoken.NewJWTCodec(cfg.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}
	out.Users = userobs.New(
		userapp.NewService(userRepo, sessions, codec, userapp.WithSessionTTL(cfg.SessionTTL)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	var images catalogports.ImageStore
	switch cfg.ImageStorage {
	case ImageStorageS3:
		s3, err := catalogstorage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("image storage: %w", err)
		}
		images = s3
		logger.Info("product images stored in s3", slog.String("bucket", cfg.S3.Bucket))
	default:
		out.Images = catalogstorage.NewLocalStore(cfg.ImageDir, "/uploads")
		images = out.Images
	}
	out.Catalog = catalogobs.New(
		catalogapp.NewService(catalogRepo, catalogapp.WithImageStore(images)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	var reports reportports.Service = reportapp.NewService(
		reportsources.NewOrderSales(orderRepo),
		reportapp.WithCategoryLookup(reportsources.NewCatalogCategories(catalogRepo)),
		reportapp.WithLocation(cfg.ReportLocation),
	)
	orderOpts := []orderapp.Option{orderapp.WithIdempotencyStore(idempotency)}
	if deps.Redis != nil {
		cached := reportcache.New(reports, deps.Redis,
			reportcache.WithTTL(cfg.ReportCacheTTL),
			reportcache.WithLocation(cfg.ReportLocation),
			reportcache.WithRegisterer(deps.Registerer),
		)
		reports = cached
		orderOpts = append(orderOpts, orderapp.WithNotifier(cached))
		logger.Info("report cache enabled", slog.Duration("ttl", cfg.ReportCacheTTL))
	}
	out.Reports = reportobs.New(
		reports,
		reportobs.WithLogger(logger),
		reportobs.WithTracer(instruments.Tracer("internal.reporting.application")),
		reportobs.WithMeter(instruments.Meter("internal.reporting.application")),
	)

	coreOrders := orderapp.NewService(orderRepo, orderOpts...)
	out.CommitSteps = coreOrders
	out.Orders = orderobs.New(
		coreOrders,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	if deps.Temporal != nil {
		out.Workflows = orderworkflows.NewTemporalOrderWorkflows(deps.Temporal)
	} else {
		out.Workflows = orderworkflows.NewInlineOrderWorkflows(out.Orders)
	}

	var carts checkoutports.Store
	if deps.Redis != nil {
		carts = checkoutredis.NewStore(deps.Redis)
	} else {
		carts = checkoutmemory.NewStore()
	}
	out.Checkout = checkoutobs.New(
		checkoutapp.NewService(carts, checkoutcatalog.NewProducts(out.Catalog), out.Workflows),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	out.Groceries = groceryobs.New(
		groceryapp.NewService(groceryRepo, groceryapp.WithLocation(cfg.ReportLocation)),
		groceryobs.WithLogger(logger),
		groceryobs.WithTracer(instruments.Tracer("internal.groceries.application")),
		groceryobs.WithMeter(instruments.Meter("internal.groceries.application")),
	)
	return out, nil
}
