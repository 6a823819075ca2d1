package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftstats/internal/auth"
	"github.com/2beens/liftstats/internal/config"
	"github.com/2beens/liftstats/internal/db"
	"github.com/2beens/liftstats/internal/history"
	"github.com/2beens/liftstats/internal/middleware"
	"github.com/2beens/liftstats/internal/onerepmax"
	"github.com/2beens/liftstats/internal/store"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "liftstats"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiSecret         string
	versionInfo       string

	config           *config.Config
	dbPool           *pgxpool.Pool
	redisClient      *redis.Client
	rateLimiter      middleware.RequestRateLimiter
	historyService   *history.Service
	oneRepMaxService *onerepmax.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	APISecret               string
	DBPassword              string
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
	// InitSchema applies the embedded schema on start (postgres storage only).
	InitSchema bool
	// DemoOwnerID receives the seeded demo data (memory storage only); a random one is used if empty.
	DemoOwnerID string
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Version string `json:"version,omitempty"`
}

type analyticsRepos struct {
	history   *history.Repo
	oneRepMax *onerepmax.Repo
	memory    *store.Memory
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var (
		dbPool     *pgxpool.Pool
		repos      analyticsRepos
		collectors []prometheus.Collector
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.DBPassword,
			Timezone:       cfg.Timezone,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if params.InitSchema {
			if err := db.ApplySchema(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("apply schema: %w", err)
			}
			log.Infoln("db schema applied")
		}

		dbPool = pool
		repos.history = history.NewRepo(pool)
		repos.oneRepMax = onerepmax.NewRepo(pool)
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			pool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	case config.StorageMemory:
		repos.memory = store.NewMemory()
		if cfg.SeedDemo {
			seedDemoData(repos.memory, params.DemoOwnerID)
		}
	default:
		return nil, fmt.Errorf("unsupported storage: %s", cfg.Storage)
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("liftstats", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		apiSecret:   params.APISecret,
		versionInfo: params.VersionInfo,

		redisClient: rdb,
		rateLimiter: redis_rate.NewLimiter(rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.setupServices(repos, rdb)

	return s, nil
}

func (s *Server) setupServices(repos analyticsRepos, rdb *redis.Client) {
	volumeCache := freecache.NewCache(s.config.VolumeCacheSizeMB * 1024 * 1024)

	historyParams := history.NewServiceParams{
		Cache:          volumeCache,
		CacheTTL:       s.config.VolumeCacheTTL(),
		EntriesLimit:   s.config.HistoryEntriesLimit,
		Location:       s.config.Location(),
		MetricsManager: s.metricsManager,
	}

	if repos.memory != nil {
		historyParams.Repo = repos.memory
		s.historyService = history.NewService(historyParams)
		s.oneRepMaxService = onerepmax.NewService(repos.memory, rdb, s.config.OneRepMaxCacheTTL(), s.metricsManager)
		return
	}

	historyParams.Repo = repos.history
	s.historyService = history.NewService(historyParams)
	s.oneRepMaxService = onerepmax.NewService(repos.oneRepMax, rdb, s.config.OneRepMaxCacheTTL(), s.metricsManager)
}

func seedDemoData(memory *store.Memory, ownerID string) {
	if ownerID == "" {
		ownerID = uuid.NewString()
	}
	added, err := memory.Seed(store.SeedParams{
		OwnerID: ownerID,
		Days:    30,
		Faker:   gofakeit.New(0),
	})
	if err != nil {
		log.Errorf("seed demo data: %s", err)
		return
	}
	log.Infof("seeded %d demo entries for owner [%s]", added, ownerID)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName + "-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	historyHandler := history.NewHandler(s.historyService)
	r.HandleFunc("/history", historyHandler.HandleHistory).Methods("GET", "OPTIONS").Name("history")

	oneRepMaxHandler := onerepmax.NewHandler(s.oneRepMaxService, s.metricsManager)
	analyticsRouter := r.PathPrefix("/analytics").Subrouter()
	analyticsRouter.HandleFunc("/volume", historyHandler.HandleVolume).Methods("GET", "OPTIONS").Name("analytics-volume")
	analyticsRouter.HandleFunc("/one-rep-max", oneRepMaxHandler.HandleOneRepMax).Methods("GET", "OPTIONS").Name("analytics-one-rep-max")
	analyticsRouter.Use(middleware.RateLimit(
		s.rateLimiter,
		"analytics",
		s.config.AnalyticsRateLimitPerMin,
		s.metricsManager,
	))

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, "Not Found", http.StatusNotFound)
	})

	ownerScope := middleware.NewOwnerScopeHandler(auth.NewSecretChecker(s.apiSecret), "/health")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(ownerScope.OwnerScope())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.dbPool != nil {
		if err := s.dbPool.Ping(r.Context()); err != nil {
			log.Errorf("health: db ping: %s", err)
			status = "degraded"
		}
	}

	pkg.WriteJSON(w, HealthResponse{
		Status:  status,
		Storage: s.config.Storage,
		Version: s.versionInfo,
	}, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           otelhttp.NewHandler(metricsRouter, serviceName+"-metrics"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	ctx, timeoutCancel := context.WithTimeout(context.Background(), s.config.GracefulShutdownMax())
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
