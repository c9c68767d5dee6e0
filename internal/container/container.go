package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/short-links/internal/diagnostics"
	"github.com/serroba/short-links/internal/handlers"
	"github.com/serroba/short-links/internal/health"
	"github.com/serroba/short-links/internal/messaging"
	"github.com/serroba/short-links/internal/middleware"
	"github.com/serroba/short-links/internal/shortener"
	"github.com/serroba/short-links/internal/store"
	"go.uber.org/zap"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	TransportHTTP   = "http"
	TransportStream = "stream"
	TransportOff    = "off"

	// API documentation lives under one segment so it reserves a single short code.
	apiPrefix = "/api"

	forwarderGroup   = "diagnostics-forwarder"
	sinkTimeout      = 5 * time.Second
	postgresInitWait = 10 * time.Second
)

type Options struct {
	Port                 int    `default:"8888"                                 help:"Port to listen on"                                                  short:"p"`
	BaseURL              string `default:""                                     help:"Public base URL for short links, defaults to http://localhost:<port>"`
	CodeLength           int    `default:"6"                                    help:"Length of generated short codes"                                    short:"c"`
	Store                string `default:"memory"                               help:"Store backend: memory, redis or postgres"                           short:"s"`
	RedisAddr            string `default:"localhost:6379"                       help:"Redis server address"                                               short:"r"`
	PostgresDSN          string `default:"postgres://localhost:5432/shortlinks" help:"PostgreSQL connection string"`
	CacheTTLSeconds      int    `default:"0"                                    help:"Redis read-through cache TTL for the postgres store, 0 disables it"`
	LogFormat            string `default:"json"                                 help:"Log output format: json or console"`
	DiagnosticsEndpoint  string `default:"http://localhost:5173/log"            help:"Diagnostic sink endpoint"`
	DiagnosticsTransport string `default:"http"                                 help:"How diagnostic events reach the sink: http, stream or off"`
}

// PublicBaseURL returns the base URL used to build short links.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// RedisClient lets the injector close the client on shutdown.
type RedisClient struct {
	*redis.Client
}

func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool lets the injector close the pool on shutdown.
type PostgresPool struct {
	*pgxpool.Pool
}

func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.LogFormat == "console" {
			return zap.NewDevelopment()
		}

		return zap.NewProduction()
	})
}

func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), postgresInitWait)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := store.NewPostgresStore(pool).Migrate(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		return &PostgresPool{pool}, nil
	})
}

// StorePackage provides the configured store and a health handler probing it.
func StorePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (store.Store, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case StoreMemory:
			return store.NewMemoryStore(), nil
		case StoreRedis:
			client, err := do.Invoke[*RedisClient](i)
			if err != nil {
				return nil, err
			}

			return store.NewRedisStore(client.Client), nil
		case StorePostgres:
			pool, err := do.Invoke[*PostgresPool](i)
			if err != nil {
				return nil, err
			}

			var s store.Store = store.NewPostgresStore(pool.Pool)
			if opts.CacheTTLSeconds > 0 {
				client, err := do.Invoke[*RedisClient](i)
				if err != nil {
					return nil, err
				}

				s = store.NewRedisCacheStore(s, client.Client, time.Duration(opts.CacheTTLSeconds)*time.Second)
			}

			return s, nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", opts.Store)
		}
	})

	do.Provide(i, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case StoreRedis:
			client := do.MustInvoke[*RedisClient](i)

			return health.NewHandler(opts.Store, health.NewRedisChecker(client.Client)), nil
		case StorePostgres:
			pool := do.MustInvoke[*PostgresPool](i)

			return health.NewHandler(opts.Store, pool.Pool), nil
		default:
			return health.NewHandler(opts.Store, nil), nil
		}
	})
}

func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (shortener.CodeGenerator, error) {
		opts := do.MustInvoke[*Options](i)

		return shortener.NewRandomCodeGenerator(opts.CodeLength)
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Shortener, error) {
		opts := do.MustInvoke[*Options](i)

		s, err := do.Invoke[store.Store](i)
		if err != nil {
			return nil, err
		}

		generator, err := do.Invoke[shortener.CodeGenerator](i)
		if err != nil {
			return nil, err
		}

		diag, err := do.Invoke[diagnostics.Logger](i)
		if err != nil {
			return nil, err
		}

		return shortener.NewShortener(s, generator, shortener.SystemClock, opts.PublicBaseURL(), diag), nil
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Resolver, error) {
		s, err := do.Invoke[store.Store](i)
		if err != nil {
			return nil, err
		}

		diag, err := do.Invoke[diagnostics.Logger](i)
		if err != nil {
			return nil, err
		}

		return shortener.NewResolver(s, shortener.SystemClock, diag), nil
	})
}

// DiagnosticsPackage provides the diagnostics.Logger for the configured transport.
func DiagnosticsPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     client.Client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, messaging.NewZapAdapter(logger))
		if err != nil {
			return nil, fmt.Errorf("create diagnostics publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (diagnostics.Logger, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i).Named("diagnostics")

		switch opts.DiagnosticsTransport {
		case TransportOff:
			return diagnostics.Nop{}, nil
		case TransportStream:
			group, err := do.Invoke[*messaging.PublisherGroup](i)
			if err != nil {
				return nil, err
			}

			publish := messaging.NewPublishFunc[diagnostics.Event](group.Publisher(), diagnostics.TopicLogged)

			return diagnostics.NewReporter(publish, logger), nil
		case TransportHTTP:
			publish := diagnostics.NewHTTPPublish(&http.Client{Timeout: sinkTimeout}, opts.DiagnosticsEndpoint)

			return diagnostics.NewReporter(publish, logger), nil
		default:
			return nil, fmt.Errorf("unknown diagnostics transport %q", opts.DiagnosticsTransport)
		}
	})
}

// HTTPPackage provides the router and the huma API. Invoking the API registers every route.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		s, err := do.Invoke[*shortener.Shortener](i)
		if err != nil {
			return nil, err
		}

		r, err := do.Invoke[*shortener.Resolver](i)
		if err != nil {
			return nil, err
		}

		config := huma.DefaultConfig("URL Shortener", "1.0.0")
		config.DocsPath = apiPrefix + "/docs"
		config.OpenAPIPath = apiPrefix + "/openapi"
		config.SchemasPath = apiPrefix + "/schemas"

		api := humachi.New(router, config)
		api.UseMiddleware(middleware.AccessLog(logger))

		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))
		handlers.RegisterRoutes(api,
			handlers.NewURLHandler(s, r, logger),
			handlers.NewLogSinkHandler(logger),
		)
		handlers.RegisterFormRoutes(router, handlers.NewFormHandler(s, logger))

		reserved, err := handlers.ReservedCodes(router)
		if err != nil {
			return nil, fmt.Errorf("collect reserved codes: %w", err)
		}

		s.Reserve(reserved...)

		return api, nil
	})
}

// ForwarderPackage provides a consumer group that relays queued diagnostic events to the sink.
func ForwarderPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client.Client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: forwarderGroup,
		}, messaging.NewZapAdapter(logger))
		if err != nil {
			return nil, fmt.Errorf("create diagnostics subscriber: %w", err)
		}

		forward := diagnostics.NewHTTPPublish(&http.Client{Timeout: sinkTimeout}, opts.DiagnosticsEndpoint)

		group := messaging.NewConsumerGroup(subscriber, logger.Named("forwarder"))
		group.Add(messaging.NewConsumer(
			subscriber,
			diagnostics.TopicLogged,
			messaging.Handler[diagnostics.Event](forward),
			logger.Named("forwarder"),
		))

		return group, nil
	})
}
