package main

import (
	"context"
	"fmt"
	"time"

	"github.com/forgeline/equipment-cms/config"
	"github.com/forgeline/equipment-cms/internal/broker"
	"github.com/forgeline/equipment-cms/internal/cache"
	"github.com/forgeline/equipment-cms/internal/database"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/objectstore"
	"github.com/forgeline/equipment-cms/internal/remote"
	"github.com/forgeline/equipment-cms/internal/search"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/forgeline/equipment-cms/internal/category"
	catRepoPkg "github.com/forgeline/equipment-cms/internal/category/repository"
	catUCPkg "github.com/forgeline/equipment-cms/internal/category/usecase"

	"github.com/forgeline/equipment-cms/internal/component"
	compRepoPkg "github.com/forgeline/equipment-cms/internal/component/repository"
	compUCPkg "github.com/forgeline/equipment-cms/internal/component/usecase"

	"github.com/forgeline/equipment-cms/internal/inquiry"
	inqRepoPkg "github.com/forgeline/equipment-cms/internal/inquiry/repository"
	inqUCPkg "github.com/forgeline/equipment-cms/internal/inquiry/usecase"

	"github.com/forgeline/equipment-cms/internal/media"
	mediaRepoPkg "github.com/forgeline/equipment-cms/internal/media/repository"
	mediaUCPkg "github.com/forgeline/equipment-cms/internal/media/usecase"

	"github.com/forgeline/equipment-cms/internal/news"
	newsRepoPkg "github.com/forgeline/equipment-cms/internal/news/repository"
	newsUCPkg "github.com/forgeline/equipment-cms/internal/news/usecase"

	"github.com/forgeline/equipment-cms/internal/product"
	prodRepoPkg "github.com/forgeline/equipment-cms/internal/product/repository"
	prodUCPkg "github.com/forgeline/equipment-cms/internal/product/usecase"
)

// app holds the long-lived clients and the use cases built on them.
type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	db     *sqlx.DB
	store  objectstore.Store

	categories category.UseCase
	components component.UseCase
	products   product.UseCase
	news       news.UseCase
	inquiries  inquiry.UseCase
	media      media.UseCase

	closers []func() error
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	return database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
}

func openStore(cfg *config.Config) (objectstore.Store, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return objectstore.NewS3(objectstore.S3Config{
			Endpoint:   cfg.Storage.S3Endpoint,
			Bucket:     cfg.Storage.S3Bucket,
			AccessKey:  cfg.Storage.S3AccessKey,
			SecretKey:  cfg.Storage.S3SecretKey,
			UseSSL:     cfg.Storage.S3UseSSL,
			Region:     cfg.Storage.S3Region,
			PublicBase: cfg.Storage.PublicURL,
			Allowed:    cfg.Storage.AllowedFolder,
		})
	case "local", "":
		return objectstore.NewLocal(cfg.Storage.LocalDir, cfg.Storage.PublicURL, cfg.Storage.AllowedFolder)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newApp connects to Postgres and the object store. Redis, Elasticsearch and
// Kafka are optional: when unreachable or disabled the app runs without them.
func newApp(cfg *config.Config, log logger.ZapLogger) (*app, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a := &app{cfg: cfg, logger: log, db: db}
	a.closers = append(a.closers, db.Close)
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if a.store, err = openStore(cfg); err != nil {
		a.Close()
		return nil, fmt.Errorf("open object store: %w", err)
	}

	var redisClient *cache.RedisClient
	if cfg.Redis.TTL > 0 {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			a.closers = append(a.closers, redisClient.Close)
			log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			log.Warn("Could not connect to Elasticsearch, admin search falls back to SQL", zap.Error(err))
			esClient = nil
		} else {
			log.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	var publisher broker.Publisher = broker.Nop{}
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.EventsTopic})
		a.closers = append(a.closers, producer.Close)
		publisher = producer
		log.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.EventsTopic))
	}

	client := remote.New(db)
	prodRepo := prodRepoPkg.NewPGRepository(client)

	productLists := cache.NewLists(redisClient, "products", cfg.Redis.TTL)
	a.categories = catUCPkg.NewCategoryUseCase(catRepoPkg.NewPGRepository(client), productLists, log)
	a.components = compUCPkg.NewComponentUseCase(compRepoPkg.NewPGRepository(client),
		cache.NewLists(redisClient, "components", cfg.Redis.TTL), log)
	a.products = prodUCPkg.NewProductUseCase(prodRepo, productLists, esClient, cfg.Elastic.Index, publisher, log)
	a.news = newsUCPkg.NewNewsUseCase(newsRepoPkg.NewPGRepository(client),
		cache.NewLists(redisClient, "news", cfg.Redis.TTL), log)
	a.inquiries = inqUCPkg.NewInquiryUseCase(inqRepoPkg.NewPGRepository(client), prodRepo, publisher, log)
	a.media = mediaUCPkg.NewMediaUseCase(mediaRepoPkg.NewPGRepository(client), a.store, log)
	return a, nil
}

// Close releases clients in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Close failed", zap.Error(err))
		}
	}
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
