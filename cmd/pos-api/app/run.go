package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/valebmss/pos-local1/configs"
	"github.com/valebmss/pos-local1/internal/adapter/cache"
	"github.com/valebmss/pos-local1/internal/adapter/dynamo"
	"github.com/valebmss/pos-local1/internal/adapter/http"
	"github.com/valebmss/pos-local1/internal/adapter/http/middleware"
	"github.com/valebmss/pos-local1/internal/adapter/kafka"
	"github.com/valebmss/pos-local1/internal/adapter/queue"
	"github.com/valebmss/pos-local1/internal/adapter/repo"
	"github.com/valebmss/pos-local1/internal/logging"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	l := logging.New("app")
	l.Info("pos-api: starting up", "backend", cfg.Store.Backend)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// stores (inventory + sales ledger) by configured backend
	var (
		inv    usecase.InventoryStore
		ledger usecase.SalesLedger
		outbox usecase.OutboxRepo
	)
	switch cfg.Store.Backend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err != nil {
			return nil, nil, err
		}

		inv = repo.NewMySQLInventoryRepo(db)
		ledger = repo.NewMySQLSalesLedger(db)
		outbox = repo.NewMySQLOutboxRepo(db)
		cleanups = append(cleanups, func() { _ = db.Close() })

	case "dynamo":
		client, err := dynamo.NewClient(context.Background(), cfg.Dynamo.Region, cfg.Dynamo.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		inv = dynamo.NewInventoryStore(client, cfg.Dynamo.InventoryTable)
		ledger = dynamo.NewSalesLedger(client, cfg.Dynamo.SalesTable)
	}

	// redis: cart sessions + catalog cache
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, func() { _ = rdb.Close() })

	carts := cache.NewRedisCartStore(rdb, cfg.Cart.TTL)
	catalogCache := cache.NewRedisCatalogCache(rdb, cfg.Cache.TTL)

	// rabbitmq: sale events + reconcile worker
	var pub usecase.EventPublisher
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		producer, err := queue.NewRabbitProducer(ch)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		pub = producer
		cleanups = append(cleanups, func() { _ = conn.Close() })

		setupReconcileWorker(ch)
	}

	// kafka: supplier restock listener
	if len(cfg.Kafka.Brokers) > 0 {
		if err := setupKafkaListener(cfg, inv, catalogCache); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	// use cases + handlers + router
	checkoutUC := usecase.NewCheckout(inv, ledger, carts, outbox, pub)
	cartUC := usecase.NewCartSession(inv, carts)
	catalogUC := usecase.NewCatalog(inv, catalogCache)

	ch := http.NewCartHandler(cartUC)
	ck := http.NewCheckoutHandler(checkoutUC)
	ph := http.NewCatalogHandler(catalogUC)
	sh := http.NewSalesHandler(ledger)
	authz := middleware.NewAuthz(cfg)
	router := http.NewRouter(ch, ck, ph, sh, authz)

	return &App{Router: router}, cleanup, nil
}

func setupReconcileWorker(ch *amqp.Channel) {
	h := queue.NewReconcileHandler()

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register(queue.ReconcileQueue, queue.JSONHandler[usecase.ReconcileMsg]{HandleFunc: h.HandleReconcile})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

func setupKafkaListener(cfg configs.Config, inv usecase.InventoryStore, catalogCache usecase.CatalogCache) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	h := kafka.NewRestockHandler(inv, catalogCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.RestockTopic}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			logging.New("kafka").Error("restock consumer stopped", "err", err)
		}
	}()
	return nil
}
