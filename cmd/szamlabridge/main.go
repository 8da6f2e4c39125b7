package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	eventhandler "webshoptech/szamlabridge/internal/adapters/http/event"
	invoicehandler "webshoptech/szamlabridge/internal/adapters/http/invoice"
	szamlazzclient "webshoptech/szamlabridge/internal/adapters/invoice/szamlazz"
	recordstore "webshoptech/szamlabridge/internal/adapters/record/postgres"
	navclient "webshoptech/szamlabridge/internal/adapters/taxregistry/nav"
	appbuyer "webshoptech/szamlabridge/internal/application/buyer"
	appinvoice "webshoptech/szamlabridge/internal/application/invoice"
	"webshoptech/szamlabridge/internal/infrastructure/config"
	"webshoptech/szamlabridge/internal/infrastructure/database"
	infrahttp "webshoptech/szamlabridge/internal/infrastructure/http"
	"webshoptech/szamlabridge/internal/infrastructure/http/middleware"
	"webshoptech/szamlabridge/internal/infrastructure/http/server"
	"webshoptech/szamlabridge/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "service stopped: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.Database,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	log.Info("Database connection established", "database", cfg.Database.Database)

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if cfg.Szamlazz.AgentKey() == "" {
		log.Warn("SZAMLAZZ_AGENT_KEY is not configured, invoice generation and download will fail until it is set")
	}

	records := recordstore.NewRepository(pool)

	httpClient := infrahttp.NewClient(&infrahttp.ClientConfig{
		Timeout: cfg.Szamlazz.APITimeout,
	})
	provider := szamlazzclient.NewClient(cfg.Szamlazz.BaseURL, cfg.Szamlazz, httpClient, log)

	registry := navclient.NewClient(
		cfg.Szamlazz.BaseURL,
		cfg.Szamlazz.APITimeout,
		cfg.Szamlazz,
		cfg.Szamlazz.TaxpayerCacheTTL,
		log,
	)

	resolver := appbuyer.NewResolver(registry, log)
	composer := appinvoice.NewComposer(cfg.Szamlazz.MinorUnitScale)
	workflow := appinvoice.NewWorkflow(cfg.Szamlazz, records, resolver, composer, provider, log)
	retrieval := appinvoice.NewRetrieval(cfg.Szamlazz, records, provider, log)

	invoiceHandler := invoicehandler.NewHandler(retrieval, log)
	eventHandler := eventhandler.NewHandler(workflow, log)

	auth, err := middleware.NewJWTAuthenticator(cfg.Auth, log)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}

	srv, err := server.New(server.Options{
		Addr:            cfg.HTTP.Address(),
		Logger:          log,
		Auth:            auth,
		InvoiceDownload: invoiceHandler.Download,
		OrderCreated:    eventHandler.OrderCreated,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	log.Info("Starting HTTP server", "port", cfg.HTTP.Port)
	return srv.Run(ctx)
}
