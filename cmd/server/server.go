package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/camguard/internal/api"
	"github.com/martinsuchenak/camguard/internal/classify"
	"github.com/martinsuchenak/camguard/internal/config"
	"github.com/martinsuchenak/camguard/internal/detector"
	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/internal/mcp"
	"github.com/martinsuchenak/camguard/internal/storage"
	"github.com/martinsuchenak/camguard/internal/worker"
)

// ServerConfig holds configuration for running the server
type ServerConfig struct {
	Config     *config.Config
	Store      storage.HistoryStore
	Detector   *detector.Detector
	APIHandler *api.Handler
	MCPServer  *mcp.Server
	Scheduler  *worker.Scheduler
}

// RunServer starts the camguard server with the given configuration
func RunServer(cfg *ServerConfig) error {
	mux := http.NewServeMux()

	cfg.APIHandler.RegisterRoutes(mux)
	mux.HandleFunc("/mcp", cfg.MCPServer.GetHTTPHandler())

	var handler http.Handler = mux
	if cfg.Config.IsAPIAuthEnabled() {
		handler = api.AuthMiddleware(cfg.Config.APIAuthToken, handler)
	}
	handler = api.SecurityHeadersMiddleware(handler)

	server := &http.Server{
		Addr:    cfg.Config.ListenAddr,
		Handler: handler,
	}

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Info("Shutting down server...")
		server.Close()
	}()

	log.Info("Starting camguard server", "addr", cfg.Config.ListenAddr)
	log.Info("API available", "url", "http://localhost"+cfg.Config.ListenAddr+"/api/")
	log.Info("MCP available", "url", "http://localhost"+cfg.Config.ListenAddr+"/mcp")
	if cfg.Config.IsAPIAuthEnabled() {
		log.Info("API authentication enabled")
	}
	cfg.MCPServer.LogStartup()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Server error", "error", err)
		return err
	}

	log.Info("Server stopped")
	return nil
}

// Command returns the server CLI command
func Command() *cli.Command {
	return &cli.Command{
		Name:        "server",
		Usage:       "Start the camguard server",
		Description: "Start the HTTP server with detection API, MCP endpoint and optional scheduled background detection",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(config.FromCommand(cmd))

			log.Info("Configuration loaded", "data_dir", cfg.DataDir, "listen_addr", cfg.ListenAddr)

			store, err := storage.NewSQLiteStore(cfg.DataDir)
			if err != nil {
				log.Error("Failed to initialize storage", "error", err)
				return err
			}
			defer store.Close()
			log.Info("History storage initialized", "backend", "SQLite", "path", cfg.DataDir)

			classifier, err := classify.NewClassifierFromFile(cfg.BlacklistFile)
			if err != nil {
				log.Error("Failed to load blacklist", "error", err)
				return err
			}

			d := detector.New(nil, classifier)

			apiHandler := api.NewHandler(d, store, classifier.Blacklist())
			mcpServer := mcp.NewServer(d, store, cfg.MCPAuthToken)

			var scheduler *worker.Scheduler
			if cfg.ScanEnabled {
				scheduler = worker.NewScheduler(d, store, cfg.ScanInterval, cfg.RetentionDays)
				if err := scheduler.Start(); err != nil {
					log.Error("Failed to start detection scheduler", "error", err)
					return err
				}
				defer func() {
					log.Info("Stopping detection scheduler...")
					scheduler.Stop()
				}()
			}

			serverConfig := &ServerConfig{
				Config:     cfg,
				Store:      store,
				Detector:   d,
				APIHandler: apiHandler,
				MCPServer:  mcpServer,
				Scheduler:  scheduler,
			}

			return RunServer(serverConfig)
		},
	}
}
