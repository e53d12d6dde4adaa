package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Utkarsh4517/fast-chat/internal/app"
	"github.com/Utkarsh4517/fast-chat/internal/chat"
	"github.com/Utkarsh4517/fast-chat/internal/handlers"
	"github.com/Utkarsh4517/fast-chat/internal/store/sqlstore"
)

var (
	addr   = flag.String("addr", "", "http service address (overrides HTTP_ADDR)")
	dbPath = flag.String("db", "", "sqlite database path (overrides DB_PATH)")
)

func main() {
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := app.NewLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := sqlstore.New(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	registry := chat.NewRegistry(logger)
	router := handlers.NewRouter(cfg, logger, st, registry)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server.listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutdown.start")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
}
