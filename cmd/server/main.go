package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/service"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := flag.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated browser origins allowed by CORS and the websocket upgrade")
	level := flag.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn, error or fatal")
	format := flag.String("log-format", getenv("CHESS_LOG_FORMAT", "text"), "text or json")
	logRequests := flag.Bool("log-requests", getenb("CHESS_LOG_REQUESTS", true), "log one line per HTTP request")
	flag.Parse()

	if err := setupLogging(*level, *format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)
	app := controller.NewApp(gameService, controller.Options{
		AllowOrigins: *origins,
		LogRequests:  *logRequests,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithField("addr", *addr).WithField("origins", *origins).Info("HTTP listening")
	if err := app.Listen(*addr); err != nil {
		log.WithError(err).Fatal("listen")
	}
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch format {
	case "text":
		log.SetHandler(text.New(os.Stderr))
	case "json":
		log.SetHandler(json.New(os.Stderr))
	default:
		return fmt.Errorf("log format %q: want text or json", format)
	}
	log.SetLevel(lvl)
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
