package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pkt.systems/lexflow"
	"pkt.systems/lexflow/wsfeed"
)

const servePath = "/ws"

func serve(addr string, tokens []*lexflow.Token, opts []lexflow.Option, validate bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveContext(ctx, addr, newServeMux(tokens, opts, validate, logger), logger)
}

func newServeMux(tokens []*lexflow.Token, opts []lexflow.Option, validate bool, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(servePath, wsfeed.NewServer(wsfeed.Config{
		Tokens:   tokens,
		Options:  opts,
		Validate: validate,
		Logger:   logger,
	}))
	return mux
}

// serveContext runs an HTTP server on addr until ctx is done.
func serveContext(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "path", servePath)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("stopped")
	return nil
}
