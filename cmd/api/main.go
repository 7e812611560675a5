package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/container"
	"github.com/saulo-duarte/coursehub-lambda/internal/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	c := container.New()

	server := &http.Server{
		Addr:              config.Conf.GetString("HTTP_ADDR"),
		Handler:           router.New(c.RouterConfig()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", server.Addr).Info("HTTP server listening")
		errs <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("HTTP server error")
		}
	case sig := <-shutdown:
		config.Logger.WithField("signal", sig.String()).Info("Start shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			config.Logger.WithError(err).Error("Could not stop server gracefully")
			if err := server.Close(); err != nil {
				config.Logger.WithError(err).Fatal("Could not force stop server")
			}
		}
	}
}
