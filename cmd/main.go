// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/cmd/service"
	logging "github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/log"

	"github.com/joho/godotenv"
)

const (
	defaultPort = "8080"
	// gracefulShutdownSeconds should be higher than httpShutdownTimeout
	// and lower than the pod's terminationGracePeriodSeconds.
	gracefulShutdownSeconds = 25
)

// shutdownHook releases a resource once the HTTP server stopped
type shutdownHook struct {
	name  string
	close func() error
}

func init() {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load()
	logging.InitStructureLogConfig()
}

func main() {
	var (
		dbgF = flag.Bool("d", false, "enable debug logging")
		port = flag.String("p", defaultPort, "listen port")
		bind = flag.String("bind", "*", "interface to bind on")
	)
	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	ctx := context.Background()
	slog.InfoContext(ctx, "Starting blockplus service",
		"bind", *bind,
		"http-port", *port,
		"graceful-shutdown-seconds", gracefulShutdownSeconds,
	)

	siteStore := service.SiteStoreImpl(ctx)
	renderer := service.RendererImpl(ctx)
	hooks := []shutdownHook{{name: "site store", close: siteStore.Close}}
	if themeWatcher := service.ThemeWatcherImpl(ctx, renderer); themeWatcher != nil {
		hooks = append(hooks, shutdownHook{name: "theme watcher", close: themeWatcher.Stop})
	}

	blockPlusSvc := service.NewBlockPlusSvc(service.SearcherImpl(ctx),
		service.CatalogImpl(ctx),
		siteStore,
		renderer,
		service.TranslatorImpl(ctx),
		service.DefaultLocale(),
	)

	// Signal handler and server goroutines notify the main goroutine here.
	errc := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	addr := ":" + *port
	if *bind != "*" {
		addr = net.JoinHostPort(*bind, *port)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	handler := newHTTPHandler(ctx, blockPlusSvc, service.AuthServiceImpl(ctx), *dbgF)
	handleHTTPServer(ctx, addr, handler, &wg, errc)

	slog.InfoContext(ctx, "received shutdown signal, stopping servers",
		"signal", <-errc,
	)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		for _, hook := range hooks {
			slog.InfoContext(shutdownCtx, "closing "+hook.name)
			if err := hook.close(); err != nil {
				slog.ErrorContext(shutdownCtx, "failed to close "+hook.name, "error", err)
			}
		}
		close(done)
	}()

	select {
	case <-done:
		slog.InfoContext(shutdownCtx, "graceful shutdown completed")
	case <-shutdownCtx.Done():
		slog.WarnContext(shutdownCtx, "graceful shutdown timed out")
	}

	slog.InfoContext(shutdownCtx, "exited")
}
