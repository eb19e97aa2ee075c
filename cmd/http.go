// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/cmd/service"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/middleware"

	"goa.design/clue/debug"
	goahttp "goa.design/goa/v3/http"
)

const (
	readHeaderTimeout   = time.Minute
	httpShutdownTimeout = 20 * time.Second
)

// newHTTPHandler mounts the service endpoints on a goa muxer. In debug mode
// the pprof handlers, the /debug log switch and the body logger are added.
func newHTTPHandler(ctx context.Context, svc *service.BlockPlusSvc, authenticator port.Authenticator, dbg bool) http.Handler {
	mux := goahttp.NewMuxer()
	if dbg {
		debug.MountPprofHandlers(debug.Adapt(mux))
		debug.MountDebugLogEnabler(debug.Adapt(mux))
	}

	svc.Mount(mux, authenticator)
	for _, m := range svc.Mounts {
		slog.InfoContext(ctx, "HTTP endpoint mounted",
			"method", m.Method,
			"verb", m.Verb,
			"pattern", m.Pattern,
		)
	}

	// the request id wraps everything so debug body logs carry it too
	var handler http.Handler = mux
	if dbg {
		handler = debug.HTTP()(handler)
	}
	return middleware.RequestIDMiddleware()(handler)
}

// handleHTTPServer serves handler on addr until ctx is cancelled, then shuts
// the server down. Listen failures are sent to errc.
func handleHTTPServer(ctx context.Context, addr string, handler http.Handler, wg *sync.WaitGroup, errc chan<- error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		go func() {
			slog.InfoContext(ctx, "HTTP server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()

		<-ctx.Done()
		slog.InfoContext(ctx, "shutting down HTTP server", "addr", addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown HTTP server", "error", err)
		}
	}()
}
