package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	. "github.com/ttpr0/go-transit/util"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/exp/slog"
)

//**********************************************************
// http api
//**********************************************************

func NewServer(manager *TransitManager, options ServerOptions) http.Handler {
	app := chi.NewRouter()
	app.Use(cors.Handler(cors.Options{
		AllowedOrigins: options.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	app.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		meta := manager.GetSnapshot().Meta
		WriteResponse(w, HealthResponse{
			Status:    "ok",
			BuildId:   meta.BuildID.String(),
			CreatedAt: meta.CreatedAt.Format(time.RFC3339),
		}, http.StatusOK)
	})

	MapGet(app, "/v0/bus", func(ctx context.Context, req NameQuery) Result {
		if req.Name == "" {
			return BadRequest(NewErrorResponse(req.Id, "missing parameter name"))
		}
		return _StatResult(manager.Stat(ctx, StatRequest{Id: req.Id, Type: BUS_STAT, Name: req.Name}))
	})
	MapGet(app, "/v0/stop", func(ctx context.Context, req NameQuery) Result {
		if req.Name == "" {
			return BadRequest(NewErrorResponse(req.Id, "missing parameter name"))
		}
		return _StatResult(manager.Stat(ctx, StatRequest{Id: req.Id, Type: STOP_STAT, Name: req.Name}))
	})
	MapGet(app, "/v0/route", func(ctx context.Context, req RouteQuery) Result {
		if req.From == "" || req.To == "" {
			return BadRequest(NewErrorResponse(req.Id, "missing parameter from or to"))
		}
		return _StatResult(manager.Stat(ctx, StatRequest{Id: req.Id, Type: ROUTE_STAT, From: req.From, To: req.To}))
	})
	MapGet(app, "/v0/map", func(ctx context.Context, req MapQuery) Result {
		return OK(manager.MapStat(ctx, req.Id))
	})
	MapPost(app, "/v0/stat", func(ctx context.Context, req List[StatRequest]) Result {
		return OK(ProcessRequests(ctx, manager, req))
	})

	return otelhttp.NewHandler(app, "go-transit")
}

func _StatResult(response any) Result {
	if _, ok := response.(ErrorResponse); ok {
		return NotFound(response)
	}
	return OK(response)
}

// Serves until ctx is cancelled, then shuts down gracefully.
func RunServer(ctx context.Context, manager *TransitManager, options ServerOptions) error {
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(options.Port),
		Handler:           NewServer(manager, options),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("serving on %v", server.Addr))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")
	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdown_ctx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
