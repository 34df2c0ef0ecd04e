package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/parser"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/snapshot"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/exp/slog"
)

//**********************************************************
// make_base
//**********************************************************

// Builds the catalogue and the routing index from the input document and
// writes them to the snapshot file.
func MakeBase(ctx context.Context, input MakeBaseInput, config Config) (snapshot.Snapshot, error) {
	ctx, span := otel.Tracer(INSTRUMENTATION_NAME).Start(ctx, "MakeBase")
	defer span.End()
	start := time.Now()

	file, err := _SnapshotFile(input.SerializationSettings, config)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	if err := render.ValidateSettings(input.RenderSettings); err != nil {
		return snapshot.Snapshot{}, err
	}

	cat := catalogue.NewTransportCatalogue()
	if err := parser.FillCatalogue(cat, input.BaseRequests, config.Catalogue.StrictStopReferences); err != nil {
		return snapshot.Snapshot{}, err
	}

	router, err := transit.NewTransportRouter(cat, input.RoutingSettings, transit.Options{Workers: config.Routing.Workers})
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	snap := snapshot.Snapshot{
		Meta:           snapshot.NewMeta(),
		Catalogue:      cat,
		RenderSettings: input.RenderSettings,
		MapObjects:     render.SelectMapObjects(cat),
		Router:         router,
	}
	if err := snapshot.WriteFile(file, snap); err != nil {
		return snapshot.Snapshot{}, err
	}

	_RecordBuild(ctx, otel.Meter(INSTRUMENTATION_NAME), start)
	slog.Info(fmt.Sprintf("base built in %v", time.Since(start)))
	return snap, nil
}

func _RecordBuild(ctx context.Context, meter metric.Meter, start time.Time) {
	instruments, err := NewInstruments(meter)
	if err != nil {
		slog.Warn(fmt.Sprintf("failed to create instruments, build duration not recorded: %v", err))
		return
	}
	instruments.RecordBuild(ctx, start)
}

func RunMakeBase(ctx context.Context, in io.Reader, config Config) error {
	input, err := ReadJSON[MakeBaseInput](in)
	if err != nil {
		return fmt.Errorf("failed to read make_base input: %w", err)
	}
	_, err = MakeBase(ctx, input, config)
	return err
}

//**********************************************************
// process_requests
//**********************************************************

func ProcessRequests(ctx context.Context, manager *TransitManager, requests List[StatRequest]) List[any] {
	responses := NewList[any](requests.Length())
	for _, request := range requests {
		responses.Add(manager.Stat(ctx, request))
	}
	return responses
}

// Loads the snapshot named by the input document and writes the responses
// to out as a json array.
func RunProcessRequests(ctx context.Context, in io.Reader, out io.Writer, config Config) error {
	input, err := ReadJSON[ProcessRequestsInput](in)
	if err != nil {
		return fmt.Errorf("failed to read process_requests input: %w", err)
	}
	file, err := _SnapshotFile(input.SerializationSettings, config)
	if err != nil {
		return err
	}
	manager, err := LoadTransitManager(file)
	if err != nil {
		return err
	}
	responses := ProcessRequests(ctx, manager, input.StatRequests)
	slog.Info(fmt.Sprintf("answered %v stat requests", responses.Length()))
	return WriteJSON(out, responses)
}

//**********************************************************
// import_osm
//**********************************************************

// Writes the base requests found in an osm file as a make_base document
// without settings.
func RunImportOSM(ctx context.Context, file string, out io.Writer) error {
	requests, err := parser.ParseOSMFile(ctx, file, GetDecoder())
	if err != nil {
		return err
	}
	return WriteJSON(out, ImportOSMOutput{BaseRequests: requests})
}
