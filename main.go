package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/parser"
	"github.com/ttpr0/transit-catalogue/storage"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

const USAGE = "usage: transit-catalogue [make_base|process_requests|serve]"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, USAGE)
		os.Exit(2)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to read .env: "+err.Error())
	}

	config_file := os.Getenv("TRANSIT_CONFIG")
	if config_file == "" {
		config_file = "./config.yaml"
	}
	config, err := ReadConfig(config_file)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config file " + config_file + " not found, using defaults")
		config = DefaultConfig()
		err = nil
	}
	if err == nil {
		err = config.ApplyEnv()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	SetupLogging(os.Stderr, config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "make_base":
		err = MakeBase(ctx, os.Stdin, config)
	case "process_requests":
		err = ProcessRequests(ctx, os.Stdin, os.Stdout, config)
	case "serve":
		err = Serve(ctx, config)
	default:
		fmt.Fprintln(os.Stderr, USAGE)
		os.Exit(2)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// MakeBase reads the base requests, solves the route index and saves the
// snapshot. Settings in the document take precedence over the config.
func MakeBase(ctx context.Context, input io.Reader, config Config) error {
	doc, err := parser.ReadDocument(input)
	if err != nil {
		return err
	}
	cat := catalogue.NewTransportCatalogue()
	if err := parser.LoadCatalogue(doc, cat); err != nil {
		return err
	}
	settings := config.RoutingSettings.ToSettings()
	if doc.RoutingSettings != nil {
		settings = doc.RoutingSettings.ToSettings()
	}
	manager, err := BuildTransitManager(cat, doc.RenderSettings, settings)
	if err != nil {
		return err
	}

	store, err := _OpenStore(doc, config)
	if err != nil {
		return err
	}
	defer store.Close()
	return manager.Save(ctx, store)
}

// ProcessRequests answers the stat requests of a document from the saved
// snapshot and writes the responses as a json array.
func ProcessRequests(ctx context.Context, input io.Reader, output io.Writer, config Config) error {
	doc, err := parser.ReadDocument(input)
	if err != nil {
		return err
	}
	store, err := _OpenStore(doc, config)
	if err != nil {
		return err
	}
	defer store.Close()
	manager, err := LoadTransitManager(ctx, store)
	if err != nil {
		return err
	}

	requests := doc.StatRequests
	if requests == nil {
		requests = []parser.StatRequest{}
	}
	responses := manager.GetHandler().ProcessRequests(requests)
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "    ")
	return encoder.Encode(responses)
}

// Serve loads the saved snapshot and answers http queries until the context
// is canceled. Without a snapshot it is built from the configured osm file.
func Serve(ctx context.Context, config Config) error {
	store, err := storage.Open(config.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	manager, err := LoadTransitManager(ctx, store)
	if errors.Is(err, ErrNotFound) && config.Source.OSM != "" {
		slog.Info("no snapshot found, building from " + config.Source.OSM)
		manager, err = _BuildFromOSM(ctx, store, config)
	}
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Server.Port),
		Handler:           NewServer(manager, config),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("listening on %v", server.Addr))
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdown_ctx)
}

func _BuildFromOSM(ctx context.Context, store storage.Store, config Config) (*TransitManager, error) {
	cat := catalogue.NewTransportCatalogue()
	if err := parser.ParseOSM(ctx, config.Source.OSM, &parser.BusDecoder{}, cat); err != nil {
		return nil, err
	}
	manager, err := BuildTransitManager(cat, nil, config.RoutingSettings.ToSettings())
	if err != nil {
		return nil, err
	}
	if err := manager.Save(ctx, store); err != nil {
		return nil, err
	}
	return manager, nil
}

// The serialization file of a document replaces the configured path.
func _OpenStore(doc *parser.Document, config Config) (storage.Store, error) {
	store_config := config.Storage
	if doc.SerializationSettings != nil {
		if store_config.Backend == "sqlite" {
			store_config.SQLite = doc.SerializationSettings.File
		} else {
			store_config.File = doc.SerializationSettings.File
		}
	}
	return storage.Open(store_config)
}
