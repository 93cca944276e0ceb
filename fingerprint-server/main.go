package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/namsral/flag"
	opentracing "github.com/opentracing/opentracing-go"
	zipkin "github.com/openzipkin/zipkin-go-opentracing"
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework"
	"github.com/retro-framework/go-fingerprint/framework/config"
	"github.com/retro-framework/go-fingerprint/framework/object"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage/fs"
	"github.com/retro-framework/go-fingerprint/framework/storage/memory"
	"github.com/retro-framework/go-fingerprint/framework/storage/redis"
)

func main() {

	var (
		flags       = config.NewFlagSet(os.Args[0], flag.ExitOnError)
		hashFlags   = config.RegisterHashFlags(flags)
		listenAddr  = flags.String("listen", defaultListenAddr(), "address to listen on")
		storageKind = flags.String("storage", "memory", "object and ref storage, one of memory, fs, redis")
		storagePath = flags.String("storage_path", "/tmp/fingerprint", "storage dir for the fs storage")
		redisAddr   = flags.String("redis_addr", "localhost:6379", "redis server for the redis storage")
		zipkinURL   = flags.String("zipkin_url", "", "zipkin span collector, e.g. http://localhost:9411/api/v1/spans")
		verbose     = flags.Bool("verbose", false, "log debug messages")
	)
	flags.Parse(os.Args[1:])

	logger := &framework.Stdout{Verbose: *verbose}

	hasher, err := hashFlags.NewHasher()
	if err != nil {
		log.Fatal(err)
	}

	if *zipkinURL != "" {
		collector, err := zipkin.NewHTTPCollector(*zipkinURL)
		if err != nil {
			log.Fatal(err)
		}
		defer collector.Close()

		tracer, err := zipkin.NewTracer(
			zipkin.NewRecorder(collector, false, *listenAddr, "fingerprint-server"),
		)
		if err != nil {
			log.Fatal(err)
		}
		opentracing.SetGlobalTracer(tracer)
		log.Println("Tracing to:", *zipkinURL)
	}

	odb, refdb, err := openStores(*storageKind, *storagePath, *redisAddr, logger)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Using Storage:", *storageKind)
	log.Printf("Hashing with %s, %d symbols over %q", hasher.Algo(), hasher.HashLen(), hasher.Alphabet())

	rMux := newRouter(server{
		packer: packing.NewJSONPacker(hasher),
		odb:    odb,
		refdb:  refdb,
		log:    logger,
	})

	s := &http.Server{
		Addr:           *listenAddr,
		Handler:        handlers.CombinedLoggingHandler(os.Stdout, rMux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Println("Listening on:", *listenAddr)
	log.Fatal(s.ListenAndServe())
}

func defaultListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return fmt.Sprintf(":%s", port)
	}
	return ":8080"
}

func openStores(kind, storagePath, redisAddr string, logger framework.Logger) (object.ListableDB, ref.ListableDB, error) {
	switch kind {
	case "memory":
		return &memory.ObjectStore{}, &memory.RefStore{}, nil
	case "fs":
		storagePath, err := filepath.Abs(storagePath)
		if err != nil {
			return nil, nil, err
		}
		return &fs.ObjectStore{BasePath: storagePath}, &fs.RefStore{BasePath: storagePath, Log: logger}, nil
	case "redis":
		odb, err := redis.NewObjectStore(redisAddr)
		if err != nil {
			return nil, nil, err
		}
		refdb, err := redis.NewRefStore(redisAddr)
		if err != nil {
			return nil, nil, err
		}
		return odb, refdb, nil
	}
	return nil, nil, errors.Errorf("unknown storage %q, want memory, fs or redis", kind)
}
