package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"path/filepath"
	"strings"
	"time"

	persistlog "antcolony.ai/internal/persistence/log"
	"antcolony.ai/internal/sim/tuning"
	"antcolony.ai/internal/sim/world"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "colony_1", "world id")
		seed       = flag.Int64("seed", 0, "world seed (0: use tuning seed)")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite analytics index")
		noScenario = flag.Bool("empty", false, "start without the tuning scenario (no bases, agents or food)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}
	if *seed != 0 {
		tune.Seed = *seed
	}

	// Each start is a separate run: replay needs the log to begin at the run header.
	runDir := filepath.Join(*dataDir, "worlds", *worldID, "runs", time.Now().UTC().Format("20060102T150405Z"))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		logger.Fatalf("create run dir: %v", err)
	}

	w, err := world.New(world.ConfigFromTuning(*worldID, tune))
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	// Optional: read-model index backend (does not affect sim determinism).
	idx, err := openRuntimeIndex(runDir, *disableDB)
	if err != nil {
		logger.Fatalf("open index backend: %v", err)
	}
	if idx != nil {
		defer idx.Close()
		if err := idx.UpsertConfig(w.Config(), tune); err != nil {
			logger.Printf("index backend: upsert config: %v", err)
		}
	}

	if err := persistlog.WriteRunHeader(runDir, persistlog.RunHeader{
		WorldID:   *worldID,
		StartTick: w.CurrentTick(),
		Config:    w.Config(),
	}); err != nil {
		logger.Fatalf("write run header: %v", err)
	}
	tickLog := persistlog.NewTickLogger(runDir)
	defer tickLog.Close()
	loggers := persistlog.MultiTickLogger{tickLog}
	if idx != nil {
		loggers = append(loggers, idx)
	}
	w.SetTickLogger(loggers)

	if !*noScenario {
		if err := w.SeedScenario(tune.Scenario); err != nil {
			logger.Fatalf("seed scenario: %v", err)
		}
	}
	logger.Printf("world=%s seed=%d objects=%d run=%s", *worldID, tune.Seed, w.Len(), runDir)

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		writeMetrics(rw, *worldID, w.Metrics(), idx.Stats())
	})

	enableAdminHTTP := envBool("AC_ENABLE_ADMIN_HTTP", defaultEnableAdminHTTP())
	enablePprofHTTP := envBool("AC_ENABLE_PPROF_HTTP", false)
	if enableAdminHTTP {
		(&adminAPI{w: w, idx: idx, logger: logger}).register(mux)
	} else {
		logger.Printf("admin endpoints disabled (AC_ENABLE_ADMIN_HTTP=false)")
	}
	if enablePprofHTTP {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		logger.Printf("pprof endpoints disabled (AC_ENABLE_PPROF_HTTP=false)")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}
