package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	persistlog "craftrpg.chat/internal/persistence/log"
	"craftrpg.chat/internal/persistence/userdb"
	"craftrpg.chat/internal/sim/catalogs"
	"craftrpg.chat/internal/sim/rpg"
	"craftrpg.chat/internal/sim/tuning"
	"craftrpg.chat/internal/transport/ws"
)

type config struct {
	Addr       string `env:"RPG_ADDR" envDefault:":8080"`
	ConfigDir  string `env:"RPG_CONFIGS" envDefault:"./configs"`
	DataDir    string `env:"RPG_DATA" envDefault:"./data"`
	TuningPath string `env:"RPG_TUNING"`
	Seed       int64  `env:"RPG_SEED" envDefault:"1337"`
	NoJournal  bool   `env:"RPG_NO_JOURNAL"`
}

func main() {
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.TuningPath == "" {
		cfg.TuningPath = filepath.Join(cfg.ConfigDir, "tuning.yaml")
	}

	cats, err := catalogs.Load(cfg.ConfigDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}
	tune, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	engine := rpg.New(rpg.Config{
		Catalogs: cats,
		Tuning:   tune,
		Seed:     cfg.Seed,
	})
	store, err := userdb.Open(userdb.Config{
		Dir:    filepath.Join(cfg.DataDir, "users"),
		Engine: engine,
	})
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}

	var journal *persistlog.ActivityJournal
	if !cfg.NoJournal {
		journal = persistlog.NewActivityJournal(cfg.DataDir)
		defer journal.Close()
	}

	srv := ws.NewServer(store, engine, journal, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
}
