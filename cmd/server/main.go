package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/fetch"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/llm"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/server"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store/sqlite"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/config"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "Listen address")
		dbPath      = flag.String("db", "", "SQLite history database path (empty disables history)")
		tablesPath  = flag.String("tables", "", "Heuristic tables YAML override (optional)")
		lexiconPath = flag.String("lexicon", "", "Synonym lexicon YAML (optional)")
		llmURL      = flag.String("llm-url", "", "Reasoning service chat endpoint (empty disables commentary)")
		llmModel    = flag.String("llm-model", "", "Reasoning service model name")
	)
	flag.Parse()

	ctx := context.Background()

	loader := config.Loader{
		TablesPath:  *tablesPath,
		LexiconPath: *lexiconPath,
	}
	engine, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer st.Close()
	}

	var llmClient *llm.Client
	if *llmURL != "" {
		llmClient = &llm.Client{
			BaseURL: *llmURL,
			APIKey:  os.Getenv("LLM_API_KEY"),
			Model:   *llmModel,
		}
	}

	fetcher := fetch.NewClient(15*time.Second, 5*time.Second, 5*1024*1024)
	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(engine, fetcher, st, llmClient),
	}

	go func() {
		log.Printf("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
