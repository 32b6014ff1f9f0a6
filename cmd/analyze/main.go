package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/fetch"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/page"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/report"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/config"
)

func main() {
	var (
		pageURL     = flag.String("url", "", "Page URL to fetch and analyze")
		filePath    = flag.String("file", "", "Local HTML file to analyze instead of fetching")
		format      = flag.String("format", "json", "Output format: json, markdown, csv")
		tablesPath  = flag.String("tables", "", "Heuristic tables YAML override (optional)")
		lexiconPath = flag.String("lexicon", "", "Synonym lexicon YAML (optional)")
	)
	flag.Parse()

	if *pageURL == "" && *filePath == "" {
		log.Fatal("--url or --file required")
	}

	loader := config.Loader{
		TablesPath:  *tablesPath,
		LexiconPath: *lexiconPath,
	}
	engine, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var in semantic.Input
	finalURL := *pageURL

	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			log.Fatal("Failed to open file:", err)
		}
		parsed, err := page.Parse(f, "text/html", *pageURL)
		f.Close()
		if err != nil {
			log.Fatal("Failed to parse file:", err)
		}
		in = parsed.EngineInput()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		client := fetch.NewClient(15*time.Second, 5*time.Second, 5*1024*1024)
		body, resolved, contentType, err := client.Fetch(ctx, *pageURL)
		if err != nil {
			log.Fatal("Failed to fetch page:", err)
		}
		parsed, err := page.Parse(body, contentType, resolved)
		body.Close()
		if err != nil {
			log.Fatal("Failed to parse page:", err)
		}
		in = parsed.EngineInput()
		finalURL = resolved
	}

	analysis := engine.Analyze(in)
	rep := report.NewBuilder().Build(finalURL, analysis, "")

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatal(err)
		}
	case "markdown":
		if err := report.WriteMarkdown(os.Stdout, rep); err != nil {
			log.Fatal(err)
		}
	case "csv":
		if err := report.WriteCSV(os.Stdout, rep); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("unknown format: ", *format)
	}
}
