package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"htmlhead/internal/config"
	"htmlhead/internal/html"
	"htmlhead/internal/htmlutil"
	"htmlhead/internal/logs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var indent string
	var serve bool
	var help bool

	flag.StringVar(&cfg.Analytics.GoogleTagID, "google-tag", cfg.Analytics.GoogleTagID, "Google tag (gtag.js) id, used for HTML5 documents")
	flag.StringVar(&cfg.Analytics.LegacyTrackingID, "analytics-js", cfg.Analytics.LegacyTrackingID, "analytics.js tracking id, used for legacy doctypes")
	flag.StringVar(&cfg.Analytics.ClarityProjectID, "clarity", cfg.Analytics.ClarityProjectID, "Microsoft Clarity project id")
	flag.StringVar(&cfg.Document.Doctype, "doctype", cfg.Document.Doctype, "html5, strict, transitional, frameset or none")
	flag.StringVar(&cfg.Document.Encoding, "encoding", cfg.Document.Encoding, "document character encoding")
	flag.StringVar(&cfg.Document.ContentType, "content-type", cfg.Document.ContentType, "Content-Type for legacy http-equiv meta")
	flag.Func("preload", "image URL to preload (repeatable)", func(url string) error {
		cfg.Document.PreloadImages = append(cfg.Document.PreloadImages, url)
		return nil
	})
	flag.StringVar(&indent, "indent", "", "indentation unit for the printed fragment")
	flag.BoolVar(&serve, "serve", false, "Run HTTP server mode")
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Address to bind in server mode")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	shutdown, err := logs.Setup(ctx, cfg.Log, "headtags", os.Stderr)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	if serve {
		if err := runServer(cfg); err != nil {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
		return
	}

	out := bufio.NewWriter(os.Stdout)
	if err := writeHead(out, cfg, indent); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
	if err := out.Flush(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// writeHead writes the doctype declaration followed by the head fragment for
// cfg: standard meta, the analytics tag for the doctype, Clarity and image
// preloads.
func writeHead(w io.Writer, cfg *config.Config, indent string) error {
	doc, err := html.NewDocument(w, append(cfg.DocumentOptions(), html.WithIndent(indent, 1))...)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	if err := doc.WriteDoctype(); err != nil {
		return fmt.Errorf("failed to write doctype: %w", err)
	}
	if err := htmlutil.WriteStandardMeta(doc, cfg.Document.ContentType); err != nil {
		return fmt.Errorf("failed to write standard meta: %w", err)
	}
	if doc.Doctype().IsModern() {
		if err := htmlutil.WriteGlobalSiteTag(doc, cfg.Analytics.GoogleTagID); err != nil {
			return fmt.Errorf("failed to write global site tag: %w", err)
		}
	} else {
		//nolint:staticcheck // legacy doctypes still get analytics.js
		if err := htmlutil.WriteAnalyticsJs(doc, cfg.Analytics.LegacyTrackingID); err != nil {
			return fmt.Errorf("failed to write analytics.js: %w", err)
		}
	}
	if err := htmlutil.WriteClarityTag(doc, cfg.Analytics.ClarityProjectID); err != nil {
		return fmt.Errorf("failed to write clarity tag: %w", err)
	}
	for _, url := range cfg.Document.PreloadImages {
		if err := htmlutil.WriteImagePreloadScript(doc, url); err != nil {
			return fmt.Errorf("failed to write image preload for %s: %w", url, err)
		}
	}
	return nil
}

func showHelp() {
	fmt.Println("headtags - Head snippet writer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  headtags -google-tag G-XXXX [-clarity id] [-preload url]...")
	fmt.Println("  headtags -doctype transitional -analytics-js UA-XXXX-Y")
	fmt.Println("  headtags -serve [-addr :8080]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Every option also reads from the environment (GOOGLE_TAG_ID, GA_TRACKING_ID,")
	fmt.Println("CLARITY_PROJECT_ID, DOCTYPE, DOCUMENT_ENCODING, CONTENT_TYPE, PRELOAD_IMAGES, ADDR)")
	fmt.Println("or a .env file in the working directory.")
}
