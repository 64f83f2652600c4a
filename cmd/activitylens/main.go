package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/activitylens/internal/app"
	"github.com/hyperifyio/activitylens/internal/insight"
	"github.com/hyperifyio/activitylens/internal/rank"
	"github.com/hyperifyio/activitylens/internal/report"
	"github.com/hyperifyio/activitylens/internal/server"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfg        app.Config
		configPath string
		envFiles   string
	)

	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&envFiles, "env", "", "Comma-separated dotenv files loaded before env fallbacks are read")
	flag.StringVar(&cfg.InputPath, "input", "", "Analyze a single export file and exit instead of serving")
	flag.StringVar(&cfg.InputName, "name", "", "Original filename used for extractor dispatch (defaults to -input's base name)")
	flag.StringVar(&cfg.ReportPath, "report", "", "Write a PDF report to this path in one-shot mode")
	flag.StringVar(&cfg.Listen, "listen", "", "HTTP listen address (default :3000)")
	flag.StringVar(&cfg.UploadDir, "upload.dir", "", "Directory for stored uploads (default uploads)")
	flag.StringVar(&cfg.StaticDir, "static.dir", "", "Directory for generated report files (default static)")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL for the optional privacy note")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Model name for the optional privacy note")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", "", "API key for the OpenAI-compatible server")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

	if envFiles != "" {
		if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
			log.Fatal().Err(err).Msg("loading env files failed")
		}
	}
	applyEnvFallbacks(&cfg)

	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading config file failed")
		}
		fc.Apply(&cfg)
	}
	cfg.Normalize()

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	advisor := insight.New(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey)

	if cfg.InputPath != "" {
		if err := runOnce(cfg, advisor); err != nil {
			log.Fatal().Err(err).Msg("analysis failed")
		}
		return
	}
	serve(cfg, advisor)
}

func applyEnvFallbacks(cfg *app.Config) {
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.Listen == "" {
		cfg.Listen = os.Getenv("LISTEN_ADDR")
	}
}

// runOnce analyzes a single export from the command line and prints a
// plain-text summary to stdout.
func runOnce(cfg app.Config, advisor *insight.Advisor) error {
	name := cfg.InputName
	if name == "" {
		name = filepath.Base(cfg.InputPath)
	}
	analysis, err := app.Analyze(cfg.InputPath, name, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("File: %s (%s extractor)\n\n", analysis.Filename, analysis.Kind)
	fmt.Println("Activity breakdown:")
	for _, cat := range app.OrderedCategories(analysis.Categories) {
		fmt.Printf("  %-10s %d\n", cat, analysis.Categories[cat])
	}
	fmt.Println("\nTop 5 interests:")
	for _, it := range analysis.Top {
		fmt.Printf("  %-40s %d\n", it.Label, it.Count)
	}
	fmt.Printf("\n%s (%s, %d%%)\n", analysis.Risk.Headline, analysis.Risk.Level, analysis.Risk.Percent)
	for _, s := range analysis.Risk.Suggestions {
		fmt.Printf("  - %s\n", s)
	}

	if advisor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var labels []string
		if !rank.IsSentinel(analysis.Top) {
			for _, it := range analysis.Top {
				labels = append(labels, it.Label)
			}
		}
		note, err := advisor.Note(ctx, insight.Input{
			Level:      string(analysis.Risk.Level),
			Percent:    analysis.Risk.Percent,
			Categories: analysis.Categories,
			TopLabels:  labels,
		})
		if err != nil {
			log.Warn().Err(err).Msg("privacy note unavailable")
		} else {
			fmt.Printf("\n%s\n", note)
		}
	}

	if cfg.ReportPath != "" {
		if err := report.Write(analysis, cfg.ReportPath); err != nil {
			return err
		}
		log.Info().Str("path", cfg.ReportPath).Msg("report written")
	}
	return nil
}

func serve(cfg app.Config, advisor *insight.Advisor) {
	srv, err := server.New(cfg, advisor)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Listen).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
