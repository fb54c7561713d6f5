package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/config"
	"github.com/Lj07-coder/SkillDeck/internal/db"
	"github.com/Lj07-coder/SkillDeck/internal/fetch"
	"github.com/Lj07-coder/SkillDeck/internal/llm"
	"github.com/Lj07-coder/SkillDeck/internal/media"
	"github.com/Lj07-coder/SkillDeck/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the SkillDeck REST API.

Uploads are enabled when media.cloud_name and media.upload_preset are set.
Skill extraction uses Gemini when GEMINI_API_KEY is set and falls back to
a vocabulary scan otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		applied, err := database.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		log.Printf("[serve] applied %d migration(s)", len(applied))
	}

	srvCfg := server.Config{
		Port:            cfg.Server.Port,
		MaxUploadBytes:  cfg.Server.MaxUploadSize << 20,
		LoadConcurrency: cfg.Portfolio.LoadConcurrency,
		Store:           database,
		Vocabulary:      vocab,
		Previewer:       newPreviewer(cfg.Preview, false),
	}

	if cfg.Media.Enabled() {
		srvCfg.Uploader = media.NewClient(cfg.Media.BaseURL, cfg.Media.CloudName, cfg.Media.UploadPreset)
	} else {
		log.Printf("[serve] media upload not configured; upload endpoints will answer 503")
	}

	if client := newLLMClient(ctx, cfg.LLM); client != nil {
		defer func() { _ = client.Close() }()
		srvCfg.LLM = client
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// newLLMClient returns nil when no API key is configured or the client
// cannot be created; callers then use the vocabulary scan.
func newLLMClient(ctx context.Context, cfg config.LLMConfig) llm.Client {
	if cfg.APIKey == "" {
		return nil
	}
	llmCfg := llm.DefaultConfig()
	if cfg.LiteModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.LiteModel)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		log.Printf("[llm] %v; using vocabulary scan", err)
		return nil
	}
	return client
}

func newPreviewer(cfg config.PreviewConfig, forceBrowser bool) *fetch.Previewer {
	opts := fetch.DefaultOptions()
	opts.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	opts.AllowPrivateNetworks = cfg.AllowPrivateNetworks
	return fetch.NewPreviewer(fetch.PreviewerConfig{
		Options:        opts,
		UseBrowser:     cfg.UseBrowser || forceBrowser,
		BrowserTimeout: 2 * opts.Timeout,
	})
}
