// Package compliance is the public entry point for running document
// compliance verification.
package compliance

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Treedy2020/FinalCheck/internal/cache"
	"github.com/Treedy2020/FinalCheck/internal/config"
	"github.com/Treedy2020/FinalCheck/internal/domain"
	"github.com/Treedy2020/FinalCheck/internal/engine"
	"github.com/Treedy2020/FinalCheck/internal/evaluate"
	"github.com/Treedy2020/FinalCheck/internal/llm"
	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/internal/pdf"
	"github.com/Treedy2020/FinalCheck/internal/registry"
)

// Re-export the result types callers consume.
type (
	Verdict          = domain.Verdict
	ComplianceReport = domain.ComplianceReport
	StandardReport   = domain.StandardReport
	PageVerdict      = domain.PageVerdict
	Standard         = domain.Standard
	ProductType      = domain.ProductType
)

const (
	VerdictCompliant    = domain.VerdictCompliant
	VerdictNonCompliant = domain.VerdictNonCompliant
	VerdictInconclusive = domain.VerdictInconclusive
)

// Client runs compliance analyses against the built-in standard registry.
type Client struct {
	engine   *engine.Engine
	registry *registry.Registry
	cache    cache.Client
}

// NewClient creates a client from environment configuration. A .env file in
// the working directory is honored when present.
func NewClient() (*Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with explicit configuration.
func NewClientWithConfig(cfg *config.Config) (*Client, error) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "finalcheck",
	})

	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		BaseURL:        cfg.LLM.BaseURL,
		RequestTimeout: cfg.LLM.RequestTimeout,
		MaxAttempts:    cfg.LLM.MaxAttempts,
		RetryBackoff:   cfg.LLM.RetryBackoff,
	}, logger)
	if err != nil {
		return nil, err
	}

	cacheClient, err := buildCache(cfg)
	if err != nil {
		return nil, err
	}

	rasterizer := pdf.NewRasterizer(cfg.Pipeline.DPI, cfg.Pipeline.MaxFileBytes, cfg.Pipeline.MaxPages)
	evaluator := evaluate.NewPageEvaluator(llmClient, logger)

	eng := engine.New(engine.Options{
		Rasterizer: rasterizer,
		Registry:   reg,
		Evaluator:  evaluator,
		Cache:      cacheClient,
		CacheTTL:   cfg.Cache.TTL,
		Workers:    cfg.Pipeline.Workers,
		Logger:     logger,
	})

	return &Client{
		engine:   eng,
		registry: reg,
		cache:    cacheClient,
	}, nil
}

// AnalyzeFile verifies the document at path against the given standards.
func (c *Client) AnalyzeFile(ctx context.Context, path string, standardIDs []string) (ComplianceReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ComplianceReport{}, domain.DocumentError("read document file", err)
	}
	return c.AnalyzeBytes(ctx, filepath.Base(path), data, standardIDs)
}

// AnalyzeBytes verifies an in-memory document against the given standards.
// The document kind is inferred from the file name extension; anything that
// is not a PDF is treated as a single image.
func (c *Client) AnalyzeBytes(ctx context.Context, name string, data []byte, standardIDs []string) (ComplianceReport, error) {
	doc := domain.Document{
		Name: name,
		Kind: kindFromName(name),
		Data: data,
	}
	return c.engine.RunAnalysis(ctx, doc, standardIDs)
}

// AnalyzeForProduct verifies a document against the standards required for a
// product type.
func (c *Client) AnalyzeForProduct(ctx context.Context, name string, data []byte, productID string) (ComplianceReport, error) {
	standards, err := c.registry.StandardsForProduct(productID)
	if err != nil {
		return ComplianceReport{}, err
	}
	ids := make([]string, len(standards))
	for i, s := range standards {
		ids[i] = s.ID
	}
	return c.AnalyzeBytes(ctx, name, data, ids)
}

// Standards returns the registered compliance standards.
func (c *Client) Standards() []Standard {
	return c.registry.Standards()
}

// Products returns the registered product types.
func (c *Client) Products() []ProductType {
	return c.registry.Products()
}

// Close releases client resources.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.ExtraStandardsPath != "" {
		return registry.NewWithExtras(cfg.Registry.ExtraStandardsPath)
	}
	return registry.New(), nil
}

func buildCache(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}

func kindFromName(name string) domain.DocumentKind {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return domain.DocumentKindPDF
	}
	return domain.DocumentKindImage
}
