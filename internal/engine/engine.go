// Package engine orchestrates the compliance pipeline: rasterize the
// document, fan evaluation units out to a worker pool, and fold the verdicts
// into a report.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/Treedy2020/FinalCheck/internal/cache"
	"github.com/Treedy2020/FinalCheck/internal/domain"
	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/internal/registry"
	"github.com/Treedy2020/FinalCheck/internal/report"
)

// Evaluator judges one page against one standard.
type Evaluator interface {
	Evaluate(ctx context.Context, page domain.PageImage, std domain.Standard) (domain.PageVerdict, error)
	Model() string
}

// Rasterizer renders a document into page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc domain.Document) ([]domain.PageImage, error)
}

// Engine runs complete analyses end to end.
type Engine struct {
	rasterizer Rasterizer
	registry   *registry.Registry
	evaluator  Evaluator
	cache      cache.Client
	cacheTTL   time.Duration
	workers    int
	logger     *observability.Logger
}

// Options configures an Engine.
type Options struct {
	Rasterizer Rasterizer
	Registry   *registry.Registry
	Evaluator  Evaluator
	Cache      cache.Client
	CacheTTL   time.Duration
	Workers    int
	Logger     *observability.Logger
}

func New(opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Engine{
		rasterizer: opts.Rasterizer,
		registry:   opts.Registry,
		evaluator:  opts.Evaluator,
		cache:      opts.Cache,
		cacheTTL:   ttl,
		workers:    workers,
		logger:     logger.WithComponent("engine"),
	}
}

// RunAnalysis verifies a document against the named standards and returns the
// aggregated report. Every page is rendered before any evaluation starts, so
// rasterization failures surface before model spend. Individual evaluation
// failures degrade to inconclusive verdicts; only context cancellation aborts
// the run.
func (e *Engine) RunAnalysis(ctx context.Context, doc domain.Document, standardIDs []string) (domain.ComplianceReport, error) {
	standards, err := e.registry.Resolve(standardIDs)
	if err != nil {
		return domain.ComplianceReport{}, err
	}

	pages, err := e.rasterizer.Rasterize(ctx, doc)
	if err != nil {
		return domain.ComplianceReport{}, err
	}

	e.logger.Info().
		Str("document", doc.Name).
		Int("pages", len(pages)).
		Int("standards", len(standards)).
		Msg("Starting compliance analysis")

	docHash := sha256.Sum256(doc.Data)
	verdicts, err := e.evaluateAll(ctx, hex.EncodeToString(docHash[:]), pages, standards)
	if err != nil {
		return domain.ComplianceReport{}, err
	}

	rep := report.Aggregate(doc.Name, len(pages), standards, verdicts)

	e.logger.Info().
		Str("document", doc.Name).
		Str("overall", string(rep.Overall)).
		Msg("Compliance analysis complete")

	return rep, nil
}

// evaluateAll fans the |standards| x |pages| units out to a bounded worker
// pool. Results land in an indexed slice so verdict order never depends on
// scheduling.
func (e *Engine) evaluateAll(ctx context.Context, docHash string, pages []domain.PageImage, standards []domain.Standard) ([]domain.PageVerdict, error) {
	type workItem struct {
		index int
		page  domain.PageImage
		std   domain.Standard
	}

	total := len(pages) * len(standards)
	workChan := make(chan workItem, total)
	results := make([]domain.PageVerdict, total)
	errOnce := sync.Once{}
	var runErr error

	i := 0
	for _, std := range standards {
		for _, page := range pages {
			workChan <- workItem{index: i, page: page, std: std}
			i++
		}
	}
	close(workChan)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex

	workers := e.workers
	if workers > total {
		workers = total
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				if runCtx.Err() != nil {
					return
				}
				verdict, err := e.evaluateUnit(runCtx, docHash, item.page, item.std)
				if err != nil {
					errOnce.Do(func() {
						runErr = err
						cancel()
					})
					return
				}
				mu.Lock()
				results[item.index] = verdict
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateUnit evaluates one (page, standard) pair, consulting the verdict
// cache first. Only conclusive verdicts are cached: an inconclusive result
// may succeed on retry, so it is always recomputed.
func (e *Engine) evaluateUnit(ctx context.Context, docHash string, page domain.PageImage, std domain.Standard) (domain.PageVerdict, error) {
	key := cache.VerdictKey(docHash, page.PageNumber, std.ID, e.evaluator.Model())

	if e.cache != nil {
		if data, err := e.cache.Get(ctx, key); err == nil {
			var cached domain.PageVerdict
			if err := json.Unmarshal(data, &cached); err == nil && domain.ValidVerdict(cached.Verdict) {
				e.logger.Debug().
					Int("page", page.PageNumber).
					Str("standard", std.ID).
					Msg("Verdict cache hit")
				return cached, nil
			}
		}
	}

	verdict, err := e.evaluator.Evaluate(ctx, page, std)
	if err != nil {
		return domain.PageVerdict{}, err
	}

	if e.cache != nil && verdict.Verdict != domain.VerdictInconclusive {
		if data, err := json.Marshal(verdict); err == nil {
			if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
				e.logger.Warn().Err(err).Msg("Failed to cache verdict")
			}
		}
	}

	return verdict, nil
}
