package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/cache"
	"github.com/waterants/sketchcoach/pkg/errors"
	"github.com/waterants/sketchcoach/pkg/feedback"
	"github.com/waterants/sketchcoach/pkg/observability"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

// cacheKeyType labels analysis entries in cache hooks.
const cacheKeyType = "analysis"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't store
// submissions or results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Analyzer *analysis.Analyzer
	Feedback feedback.Generator
	Selector tasks.Selector
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner. Nil arguments get defaults: the placeholder
// analyzer, TemplateGenerator, a FixedSelector for tasks.DefaultPrompt,
// NullCache, DefaultKeyer and log.Default().
func NewRunner(a *analysis.Analyzer, fb feedback.Generator, sel tasks.Selector, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if a == nil {
		a = analysis.NewAnalyzer(nil, analysis.DefaultMaxDimension, logger)
	}
	if fb == nil {
		fb = feedback.TemplateGenerator{}
	}
	if sel == nil {
		sel = tasks.NewFixedSelector(tasks.DefaultPrompt)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{
		Analyzer: a,
		Feedback: fb,
		Selector: sel,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs analyze → feedback → select for one submission.
func (r *Runner) Execute(ctx context.Context, sub Submission) (_ *Result, err error) {
	start := time.Now()
	res := &Result{ID: uuid.NewString()}

	defer func() {
		var focus string
		var score float64
		if err == nil {
			focus, score = string(res.Analysis.FocusArea), res.Feedback.Score
		}
		observability.Pipeline().OnSubmissionComplete(ctx, res.ID, focus, score, time.Since(start), err)
	}()

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, res.ID)
	a, hit, err := r.AnalyzeWithCacheInfo(ctx, sub)
	observability.Pipeline().OnAnalyzeComplete(ctx, res.ID, time.Since(analyzeStart), err)
	if err != nil {
		return nil, err
	}
	res.Analysis = *a
	res.Stats.AnalyzeTime = time.Since(analyzeStart)
	res.CacheInfo.AnalysisHit = hit

	r.Logger.Debug("analyzed drawing",
		"submission", res.ID,
		"score", a.ImageScore,
		"wobble", a.StrokeMetrics.Wobble,
		"focus", a.FocusArea,
		"strokes", a.Strokes.Status,
		"cached", hit)

	// Stage 2: Feedback
	res.Feedback = r.Feedback.Generate(res.Analysis)

	// Stage 3: Select
	next, err := r.Selector.Next(ctx, sub.UserID, res.Analysis)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "select next task")
	}
	res.NextTask = next
	res.Stats.TotalTime = time.Since(start)

	r.Logger.Info("processed submission",
		"submission", res.ID,
		"user", sub.UserID,
		"task", sub.TaskID,
		"score", res.Feedback.Score,
		"next", next.ID,
		"duration", res.Stats.TotalTime)

	return res, nil
}

// AnalyzeWithCacheInfo analyzes a submission, consulting the cache first,
// and reports whether the result came from the cache. Cache failures are
// logged and treated as misses.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, sub Submission) (*analysis.Result, bool, error) {
	key := r.Keyer.AnalysisKey(cache.AnalysisKeyOpts{
		ImageHash:    cache.Hash(sub.Image),
		StrokesHash:  cache.Hash([]byte(sub.Strokes)),
		Scorer:       r.Analyzer.Scorer.Name(),
		MaxDimension: r.Analyzer.MaxDimension,
		MaxPixels:    r.Analyzer.MaxPixels,
	})

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("analysis cache read failed", "err", err)
	}
	if err == nil && hit {
		var cached analysis.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return &cached, true, nil
		}
		// Undecodable entries fall through to recompute and overwrite.
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	a, err := r.Analyzer.Analyze(ctx, bytes.NewReader(sub.Image), sub.Strokes)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(a); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLAnalysis); err != nil {
			r.Logger.Warn("analysis cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}

	return a, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, sub Submission) (*analysis.Result, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, sub)
	return a, err
}
