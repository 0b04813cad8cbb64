package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ppiankov/supplycheck/internal/model"
	"github.com/ppiankov/supplycheck/internal/util"
)

// errNotAnArray reports a dataset body of JSON null
var errNotAnArray = errors.New("decode json: expected an array")

// Pipeline fetches both datasets and maps cards to supply types
type Pipeline struct {
	fetcher *Fetcher
	config  *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	limiter := util.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	fetcher, err := NewFetcher(cfg.HTTP, limiter)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	return &Pipeline{
		fetcher: fetcher,
		config:  cfg,
	}, nil
}

// Run fetches cards then supplies, builds the supply index and matches
// every card against it. Progress lines are written to out. Any failure
// aborts the run without a partial report.
func (p *Pipeline) Run(ctx context.Context, out io.Writer) (*model.Report, error) {
	fmt.Fprintln(out, "Fetching data...")

	var cards []model.Card
	cardsMeta, err := p.fetcher.FetchJSON(ctx, p.config.Sources.CardsURL, &cards)
	if err != nil {
		return nil, fmt.Errorf("fetch cards: %w", err)
	}
	if cards == nil {
		return nil, fmt.Errorf("fetch cards: %w", errNotAnArray)
	}

	var supplies []model.Supply
	suppliesMeta, err := p.fetcher.FetchJSON(ctx, p.config.Sources.SuppliesURL, &supplies)
	if err != nil {
		return nil, fmt.Errorf("fetch supplies: %w", err)
	}
	if supplies == nil {
		return nil, fmt.Errorf("fetch supplies: %w", errNotAnArray)
	}

	fmt.Fprintf(out, "Loaded %d cards and %d supplies.\n", len(cards), len(supplies))

	idx, skipped := BuildSupplyIndex(supplies)
	fmt.Fprintln(out, "Supply Map created.")

	report := Match(cards, idx)
	report.Supplies = len(supplies)
	report.Skipped = skipped
	report.Fetches = []model.FetchMeta{*cardsMeta, *suppliesMeta}

	return report, nil
}
