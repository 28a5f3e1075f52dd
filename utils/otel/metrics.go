package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	OutcomeSuccess      = "success"
	OutcomeInvalidParam = "invalid_param"
	OutcomeError        = "error"

	HistoryResultOK      = "ok"
	HistoryResultFailed  = "failed"
	HistoryResultDropped = "dropped"
)

// Metrics holds all OTel metric instruments for article-search. It is nil
// until InitMetrics runs; the Record helpers are no-ops in that case.
var Metrics *ArticleSearchMetrics

type ArticleSearchMetrics struct {
	SearchRequests metric.Int64Counter
	SearchDuration metric.Float64Histogram
	HistoryWrites  metric.Int64Counter
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("article-search")

	searchRequests, err := meter.Int64Counter("article_search_requests_total",
		metric.WithDescription("Total number of article search requests by outcome"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("article_search_duration_seconds",
		metric.WithDescription("Article search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	historyWrites, err := meter.Int64Counter("article_search_history_writes_total",
		metric.WithDescription("Total number of search history writes by result"),
	)
	if err != nil {
		return err
	}

	Metrics = &ArticleSearchMetrics{
		SearchRequests: searchRequests,
		SearchDuration: searchDuration,
		HistoryWrites:  historyWrites,
	}

	return nil
}

func RecordSearch(ctx context.Context, outcome string, elapsed time.Duration) {
	if Metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	Metrics.SearchRequests.Add(ctx, 1, attrs)
	Metrics.SearchDuration.Record(ctx, elapsed.Seconds(), attrs)
}

func RecordHistoryWrite(ctx context.Context, result string) {
	if Metrics == nil {
		return
	}
	Metrics.HistoryWrites.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
