package usecase

import (
	"context"
	"strings"
	"time"

	"article-search/domain"
	"article-search/port"
)

type SearchArticlesUsecase struct {
	searchEngine port.SearchEngine
	recorder     port.SearchRecorder
	highlight    domain.HighlightSpec
	now          func() time.Time
}

func NewSearchArticlesUsecase(searchEngine port.SearchEngine, recorder port.SearchRecorder, highlight domain.HighlightSpec) *SearchArticlesUsecase {
	if highlight.Field == "" {
		highlight = domain.DefaultHighlight()
	}
	return &SearchArticlesUsecase{
		searchEngine: searchEngine,
		recorder:     recorder,
		highlight:    highlight,
		now:          time.Now,
	}
}

// Execute runs one article search. A blank searchWords yields a PARAM_INVALID
// envelope and no error; engine and decode failures are returned as errors.
func (u *SearchArticlesUsecase) Execute(ctx context.Context, params *domain.SearchParams, user *domain.CurrentUser) (*domain.ResponseEnvelope, error) {
	if !params.HasSearchWords() {
		return domain.ErrorResult(domain.CodeParamInvalid), nil
	}

	if user != nil && params.IsFirstPage() {
		u.recorder.Record(ctx, params.SearchWords, user.ID)
	}

	hits, err := u.searchEngine.SearchArticles(ctx, u.buildQuery(params))
	if err != nil {
		return nil, err
	}

	items := make([]domain.ResultItem, 0, len(hits))
	for _, hit := range hits {
		item, err := u.toResultItem(hit)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return domain.OkResult(items), nil
}

// buildQuery always bounds publishTime; a caller that left MinPublishTime
// unset searches from now.
func (u *SearchArticlesUsecase) buildQuery(params *domain.SearchParams) domain.ArticleQuery {
	publishedBefore := params.MinPublishTime
	if publishedBefore.IsZero() {
		publishedBefore = u.now()
	}

	return domain.ArticleQuery{
		Keywords:        params.SearchWords,
		Fields:          []string{domain.FieldTitle, domain.FieldContent},
		Operator:        domain.OperatorOr,
		RangeField:      domain.FieldPublishTime,
		PublishedBefore: publishedBefore,
		// Offset stays at 0 regardless of PageIndex; clients page by moving
		// MinPublishTime back to the oldest publishTime they have seen.
		From:           0,
		Size:           params.PageSize,
		SortField:      domain.FieldPublishTime,
		SortDescending: true,
		Highlight:      u.highlight,
	}
}

func (u *SearchArticlesUsecase) toResultItem(hit domain.ArticleHit) (domain.ResultItem, error) {
	item, err := domain.DecodeResultItem(hit.Source)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "DecodeHit",
			Err: "document " + hit.ID + ": " + err.Error(),
		}
	}

	if fragments := hit.Highlights[u.highlight.Field]; len(fragments) > 0 {
		item.SetString(domain.HighlightTitleKey, strings.Join(fragments, ""))
	} else {
		item.CopyField(u.highlight.Field, domain.HighlightTitleKey)
	}

	return item, nil
}
