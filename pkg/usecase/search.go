package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// maxSearchCandidates caps how many nearest neighbors are pulled from the
// store when the caller asks for an unbounded result set. Results beyond the
// nearest candidates score lower than everything already fetched, so the cap
// only matters when more than this many requests clear the threshold.
const maxSearchCandidates = 1000

// Vectorize embeds free text into the request embedding space
func (uc *UseCases) Vectorize(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(ErrEmptyText, "cannot vectorize empty text", goerr.T(types.ErrTagValidation))
	}

	embeddings, err := uc.llm.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding", goerr.T(types.ErrTagUnavailable))
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.New("embedding generation returned empty result", goerr.T(types.ErrTagUnavailable))
	}

	embedding := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// SearchSimilarByVector returns committed requests whose similarity to the
// query vector strictly exceeds minScore, best match first. topK bounds the
// result count; topK == 0 means no bound.
func (uc *UseCases) SearchSimilarByVector(ctx context.Context, embedding []float32, topK int, minScore float64) ([]*model.ScoredRequest, error) {
	if len(embedding) != model.EmbeddingDimension {
		return nil, goerr.New("query vector has wrong dimension",
			goerr.T(types.ErrTagValidation),
			goerr.V("got", len(embedding)),
			goerr.V("want", model.EmbeddingDimension),
		)
	}
	if topK < 0 {
		return nil, goerr.New("topK must not be negative",
			goerr.T(types.ErrTagValidation),
			goerr.V("top_k", topK),
		)
	}

	limit := topK
	if limit == 0 || limit > maxSearchCandidates {
		limit = maxSearchCandidates
	}

	candidates, err := uc.repo.Maintenance().FindSimilar(ctx, embedding, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search similar requests", goerr.V("limit", limit))
	}

	// Candidates arrive best match first; cut at the threshold and the
	// requested count
	results := make([]*model.ScoredRequest, 0, len(candidates))
	for _, c := range candidates {
		if c.Score <= minScore {
			continue
		}
		results = append(results, c)
		if topK > 0 && len(results) == topK {
			break
		}
	}
	return results, nil
}

// SearchSimilar embeds the query text and searches by the resulting vector
func (uc *UseCases) SearchSimilar(ctx context.Context, query string, topK int, minScore float64) ([]*model.ScoredRequest, error) {
	embedding, err := uc.Vectorize(ctx, query)
	if err != nil {
		return nil, err
	}
	return uc.SearchSimilarByVector(ctx, embedding, topK, minScore)
}
