// Package search ranks indexed chunks against free-text queries.
//
// Scoring is sparse lexical overlap: each query term carries a
// smoothed inverse-document-frequency weight, and a coverage factor
// rewards chunks matching a larger fraction of the query's distinct
// terms. Ranking is deterministic; ties keep index order.
package search

import (
	"math"
	"sort"

	"github.com/knowgrep/knowgrep/internal/index"
	"github.com/knowgrep/knowgrep/internal/token"
)

// DefaultLimit is the result count when the caller passes limit <= 0.
const DefaultLimit = 10

// Result pairs a matched chunk with its relevance score.
type Result struct {
	Chunk index.Chunk
	Score float64
}

// Engine answers queries against one loaded index. It never mutates
// the index and is safe for concurrent queries.
type Engine struct {
	idx      *index.Index
	queryCap int
}

// NewEngine wraps a loaded index for querying.
func NewEngine(idx *index.Index) *Engine {
	return &Engine{idx: idx, queryCap: token.DefaultQueryCap}
}

// WithQueryCap overrides how many distinct query terms are scored.
func (e *Engine) WithQueryCap(n int) *Engine {
	if n > 0 {
		e.queryCap = n
	}
	return e
}

// Search tokenizes query, scores every overlapping chunk, and returns
// the top limit results by descending score. An empty token set
// returns an empty list, never an error.
func (e *Engine) Search(query string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	terms := token.Extract(query, e.queryCap)
	if len(terms) == 0 {
		return nil
	}

	idf := e.termWeights(terms)

	var results []Result
	for _, item := range e.idx.Items {
		inChunk := make(map[string]struct{}, len(item.Tokens))
		for _, t := range item.Tokens {
			inChunk[t] = struct{}{}
		}

		var sum float64
		overlap := 0
		for _, t := range terms {
			if _, ok := inChunk[t]; ok {
				sum += idf[t]
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		coverage := 0.5 + 0.5*float64(overlap)/float64(len(terms))
		results = append(results, Result{Chunk: item, Score: sum * coverage})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// termWeights computes the smoothed IDF weight for each query term:
// ln((N+1)/(df+1)) + 1 over N chunks.
func (e *Engine) termWeights(terms []string) map[string]float64 {
	n := float64(len(e.idx.Items))
	weights := make(map[string]float64, len(terms))
	for _, term := range terms {
		df := 0
		for _, item := range e.idx.Items {
			for _, t := range item.Tokens {
				if t == term {
					df++
					break
				}
			}
		}
		weights[term] = math.Log((n+1)/float64(df+1)) + 1
	}
	return weights
}
