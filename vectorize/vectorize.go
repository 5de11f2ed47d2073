// Package vectorize turns scored questions into points in the derived
// (language code, score) space.
package vectorize

import (
	"context"
	"fmt"

	"github.com/hupe1980/langclust/associate"
	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/lang"
	"github.com/hupe1980/langclust/point"
)

// ErrUnknownLanguage indicates a question tag outside the fixed language
// registry. Well-formed input never triggers it; seeing it means upstream
// data drifted and the run must stop.
type ErrUnknownLanguage struct {
	Tag string
}

func (e *ErrUnknownLanguage) Error() string {
	if e.Tag == "" {
		return "unknown language: question without tag"
	}
	return fmt.Sprintf("unknown language: %q", e.Tag)
}

// Points maps every scored question to a point with X = languageIndex *
// spread and Y = best answer score. The registry lookup is explicit: an
// absent or unregistered tag fails the run rather than defaulting to index 0.
func Points(ctx context.Context, scored *dataset.Dataset[associate.ScoredQuestion], reg lang.Registry, spread int64) (*dataset.Dataset[point.Point], error) {
	return dataset.TryMap(ctx, scored, func(sq associate.ScoredQuestion) (point.Point, error) {
		idx, ok := reg.Index(sq.Question.Tag)
		if !ok {
			return point.Point{}, &ErrUnknownLanguage{Tag: sq.Question.Tag}
		}
		return point.Point{
			X: int64(idx) * spread,
			Y: sq.BestScore,
		}, nil
	})
}
