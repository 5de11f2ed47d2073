// Package associate joins questions to their answers and reduces each
// question to its best answer score.
package associate

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/langclust/dataset"
	"github.com/hupe1980/langclust/posting"
)

// ScoredQuestion pairs a question with the maximum score among its joined
// answers.
type ScoredQuestion struct {
	Question  posting.Posting
	BestScore int64
}

// BestScores produces one ScoredQuestion per question that has at least one
// answer in the batch.
//
// Questions with zero matching answers are dropped at the join, not scored 0:
// callers must treat a missing question as "unscored". Answers whose parent
// id matches no question are silently dropped. When several answers share the
// maximum score, any one is equivalent (only the score survives).
func BestScores(ctx context.Context, postings *dataset.Dataset[posting.Posting]) (*dataset.Dataset[ScoredQuestion], error) {
	questions, err := dataset.Filter(ctx, postings, posting.Posting.IsQuestion)
	if err != nil {
		return nil, err
	}
	answers, err := dataset.Filter(ctx, postings, posting.Posting.IsAnswer)
	if err != nil {
		return nil, err
	}

	// Broadcast semi-join: aggregate the question id set as a compressed
	// bitmap and drop unmatchable answers before they cross partitions.
	questionIDs, err := dataset.Aggregate(ctx, questions,
		func() *roaring64.Bitmap { return roaring64.New() },
		func(bm *roaring64.Bitmap, q posting.Posting) *roaring64.Bitmap {
			bm.Add(uint64(q.ID))
			return bm
		},
		func(a, b *roaring64.Bitmap) *roaring64.Bitmap {
			a.Or(b)
			return a
		},
	)
	if err != nil {
		return nil, err
	}

	answers, err = dataset.Filter(ctx, answers, func(a posting.Posting) bool {
		return questionIDs.Contains(uint64(a.ParentID))
	})
	if err != nil {
		return nil, err
	}

	keyedQuestions, err := dataset.KeyBy(ctx, questions, func(q posting.Posting) int64 { return q.ID })
	if err != nil {
		return nil, err
	}
	keyedAnswers, err := dataset.KeyBy(ctx, answers, func(a posting.Posting) int64 { return a.ParentID })
	if err != nil {
		return nil, err
	}

	joined, err := dataset.Join(ctx, keyedQuestions, keyedAnswers)
	if err != nil {
		return nil, err
	}

	scored, err := dataset.Map(ctx, joined, func(pr dataset.Pair[int64, dataset.Joined[posting.Posting, posting.Posting]]) dataset.Pair[int64, ScoredQuestion] {
		return dataset.Pair[int64, ScoredQuestion]{
			Key: pr.Key,
			Value: ScoredQuestion{
				Question:  pr.Value.Left,
				BestScore: pr.Value.Right.Score,
			},
		}
	})
	if err != nil {
		return nil, err
	}

	best, err := dataset.ReduceByKey(ctx, scored, func(a, b ScoredQuestion) ScoredQuestion {
		if b.BestScore > a.BestScore {
			return b
		}
		return a
	})
	if err != nil {
		return nil, err
	}

	return dataset.Map(ctx, best, func(pr dataset.Pair[int64, ScoredQuestion]) ScoredQuestion {
		return pr.Value
	})
}
