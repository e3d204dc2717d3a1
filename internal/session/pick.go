package session

import (
	"math/rand/v2"

	"github.com/idlesign/mednsktest/internal/bank"
)

// Pick returns a shuffled copy of questions cut down to at most limit
// entries. A non-positive limit keeps every question.
func Pick(questions []bank.Question, limit int, rng *rand.Rand) []bank.Question {
	picked := make([]bank.Question, len(questions))
	copy(picked, questions)

	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	if limit <= 0 || limit > len(picked) {
		limit = len(picked)
	}
	return picked[:limit]
}
