package bank

import "math/rand/v2"

// KeySource records which signal marked the correct option of a question.
type KeySource string

const (
	// KeyNumber means the #Ответ line gave a usable option number.
	KeyNumber KeySource = "number"
	// KeyMarker means the inline ***** marker decided the answer.
	KeyMarker KeySource = "marker"
)

// Option is one answer variant of a question.
type Option struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// Question is a single parsed bank entry. It is never mutated after Parse
// returns; DisplayOptions hands out copies.
type Question struct {
	// ID is unique within a bank and stable across runs of the same file.
	// It is the persistence key of the progress store.
	ID string `json:"id" yaml:"id"`

	// Label is the trimmed first line of the block, e.g. "12".
	Label string `json:"label" yaml:"label"`

	// Prompt is the question text shown to the user.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Options are kept in file order.
	Options []Option `json:"options" yaml:"options"`

	// Key is the rule that picked the correct option.
	Key KeySource `json:"key" yaml:"key"`
}

// CorrectIndex returns the file-order index of the correct option, or -1.
func (q Question) CorrectIndex() int {
	return correctIndex(q.Options)
}

// DisplayOptions returns a copy of the options in display order. With
// shuffle set the copy is uniformly permuted using rng.
func (q Question) DisplayOptions(shuffle bool, rng *rand.Rand) []Option {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	if shuffle && rng != nil {
		rng.Shuffle(len(opts), func(i, j int) {
			opts[i], opts[j] = opts[j], opts[i]
		})
	}
	return opts
}

// CorrectIndexOf returns the index of the correct option in opts, or -1.
func CorrectIndexOf(opts []Option) int {
	return correctIndex(opts)
}

func correctIndex(opts []Option) int {
	for i, o := range opts {
		if o.Correct {
			return i
		}
	}
	return -1
}
