package bank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Bank file markup.
const (
	BoundaryMarker  = "#Вопрос"
	VariantsMarker  = "#Варианты к вопросу"
	AnswerKeyMarker = "#Ответ"
	CorrectMarker   = "*****"
)

var (
	// blockRe captures label, question text, the answers region and the key.
	// Search is unanchored; leading junk inside a block is ignored.
	blockRe = regexp.MustCompile(
		`(?P<label>[^\n]+)\n(?P<question>[^#]+)\n` +
			regexp.QuoteMeta(VariantsMarker) + `[^\n]+\n(?P<answers>[^#]+)\n` +
			regexp.QuoteMeta(AnswerKeyMarker) + `(?P<key>[^\n]+)\n`)

	// answerRe matches "1. text", "а1. text", "\n2. text" and so on.
	answerRe = regexp.MustCompile(`(?m)[^\d]?(\d+)\.(.+)`)
)

const (
	regionCutset = " :."
	optionCutset = " ;."
)

// Parse turns raw bank text into questions in file order.
//
// Blocks that do not match the bank structure are skipped. A block that
// matches but yields no (or more than one) correct option aborts the parse
// with a *MalformedBankError.
func Parse(raw string) ([]Question, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	segments := strings.Split(raw, BoundaryMarker)
	if len(segments) < 2 {
		return nil, nil
	}

	var questions []Question
	seen := make(map[string]bool)

	for _, segment := range segments[1:] {
		q, ok, err := parseBlock(segment)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		q.ID = uniqueID(q.Label, len(questions)+1, seen)
		questions = append(questions, q)
	}

	return questions, nil
}

// parseBlock parses one segment. ok is false when the segment does not
// match the block structure.
func parseBlock(segment string) (Question, bool, error) {
	m := blockRe.FindStringSubmatch(segment)
	if m == nil {
		return Question{}, false, nil
	}

	label := strings.Trim(m[blockRe.SubexpIndex("label")], regionCutset)
	prompt := strings.Trim(m[blockRe.SubexpIndex("question")], regionCutset)
	answers := strings.Trim(m[blockRe.SubexpIndex("answers")], regionCutset)
	keyText := strings.Trim(m[blockRe.SubexpIndex("key")], regionCutset)

	listed := answerRe.FindAllStringSubmatch(answers, -1)
	key := parseKey(keyText, len(listed))

	q := Question{
		Label:   label,
		Prompt:  prompt,
		Options: make([]Option, 0, len(listed)),
		Key:     KeyNumber,
	}
	if key == 0 {
		q.Key = KeyMarker
	}

	correct := 0
	for _, a := range listed {
		num, _ := strconv.Atoi(a[1])
		body := a[2]

		var isCorrect bool
		if key != 0 {
			isCorrect = num == key
		} else {
			isCorrect = strings.Contains(body, CorrectMarker)
		}
		if isCorrect {
			correct++
		}

		q.Options = append(q.Options, Option{
			Text:    strings.Trim(strings.ReplaceAll(body, CorrectMarker, ""), optionCutset),
			Correct: isCorrect,
		})
	}

	if correct != 1 {
		return Question{}, false, &MalformedBankError{Label: label, Correct: correct}
	}

	return q, true, nil
}

// parseKey returns the listed option number from the key line, or 0 when
// the key is missing, not a number or out of range.
func parseKey(text string, optionCount int) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > optionCount {
		return 0
	}
	return n
}

// uniqueID derives a question id from its label. A taken id gets the
// first free "~N" suffix (N from 2); empty labels fall back to the ordinal.
// Every returned id is recorded in seen.
func uniqueID(label string, ordinal int, seen map[string]bool) string {
	base := label
	if base == "" {
		base = fmt.Sprintf("q%d", ordinal)
	}
	id := base
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s~%d", base, n)
	}
	seen[id] = true
	return id
}
