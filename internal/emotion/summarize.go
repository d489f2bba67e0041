// internal/emotion/summarize.go
package emotion

import (
	"fmt"
	"sort"
)

// FallbackLabel is stored when the analyzer was unavailable. The
// check-in itself still succeeds.
const FallbackLabel = "Mood Unclear 🤔"

var displayPhrases = map[Category]string{
	Angry:    "Very Angry 😠",
	Disgust:  "Disgusted 🤢",
	Fear:     "Fearful 😨",
	Happy:    "Happy 😊",
	Sad:      "Sad 😢",
	Surprise: "Surprised 😮",
	Neutral:  "Neutral 😐",
}

// TopEmotion is one entry of the top-3 breakdown returned to the client.
type TopEmotion struct {
	Emotion     Category `json:"emotion"`
	Probability string   `json:"probability"`
}

// Summary is the collapsed result of one classification.
type Summary struct {
	Label      string
	Dominant   Category
	Confidence float64
	Top        []TopEmotion
}

// Summarize picks the dominant category, maps it to a display phrase
// with an intensity qualifier, and surfaces the top three categories by
// score. Ties are broken by the canonical category order, so identical
// score maps always yield identical summaries.
func Summarize(scores Scores) Summary {
	ordered := orderedCategories(scores)

	dominant := ordered[0]
	best := scores[dominant]
	for _, c := range ordered[1:] {
		if scores[c] > best {
			dominant = c
			best = scores[c]
		}
	}

	phrase, ok := displayPhrases[dominant]
	if !ok {
		phrase = string(dominant)
	}

	ranked := append([]Category(nil), ordered...)
	// Canonical order going in keeps the sort stable on equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	top := make([]TopEmotion, 0, len(ranked))
	for _, c := range ranked {
		top = append(top, TopEmotion{
			Emotion:     c,
			Probability: fmt.Sprintf("%.2f%%", scores[c]),
		})
	}

	return Summary{
		Label:      intensity(best) + phrase,
		Dominant:   dominant,
		Confidence: best,
		Top:        top,
	}
}

// orderedCategories lists the map's categories canonically: the fixed
// enumeration first, then any extra analyzer categories sorted by name.
func orderedCategories(scores Scores) []Category {
	out := make([]Category, 0, len(scores))
	for _, c := range Categories {
		if _, present := scores[c]; present {
			out = append(out, c)
		}
	}
	known := len(out)
	for c := range scores {
		if _, canonical := displayPhrases[c]; !canonical {
			out = append(out, c)
		}
	}
	extras := out[known:]
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	if len(out) == 0 {
		out = append(out, Categories...)
	}
	return out
}

// intensity buckets are exclusive: a confidence of exactly 90 is
// "quite", not "very".
func intensity(confidence float64) string {
	switch {
	case confidence > 90:
		return "very "
	case confidence > 70:
		return "quite "
	case confidence > 50:
		return "somewhat "
	default:
		return "slightly "
	}
}

// Unclear is the summary recorded when classification was unavailable.
func Unclear() Summary {
	return Summary{
		Label:    FallbackLabel,
		Dominant: Unknown,
	}
}
