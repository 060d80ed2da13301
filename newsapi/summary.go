package newsapi

import (
	"fmt"
	"regexp"
	"strings"

	"newsdesk/types"
)

const (
	minSummaryContent = 100
	minSentenceLength = 30
	maxPointLength    = 120
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// BuildSummary returns three bullet points taken from the first, middle and
// last qualifying sentences of content, or category placeholders when the
// content is too short to summarize.
func BuildSummary(content string, category types.Category) []string {
	if len([]rune(content)) < minSummaryContent {
		return []string{
			fmt.Sprintf("Breaking developments in %s sector are being monitored by industry experts", category),
			"This story continues to evolve with new information emerging from reliable sources",
			"Stakeholders are analyzing the potential long-term implications for the market",
		}
	}

	var sentences []string
	for _, s := range sentenceBreak.Split(content, -1) {
		if s = strings.TrimSpace(s); len([]rune(s)) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) < 3 {
		return []string{
			fmt.Sprintf("Breaking developments in %s are being closely monitored", category),
			"Expert analysis suggests significant implications for industry stakeholders",
			"This story will continue to develop as new information becomes available",
		}
	}

	return []string{
		"Key Finding: " + clip(sentences[0], maxPointLength) + "...",
		"Market Impact: " + clip(sentences[len(sentences)/2], maxPointLength) + "...",
		"Future Outlook: " + clip(sentences[len(sentences)-1], maxPointLength) + "...",
	}
}
