package scoring

import (
	"regexp"
	"sort"
	"strings"

	"datenight/internal/planner/knowledge"
)

// InferVibes labels free text with vibes from the knowledge base vocabulary: one keyword
// hit is enough for multi-word or short phrases, single words need two distinct hits to
// cut noise. The venue type adds the vibes learned for it.
func InferVibes(kb *knowledge.KnowledgeBase, text, venueType string) []string {
	text = strings.ToLower(text)
	found := map[string]struct{}{}

	for _, vibe := range kb.Vibes() {
		hits := 0
		strong := false
		for _, kw := range kb.VibeKeywords(vibe) {
			if !containsWord(text, kw) {
				continue
			}
			hits++
			if kw == vibe || strings.Contains(kw, " ") {
				strong = true
			}
		}
		if strong || hits >= 2 {
			found[vibe] = struct{}{}
		}
	}
	for _, v := range kb.TypeVibes(venueType) {
		found[v] = struct{}{}
	}

	out := make([]string, 0, len(found))
	for v := range found {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(word)) + `\b`)
	if err != nil {
		return strings.Contains(text, word)
	}
	return re.MatchString(text)
}
