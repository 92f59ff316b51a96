// Package identity turns raw donor fields into the labels donations are grouped under.
package identity

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// AnonymousLabel groups donations whose donor left the name blank.
const AnonymousLabel = "Анонимное пожертвование"

// Cohort labels recognised by graduate-only reports. Adding a cohort means extending
// this block together with the match rules in NormalizeGraduateLabel.
const (
	LabelFriends = "Друзья лицея"
	LabelParents = "Родители"
)

var (
	graduationPattern = regexp.MustCompile(`^выпуск\s*(\d{4})\s*г?\.?$`)
	yearPattern       = regexp.MustCompile(`^\d{4}$`)

	foldedFriends = fold(LabelFriends)
	foldedParents = fold(LabelParents)
)

// GraduationLabel returns the canonical label of a graduation-year cohort.
func GraduationLabel(year string) string {
	return "Выпуск " + year + " г."
}

// ResolveDonorLabel returns the trimmed donor name, or AnonymousLabel when it is blank.
func ResolveDonorLabel(raw *string) string {
	if raw == nil {
		return AnonymousLabel
	}
	name := strings.TrimSpace(*raw)
	if name == "" {
		return AnonymousLabel
	}
	return name
}

// NormalizeGraduateLabel maps a donor label onto the closed cohort set. The boolean is
// false for anonymous gifts and for any label that is not a recognised cohort, which
// keeps personal names out of graduate-only leaderboards.
func NormalizeGraduateLabel(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || trimmed == AnonymousLabel {
		return "", false
	}
	folded := fold(trimmed)
	switch folded {
	case foldedFriends:
		return LabelFriends, true
	case foldedParents:
		return LabelParents, true
	}
	if m := graduationPattern.FindStringSubmatch(folded); m != nil {
		return GraduationLabel(m[1]), true
	}
	if yearPattern.MatchString(trimmed) {
		return GraduationLabel(trimmed), true
	}
	return "", false
}

// NormalizeGraduateKey maps cohort keys exported by the prior system ("friends",
// "parent", "2019", ...) onto the canonical labels.
func NormalizeGraduateKey(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false
	}
	folded := fold(trimmed)
	switch folded {
	case "friend", "friends":
		return LabelFriends, true
	case "parent", "parents":
		return LabelParents, true
	}
	if strings.Contains(folded, "друз") {
		return LabelFriends, true
	}
	if yearPattern.MatchString(trimmed) {
		return GraduationLabel(trimmed), true
	}
	return NormalizeGraduateLabel(trimmed)
}

// fold lower-cases s with full Unicode case folding and collapses inner whitespace.
// A Caser is stateful, so a fresh one is built per call.
func fold(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}
