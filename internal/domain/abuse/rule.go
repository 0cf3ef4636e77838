package abuse

import (
	"fmt"
	"strings"
)

// Rule inspects the payload of an action.
type Rule interface {
	// Check returns a non-empty reason if the payload violates the rule.
	Check(action, payload string) string
}

type keywordRule struct {
	keywords []string
}

// NewKeywordRule matches the keywords case-insensitively anywhere in the
// payload. Empty keywords are ignored.
func NewKeywordRule(keywords ...string) *keywordRule {
	rule := &keywordRule{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			rule.keywords = append(rule.keywords, strings.ToLower(k))
		}
	}

	return rule
}

func (r *keywordRule) Check(action, payload string) string {
	if payload == "" {
		return ""
	}

	lower := strings.ToLower(payload)
	for _, k := range r.keywords {
		if strings.Contains(lower, k) {
			return fmt.Sprintf("%s contains banned keyword %q", action, k)
		}
	}

	return ""
}
