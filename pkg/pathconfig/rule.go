package pathconfig

import (
	"log/slog"
	"regexp"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Rule maps a set of path patterns to the properties merged for matching paths.
type Rule struct {
	Patterns   []string          `json:"patterns" yaml:"patterns"`
	Properties domain.Properties `json:"properties" yaml:"properties"`

	compiled []*regexp.Regexp
}

// NewRule builds a rule and compiles its patterns. Invalid patterns are dropped.
func NewRule(patterns []string, properties domain.Properties) Rule {
	r := Rule{Patterns: patterns, Properties: properties}
	r.compile(nil)
	return r
}

// compile prepares the pattern set once. Patterns that fail to compile never match.
func (r *Rule) compile(logger *slog.Logger) {
	r.compiled = make([]*regexp.Regexp, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping invalid path pattern", "pattern", p, "error", err)
			}
			continue
		}
		r.compiled = append(r.compiled, re)
	}
	if r.Properties == nil {
		r.Properties = domain.Properties{}
	}
}

// Match reports whether any pattern matches somewhere in path.
func (r Rule) Match(path string) bool {
	for _, re := range r.compiled {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

const (
	RecedeHistoricalLocation  = "/recede_historical_location"
	ResumeHistoricalLocation  = "/resume_historical_location"
	RefreshHistoricalLocation = "/refresh_historical_location"
)

// HistoricalLocationRules are appended after every rule table update and cannot be removed.
func HistoricalLocationRules() []Rule {
	return []Rule{
		NewRule([]string{RecedeHistoricalLocation}, domain.Properties{
			domain.KeyPresentation:       string(domain.PresentationPop),
			domain.KeyHistoricalLocation: true,
		}),
		NewRule([]string{ResumeHistoricalLocation}, domain.Properties{
			domain.KeyPresentation:       string(domain.PresentationNone),
			domain.KeyHistoricalLocation: true,
		}),
		NewRule([]string{RefreshHistoricalLocation}, domain.Properties{
			domain.KeyPresentation:       string(domain.PresentationRefresh),
			domain.KeyHistoricalLocation: true,
		}),
	}
}
