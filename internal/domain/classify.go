package domain

import "strings"

// DomainOther is the fallback content bucket. Non-browser applications are
// always classified as Other; browser titles fall back to it when no rule
// matches.
const DomainOther = "Other"

// DomainRule assigns a bucket when any of its substrings occurs in a
// cleaned browser title. Matching is case-sensitive and rules are tried in
// order: the first rule with any matching substring wins.
type DomainRule struct {
	Bucket     string
	Substrings []string
}

// DefaultBrowserSuffixes maps browser-like process names (lower case) to
// the window title suffixes those browsers append.
var DefaultBrowserSuffixes = map[string][]string{
	"chrome":  {"- Google Chrome", "- Chrome"},
	"msedge":  {"- Microsoft Edge", "- Edge"},
	"firefox": {"- Mozilla Firefox", "- Firefox"},
	"opera":   {"- Opera"},
}

// DefaultDomainRules is the built-in rule table. Order matters: earlier
// rules win ties.
var DefaultDomainRules = []DomainRule{
	{Bucket: "YouTube", Substrings: []string{"YouTube"}},
	{Bucket: "GitHub", Substrings: []string{"GitHub"}},
	{Bucket: "Stack Overflow", Substrings: []string{"Stack Overflow"}},
	{Bucket: "Google Docs", Substrings: []string{"Google Docs", "Google Sheets", "Google Slides"}},
	{Bucket: "Mail", Substrings: []string{"Gmail", "Outlook"}},
	{Bucket: "Social", Substrings: []string{"Facebook", "Instagram", "Reddit", "Twitter"}},
}

// Classifier cleans browser window titles and assigns them a content
// bucket. It is pure and never fails: unmatched input degrades to Other.
type Classifier struct {
	browsers map[string][]string
	rules    []DomainRule
}

// NewClassifier builds a classifier from a browser suffix table and an
// ordered rule table. The tables are not copied; callers should treat them
// as immutable after construction.
func NewClassifier(browsers map[string][]string, rules []DomainRule) *Classifier {
	return &Classifier{browsers: browsers, rules: rules}
}

// DefaultClassifier returns a classifier with the built-in tables.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultBrowserSuffixes, DefaultDomainRules)
}

// Classify maps a process name and raw window title to a cleaned title and
// a content bucket. For browser-like processes the browser's own title
// suffix is stripped and the rule table is consulted; a bucket substring
// that trails the title (e.g. "Funny Cat Video - YouTube") is also removed
// from the cleaned title. Any other process keeps its title untouched and
// is bucketed as Other.
func (c *Classifier) Classify(appName, rawTitle string) (title, domainInfo string) {
	suffixes, browser := c.browsers[strings.ToLower(appName)]
	if !browser {
		return rawTitle, DomainOther
	}

	title = rawTitle
	for _, suffix := range suffixes {
		if strings.HasSuffix(title, suffix) {
			title = strings.TrimSpace(title[:len(title)-len(suffix)])
			break
		}
	}

	for _, rule := range c.rules {
		for _, sub := range rule.Substrings {
			if !strings.Contains(title, sub) {
				continue
			}
			if strings.HasSuffix(title, sub) {
				title = trimTrailingSeparator(title[:len(title)-len(sub)])
			}
			return title, rule.Bucket
		}
	}

	return title, DomainOther
}

// trimTrailingSeparator removes the " - " style separator left behind when
// a trailing site name is stripped from a title.
func trimTrailingSeparator(s string) string {
	s = strings.TrimRight(s, " \t")
	for _, sep := range []string{"-", "|", "—", "·"} {
		s = strings.TrimSuffix(s, sep)
	}
	return strings.TrimRight(s, " \t")
}
