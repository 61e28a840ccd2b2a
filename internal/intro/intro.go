package intro

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultKeywords are the phrases a user introduces themself with.
var DefaultKeywords = []string{
	"moi c'est",
	"je suis",
	"mon nom est",
	"je m'appelle",
	"je me nomme",
	"je me presente",
	"je me présente",
	"appel moi",
	"appelle moi",
}

// DefaultGreeting is the reply template; %s receives the name.
const DefaultGreeting = "Enchanté %s !"

// Detector recognises self-introductions such as "je suis Paul" and greets the speaker.
type Detector struct {
	pattern  *regexp.Regexp
	greeting string
}

// NewDetector builds a detector for keywords. Empty or all-blank keywords and an empty
// greeting fall back to defaults.
func NewDetector(keywords []string, greeting string) *Detector {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	if greeting == "" {
		greeting = DefaultGreeting
	}
	quoted := quoteKeywords(keywords)
	if len(quoted) == 0 {
		quoted = quoteKeywords(DefaultKeywords)
	}
	return &Detector{
		pattern:  regexp.MustCompile(`(?i)(?:^|\s)(?:` + strings.Join(quoted, "|") + `)\s+(.+)$`),
		greeting: greeting,
	}
}

func quoteKeywords(keywords []string) []string {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	return quoted
}

// Name extracts the introduced name from text.
func (d *Detector) Name(text string) (string, bool) {
	m := d.pattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	name := strings.TrimRight(strings.TrimSpace(m[1]), " .!?,;")
	if name == "" {
		return "", false
	}
	return name, true
}

// Greet returns the greeting for an introduction, or false when text is not one.
func (d *Detector) Greet(text string) (string, bool) {
	name, ok := d.Name(text)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(d.greeting, name), true
}
