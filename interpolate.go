package resq

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// defaultPattern matches {{name}} placeholder tokens, capturing the name.
var defaultPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// patternCell holds the process-wide default interpolation pattern.
// Resources snapshot it at creation time, so changing it affects only
// resources created afterwards.
var patternCell = struct {
	mu sync.RWMutex
	re *regexp.Regexp
}{re: defaultPattern}

// SetDefaultPattern replaces the process-wide default interpolation pattern.
// The pattern must capture the placeholder name in its first group.
// Passing nil restores the built-in {{name}} pattern.
//
// Deprecated: prefer a Factory with Options.Pattern set, which scopes the
// pattern to the resources that factory creates.
func SetDefaultPattern(re *regexp.Regexp) {
	if re == nil {
		re = defaultPattern
	}
	patternCell.mu.Lock()
	patternCell.re = re
	patternCell.mu.Unlock()
}

// DefaultPattern returns the current process-wide default interpolation pattern.
func DefaultPattern() *regexp.Regexp {
	patternCell.mu.RLock()
	defer patternCell.mu.RUnlock()
	return patternCell.re
}

// checkPattern rejects patterns that cannot name a placeholder.
func checkPattern(re *regexp.Regexp) error {
	if re.NumSubexp() < 1 {
		return Errorf(CodeInvalidPattern,
			"interpolation pattern %q has no capture group for the placeholder name", re.String())
	}
	return nil
}

// interpolate substitutes placeholder tokens in template with percent-encoded
// values from params. A token is replaced only when its captured name is a key
// of params; otherwise it is left verbatim. There is no escaping syntax for
// literal tokens.
func interpolate(pattern *regexp.Regexp, template string, params Fields) string {
	if len(params) == 0 {
		return template
	}
	return pattern.ReplaceAllStringFunc(template, func(token string) string {
		m := pattern.FindStringSubmatch(token)
		if len(m) < 2 {
			return token
		}
		v, ok := params[m[1]]
		if !ok {
			return token
		}
		// QueryEscape alone would render a space as a literal plus in
		// path position; placeholders need percent form everywhere.
		return strings.ReplaceAll(url.QueryEscape(fmt.Sprint(v)), "+", "%20")
	})
}
