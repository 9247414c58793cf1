package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/schuko"
)

// MarkPatternsKey is the configuration key for mark name patterns, a comma
// separated list of regular expressions.
const MarkPatternsKey = "classify.markpatterns"

// DefaultMarkPatterns are matched against lower-cased glyph names which have
// no code point of a mark category.
var DefaultMarkPatterns = []string{
	`.*comb(\..+)?$`,
	`.*cmb(\..+)?$`,
	`uni03[0-6][0-9a-f]`,
	`uni1ab[0-9a-f]`,
	`uni1d[c-f][0-9a-f]`,
	`uni20[d-e][0-9a-f]`,
	`uni20f0`,
	`unife2[0-9a-f]`,
}

// Config holds the settings of a classifier.
type Config struct {
	MarkPatterns []*regexp.Regexp
}

// DefaultConfig returns a configuration with the default mark patterns.
func DefaultConfig() Config {
	patterns, err := CompileMarkPatterns(DefaultMarkPatterns...)
	if err != nil {
		panic(err) // default patterns are known to compile
	}
	return Config{MarkPatterns: patterns}
}

// ConfigFrom reads a classifier configuration. Keys which are not set in conf,
// or set to an empty value, get their default values.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	if conf == nil || !conf.IsSet(MarkPatternsKey) {
		return DefaultConfig(), nil
	}
	value := strings.TrimSpace(conf.GetString(MarkPatternsKey))
	if value == "" {
		return DefaultConfig(), nil
	}
	var list []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	patterns, err := CompileMarkPatterns(list...)
	if err != nil {
		return Config{}, err
	}
	tracer().Debugf("using %d configured mark patterns", len(patterns))
	return Config{MarkPatterns: patterns}, nil
}

// CompileMarkPatterns compiles mark name patterns. Patterns match at the start
// of a glyph name.
func CompileMarkPatterns(patterns ...string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("classify: invalid mark pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}
