// Package rewrite describes the hosting platform's path rewrites that send
// same-origin /api/v1 calls to the backend.
package rewrite

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/endpoints"
)

// Wildcard captures the remainder of the request path.
const Wildcard = ":path*"

// APIPrefix is the path every backend API call starts with.
const APIPrefix = "/api/v1/"

var ErrInvalidRule = errors.New("invalid rewrite rule")

type Rule struct {
	Source      string `json:"source" toml:"source"`
	Destination string `json:"destination" toml:"destination"`
}

// APIRule forwards /api/v1/* to the same path on target's origin.
func APIRule(target string) Rule {
	origin := endpoints.NormalizeBaseURL(target)
	return Rule{
		Source:      APIPrefix + Wildcard,
		Destination: origin + APIPrefix + Wildcard,
	}
}

func (r Rule) Validate() error {
	if !strings.HasPrefix(r.Source, "/") || !strings.HasSuffix(r.Source, Wildcard) {
		return fmt.Errorf("%w: source %q must be an absolute path ending in %s", ErrInvalidRule, r.Source, Wildcard)
	}
	if strings.Count(r.Source, Wildcard) != 1 {
		return fmt.Errorf("%w: source %q must contain %s once", ErrInvalidRule, r.Source, Wildcard)
	}
	if !strings.Contains(r.Destination, Wildcard) {
		return fmt.Errorf("%w: destination %q has no %s", ErrInvalidRule, r.Destination, Wildcard)
	}
	u, err := url.Parse(strings.ReplaceAll(r.Destination, Wildcard, ""))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: destination %q is not an absolute url", ErrInvalidRule, r.Destination)
	}
	return nil
}

// Prefix is the literal part of Source in front of the wildcard.
func (r Rule) Prefix() string {
	return strings.TrimSuffix(r.Source, Wildcard)
}

// Match rewrites path when it falls under the rule. The remaining path is
// copied into the destination unchanged.
func (r Rule) Match(path string) (string, bool) {
	prefix := r.Prefix()
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	return strings.Replace(r.Destination, Wildcard, rest, 1), true
}

// Rules is an ordered rule list; the first match wins.
type Rules []Rule

func (rs Rules) Match(path string) (string, bool) {
	for _, r := range rs {
		if dest, ok := r.Match(path); ok {
			return dest, true
		}
	}
	return "", false
}

func (rs Rules) Validate() error {
	for i, r := range rs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rewrite %d: %w", i, err)
		}
	}
	return nil
}
