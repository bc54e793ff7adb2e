// Package trust gates the handful of commands that would let untrusted
// math markup emit a side effect: a network URL, a raw HTML id/class,
// inline style, or a data attribute. Every command in this surface
// defaults to denied, and a caller must supply an explicit predicate via
// options.Options.Trust to allow any of them through.
package trust

import (
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

// Command names the trust-gated surface.
type Command string

const (
	Href      Command = "href"
	URL       Command = "url"
	HTMLId    Command = "htmlId"
	HTMLClass Command = "htmlClass"
	HTMLStyle Command = "htmlStyle"
	HTMLData  Command = "htmlData"
)

// Check reports whether opts permits command. A denied command is not an
// error by itself; callers decide whether to drop the side effect
// silently or surface mathutil.UntrustedCommand.
func Check(opts *options.Options, command Command) bool {
	return opts.IsTrusted(string(command))
}

// Require returns nil if command is permitted, or an UntrustedCommand
// AppError naming it otherwise. Use this where an untrusted command must
// hard-fail rather than degrade to a plain ord/ignored attribute.
func Require(opts *options.Options, command Command) mathutil.AppError {
	if Check(opts, command) {
		return nil
	}
	return mathutil.UntrustedCommand(string(command))
}

// AllowList builds a Trust predicate from an explicit allow-list of
// command names, for callers (tests, CLI flags) that want a static
// policy rather than a closure over external state.
func AllowList(commands ...Command) func(string) bool {
	allowed := make(map[string]bool, len(commands))
	for _, c := range commands {
		allowed[string(c)] = true
	}
	return func(name string) bool { return allowed[name] }
}

// DenyAll is the default policy: nothing is trusted. Equivalent to a nil
// Trust predicate, provided for callers that want an explicit value.
func DenyAll(string) bool { return false }
