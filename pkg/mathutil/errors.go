// Package mathutil holds small cross-cutting helpers shared by the layout
// packages: the typed error core (mirroring a typesetting engine's
// AppError/error-code shape) and unit conversion between em, mu and pt.
package mathutil

import "fmt"

// Error codes for the core's well-defined failure modes (spec §7).
const (
	ENONE               int = 0
	EUNKNOWNGLYPH       int = 201 // missing font metrics for a glyph
	EILLEGALDELIMITER   int = 202 // symbol has no delimiter sequence entry
	ESIZEOVERFLOW       int = 203 // requested size exceeds MaxSize (warning channel, not fatal)
	EUNTRUSTEDCOMMAND   int = 204 // trust predicate denied a side-effecting command
	EIMAGELOAD          int = 205 // \includegraphics source could not be fetched or decoded
)

func errorText(code int) string {
	switch code {
	case ENONE:
		return "ok"
	case EUNKNOWNGLYPH:
		return "unknown glyph metrics"
	case EILLEGALDELIMITER:
		return "illegal delimiter"
	case ESIZEOVERFLOW:
		return "size overflow"
	case EUNTRUSTEDCOMMAND:
		return "untrusted command"
	case EIMAGELOAD:
		return "image load failed"
	}
	return "undefined error"
}

// AppError is a core failure: a wrapped error plus a stable code and a
// short message suitable for display to whoever issued the build call.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	err  error
	code int
	msg  string
}

func (e *coreError) Error() string      { return fmt.Sprintf("[%s] %v", errorText(e.code), e.err) }
func (e *coreError) Unwrap() error      { return e.err }
func (e *coreError) ErrorCode() int     { return e.code }
func (e *coreError) UserMessage() string { return e.msg }

// UnknownGlyphMetrics reports that a codepoint has no metrics entry in the
// given font and no fallback proxy could be found.
func UnknownGlyphMetrics(codepoint rune, font string) AppError {
	return &coreError{
		err:  fmt.Errorf("codepoint %U: no metrics in font %q", codepoint, font),
		code: EUNKNOWNGLYPH,
		msg:  fmt.Sprintf("glyph %c is not available in %s", codepoint, font),
	}
}

// IllegalDelimiter reports that a symbol was passed to \left/\right (or a
// stretchy context) but has no entry in any delimiter size sequence.
func IllegalDelimiter(symbol string) AppError {
	return &coreError{
		err:  fmt.Errorf("symbol %q has no delimiter sequence", symbol),
		code: EILLEGALDELIMITER,
		msg:  fmt.Sprintf("%q cannot be used as a delimiter", symbol),
	}
}

// SizeOverflow reports that a requested delimiter/rule size was clamped to
// MaxSize. Callers in strict mode surface this on a warning channel instead
// of treating it as fatal.
func SizeOverflow(requested, max float64) AppError {
	return &coreError{
		err:  fmt.Errorf("requested size %.3fem exceeds max %.3fem", requested, max),
		code: ESIZEOVERFLOW,
		msg:  fmt.Sprintf("size clamped to %.3fem", max),
	}
}

// ImageLoadFailed reports that an \includegraphics source could not be
// fetched or decoded.
func ImageLoadFailed(src string, cause error) AppError {
	return &coreError{
		err:  fmt.Errorf("loading %q: %w", src, cause),
		code: EIMAGELOAD,
		msg:  fmt.Sprintf("could not load image %s", src),
	}
}

// UntrustedCommand reports that the caller-supplied trust predicate denied
// a command that would have emitted a URL, id, class, style, or data
// attribute.
func UntrustedCommand(command string) AppError {
	return &coreError{
		err:  fmt.Errorf("command %q denied by trust predicate", command),
		code: EUNTRUSTEDCOMMAND,
		msg:  fmt.Sprintf("unsupported command %s", command),
	}
}
