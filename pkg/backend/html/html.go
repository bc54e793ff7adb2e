// Package html serializes an ast.Node tree to an HTML fragment: nested
// <span> elements carrying the CSS classes and inline styles a browser
// needs to reproduce the layout, mirroring how the teacher's renderer
// consumes parsed CSS rather than emitting a second markup dialect from
// scratch. Side-effecting commands (\href, \htmlId, ...) are re-checked
// against Options.Trust here independently of pkg/builder, since the
// HTML surface is exactly where an untrusted attribute would leak into
// a document.
package html

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/css"
	"github.com/inkwell-labs/mathlayout/pkg/trust"
)

// Options controls serialization.
type Options struct {
	Trust func(command string) bool
}

func (o Options) isTrusted(cmd trust.Command) bool {
	if o.Trust == nil {
		return false
	}
	return o.Trust(string(cmd))
}

// Render serializes n as a standalone block, wrapped in a span carrying
// the "math" class so a stylesheet can target it.
func Render(n *ast.Node, opts Options) string {
	var sb strings.Builder
	sb.WriteString(`<span class="math">`)
	writeNode(&sb, n, opts)
	sb.WriteString(`</span>`)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *ast.Node, opts Options) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindOrd, ast.KindPunct, ast.KindOp, ast.KindBin, ast.KindRel, ast.KindOpen, ast.KindClose:
		writeSpan(sb, "atom", "", n.Text)
	case ast.KindText:
		writeSpan(sb, "text", "", n.Text)
	case ast.KindOrdGroup, ast.KindInner, ast.KindStyling, ast.KindSizing, ast.KindPhantom:
		writeChildren(sb, "group", n, opts)
	case ast.KindColor:
		style := ""
		if c, ok := css.ParseColor(n.Color); ok {
			style = fmt.Sprintf("color:rgb(%d,%d,%d)", c.R, c.G, c.B)
		}
		writeStyledChildren(sb, "color", style, n, opts)
	case ast.KindHref:
		if opts.isTrusted(trust.Href) {
			fmt.Fprintf(sb, `<a class="math-href" href="%s">`, html.EscapeString(n.URL))
			writeChildrenRaw(sb, n, opts)
			sb.WriteString("</a>")
		} else {
			writeChildren(sb, "group", n, opts)
		}
	case ast.KindHTMLId:
		if opts.isTrusted(trust.HTMLId) {
			fmt.Fprintf(sb, `<span id="%s">`, html.EscapeString(n.HTMLId))
			writeChildrenRaw(sb, n, opts)
			sb.WriteString("</span>")
		} else {
			writeChildren(sb, "group", n, opts)
		}
	case ast.KindHTMLClass:
		if opts.isTrusted(trust.HTMLClass) {
			fmt.Fprintf(sb, `<span class="%s">`, html.EscapeString(n.HTMLClass))
			writeChildrenRaw(sb, n, opts)
			sb.WriteString("</span>")
		} else {
			writeChildren(sb, "group", n, opts)
		}
	case ast.KindHTMLStyle:
		if opts.isTrusted(trust.HTMLStyle) {
			fmt.Fprintf(sb, `<span style="%s">`, html.EscapeString(sanitizeInlineStyle(n.HTMLStyle)))
			writeChildrenRaw(sb, n, opts)
			sb.WriteString("</span>")
		} else {
			writeChildren(sb, "group", n, opts)
		}
	case ast.KindHTMLData:
		if opts.isTrusted(trust.HTMLData) {
			fmt.Fprintf(sb, `<span data-%s="%s">`, html.EscapeString(n.DataKey), html.EscapeString(n.DataValue))
			writeChildrenRaw(sb, n, opts)
			sb.WriteString("</span>")
		} else {
			writeChildren(sb, "group", n, opts)
		}
	case ast.KindRaiseBox:
		writeStyledChildren(sb, "raisebox", fmt.Sprintf("position:relative;bottom:%.4fem", n.RaiseAmount), n, opts)
	case ast.KindSupSub:
		writeSupSub(sb, n, opts)
	case ast.KindFraction:
		sb.WriteString(`<span class="frac">`)
		sb.WriteString(`<span class="frac-num">`)
		writeNode(sb, n.Numerator, opts)
		sb.WriteString("</span>")
		cls := "frac-bar"
		if !n.HasBar {
			cls = "frac-bar frac-bar-none"
		}
		fmt.Fprintf(sb, `<span class="%s"></span>`, cls)
		sb.WriteString(`<span class="frac-den">`)
		writeNode(sb, n.Denominator, opts)
		sb.WriteString("</span>")
		sb.WriteString("</span>")
	case ast.KindRadical:
		sb.WriteString(`<span class="radical">`)
		if n.Index != nil {
			sb.WriteString(`<span class="radical-index">`)
			writeNode(sb, n.Index, opts)
			sb.WriteString("</span>")
		}
		sb.WriteString(`<span class="radical-radicand">`)
		writeNode(sb, n.Radicand, opts)
		sb.WriteString("</span>")
		sb.WriteString("</span>")
	case ast.KindAccent:
		cls := "accent-over"
		if n.AccentKind == ast.AccentFixedUnder || n.AccentKind == ast.AccentStretchyUnder {
			cls = "accent-under"
		}
		fmt.Fprintf(sb, `<span class="%s">`, cls)
		writeSpan(sb, "accent-mark", "", n.AccentLabel)
		writeNode(sb, n.Accentee, opts)
		sb.WriteString("</span>")
	case ast.KindDelimited:
		sb.WriteString(`<span class="delimited">`)
		writeSpan(sb, "delim delim-left", "", n.LeftDelim)
		writeNode(sb, n.Body, opts)
		writeSpan(sb, "delim delim-right", "", n.RightDelim)
		sb.WriteString("</span>")
	case ast.KindHTMLMathML:
		if n.HTMLVariant != nil {
			writeNode(sb, n.HTMLVariant, opts)
		} else if n.MathMLVariant != nil {
			writeNode(sb, n.MathMLVariant, opts)
		}
	case ast.KindOpLimits:
		writeNode(sb, n.Base, opts)
	case ast.KindRule:
		fmt.Fprintf(sb, `<span class="rule" style="width:%.4fem;height:%.4fem;bottom:%.4fem"></span>`,
			n.RuleWidth, n.RuleHeight, n.RuleShift)
	case ast.KindKern:
		fmt.Fprintf(sb, `<span class="kern" style="width:%.4fem"></span>`, n.KernWidth)
	case ast.KindIncludeGraphics:
		fmt.Fprintf(sb, `<img class="math-image" src="%s" alt="%s"/>`,
			html.EscapeString(n.GraphicsSrc), html.EscapeString(n.GraphicsOptions["alt"]))
	default:
		writeChildren(sb, "group", n, opts)
	}
}

func writeSupSub(sb *strings.Builder, n *ast.Node, opts Options) {
	sb.WriteString(`<span class="supsub">`)
	writeNode(sb, n.Base, opts)
	if n.Sup != nil {
		sb.WriteString(`<span class="sup">`)
		writeNode(sb, n.Sup, opts)
		sb.WriteString("</span>")
	}
	if n.Sub != nil {
		sb.WriteString(`<span class="sub">`)
		writeNode(sb, n.Sub, opts)
		sb.WriteString("</span>")
	}
	sb.WriteString("</span>")
}

func writeSpan(sb *strings.Builder, class, style, text string) {
	if style != "" {
		fmt.Fprintf(sb, `<span class="%s" style="%s">%s</span>`, class, html.EscapeString(style), html.EscapeString(text))
		return
	}
	fmt.Fprintf(sb, `<span class="%s">%s</span>`, class, html.EscapeString(text))
}

func writeChildren(sb *strings.Builder, class string, n *ast.Node, opts Options) {
	fmt.Fprintf(sb, `<span class="%s">`, class)
	writeChildrenRaw(sb, n, opts)
	sb.WriteString("</span>")
}

func writeStyledChildren(sb *strings.Builder, class, style string, n *ast.Node, opts Options) {
	if style == "" {
		writeChildren(sb, class, n, opts)
		return
	}
	fmt.Fprintf(sb, `<span class="%s" style="%s">`, class, html.EscapeString(style))
	writeChildrenRaw(sb, n, opts)
	sb.WriteString("</span>")
}

func writeChildrenRaw(sb *strings.Builder, n *ast.Node, opts Options) {
	for _, c := range n.Children {
		writeNode(sb, c, opts)
	}
}

// sanitizeInlineStyle re-serializes a trusted \htmlStyle value through
// css.ParseInlineStyle so the emitted attribute only ever contains
// property:value pairs the parser actually recognized as declarations,
// not whatever raw punctuation the author wrote.
func sanitizeInlineStyle(raw string) string {
	parsed := css.ParseInlineStyle(raw)
	props := make([]string, 0, len(parsed.Properties))
	for k := range parsed.Properties {
		props = append(props, k)
	}
	sort.Strings(props)
	parts := make([]string, 0, len(props))
	for _, k := range props {
		parts = append(parts, k+":"+parsed.Properties[k])
	}
	return strings.Join(parts, ";")
}
