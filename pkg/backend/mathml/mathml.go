// Package mathml serializes an ast.Node tree to presentation MathML.
// The tag vocabulary (mrow/mi/mn/mo/mfrac/msup/msub/msqrt/mroot) mirrors
// the element set the teacher's MathML reader in the example pack
// recognizes, used here in reverse: as an AST walk emitting those same
// tags rather than parsing them.
package mathml

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/trust"
)

// Options controls serialization: Trust gates \href/\htmlId/... the same
// way pkg/builder does, since the HTML/MathML surface is exactly where
// those side effects would otherwise leak.
type Options struct {
	Trust func(command string) bool
}

func (o Options) isTrusted(cmd trust.Command) bool {
	if o.Trust == nil {
		return false
	}
	return o.Trust(string(cmd))
}

// Render serializes n as a standalone <math> element.
func Render(n *ast.Node, opts Options) string {
	var sb strings.Builder
	sb.WriteString(`<math xmlns="http://www.w3.org/1998/Math/MathML">`)
	writeNode(&sb, n, opts)
	sb.WriteString(`</math>`)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *ast.Node, opts Options) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindOrd, ast.KindPunct:
		writeLeaf(sb, leafTag(n.Text), n.Text)
	case ast.KindOp:
		writeLeaf(sb, "mo", n.Text)
	case ast.KindBin, ast.KindRel:
		writeLeaf(sb, "mo", n.Text)
	case ast.KindOpen, ast.KindClose:
		writeLeaf(sb, "mo", n.Text)
	case ast.KindText:
		writeLeaf(sb, "mtext", n.Text)
	case ast.KindOrdGroup, ast.KindInner, ast.KindStyling:
		sb.WriteString("<mrow>")
		for _, c := range n.Children {
			writeNode(sb, c, opts)
		}
		sb.WriteString("</mrow>")
	case ast.KindSizing, ast.KindPhantom, ast.KindRaiseBox:
		writeChildrenAsRow(sb, n, opts)
	case ast.KindColor:
		fmt.Fprintf(sb, `<mstyle mathcolor="%s">`, html.EscapeString(n.Color))
		writeChildrenAsRow(sb, n, opts)
		sb.WriteString("</mstyle>")
	case ast.KindHref:
		if opts.isTrusted(trust.Href) {
			fmt.Fprintf(sb, `<mrow href="%s">`, html.EscapeString(n.URL))
			writeChildrenAsRow(sb, n, opts)
			sb.WriteString("</mrow>")
		} else {
			writeChildrenAsRow(sb, n, opts)
		}
	case ast.KindHTMLId, ast.KindHTMLClass, ast.KindHTMLStyle, ast.KindHTMLData:
		writeChildrenAsRow(sb, n, opts)
	case ast.KindSupSub:
		writeSupSub(sb, n, opts)
	case ast.KindFraction:
		sb.WriteString("<mfrac")
		if !n.HasBar {
			sb.WriteString(` linethickness="0"`)
		}
		sb.WriteString(">")
		writeNode(sb, n.Numerator, opts)
		writeNode(sb, n.Denominator, opts)
		sb.WriteString("</mfrac>")
	case ast.KindRadical:
		if n.Index != nil {
			sb.WriteString("<mroot>")
			writeNode(sb, n.Radicand, opts)
			writeNode(sb, n.Index, opts)
			sb.WriteString("</mroot>")
		} else {
			sb.WriteString("<msqrt>")
			writeNode(sb, n.Radicand, opts)
			sb.WriteString("</msqrt>")
		}
	case ast.KindAccent:
		tag := "mover"
		if n.AccentKind == ast.AccentFixedUnder || n.AccentKind == ast.AccentStretchyUnder {
			tag = "munder"
		}
		fmt.Fprintf(sb, "<%s>", tag)
		writeNode(sb, n.Accentee, opts)
		writeLeaf(sb, "mo", n.AccentLabel)
		fmt.Fprintf(sb, "</%s>", tag)
	case ast.KindDelimited:
		fmt.Fprintf(sb, `<mrow><mo fence="true">%s</mo>`, html.EscapeString(n.LeftDelim))
		writeNode(sb, n.Body, opts)
		fmt.Fprintf(sb, `<mo fence="true">%s</mo></mrow>`, html.EscapeString(n.RightDelim))
	case ast.KindHTMLMathML:
		if n.MathMLVariant != nil {
			writeNode(sb, n.MathMLVariant, opts)
		} else if n.HTMLVariant != nil {
			writeNode(sb, n.HTMLVariant, opts)
		}
	case ast.KindOpLimits:
		writeNode(sb, n.Base, opts)
	case ast.KindRule, ast.KindKern:
		sb.WriteString("<mspace/>")
	case ast.KindIncludeGraphics:
		fmt.Fprintf(sb, `<mtext>[image: %s]</mtext>`, html.EscapeString(n.GraphicsOptions["alt"]))
	default:
		writeChildrenAsRow(sb, n, opts)
	}
}

func writeChildrenAsRow(sb *strings.Builder, n *ast.Node, opts Options) {
	if len(n.Children) == 1 {
		writeNode(sb, n.Children[0], opts)
		return
	}
	sb.WriteString("<mrow>")
	for _, c := range n.Children {
		writeNode(sb, c, opts)
	}
	sb.WriteString("</mrow>")
}

func writeSupSub(sb *strings.Builder, n *ast.Node, opts Options) {
	switch {
	case n.Sup != nil && n.Sub != nil:
		sb.WriteString("<msubsup>")
		writeNode(sb, n.Base, opts)
		writeNode(sb, n.Sub, opts)
		writeNode(sb, n.Sup, opts)
		sb.WriteString("</msubsup>")
	case n.Sup != nil:
		sb.WriteString("<msup>")
		writeNode(sb, n.Base, opts)
		writeNode(sb, n.Sup, opts)
		sb.WriteString("</msup>")
	case n.Sub != nil:
		sb.WriteString("<msub>")
		writeNode(sb, n.Base, opts)
		writeNode(sb, n.Sub, opts)
		sb.WriteString("</msub>")
	default:
		writeNode(sb, n.Base, opts)
	}
}

func writeLeaf(sb *strings.Builder, tag, text string) {
	fmt.Fprintf(sb, "<%s>%s</%s>", tag, html.EscapeString(text), tag)
}

// leafTag picks mi for identifier-like ord atoms and mn for digit runs,
// the same mi/mn split the example reader's tag vocabulary uses.
func leafTag(text string) string {
	if text == "" {
		return "mi"
	}
	for _, r := range text {
		if !unicode.IsDigit(r) && r != '.' {
			return "mi"
		}
	}
	return "mn"
}
