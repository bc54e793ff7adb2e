// Package ast defines the input contract the box builder consumes. The
// lexer, macro expander, parser, and symbol table that produce this tree
// are out of core; this package only fixes the shape they must emit. The
// tagged-variant shape mirrors an html.Node-style design: a single struct
// carrying a Kind tag plus the union of fields any kind might need,
// switched on exhaustively by every handler in pkg/builder.
package ast

// Mode is the typesetting mode a node is rendered in.
type Mode int

const (
	Math Mode = iota
	Text
)

// Kind tags the variant of a Node. Handlers in pkg/builder switch
// exhaustively over Kind.
type Kind int

const (
	KindOrd Kind = iota
	KindOp
	KindBin
	KindRel
	KindOpen
	KindClose
	KindPunct
	KindInner
	KindOrdGroup
	KindSupSub
	KindFraction
	KindRadical
	KindAccent
	KindDelimited
	KindStyling
	KindSizing
	KindColor
	KindHref
	KindPhantom
	KindRule
	KindKern
	KindRaiseBox
	KindText
	KindHTMLMathML
	KindOpLimits
	KindIncludeGraphics
	KindHTMLId
	KindHTMLClass
	KindHTMLStyle
	KindHTMLData
)

// AccentKind distinguishes fixed-glyph accents (\hat, \vec) from stretchy
// ones (\widehat, \overrightarrow), and over- from under-accents.
type AccentKind int

const (
	AccentFixedOver AccentKind = iota
	AccentFixedUnder
	AccentStretchyOver
	AccentStretchyUnder
)

// OpKind distinguishes a symbol large operator (\sum) from a body operator
// (\operatorname{...}); whether limits render above/below is carried
// separately by HasLimits.
type OpKind int

const (
	OpSymbol OpKind = iota
	OpBody
)

// SourceLoc is a half-open [Start, End) byte range into the original
// markup, kept for error reporting by callers; the core never inspects it.
type SourceLoc struct {
	Start, End int
}

// Node is the polymorphic AST node the builder walks. Only the fields
// relevant to Kind are populated; all others are zero.
type Node struct {
	Kind Kind
	Mode Mode
	Loc  SourceLoc

	// Children / Body: ordinary child list (ordgroup, inner, styling,
	// sizing, color, href, phantom, raisebox, text, htmlmathml payload).
	Children []*Node

	// Text content: the literal glyph string for ord/op/bin/rel/open/
	// close/punct/text nodes, and the raw text for KindText in text mode.
	Text string

	// Symbol/body distinction for KindOp.
	OpKind    OpKind
	HasLimits bool // \limits / \nolimits override; meaningful only for KindOp

	// KindSupSub.
	Base *Node
	Sup  *Node
	Sub  *Node

	// KindFraction.
	Numerator      *Node
	Denominator    *Node
	BarThicknessPt float64 // 0 means "use default rule thickness"
	HasBar         bool    // false for \atop-style fractions (no rule)

	// KindRadical.
	Radicand *Node
	Index    *Node // optional root index, nil for plain \sqrt

	// KindAccent.
	AccentKind  AccentKind
	AccentLabel string // the accent glyph/path family name
	Accentee    *Node

	// KindDelimited (\left ... \right).
	LeftDelim  string
	RightDelim string
	Body       *Node

	// KindStyling: explicit style override (\displaystyle, \textstyle, ...).
	StyleOverride string

	// KindSizing: \tiny .. \Huge, by size index.
	SizeIndex int

	// KindColor / KindHref / KindHTMLId / KindHTMLClass / KindHTMLStyle /
	// KindHTMLData: string payloads gated by the trust predicate when they
	// would emit a URL/id/class/style/data attribute.
	Color     string
	URL       string
	HTMLId    string
	HTMLClass string
	HTMLStyle string
	DataKey   string
	DataValue string

	// KindPhantom.
	PhantomHorizontal bool
	PhantomVertical   bool

	// KindRule.
	RuleWidth, RuleHeight, RuleShift float64 // em

	// KindKern.
	KernWidth float64 // em

	// KindRaiseBox.
	RaiseAmount float64 // em, positive raises

	// KindHTMLMathML: parallel payloads; the builder picks one per backend.
	HTMLVariant   *Node
	MathMLVariant *Node

	// KindOpLimits wraps a KindOp node forcing \limits/\nolimits; Base
	// holds the wrapped op node.

	// KindIncludeGraphics.
	GraphicsSrc     string
	GraphicsOptions map[string]string // raw key=value pairs, parsed by pkg/includegraphics
}

// IsAtom reports whether k is one of the eight atom classes used by the
// spacing table, i.e. everything that participates in
// inter-atom spacing as a left/right operand.
func (k Kind) IsAtom() bool {
	switch k {
	case KindOrd, KindOp, KindBin, KindRel, KindOpen, KindClose, KindPunct, KindInner:
		return true
	}
	return false
}
