// Package spacing holds the inter-atom spacing table: a (left-class,
// right-class) -> {0, thin, med, thick} lookup in mu, plus the
// binary-operator degrade-to-ordinary rule. The table-of-pairs shape
// mirrors a CSS box-model edge table, generalized here from a 4-side box
// to an 8x8 class matrix.
package spacing

import "github.com/inkwell-labs/mathlayout/pkg/ast"

// Amount is one of the four spacing buckets, in mu.
type Amount int

const (
	None Amount = iota
	Thin        // 3mu
	Med         // 4mu
	Thick       // 5mu
)

// Mu returns the spacing amount in mu.
func (a Amount) Mu() float64 {
	switch a {
	case Thin:
		return 3
	case Med:
		return 4
	case Thick:
		return 5
	default:
		return 0
	}
}

// class indexes the 8 atom classes for the spacing matrix.
type class int

const (
	cOrd class = iota
	cOp
	cBin
	cRel
	cOpen
	cClose
	cPunct
	cInner
	numClasses
)

func classOf(k ast.Kind) class {
	switch k {
	case ast.KindOrd:
		return cOrd
	case ast.KindOp:
		return cOp
	case ast.KindBin:
		return cBin
	case ast.KindRel:
		return cRel
	case ast.KindOpen:
		return cOpen
	case ast.KindClose:
		return cClose
	case ast.KindPunct:
		return cPunct
	case ast.KindInner:
		return cInner
	default:
		return cOrd
	}
}

// fullTable is TeX's Table 2 (Appendix G), used in display, text, and
// (subject to the reduced table below) script styles. Rows are
// the left atom, columns the right atom; entries are in mu buckets.
//
//	        ord  op   bin  rel  open close punct inner
var fullTable = [numClasses][numClasses]Amount{
	cOrd:   {None, Thin, Med, Thick, None, None, None, Thin},
	cOp:    {Thin, Thin, None, Thick, None, None, None, Thin},
	cBin:   {Med, Med, None, None, None, None, None, Med},
	cRel:   {Thick, Thick, None, None, Thick, None, None, Thick},
	cOpen:  {None, None, None, None, None, None, None, None},
	cClose: {None, Thin, Med, Thick, None, None, None, Thin},
	cPunct: {Thin, Thin, None, Thin, Thin, Thin, Thin, Thin},
	cInner: {Thin, Thin, Med, Thick, Thin, None, Thin, Thin},
}

// reducedTable applies in script and scriptscript styles: only ord-op
// and op-ord get thin space, and an `inner` atom (from \middle) gets thin
// space against every neighbor; every other pair gets none. In display
// and text styles inner pairs follow fullTable.
func reducedSpacing(l, r class) Amount {
	if (l == cOrd && r == cOp) || (l == cOp && r == cOrd) {
		return Thin
	}
	if l == cInner || r == cInner {
		return Thin
	}
	return None
}

// Lookup returns the spacing amount between a left and right atom kind,
// given whether the current style is script/scriptscript-sized.
func Lookup(left, right ast.Kind, scriptSized bool) Amount {
	l, r := classOf(left), classOf(right)
	if scriptSized {
		return reducedSpacing(l, r)
	}
	return fullTable[l][r]
}

// DegradeBinToOrd reports whether a binary operator atom must be
// reclassified as ordinary per TeX §17: at the start of a list, or when
// the previous atom (after its own possible degrade) is an operator, an
// opener, a binary operator, a relation, a punctuation mark, or there is
// no previous atom at all.
func DegradeBinToOrd(prevKind *ast.Kind, nextKind ast.Kind) bool {
	if prevKind == nil {
		return true
	}
	switch *prevKind {
	case ast.KindBin, ast.KindOp, ast.KindRel, ast.KindOpen, ast.KindPunct:
		return true
	}
	// a binary operator immediately preceding a relation, close, or
	// punctuation degrades too (e.g. "a + )"  never legally parses, but
	// "{} + }" style fragments still must not render a wide bin gap).
	switch nextKind {
	case ast.KindRel, ast.KindClose, ast.KindPunct:
		return true
	}
	return false
}
