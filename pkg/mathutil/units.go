package mathutil

// MuPerEm is the number of mu in one em at the current style's quad,
// fixed by definition: 1mu = 1/18 em-at-current-style.
const MuPerEm = 18.0

// DefaultPtPerEm is the default conversion factor from pt to em when no
// font-size-specific ptPerEm is supplied (TeX's default: 10pt = 1em at
// text size).
const DefaultPtPerEm = 10.0

// MuToEm converts a quantity in mu to em, given the quad (in em) of the
// style the mu value was measured in.
func MuToEm(mu, quadEm float64) float64 {
	return mu * (quadEm / MuPerEm)
}

// PtToEm converts a quantity in pt to em using the given pt-per-em ratio.
func PtToEm(pt, ptPerEm float64) float64 {
	if ptPerEm == 0 {
		ptPerEm = DefaultPtPerEm
	}
	return pt / ptPerEm
}

// EmToPt is the inverse of PtToEm.
func EmToPt(em, ptPerEm float64) float64 {
	if ptPerEm == 0 {
		ptPerEm = DefaultPtPerEm
	}
	return em * ptPerEm
}

// Max returns the greater of a and b.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Min returns the lesser of a and b.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
