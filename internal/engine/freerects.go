package engine

// rect is the allocator's working geometry. Exported result types use
// model.FreeRect; the allocator keeps its own copy so partial state never
// leaks out of a packing pass.
type rect struct {
	x, y, w, h float64
}

// eps absorbs float64 noise when comparing dimensions in mm.
const eps = 0.001

// allocator maintains the unused rectangular regions of one sheet and places
// parts into them with guillotine cuts. Every split removes one kerf width of
// material from each remainder.
type allocator struct {
	freeRects []rect
	kerf      float64
}

func newAllocator(initial rect, kerf float64) *allocator {
	return &allocator{
		freeRects: []rect{initial},
		kerf:      kerf,
	}
}

// fit describes the best placement found for a requested part size.
type fit struct {
	index   int  // index into freeRects
	rotated bool // part placed with width/height swapped
}

// bestFit scores every free rectangle with best-short-side-fit: the smaller of
// the two leftover margins, lower is better. Both margins must be non-negative
// for a candidate to qualify. The first rectangle reaching the minimal score
// wins, which keeps results deterministic for equal scores. Returns false when
// nothing fits in any allowed orientation.
func (a *allocator) bestFit(w, h float64, allowRotate bool) (fit, bool) {
	best := fit{index: -1}
	bestScore := -1.0

	consider := func(i int, rw, rh float64, rotated bool) {
		r := a.freeRects[i]
		dw := r.w - rw
		dh := r.h - rh
		if dw < -eps || dh < -eps {
			return
		}
		score := dw
		if dh < dw {
			score = dh
		}
		if best.index < 0 || score < bestScore {
			best = fit{index: i, rotated: rotated}
			bestScore = score
		}
	}

	for i := range a.freeRects {
		consider(i, w, h, false)
		if allowRotate && w != h {
			consider(i, h, w, true)
		}
	}

	if best.index < 0 {
		return fit{}, false
	}
	return best, true
}

// place finds the best-fitting free rectangle for the part, removes it and
// inserts the guillotine remainders. Returns the placement position and
// orientation, or false without mutating state when the part fits nowhere.
func (a *allocator) place(w, h float64, allowRotate bool) (x, y float64, rotated bool, ok bool) {
	f, found := a.bestFit(w, h, allowRotate)
	if !found {
		return 0, 0, false, false
	}

	chosen := a.freeRects[f.index]
	usedW, usedH := w, h
	if f.rotated {
		usedW, usedH = h, w
	}

	a.freeRects = append(a.freeRects[:f.index], a.freeRects[f.index+1:]...)
	a.split(chosen, usedW, usedH)

	return chosen.x, chosen.y, f.rotated, true
}

// split cuts the chosen rectangle around a part placed in its top-left corner.
// The guillotine cut runs along the axis that leaves the less thin remainder
// spanning the full rectangle; the kerf is subtracted from each remainder, and
// remainders that end up non-positive are discarded.
func (a *allocator) split(r rect, usedW, usedH float64) {
	wRem := r.w - usedW
	hRem := r.h - usedH

	var first, second rect
	if wRem > hRem {
		// Horizontal cut: full-width strip below the part, column beside it.
		first = rect{x: r.x, y: r.y + usedH + a.kerf, w: r.w, h: hRem - a.kerf}
		second = rect{x: r.x + usedW + a.kerf, y: r.y, w: wRem - a.kerf, h: usedH}
	} else {
		// Vertical cut: full-height column beside the part, strip below it.
		first = rect{x: r.x + usedW + a.kerf, y: r.y, w: wRem - a.kerf, h: r.h}
		second = rect{x: r.x, y: r.y + usedH + a.kerf, w: usedW, h: hRem - a.kerf}
	}

	if first.w > eps && first.h > eps {
		a.freeRects = append(a.freeRects, first)
	}
	if second.w > eps && second.h > eps {
		a.freeRects = append(a.freeRects, second)
	}
}
