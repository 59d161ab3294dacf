package layout

import (
	"math"
	"slices"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/geom"
)

// region is a free rectangle in the worklist. seq orders regions by age.
type region struct {
	rect geom.Rect
	seq  int
}

type worklist struct {
	regions []region
	next    int
}

func (w *worklist) push(r geom.Rect) {
	w.regions = append(w.regions, region{rect: r, seq: w.next})
	w.next++
}

func (w *worklist) take(i int) geom.Rect {
	r := w.regions[i].rect
	w.regions = slices.Delete(w.regions, i, i+1)
	return r
}

func (w *worklist) rects() []geom.Rect {
	out := make([]geom.Rect, len(w.regions))
	for i, r := range w.regions {
		out[i] = r.rect
	}
	return out
}

// choose returns the index of the region to carve next. Regions touching one
// of partners win over the rest; within each class the largest wins, then the
// oldest.
func (w *worklist) choose(partners []geom.Rect) int {
	best, bestTouch := -1, false
	for i, r := range w.regions {
		touch := touchesAny(r.rect, partners)
		if best < 0 {
			best, bestTouch = i, touch
			continue
		}
		cur := w.regions[best]
		switch {
		case touch != bestTouch:
			if touch {
				best, bestTouch = i, touch
			}
		case r.rect.Area() > cur.rect.Area()+areaTolerance:
			best = i
		case math.Abs(r.rect.Area()-cur.rect.Area()) <= areaTolerance && r.seq < cur.seq:
			best = i
		}
	}
	return best
}

func touchesAny(r geom.Rect, others []geom.Rect) bool {
	for _, o := range others {
		if geom.Touches(r, o) {
			return true
		}
	}
	return false
}

// partition carves one rectangle per queued instance.
func (e *Engine) partition(house HouseSpec, queue []instance) ([]Placement, []geom.Rect, error) {
	var work worklist
	work.push(house.Footprint())

	placements := make([]Placement, 0, len(queue))
	for _, in := range queue {
		if len(work.regions) == 0 {
			return nil, nil, errs.New(errs.ErrCodePlacementFailed,
				"no free region left for %s after placing %d of %d rooms",
				in.id(), len(placements), len(queue))
		}

		partners := partnerRects(in, placements)
		r := work.take(work.choose(partners))

		room, rest, clipped := carve(r, in.spec.Area, e.opts.MaxAspect, partners)
		if room.MinSide() < e.opts.MinSide {
			return nil, nil, errs.New(errs.ErrCodePlacementFailed,
				"%s would be carved as %s, narrower than %.2g", in.id(), room, e.opts.MinSide)
		}
		for _, rr := range rest {
			switch {
			case !rr.Valid():
			case rr.MinSide() < e.opts.MinSide:
				e.opts.Logger.Debug("dropped sliver", "region", rr.String())
			default:
				work.push(rr)
			}
		}

		placements = append(placements, Placement{
			Spec:     in.spec,
			Instance: in.n,
			ID:       in.id(),
			Rect:     room,
			Target:   in.spec.Area,
			Clipped:  clipped,
		})
		e.opts.Logger.Debug("carved room",
			"room", in.id(),
			"rect", room.String(),
			"clipped", clipped,
			"free_regions", len(work.regions))
	}
	return placements, work.rects(), nil
}

// partnerRects returns the rectangles of already placed rooms related to in.
func partnerRects(in instance, placed []Placement) []geom.Rect {
	var out []geom.Rect
	for _, p := range placed {
		if in.spec.AdjacentTo(p.Spec.Name) || p.Spec.AdjacentTo(in.spec.Name) {
			out = append(out, p.Rect)
		}
	}
	return out
}

// carve cuts a room of the given area out of r along its longer side.
//
// The room is normally a strip spanning the shorter dimension of r, leaving a
// single remainder. When that strip would be a sliver more elongated than
// maxAspect, a square block is cut from a corner instead and the rest is
// split into two regions (guillotine cut). A strip that is too long rather
// than too thin is kept, since no square of the same area fits across r. The room goes on the side of r that touches a
// partner, otherwise on the left or top edge. If area is at least the area
// of r, the whole region is returned; clipped reports area > r.Area().
func carve(r geom.Rect, area, maxAspect float64, partners []geom.Rect) (room geom.Rect, rest []geom.Rect, clipped bool) {
	if area >= r.Area()-areaTolerance {
		return r, nil, area > r.Area()+areaTolerance
	}

	right := partnerOnSide(r, geom.SideRight, partners)
	bottom := partnerOnSide(r, geom.SideBottom, partners)

	var strip geom.Rect
	if r.W >= r.H {
		strip = geom.R(0, 0, area/r.H, r.H)
	} else {
		strip = geom.R(0, 0, r.W, area/r.W)
	}

	s := math.Sqrt(area)
	if strip.Aspect() <= maxAspect || s > r.MinSide() {
		x, y := r.Left(), r.Top()
		if r.W >= r.H {
			if right {
				x = r.Right() - strip.W
				return geom.R(x, y, strip.W, r.H), []geom.Rect{geom.R(r.Left(), y, r.W-strip.W, r.H)}, false
			}
			return geom.R(x, y, strip.W, r.H), []geom.Rect{geom.R(x+strip.W, y, r.W-strip.W, r.H)}, false
		}
		if bottom {
			y = r.Bottom() - strip.H
			return geom.R(x, y, r.W, strip.H), []geom.Rect{geom.R(x, r.Top(), r.W, r.H-strip.H)}, false
		}
		return geom.R(x, y, r.W, strip.H), []geom.Rect{geom.R(x, y+strip.H, r.W, r.H-strip.H)}, false
	}

	x, y := r.Left(), r.Top()
	if right {
		x = r.Right() - s
	}
	if bottom {
		y = r.Bottom() - s
	}
	room = geom.R(x, y, s, s)

	// beside spans the room's row or column; main is the rest of r.
	var main, beside geom.Rect
	if r.W >= r.H {
		mainX := r.Left() + s
		if right {
			mainX = r.Left()
		}
		main = geom.R(mainX, r.Top(), r.W-s, r.H)
		besideY := y + s
		if bottom {
			besideY = r.Top()
		}
		beside = geom.R(x, besideY, s, r.H-s)
	} else {
		mainY := r.Top() + s
		if bottom {
			mainY = r.Top()
		}
		main = geom.R(r.Left(), mainY, r.W, r.H-s)
		besideX := x + s
		if right {
			besideX = r.Left()
		}
		beside = geom.R(besideX, y, r.W-s, s)
	}
	return room, []geom.Rect{main, beside}, false
}

// partnerOnSide reports whether a partner touches r along the given side and
// not along the opposite start side, which already receives the strip by
// default.
func partnerOnSide(r geom.Rect, side geom.Side, partners []geom.Rect) bool {
	start := geom.SideLeft
	if side == geom.SideBottom {
		start = geom.SideTop
	}
	onSide, onStart := false, false
	for _, p := range partners {
		_, s, ok := geom.SharedEdge(r, p)
		if !ok {
			continue
		}
		switch s {
		case side:
			onSide = true
		case start:
			onStart = true
		}
	}
	return onSide && !onStart
}
