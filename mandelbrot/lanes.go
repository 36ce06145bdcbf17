package mandelbrot

// LaneWidth is the number of pixels iterated together.
const LaneWidth = 8

type lanes [LaneWidth]float32

type mask [LaneWidth]bool

type counts [LaneWidth]int32

// Lane-wise operations of the vector loop. Every product is rounded to float32
// by an explicit conversion so no multiply-add gets fused; escapeScalar rounds
// at the same points.

func mul(a, b *lanes) (r lanes) {
	for l := range r {
		r[l] = float32(a[l] * b[l])
	}
	return r
}

func add(a, b *lanes) (r lanes) {
	for l := range r {
		r[l] = a[l] + b[l]
	}
	return r
}

func sub(a, b *lanes) (r lanes) {
	for l := range r {
		r[l] = a[l] - b[l]
	}
	return r
}

// notAbove is !(a > bound). NaN lanes stay set, as in the scalar loop.
func notAbove(a *lanes, bound float32) (m mask) {
	for l := range m {
		m[l] = !(a[l] > bound)
	}
	return m
}

func and(a, b *mask) (m mask) {
	for l := range m {
		m[l] = a[l] && b[l]
	}
	return m
}

func (m *mask) any() bool {
	for _, set := range m {
		if set {
			return true
		}
	}
	return false
}

// blend takes a where m is set and b elsewhere.
func blend(m *mask, a, b *lanes) (r lanes) {
	for l := range r {
		if m[l] {
			r[l] = a[l]
		} else {
			r[l] = b[l]
		}
	}
	return r
}

func (n *counts) increment(m *mask) {
	for l := range n {
		if m[l] {
			n[l]++
		}
	}
}

// escapeLanes iterates z = z^2 + c with z0 = c for the lanes set in live and
// returns the escape count of every lane. Lanes drop out of the active mask
// the first time |z|^2 exceeds radius2 and keep their count from then on;
// the loop ends once no lane is active or maxIterations is reached.
func escapeLanes(x0, y0 *lanes, live mask, radius2 float32, maxIterations int32) counts {
	var n counts
	x, y := *x0, *y0
	active := live

	for i := int32(0); i < maxIterations; i++ {
		x2 := mul(&x, &x)
		y2 := mul(&y, &y)
		xy := mul(&x, &y)

		r2 := add(&x2, &y2)
		inside := notAbove(&r2, radius2)
		active = and(&active, &inside)
		if !active.any() {
			break
		}

		diff := sub(&x2, &y2)
		nextX := add(&diff, x0)
		twice := add(&xy, &xy)
		nextY := add(&twice, y0)

		x = blend(&active, &nextX, &x)
		y = blend(&active, &nextY, &y)
		n.increment(&active)
	}

	return n
}

// escapeScalar is the one lane version of escapeLanes.
func escapeScalar(x0, y0 float32, radius2 float32, maxIterations int32) int32 {
	x, y := x0, y0
	var n int32
	for n < maxIterations {
		x2 := float32(x * x)
		y2 := float32(y * y)
		xy := float32(x * y)
		if x2+y2 > radius2 {
			break
		}
		x = x2 - y2 + x0
		y = xy + xy + y0
		n++
	}
	return n
}
