package chart

import (
	"fmt"
	"math"
)

// niceStep rounds a raw step up to 1, 2, 2.5 or 5 times a power of ten
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 2.5:
		return 2.5 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// niceRange widens [min, max] to multiples of a nice step giving about
// target intervals. A flat range is widened by one step on each side.
func niceRange(min, max float64, target int) (lo, hi, step float64) {
	if target < 1 {
		target = 1
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		step = niceStep(math.Abs(min) / float64(target))
		return min - step, max + step, step
	}
	step = niceStep((max - min) / float64(target))
	lo = math.Floor(min/step) * step
	hi = math.Ceil(max/step) * step
	return lo, hi, step
}

// maxTicks bounds the tick count yTicks will produce
const maxTicks = 100

// yTicks lists lo, lo+step, ... up to hi. It fails when the range is not
// finite or step is too small to advance lo.
func yTicks(lo, hi, step float64) ([]float64, error) {
	for _, v := range []float64{lo, hi, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("y axis range [%v, %v] step %v is not finite", lo, hi, step)
		}
	}
	if step <= 0 || lo+step == lo || hi < lo {
		return nil, fmt.Errorf("y axis step %v cannot advance from %v to %v", step, lo, hi)
	}
	n := math.Round((hi - lo) / step)
	if n > maxTicks {
		return nil, fmt.Errorf("y axis range [%v, %v] needs %v ticks of %v", lo, hi, n, step)
	}

	ticks := make([]float64, 0, int(n)+1)
	for i := 0; i <= int(n); i++ {
		ticks = append(ticks, lo+float64(i)*step)
	}
	return ticks, nil
}
