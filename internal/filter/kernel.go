package filter

import "math"

// gauss7 holds the weights of the 7-tap Gaussian, center at index 3.
var gauss7 = [7]float32{0.124597, 0.142046, 0.155931, 0.160854, 0.155931, 0.142046, 0.124597}

// Sobel operators, indexed [row][column].
var (
	sobelX = [3][3]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// convolve3 applies a 3×3 operator to a 3×3 block of samples.
func convolve3(op *[3][3]float32, s *[3][3]float32) float32 {
	var sum float32
	for r := range 3 {
		for c := range 3 {
			sum += op[r][c] * s[r][c]
		}
	}
	return sum
}

// unfloat clamps v to [0, 255] and truncates it toward zero.
func unfloat(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// clampf limits v to [lo, hi].
func clampf(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

func hypot(dx, dy float32) float32 {
	return float32(math.Sqrt(float64(dx)*float64(dx) + float64(dy)*float64(dy)))
}
