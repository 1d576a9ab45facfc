package parallel

// bandsPerWorker over-splits the frame so work stealing can even out bands
// that take longer than others.
const bandsPerWorker = 4

// Band is a half-open range of rows [Y0, Y1) processed by one work item.
type Band struct {
	Y0, Y1 int
}

// SplitRows divides height rows into at most n contiguous bands of nearly
// equal size. Bands cover every row exactly once, in order.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = max(1, min(n, height))

	bands := make([]Band, 0, n)
	base := height / n
	extra := height % n

	y := 0
	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}
