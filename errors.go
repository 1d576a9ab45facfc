package anime4k

import "errors"

// ErrInvalidConfiguration is returned, wrapped with details, when a Scaler
// is asked to run with a non-positive pass count, target size or scale
// factor, a negative or NaN strength, an unknown algorithm, or an empty
// image. It is reported before any pixel work begins.
var ErrInvalidConfiguration = errors.New("anime4k: invalid configuration")
