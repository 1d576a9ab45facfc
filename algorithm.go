package anime4k

import (
	"fmt"
	"strings"

	"github.com/gogpu/anime4k/internal/pipeline"
)

// Algorithm selects the Anime4K generation used for refinement.
type Algorithm int

const (
	// V09 is the single-grid v0.9 algorithm: luminance, color push,
	// Sobel gradient and gradient push.
	V09 Algorithm = iota

	// V10RC2 is the v1.0 release candidate 2 algorithm with a separate
	// data grid, Gaussian blur and line detection.
	V10RC2
)

// String returns the algorithm identifier ("v0.9", "v1.0-rc2").
func (a Algorithm) String() string {
	switch a {
	case V09:
		return "v0.9"
	case V10RC2:
		return "v1.0-rc2"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm converts an identifier into an Algorithm. The leading "v"
// and letter case are optional.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v") {
	case "0.9", "09":
		return V09, nil
	case "1.0-rc2", "1.0rc2", "10rc2", "1.0":
		return V10RC2, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfiguration, s)
	}
}

// Set implements flag.Value.
func (a *Algorithm) Set(s string) error {
	v, err := ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// newPipeline returns the refinement pipeline for a.
func (a Algorithm) newPipeline() (pipeline.Pipeline, error) {
	switch a {
	case V09:
		return pipeline.V09(), nil
	case V10RC2:
		return pipeline.V10RC2(), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %v", ErrInvalidConfiguration, a)
	}
}
