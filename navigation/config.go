package navigation

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/utils"
)

// Defaults used for unset tolerances.
const (
	DefaultNearTolerance       = 1.0
	DefaultPathTolerance       = 0.5
	DefaultAngularToleranceDeg = 5.0
)

// Config holds the tolerances the Navigator classifies poses with. Distances are in map units,
// angles in degrees. A nil field takes its default; an explicit 0 is kept.
type Config struct {
	NearTolerance       *float64 `json:"near_tolerance,omitempty"`
	PathTolerance       *float64 `json:"path_tolerance,omitempty"`
	AngularToleranceDeg *float64 `json:"angular_tolerance_deg,omitempty"`
}

// Tolerances are the resolved values a Navigator uses.
type Tolerances struct {
	Near       float64
	Path       float64
	AngularDeg float64
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.NearTolerance != nil && *cfg.NearTolerance < 0 {
		return utils.NewConfigValidationError(path, errors.New("near_tolerance must not be negative"))
	}
	if cfg.PathTolerance != nil && *cfg.PathTolerance < 0 {
		return utils.NewConfigValidationError(path, errors.New("path_tolerance must not be negative"))
	}
	if a := cfg.AngularToleranceDeg; a != nil && (*a < 0 || *a >= 180) {
		return utils.NewConfigValidationError(path, errors.New("angular_tolerance_deg must be in [0, 180)"))
	}
	return nil
}

// Tolerances fills unset fields with their defaults.
func (cfg Config) Tolerances() Tolerances {
	return Tolerances{
		Near:       lo.FromPtrOr(cfg.NearTolerance, DefaultNearTolerance),
		Path:       lo.FromPtrOr(cfg.PathTolerance, DefaultPathTolerance),
		AngularDeg: lo.FromPtrOr(cfg.AngularToleranceDeg, DefaultAngularToleranceDeg),
	}
}
