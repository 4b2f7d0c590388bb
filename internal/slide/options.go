package slide

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

// RecomputePolicy decides when connector geometry is refreshed
type RecomputePolicy string

const (
	// EveryCommit refreshes connectors after every committed change, including each drag step
	EveryCommit RecomputePolicy = "commit"
	// OnSettle keeps the last geometry while a drag is active and refreshes it when the drag ends
	OnSettle RecomputePolicy = "settle"
)

// ParseRecomputePolicy accepts "commit" (or empty) and "settle"
func ParseRecomputePolicy(s string) (RecomputePolicy, error) {
	switch RecomputePolicy(s) {
	case "", EveryCommit:
		return EveryCommit, nil
	case OnSettle:
		return OnSettle, nil
	default:
		return "", fmt.Errorf("unknown recompute policy: %s", s)
	}
}

// Options tune a slide session
type Options struct {
	ZoomStep  float64
	Recompute RecomputePolicy
	Logger    *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.ZoomStep <= 0 {
		o.ZoomStep = canvas.ZoomStep
	}
	if o.Recompute == "" {
		o.Recompute = EveryCommit
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}
