// Package script replays recorded input against slide sessions.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/input"
	"github.com/ivlev/canvasdeck/internal/slide"
)

// Step types beyond the input event kinds
const (
	StepResize    = "resize"
	StepReset     = "reset"
	StepResetView = "resetView"
	StepToggle    = "toggle"
	StepOverlay   = "overlay"
)

// Step is one scripted action: an input event or a session command
type Step struct {
	Type   string  `json:"type" yaml:"type"`
	Button int     `json:"button,omitempty" yaml:"button,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty" yaml:"deltaY,omitempty"`
	W      float64 `json:"w,omitempty" yaml:"w,omitempty"`
	H      float64 `json:"h,omitempty" yaml:"h,omitempty"`
	Target string  `json:"target,omitempty" yaml:"target,omitempty"`
}

// Script is the list of steps for one slide
type Script struct {
	Slide string `yaml:"slide"`
	Steps []Step `yaml:"steps"`
}

// File groups scripts for several slides
type File struct {
	Scripts []Script `yaml:"scripts"`
}

// ReadFile reads a script file from YAML
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// For returns the steps scripted for a slide
func (f *File) For(slideID string) []Step {
	if f == nil {
		return nil
	}
	var steps []Step
	for _, s := range f.Scripts {
		if s.Slide == slideID {
			steps = append(steps, s.Steps...)
		}
	}
	return steps
}

// Event converts an input step to an event
func (s Step) Event() input.Event {
	return input.Event{
		Kind:   input.Kind(s.Type),
		Button: input.Button(s.Button),
		X:      s.X,
		Y:      s.Y,
		DeltaY: s.DeltaY,
	}
}

// Apply runs steps against a session in order and returns the input results.
// It stops at the first step it does not understand.
func Apply(sl *slide.Slide, steps []Step) ([]input.Result, error) {
	var results []input.Result
	for i, st := range steps {
		res, err := ApplyStep(sl, st)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	return results, nil
}

// ApplyStep runs one step. The result is nil for session commands.
func ApplyStep(sl *slide.Slide, st Step) (*input.Result, error) {
	switch st.Type {
	case StepResize:
		if st.W <= 0 || st.H <= 0 {
			return nil, fmt.Errorf("resize needs positive w and h")
		}
		sl.Resize(canvas.Rect{X: st.X, Y: st.Y, W: st.W, H: st.H})
	case StepReset:
		sl.Reset()
	case StepResetView:
		sl.ResetView()
	case StepToggle:
		sl.Toggle(st.Target)
	case StepOverlay:
		sl.ToggleOverlay(st.Target)
	default:
		ev := st.Event()
		if err := ev.Validate(); err != nil {
			return nil, err
		}
		res := sl.Dispatch(ev)
		return &res, nil
	}
	return nil, nil
}
