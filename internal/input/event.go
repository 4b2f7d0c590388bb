package input

import (
	"fmt"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

// Button follows DOM MouseEvent.button numbering
type Button int

const (
	Primary   Button = 0
	Auxiliary Button = 1
	Secondary Button = 2
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Auxiliary:
		return "auxiliary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Kind names an input event type
type Kind string

const (
	PointerDown  Kind = "pointerdown"
	PointerMove  Kind = "pointermove"
	PointerUp    Kind = "pointerup"
	PointerLeave Kind = "pointerleave"
	Wheel        Kind = "wheel"
	ContextMenu  Kind = "contextmenu"
	Click        Kind = "click"
)

// Event is a raw input event in client coordinates
type Event struct {
	Kind   Kind    `json:"type" yaml:"type"`
	Button Button  `json:"button,omitempty" yaml:"button,omitempty"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	DeltaY float64 `json:"deltaY,omitempty" yaml:"deltaY,omitempty"`
}

// Position returns the event location in client coordinates
func (e Event) Position() canvas.Point {
	return canvas.Point{X: e.X, Y: e.Y}
}

// Validate rejects events the controller does not understand
func (e Event) Validate() error {
	switch e.Kind {
	case PointerDown, PointerMove, PointerUp, PointerLeave, Wheel, ContextMenu, Click:
		return nil
	case "":
		return fmt.Errorf("event type is required")
	default:
		return fmt.Errorf("unknown event type: %s", e.Kind)
	}
}

// Result tells the caller what a handled event did
type Result struct {
	// PreventDefault asks the host to suppress native scroll, zoom or context menu
	PreventDefault   bool          `json:"preventDefault"`
	TransformChanged bool          `json:"transformChanged"`
	DragStarted      bool          `json:"dragStarted,omitempty"`
	DragEnded        bool          `json:"dragEnded,omitempty"`
	// Press and Click carry primary-button locations in container coordinates
	Press *canvas.Point `json:"press,omitempty"`
	Click *canvas.Point `json:"click,omitempty"`
}
