// Package input turns raw pointer and wheel events into camera updates.
package input

import (
	"github.com/ivlev/canvasdeck/internal/canvas"
)

// State of the drag state machine
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller owns the drag state for one container and mutates its transform.
// Handlers are expected to run on a single dispatch goroutine.
type Controller struct {
	transform *canvas.Transform
	origin    canvas.Point
	step      float64
	panButton Button

	state        State
	lastPosition canvas.Point
}

// NewController binds a controller to the transform it drives.
// origin is the container's top-left corner in client coordinates.
func NewController(t *canvas.Transform, origin canvas.Point, step float64) *Controller {
	if step <= 0 {
		step = canvas.ZoomStep
	}
	return &Controller{
		transform: t,
		origin:    origin,
		step:      step,
		panButton: Auxiliary,
	}
}

// SetOrigin updates the container origin after a resize or relayout
func (c *Controller) SetOrigin(origin canvas.Point) {
	c.origin = origin
}

// State returns the current drag state
func (c *Controller) State() State {
	return c.state
}

// Cursor returns the cursor the host should show over the canvas
func (c *Controller) Cursor() string {
	if c.state == Dragging {
		return "grabbing"
	}
	return "default"
}

// Handle applies one event. It never fails: unknown or irrelevant events are no-ops.
func (c *Controller) Handle(ev Event) Result {
	switch ev.Kind {
	case PointerDown:
		return c.pointerDown(ev)
	case PointerMove:
		return c.pointerMove(ev)
	case PointerUp:
		if c.state == Dragging && ev.Button == c.panButton {
			return c.release()
		}
	case PointerLeave:
		if c.state == Dragging {
			return c.release()
		}
	case Wheel:
		c.transform.ZoomAt(c.local(ev.Position()), canvas.WheelDelta(ev.DeltaY, c.step))
		return Result{PreventDefault: true, TransformChanged: true}
	case ContextMenu:
		if ev.Button == c.panButton || c.state == Dragging {
			return Result{PreventDefault: true}
		}
	case Click:
		if ev.Button == Primary {
			p := c.local(ev.Position())
			return Result{Click: &p}
		}
	}
	return Result{}
}

func (c *Controller) pointerDown(ev Event) Result {
	switch ev.Button {
	case c.panButton:
		c.state = Dragging
		c.lastPosition = ev.Position()
		return Result{PreventDefault: true, DragStarted: true}
	case Primary:
		p := c.local(ev.Position())
		return Result{Press: &p}
	}
	return Result{}
}

func (c *Controller) pointerMove(ev Event) Result {
	if c.state != Dragging {
		return Result{}
	}
	pos := ev.Position()
	delta := pos.Sub(c.lastPosition)
	c.lastPosition = pos
	if delta.X == 0 && delta.Y == 0 {
		return Result{}
	}
	c.transform.Pan(delta.X, delta.Y)
	return Result{TransformChanged: true}
}

func (c *Controller) release() Result {
	c.state = Idle
	return Result{DragEnded: true}
}

func (c *Controller) local(p canvas.Point) canvas.Point {
	return p.Sub(c.origin)
}
