package deck

// Deck is a set of slides loaded from a YAML or TOML file
type Deck struct {
	Version string  `yaml:"version" toml:"version"`
	Title   string  `yaml:"title,omitempty" toml:"title"`
	Slides  []Slide `yaml:"slides" toml:"slides"`
}

// Slide declares the content of one canvas: nodes, connectors, branches and overlays
type Slide struct {
	ID         string      `yaml:"id" toml:"id"`
	Title      string      `yaml:"title,omitempty" toml:"title"`
	Route      string      `yaml:"route,omitempty" toml:"route"`           // e.g. /lessons/lesson1/slide1
	Background string      `yaml:"background,omitempty" toml:"background"` // file.pdf#page or image path
	Nodes      []Node      `yaml:"nodes" toml:"nodes"`
	Connectors []Connector `yaml:"connectors,omitempty" toml:"connectors"`
	Branches   []Branch    `yaml:"branches,omitempty" toml:"branches"`
	Overlays   []Overlay   `yaml:"overlays,omitempty" toml:"overlays"`
}

// Position holds CSS-like edge offsets ("50%", "120px", "calc(50% + 120px)")
type Position struct {
	Left   string `yaml:"left,omitempty" toml:"left"`
	Top    string `yaml:"top,omitempty" toml:"top"`
	Right  string `yaml:"right,omitempty" toml:"right"`
	Bottom string `yaml:"bottom,omitempty" toml:"bottom"`
}

// Offset is a fixed pixel delta
type Offset struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Node is an emoji or panel placed on the canvas
type Node struct {
	ID       string   `yaml:"id" toml:"id"`
	Symbol   string   `yaml:"symbol" toml:"symbol"`
	Label    string   `yaml:"label,omitempty" toml:"label"`
	Size     string   `yaml:"size,omitempty" toml:"size"` // font size, e.g. "5.5rem"
	Position Position `yaml:"position,omitempty" toml:"position"`
	Offset   Offset   `yaml:"offset,omitempty" toml:"offset"`
	// RelativeTo places the node at another node's anchor plus Offset
	RelativeTo string `yaml:"relativeTo,omitempty" toml:"relative_to"`

	Clickable       bool   `yaml:"clickable,omitempty" toml:"clickable"`
	Branch          string `yaml:"branch,omitempty" toml:"branch"`   // branch that mounts this node
	Toggles         string `yaml:"toggles,omitempty" toml:"toggles"` // branch expanded by clicking this node
	Overlay         string `yaml:"overlay,omitempty" toml:"overlay"` // overlay toggled by clicking this node
	ScaleWithCamera bool   `yaml:"scaleWithCamera,omitempty" toml:"scale_with_camera"`
}

// Connector joins two nodes with a line
type Connector struct {
	ID   string `yaml:"id,omitempty" toml:"id"`
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// Branch declares a collapsible subtree
type Branch struct {
	ID     string `yaml:"id" toml:"id"`
	Parent string `yaml:"parent,omitempty" toml:"parent"`
	Group  string `yaml:"group,omitempty" toml:"group"`
	Open   bool   `yaml:"open,omitempty" toml:"open"`
}

// Overlay kinds
const (
	KindTooltip  = "tooltip"
	KindThinking = "thinking"
	KindInfo     = "info"
)

// Overlay is a tooltip, thinking box or info panel attached to a node
type Overlay struct {
	ID               string  `yaml:"id" toml:"id"`
	Trigger          string  `yaml:"trigger" toml:"trigger"`
	Kind             string  `yaml:"kind,omitempty" toml:"kind"`
	Group            string  `yaml:"group,omitempty" toml:"group"`
	DismissOnOutside bool    `yaml:"dismissOnOutside,omitempty" toml:"dismiss_on_outside"`
	Items            []Item  `yaml:"items" toml:"items"`
	Width            float64 `yaml:"width,omitempty" toml:"width"`
	Height           float64 `yaml:"height,omitempty" toml:"height"`
}

// Item is one entry in an overlay
type Item struct {
	Text        string `yaml:"text" toml:"text"`
	Highlighted bool   `yaml:"highlighted,omitempty" toml:"highlighted"`
	CrossedOut  bool   `yaml:"crossedOut,omitempty" toml:"crossed_out"`
}

// FindSlide returns the slide with the given id
func (d *Deck) FindSlide(id string) (*Slide, bool) {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i], true
		}
	}
	return nil, false
}

// ConnectorID returns the connector's id, deriving one from its endpoints if unset
func (c Connector) ConnectorID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.From + "->" + c.To
}
