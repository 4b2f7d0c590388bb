package slide

// frameOf returns an addressable copy of the slide's current frame so the
// pointer-receiver lookup methods (Node, Connector, Overlay) can be called.
func frameOf(s *Slide) *Frame {
	f := s.Frame()
	return &f
}
