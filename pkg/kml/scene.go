package kml

// Scene is the per-frame traversal over a set of top-level features.
type Scene struct {
	features []Feature

	// Options are passed to every feature on every frame.
	Options RenderOptions
}

// NewScene creates a scene over features.
func NewScene(features ...Feature) *Scene {
	return &Scene{features: features}
}

// Add appends features to the scene.
func (s *Scene) Add(features ...Feature) {
	s.features = append(s.features, features...)
}

// Features returns the top-level features.
func (s *Scene) Features() []Feature { return s.features }

// RenderFrame starts a new frame on dc and renders every feature once.
func (s *Scene) RenderFrame(dc *DrawContext) {
	dc.BeginFrame()
	for _, f := range s.features {
		f.Render(dc, s.Options)
	}
}

// RenderUntilSettled renders frames until one finishes without requesting a
// redraw, or maxFrames frames have been rendered. It returns the number of
// frames rendered.
func (s *Scene) RenderUntilSettled(dc *DrawContext, maxFrames int) int {
	frames := 0
	for frames < maxFrames {
		s.RenderFrame(dc)
		frames++
		if !dc.RedrawRequested {
			break
		}
	}
	return frames
}
