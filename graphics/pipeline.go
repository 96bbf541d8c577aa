// pipeline.go - Immutable per-call rendering state

package graphics

// DepthMode selects whether depth is tested, written, both, or neither.
type DepthMode int

const (
	// DepthDontCare performs no depth test and no depth write.
	DepthDontCare DepthMode = iota
	// DepthTest tests incoming fragments against the stored depth but does
	// not update it.
	DepthTest
	// DepthWrite tests (per the same <= rule as DepthTest) and writes the
	// surviving fragment's depth.
	DepthWrite
)

// Winding selects the front-facing vertex order.
type Winding int

const (
	WindingCW Winding = iota
	WindingCCW
)

// Pipeline bundles the immutable state of one render_indexed call: depth
// mode, culling, winding, an optional per-attachment blend vector, and the
// shader instance driving vertex/fragment stages.
type Pipeline[U any, W Blendable[W]] struct {
	Depth    DepthMode
	CullBack bool
	Winding  Winding

	// Blending is nil for passthrough (source color written unmodified), or
	// one BlendAttachment per color attachment otherwise.
	Blending []BlendAttachment

	Shader Shader[U, W]
}
