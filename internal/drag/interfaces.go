// Package drag implements the shared drag-coordination core: a single drag
// session at a time, a scale-around-grab transform rendered as a floating
// overlay on every output, optional snap-off resistance, and cross-output
// focus hand-off. Consumers own input grabs and feed motion/release events
// in; the core reports progress through typed signals.
package drag

import "github.com/wrensk/windrag/internal/geometry"

// Edges is a bitmask of screen edges a view is tiled against.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// EdgeNone marks a floating view.
const EdgeNone Edges = 0

// EdgesAll marks a fully maximized view.
const EdgesAll = EdgeLeft | EdgeRight | EdgeTop | EdgeBottom

// View is the draggable-surface capability the core needs. Implementations
// are owned by the window model; the core borrows one view per drag and
// never outlives it.
type View interface {
	// ID uniquely identifies the view for logging and physics bookkeeping.
	ID() uint32

	// Geometry returns the window-management geometry in layout
	// coordinates, with no transforms applied.
	Geometry() geometry.Rect
	// BoundingBox returns the on-screen rectangle with all installed
	// transforms applied.
	BoundingBox() geometry.Rect
	// Move places the top-left of the wm geometry.
	Move(x, y int)

	// SetVisible toggles the view's normal rendering. While hidden the
	// view is drawn only through the overlay path.
	SetVisible(visible bool)
	// Damage marks the view's current bounding box as needing redraw.
	Damage()
	// Mapped reports whether the view still exists on screen.
	Mapped() bool

	// Output and SetOutput track which output the view belongs to.
	Output() Output
	SetOutput(o Output)

	// AddTransform installs t under name; RemoveTransform removes the
	// transform installed under name; Transform returns it, or nil.
	AddTransform(name string, t Transform)
	RemoveTransform(name string)
	Transform(name string) Transform

	// RenderTransformed draws the view through its transform stack into
	// fb, scissored to the damage rectangles (layout coordinates).
	RenderTransformed(fb Framebuffer, damage []geometry.Rect)

	// Tiled/fullscreen edge state, re-applied by consumers after a drop.
	TiledEdges() Edges
	SetTiled(edges Edges)
	Fullscreen() bool
	SetFullscreen(full bool)

	// OnUnmap registers fn to run when the view unmaps. The returned
	// function cancels the registration.
	OnUnmap(fn func()) func()
}

// Output is one display region in the global layout with a render pipeline
// the core can hook into for a drag's duration.
type Output interface {
	Name() string
	// Geometry returns the output's rectangle in layout coordinates.
	Geometry() geometry.Rect
	// WorkArea returns Geometry minus panels and docks.
	WorkArea() geometry.Rect

	// AddEffect registers a per-frame hook at the given stage.
	AddEffect(stage EffectStage, hook func()) EffectHandle
	// Damage marks r, in output-local coordinates, as needing redraw.
	// Empty rectangles are ignored.
	Damage(r geometry.Rect)
	// Framebuffer returns the output's render target for the current
	// frame.
	Framebuffer() Framebuffer
}

// Compositor exposes the desktop-level services a drag needs: the output
// layout, output focus, and the pointer cursor.
type Compositor interface {
	Outputs() []Output
	// OutputAt returns the output whose layout geometry contains p.
	OutputAt(p geometry.Point) (Output, bool)
	// FocusOutput makes o the active output.
	FocusOutput(o Output)
	// SetCursor sets the pointer image by name ("grabbing", "default").
	SetCursor(name string)
}

// EffectStage selects where in an output's frame a hook runs.
type EffectStage int

const (
	// EffectPre runs before rendering; damage is computed here.
	EffectPre EffectStage = iota
	// EffectOverlay runs after normal content, before post-processing.
	EffectOverlay
)

// EffectHandle detaches a hook registered with AddEffect.
type EffectHandle interface {
	Remove()
}

// Texture is an opaque handle to a view's rendered content.
type Texture interface {
	Size() geometry.Size
}

// Framebuffer is a render target. Its geometry fixes the coordinate space
// draw calls are interpreted in.
type Framebuffer interface {
	// Geometry is the rectangle the framebuffer covers, in layout
	// coordinates.
	Geometry() geometry.Rect
	// Scissor restricts subsequent draws to r.
	Scissor(r geometry.Rect)
	// Blit draws tex scaled to fill dst.
	Blit(tex Texture, dst geometry.Rect)
}

// Transform is one entry in a view's transform stack.
type Transform interface {
	// BoundingBox maps the view's untransformed rectangle to the
	// rectangle it occupies on screen.
	BoundingBox(view geometry.Rect) geometry.Rect
	// TransformPoint and UntransformPoint map single points between the
	// untransformed and transformed spaces.
	TransformPoint(view geometry.Rect, p geometry.PointF) geometry.PointF
	UntransformPoint(view geometry.Rect, p geometry.PointF) geometry.PointF
	// ZOrder orders stacked transforms; higher values render later.
	ZOrder() int
	// Render draws the transformed view into fb, scissored per damage
	// rectangle.
	Render(src Texture, view geometry.Rect, damage []geometry.Rect, fb Framebuffer)
}

// Transform stacking levels. The drag transform sits just below the
// highest post-processing level so it covers content but not final
// effects.
const (
	ZOrderNormal    = 0
	ZOrderHighLevel = 1000
	ZOrderDragScale = ZOrderHighLevel - 1
)
