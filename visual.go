package arbor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// VisualKind identifies the concrete type behind a Visual.
type VisualKind uint8

const (
	VisualKindSprite VisualKind = iota // textured quad (Sprite)
	VisualKindShape                    // solid-color rectangle (Shape)
	VisualKindLabel                    // text rendered with a font.Face (Label)
)

// String returns the kind name used in accessor panic messages.
func (k VisualKind) String() string {
	switch k {
	case VisualKindSprite:
		return "sprite"
	case VisualKindShape:
		return "shape"
	case VisualKindLabel:
		return "label"
	default:
		return fmt.Sprintf("VisualKind(%d)", uint8(k))
	}
}

// Visual is the drawable payload a node may carry. A visual belongs to at
// most one node at a time; the node maintains the back-reference and the
// needs-redraw flag on attach and during Visit.
//
// The set of implementations is closed: setNode is unexported, so only the
// variants defined in this package (Sprite, Shape, Label) satisfy Visual.
type Visual interface {
	// Kind identifies the concrete variant.
	Kind() VisualKind
	// Node returns the owning node, or nil while detached.
	Node() *Node
	// NeedsRedraw reports whether the visual changed since the embedding
	// renderer last drew (and cleared) it.
	NeedsRedraw() bool
	// MarkForRedraw raises the redraw flag. Visit calls this whenever the
	// owning node's world transform is recomputed.
	MarkForRedraw()
	// ClearRedraw lowers the redraw flag. The renderer calls this after
	// drawing; arbor never lowers it itself.
	ClearRedraw()

	setNode(n *Node)
}

// visualBase carries the attachment bookkeeping shared by all variants.
type visualBase struct {
	node        *Node
	needsRedraw bool
}

func (b *visualBase) Node() *Node       { return b.node }
func (b *visualBase) NeedsRedraw() bool { return b.needsRedraw }
func (b *visualBase) MarkForRedraw()    { b.needsRedraw = true }
func (b *visualBase) ClearRedraw()      { b.needsRedraw = false }
func (b *visualBase) setNode(n *Node)   { b.node = n }

// --- Node attachment ---

// SetVisual attaches v as this node's drawable, replacing any previous one.
// The previous visual's back-reference is cleared; the new visual's
// back-reference is set to this node and its redraw flag is raised. If v
// was attached to another node, that node is detached first.
//
// SetVisual(nil) detaches without attaching a replacement. The node never
// owns the visual's lifetime beyond this bookkeeping.
func (n *Node) SetVisual(v Visual) {
	if n.visual == v {
		return
	}
	if n.visual != nil {
		n.visual.setNode(nil)
	}
	n.visual = v
	if v == nil {
		return
	}
	if owner := v.Node(); owner != nil && owner != n {
		owner.visual = nil
	}
	v.setNode(n)
	v.MarkForRedraw()
}

// Visual returns the attached drawable, or nil.
func (n *Node) Visual() Visual {
	return n.visual
}

// Sprite returns the attached visual as a *Sprite. Treating a node's visual
// as a kind it is not is a programming error, so Sprite panics with the
// node's name if the visual is absent or of another kind.
func (n *Node) Sprite() *Sprite {
	s, ok := n.visual.(*Sprite)
	if !ok {
		panic(visualMismatch(n, VisualKindSprite))
	}
	return s
}

// Shape returns the attached visual as a *Shape, panicking on mismatch.
func (n *Node) Shape() *Shape {
	s, ok := n.visual.(*Shape)
	if !ok {
		panic(visualMismatch(n, VisualKindShape))
	}
	return s
}

// Label returns the attached visual as a *Label, panicking on mismatch.
func (n *Node) Label() *Label {
	l, ok := n.visual.(*Label)
	if !ok {
		panic(visualMismatch(n, VisualKindLabel))
	}
	return l
}

func visualMismatch(n *Node, want VisualKind) string {
	if n.visual == nil {
		return fmt.Sprintf("arbor: node %q has no visual, want %s", n.Name, want)
	}
	return fmt.Sprintf("arbor: node %q: visual is %s, not %s", n.Name, n.visual.Kind(), want)
}

// --- Sprite ---

// Sprite renders a full image at the node's world transform.
type Sprite struct {
	visualBase
	Image *ebiten.Image
	Color Color
}

// NewSprite creates a detached sprite visual for the given image.
func NewSprite(img *ebiten.Image) *Sprite {
	return &Sprite{Image: img, Color: ColorWhite}
}

func (s *Sprite) Kind() VisualKind { return VisualKindSprite }

// Draw renders the sprite to dst using the given world matrix and clears
// the redraw flag.
func (s *Sprite) Draw(dst *ebiten.Image, geom ebiten.GeoM) {
	if s.Image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geom}
	op.ColorScale.Scale(
		float32(s.Color.R), float32(s.Color.G), float32(s.Color.B), float32(s.Color.A))
	dst.DrawImage(s.Image, op)
	s.needsRedraw = false
}

// --- Shape ---

// Shape renders a solid-color rectangle by stretching WhitePixel.
type Shape struct {
	visualBase
	Width, Height float64
	Color         Color
}

// NewShape creates a detached rectangle visual.
func NewShape(width, height float64, c Color) *Shape {
	return &Shape{Width: width, Height: height, Color: c}
}

func (s *Shape) Kind() VisualKind { return VisualKindShape }

// Draw renders the rectangle to dst and clears the redraw flag.
func (s *Shape) Draw(dst *ebiten.Image, geom ebiten.GeoM) {
	var g ebiten.GeoM
	g.Scale(s.Width, s.Height)
	g.Concat(geom)
	op := &ebiten.DrawImageOptions{GeoM: g}
	op.ColorScale.Scale(
		float32(s.Color.R), float32(s.Color.G), float32(s.Color.B), float32(s.Color.A))
	dst.DrawImage(WhitePixel, op)
	s.needsRedraw = false
}

// --- Label ---

// Label renders a single line of text with an x/image font.Face.
type Label struct {
	visualBase
	Text  string
	Face  font.Face
	Color Color
}

// NewLabel creates a detached text visual.
func NewLabel(content string, face font.Face) *Label {
	return &Label{Text: content, Face: face, Color: ColorWhite}
}

func (l *Label) Kind() VisualKind { return VisualKindLabel }

// Bounds measures the text with the label's face. The rectangle is in the
// node's local space with the origin at the text baseline start.
func (l *Label) Bounds() Rect {
	if l.Face == nil {
		return Rect{}
	}
	width := font.MeasureString(l.Face, l.Text)
	metrics := l.Face.Metrics()
	return Rect{
		X:      0,
		Y:      -float64(metrics.Ascent) / 64,
		Width:  float64(width) / 64,
		Height: float64(metrics.Ascent+metrics.Descent) / 64,
	}
}

// Draw renders the text to dst and clears the redraw flag. Only the
// translation row of the world matrix is honored; rotating or scaling text
// requires rendering it to an offscreen image and using a Sprite.
func (l *Label) Draw(dst *ebiten.Image, geom ebiten.GeoM) {
	if l.Face == nil {
		return
	}
	x := geom.Element(0, 2)
	y := geom.Element(1, 2)
	text.Draw(dst, l.Text, l.Face, int(x), int(y), l.rgba())
	l.needsRedraw = false
}

func (l *Label) rgba() color.RGBA {
	return l.Color.toRGBA()
}
