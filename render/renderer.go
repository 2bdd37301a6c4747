/*
NAME
  renderer.go

DESCRIPTION
  renderer.go provides the renderer facade: loading an animation and its
  sub-animations, locating a static sprite, and producing PNG stills and
  WebM video from the render walk.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package render provides the ANM rendering engine: the frame-stream
// interpreter, the recursive sprite walker, and a facade producing still
// and video renders.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/anm/container/anm"
	"github.com/ausocean/anm/geom"
	"github.com/ausocean/anm/video"
)

// To indicate package when logging.
const pkg = "render: "

// Measured boxes are inflated by this margin, in pixels, on both axes.
const renderMargin = 16

// Renderer errors.
var (
	ErrMissingTexture = errors.New("animation has no atlas texture")
	ErrNoStaticSprite = errors.New("no sprite name matched a static pattern")
	ErrEmptyRender    = errors.New("nothing to render")
)

// Static sprite name patterns, most specific first. Discovery returns the
// first sprite matching the earliest pattern.
var staticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`1_AnimStatique-Boucle$`),
	regexp.MustCompile(`1_AnimStatic-Boucle$`),
	regexp.MustCompile(`1_AnimStatique$`),
	regexp.MustCompile(`1_AnimStatic$`),
	regexp.MustCompile(`1_AnimStatique`),
	regexp.MustCompile(`1_AnimStatic`),
	regexp.MustCompile(`1_AnimMarche`),
}

// Renderer owns a decoded animation, its atlas texture if one is declared,
// and a child renderer per sub-animation named by the local index. The
// renderer graph is a tree owned from the root; parent back-references are
// non-owning and used only for id lookup.
type Renderer struct {
	cfg       Config
	typ, id   string
	anim      *anm.Animation
	atlas     *image.RGBA
	parent    *Renderer
	children  []*Renderer
	reference int
}

// Load locates animations/<typ>/<id>.anm under the configured game root,
// decodes it, loads any sub-animations named by its index, and loads the
// atlas texture when the file declares one.
func Load(cfg Config, typ, id string) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("could not validate config: %w", err)
	}
	if !ValidType(typ) {
		return nil, errors.Wrap(ErrBadType, typ)
	}
	return load(cfg, typ, id, nil, 0)
}

// New returns a renderer over an already decoded animation and atlas. It
// is intended for callers that manage their own file access.
func New(cfg Config, anim *anm.Animation, atlas *image.RGBA) *Renderer {
	return &Renderer{cfg: cfg, anim: anim, atlas: atlas}
}

func load(cfg Config, typ, id string, parent *Renderer, ref int) (*Renderer, error) {
	path := filepath.Join(cfg.GameRoot, "animations", typ, strings.TrimSuffix(id, ".anm")+".anm")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read animation file: %w", err)
	}

	a, err := anm.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	if a.Residual != 0 {
		cfg.Logger.Warning(pkg+"undecoded bytes after animation", "path", path, "residual", a.Residual)
	}

	r := &Renderer{cfg: cfg, typ: typ, id: id, anim: a, parent: parent, reference: ref}

	if a.Index != nil {
		for i, name := range a.Index.FileNames {
			child, err := load(cfg, typ, name, r, i)
			if err != nil {
				return nil, fmt.Errorf("could not load sub-animation %s: %w", name, err)
			}
			r.children = append(r.children, child)
		}
	}

	if a.Texture != nil {
		r.atlas, err = loadAtlas(filepath.Join(cfg.GameRoot, "animations", typ, "Atlas", a.Texture.Name+".png"))
		if err != nil {
			return nil, err
		}
	}

	cfg.Logger.Debug(pkg+"loaded animation", "path", path, "sprites", len(a.Sprites), "shapes", len(a.Shapes), "children", len(r.children))
	return r, nil
}

func loadAtlas(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open atlas: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode atlas %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba, nil
}

// Animation returns the decoded animation.
func (r *Renderer) Animation() *anm.Animation { return r.anim }

// Children returns the sub-animation renderers in index order.
func (r *Renderer) Children() []*Renderer { return r.children }

// Reference returns the child index of this renderer within its parent.
func (r *Renderer) Reference() int { return r.reference }

// HasTexture reports whether the animation declared an atlas and the atlas
// loaded.
func (r *Renderer) HasTexture() bool { return r.anim.Texture != nil && r.atlas != nil }

// EffectiveScale is the per-file scale, defaulting to one, multiplied by
// the display scale.
func (r *Renderer) EffectiveScale() float64 {
	s := 1.0
	if r.anim.Index != nil && r.anim.Index.Scale != nil && *r.anim.Index.Scale != 0 {
		s = float64(*r.anim.Index.Scale)
	}
	scale := r.cfg.DisplayScale
	if scale <= 0 {
		scale = defaultDisplayScale
	}
	return s * scale
}

// FrameCount returns the number of frames a sprite animates over: one,
// except for frame-table payloads.
func (r *Renderer) FrameCount(s *anm.Sprite) int {
	if p, ok := s.Payload.(anm.Frames); ok {
		if fc := p.FrameCount(); fc > 0 {
			return fc
		}
	}
	return 1
}

// FindStaticSprite returns the first sprite whose name matches the
// earliest static pattern, searching this renderer's sprites first and
// then its children depth-first. The second return is the renderer owning
// the match.
func (r *Renderer) FindStaticSprite() (*anm.Sprite, *Renderer, error) {
	for _, p := range staticPatterns {
		for i := range r.anim.Sprites {
			if p.MatchString(r.anim.Sprites[i].Name) {
				return &r.anim.Sprites[i], r, nil
			}
		}
	}
	for _, c := range r.children {
		if s, owner, err := c.FindStaticSprite(); err == nil {
			return s, owner, nil
		}
	}
	return nil, nil, ErrNoStaticSprite
}

// measure walks the sprite for each listed frame with the measuring sink
// and returns the accumulated box, inflated by the render margin.
func (r *Renderer) measure(s *anm.Sprite, frames []int) (geom.Box, error) {
	m := NewMeasurer()
	w := NewWalker(r, m)
	sc := r.EffectiveScale()
	for _, f := range frames {
		if err := w.RenderSprite(s, rootTransform(sc, 0, 0), f); err != nil {
			return geom.Box{}, err
		}
	}
	return m.Box().Inflate(renderMargin, renderMargin), nil
}

// rootTransform scales then translates, with an identity color.
func rootTransform(scale, tx, ty float64) geom.SpriteTransform {
	return geom.SpriteTransform{
		Position: geom.Scale(scale, scale).Mul(geom.Translate(tx, ty)),
		Color:    geom.Multiply(geom.White),
	}
}

// renderInto rasterises one frame of the sprite centred into a canvas
// sized to box.
func (r *Renderer) renderInto(s *anm.Sprite, frame int, box geom.Box) (*image.RGBA, error) {
	if !r.HasTexture() {
		return nil, ErrMissingTexture
	}
	if box.Empty() {
		return nil, ErrEmptyRender
	}

	w := int(math.Ceil(box.Width()))
	h := int(math.Ceil(box.Height()))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	sc := r.EffectiveScale()
	root := rootTransform(sc, float64(w)/2-box.CenterX(), float64(h)/2-box.CenterY())

	walker := NewWalker(r, &rasterSink{canvas: canvas, atlas: r.atlas})
	if err := walker.RenderSprite(s, root, frame); err != nil {
		return nil, err
	}
	return canvas, nil
}

// allFrames lists [0, FrameCount).
func (r *Renderer) allFrames(s *anm.Sprite) []int {
	n := r.FrameCount(s)
	frames := make([]int, n)
	for i := range frames {
		frames[i] = i
	}
	return frames
}

// RenderFrame renders one frame of the sprite to PNG bytes. With allBox
// set the canvas is sized to the bound of every frame, so all frames of
// the sprite share a geometry; otherwise it crops to the requested frame.
func (r *Renderer) RenderFrame(s *anm.Sprite, frame int, allBox bool) ([]byte, error) {
	frames := []int{frame}
	if allBox {
		frames = r.allFrames(s)
	}
	box, err := r.measure(s, frames)
	if err != nil {
		return nil, fmt.Errorf("could not measure sprite: %w", err)
	}

	canvas, err := r.renderInto(s, frame, box)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("could not encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderVideo renders every frame of the sprite into a call-scoped staging
// directory and hands the sequence to the external encoder, returning the
// WebM bytes. The staging directory is released on all exit paths.
// Cancellation is checked between frames and before encoding.
func (r *Renderer) RenderVideo(ctx context.Context, s *anm.Sprite, enc *video.Encoder) ([]byte, error) {
	if !r.HasTexture() {
		return nil, ErrMissingTexture
	}

	box, err := r.measure(s, r.allFrames(s))
	if err != nil {
		return nil, fmt.Errorf("could not measure sprite: %w", err)
	}

	dir, err := os.MkdirTemp("", "anm-frames-")
	if err != nil {
		return nil, fmt.Errorf("could not create staging directory: %w", err)
	}
	defer os.RemoveAll(dir)

	n := r.FrameCount(s)
	for f := 0; f < n; f++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		canvas, err := r.renderInto(s, f, box)
		if err != nil {
			return nil, fmt.Errorf("could not render frame %d: %w", f, err)
		}
		if err := writePNG(filepath.Join(dir, fmt.Sprintf("img_%04d.png", f)), canvas); err != nil {
			return nil, err
		}
	}
	r.cfg.Logger.Info(pkg+"staged video frames", "frames", n, "dir", dir)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return enc.Encode(ctx, dir, r.anim.FrameRate)
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("could not encode frame: %w", err)
	}
	return f.Close()
}
