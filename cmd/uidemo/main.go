// Command uidemo builds a demonstration frame end to end: it lays out
// a line of text, rasterizes its glyphs into the atlas, assembles a
// scene, and renders it through the scene renderer on a recording
// device, reporting the draw calls the frame produced.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ui"
	"github.com/gogpu/ui/atlas"
	"github.com/gogpu/ui/internal/gpu"
	"github.com/gogpu/ui/render"
	"github.com/gogpu/ui/scene"
	"github.com/gogpu/ui/text"
)

type glyphKey struct {
	font    text.FontID
	glyph   text.GlyphID
	size    float32
	variant text.SubpixelVariant
}

func main() {
	var (
		width    = flag.Int("width", 800, "viewport width in device pixels")
		height   = flag.Int("height", 600, "viewport height in device pixels")
		message  = flag.String("message", "Hello, gogpu!", "text to lay out and draw")
		fontSize = flag.Float64("size", 24, "font size in pixels")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		ui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ts, err := text.NewTextSystem(text.ResolverConfig{})
	if err != nil {
		log.Fatalf("text system: %v", err)
	}

	fontID, err := ts.FontID(text.Font{Family: "Go"})
	if err != nil {
		log.Fatalf("resolve font: %v", err)
	}
	layout := ts.LayoutLine(*message, float32(*fontSize), []text.FontRun{
		{Len: len(*message), Font: fontID},
	})

	dev := gpu.NewRecordingDevice()
	glyphAtlas := atlas.New[glyphKey](render.NewTextureStore(dev), atlas.Config{})
	defer glyphAtlas.Release()

	renderer, err := render.NewSceneRenderer(dev, render.Config{Atlas: glyphAtlas})
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer renderer.Release()

	viewport := ui.DeviceSize{Width: ui.DevicePixels(*width), Height: ui.DevicePixels(*height)}
	sc := buildScene(ts, glyphAtlas, layout, float32(*width), float32(*height))

	target, err := dev.CreateTexture(&gpu.TextureDesc{
		Label:  "demo_target",
		Width:  *width,
		Height: *height,
		Format: gpu.TextureFormatBGRA8Unorm,
		Usage:  gpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		log.Fatalf("target: %v", err)
	}

	if err := renderer.Draw(sc, target, viewport); err != nil {
		log.Fatalf("draw: %v", err)
	}

	fmt.Printf("laid out %q: width %.1f px, ascent %.1f, descent %.1f\n",
		*message, layout.Width, layout.Ascent, layout.Descent)
	fmt.Printf("atlas tiles: %d\n", glyphAtlas.Len())
	fmt.Printf("draw calls:\n")
	for _, d := range dev.AllDraws() {
		fmt.Printf("  %-20s %3d instances, %4d vertices\n", d.Pipeline, d.InstanceCount, d.VertexCount)
	}
}

func buildScene(ts *text.TextSystem, glyphAtlas *atlas.Atlas[glyphKey], layout text.LineLayout, width, height float32) *scene.Scene {
	sc := scene.NewScene()
	mask := scene.ContentMask{Bounds: ui.Rect(0, 0, width, height)}

	// Backdrop and a floating panel with a drop shadow.
	sc.InsertQuad(scene.Quad{
		Order:       sc.NextOrder(),
		Bounds:      ui.Rect(0, 0, width, height),
		ContentMask: mask,
		Background:  ui.Hsla{H: 0.6, S: 0.2, L: 0.14, A: 1},
	})
	panel := ui.Rect(40, 40, 40+layout.Width+48, 40+layout.Ascent+layout.Descent+48)
	sc.InsertShadow(scene.Shadow{
		Order:       sc.NextOrder(),
		Bounds:      panel,
		ContentMask: mask,
		Color:       ui.Hsla{A: 0.4},
		CornerRadii: ui.UniformCorners(8),
		BlurRadius:  12,
	})
	sc.InsertQuad(scene.Quad{
		Order:        sc.NextOrder(),
		Bounds:       panel,
		ContentMask:  mask,
		Background:   ui.Hsla{H: 0.6, S: 0.15, L: 0.22, A: 1},
		BorderColor:  ui.Hsla{H: 0.6, S: 0.3, L: 0.4, A: 1},
		CornerRadii:  ui.UniformCorners(8),
		BorderWidths: ui.UniformEdges(1),
	})

	insertGlyphs(ts, glyphAtlas, sc, layout, ui.Pt(64, 64+layout.Ascent), mask)

	// Wavy underline beneath the text.
	baseline := 64 + layout.Ascent
	sc.InsertUnderline(scene.Underline{
		Order:       sc.NextOrder(),
		Bounds:      ui.Rect(64, baseline+2, 64+layout.Width, baseline+8),
		ContentMask: mask,
		Color:       ui.Hsla{H: 0.08, S: 0.9, L: 0.6, A: 1},
		Thickness:   2,
		Wavy:        true,
	})

	// A curved flourish through the lower half of the frame.
	flourish := scene.NewPath()
	flourish.Order = sc.NextOrder()
	flourish.Color = ui.Hsla{H: 0.35, S: 0.7, L: 0.5, A: 0.8}
	flourish.ContentMask = mask
	flourish.MoveTo(ui.Pt(60, height-80))
	flourish.CurveTo(ui.Pt(width/2, height-180), ui.Pt(width-60, height-80))
	flourish.LineTo(ui.Pt(width-60, height-60))
	flourish.CurveTo(ui.Pt(width/2, height-160), ui.Pt(60, height-60))
	sc.InsertPath(flourish)

	return sc
}

// insertGlyphs rasterizes each positioned glyph at its quantized
// subpixel variant, packs it into the atlas, and inserts a sprite per
// covered glyph.
func insertGlyphs(ts *text.TextSystem, glyphAtlas *atlas.Atlas[glyphKey], sc *scene.Scene, layout text.LineLayout, origin ui.Point, mask scene.ContentMask) {
	subpixel := text.DefaultSubpixelConfig()
	order := sc.NextOrder()

	for _, run := range layout.Runs {
		for _, glyph := range run.Glyphs {
			pos := ui.Pt(origin.X+glyph.Position.X, origin.Y+glyph.Position.Y)
			device, variant := text.QuantizePoint(pos, subpixel)

			params := text.RenderGlyphParams{
				Font:        run.Font,
				Glyph:       glyph.ID,
				FontSize:    layout.FontSize,
				ScaleFactor: 1,
				Subpixel:    variant,
				IsEmoji:     glyph.IsEmoji,
			}
			bounds, err := ts.GlyphRasterBounds(params)
			if err != nil || bounds.Size.IsEmpty() {
				continue
			}

			kind := atlas.TextureKindMonochrome
			if glyph.IsEmoji {
				kind = atlas.TextureKindPolychrome
			}
			key := glyphKey{font: run.Font, glyph: glyph.ID, size: layout.FontSize, variant: variant}
			tile, _, err := glyphAtlas.GetOrInsertWith(key, kind, func() (atlas.Bitmap, error) {
				size, data, err := ts.RasterizeGlyph(params, bounds)
				if err != nil {
					return atlas.Bitmap{}, err
				}
				return atlas.Bitmap{Size: size, Data: data}, nil
			})
			if err != nil {
				ui.Logger().Warn("uidemo: glyph rasterization failed", "glyph", glyph.ID, "err", err)
				continue
			}

			spriteBounds := ui.Rect(
				float32(device.X+bounds.Origin.X),
				float32(device.Y+bounds.Origin.Y),
				float32(device.X+bounds.Origin.X)+float32(bounds.Size.Width),
				float32(device.Y+bounds.Origin.Y)+float32(bounds.Size.Height),
			)
			if glyph.IsEmoji {
				sc.InsertPolychromeSprite(scene.PolychromeSprite{
					Order:       order,
					Bounds:      spriteBounds,
					ContentMask: mask,
					Tile:        tile,
				})
			} else {
				sc.InsertMonochromeSprite(scene.MonochromeSprite{
					Order:       order,
					Bounds:      spriteBounds,
					ContentMask: mask,
					Color:       ui.Hsla{L: 0.95, A: 1},
					Tile:        tile,
				})
			}
		}
	}
}
