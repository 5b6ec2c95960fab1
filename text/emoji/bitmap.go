// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package emoji

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// Bitmap decode errors.
var (
	// ErrNoBitmapData indicates the glyph carries no bitmap payload.
	ErrNoBitmapData = errors.New("emoji: glyph has no bitmap data")

	// ErrUnsupportedFormat indicates a bitmap encoding other than PNG.
	ErrUnsupportedFormat = errors.New("emoji: unsupported bitmap format")
)

// DecodePNG decodes one embedded PNG bitmap glyph, as stored in sbix
// and CBDT tables.
func DecodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoBitmapData
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Rescale draws src into a premultiplied RGBA image of the requested
// pixel size. Emoji strikes come in fixed ppem sizes, so nearly every
// draw needs a resample.
func Rescale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ToStraightBGRA converts premultiplied RGBA pixels (as stored in
// image.RGBA) into straight-alpha BGRA, the layout the polychrome
// atlas texture expects. The input is unchanged; a new buffer is
// returned. len(premul) must be a multiple of 4.
func ToStraightBGRA(premul []byte) []byte {
	out := make([]byte, len(premul))
	for i := 0; i+3 < len(premul); i += 4 {
		r, g, b, a := premul[i], premul[i+1], premul[i+2], premul[i+3]
		if a != 0 && a != 0xff {
			r = unmultiply(r, a)
			g = unmultiply(g, a)
			b = unmultiply(b, a)
		}
		out[i] = b
		out[i+1] = g
		out[i+2] = r
		out[i+3] = a
	}
	return out
}

// unmultiply rescales one premultiplied channel back to straight
// alpha, rounding to nearest.
func unmultiply(c, a uint8) uint8 {
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
