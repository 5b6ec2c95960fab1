// Package ui provides the rendering and text subsystem of a GPU-backed
// GUI toolkit: a per-frame scene of drawing primitives batched by type,
// a text system that resolves, shapes and rasterizes styled text, a
// texture atlas for glyph and image tiles, and a renderer that turns
// scene batches into GPU draw calls.
//
// The root package holds the shared value types: geometry in scaled
// (device) pixel space, integer device-pixel bounds for rasterized
// bitmaps, and HSLA/RGBA colors.
//
// Subpackages:
//   - scene: drawing primitives and ordered type-homogeneous batches
//   - text: font resolution, shaping, glyph rasterization
//   - atlas: bin-packing of rasterized tiles into GPU textures
//   - render: the GPU renderer consuming scene batches
//   - platform: window/display glue supplying surfaces and frames
package ui
