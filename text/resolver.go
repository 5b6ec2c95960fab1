// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the family name under which the embedded fallback
// font is registered. It is always available, even with no fonts
// installed on the system.
const DefaultFamily = "Go"

const embeddedFileID = "embedded://goregular"

// LoadedFont is one entry in the resolver's font table. The raw data
// and the parsed font are shared by concurrent glyph queries;
// font.Font is read-only and safe for concurrent use.
type LoadedFont struct {
	// Data is the raw font file, nil if the file could not be read
	// back from its on-disk location.
	Data []byte

	// Index is the sub-font index for font collections.
	Index int

	// IsEmoji marks color fonts: any of COLR, CBDT, or sbix present.
	IsEmoji bool

	// Family is the resolved family name used for shaping lookups.
	Family string

	fnt    *font.Font
	aspect font.Aspect
}

// Face returns a fresh Face over the loaded font. font.Face is NOT
// safe for concurrent use, so each caller gets its own instance;
// font.NewFace is cheap, it only wraps the shared font.Font.
func (f *LoadedFont) Face() *font.Face {
	return font.NewFace(f.fnt)
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// UseSystemFonts scans the platform font directories on startup.
	// The index is cached under the user cache dir.
	UseSystemFonts bool

	// FallbackFamily is substituted when a requested family has no
	// match. Empty selects the embedded default font.
	FallbackFamily string

	// Logger receives font scanning diagnostics. May be nil.
	Logger fontscan.Logger
}

// Resolver maps Font descriptors to loaded font faces, caching the
// mapping on first use. The font table only grows; a FontID stays
// valid for the resolver's lifetime and is never reassigned.
//
// Lookups of already-resolved fonts take only a read lock, so they
// never block each other. First-time resolution briefly takes the
// write lock.
type Resolver struct {
	mu       sync.RWMutex
	fontMap  *fontscan.FontMap
	fonts    []*LoadedFont
	ids      map[Font]FontID
	byFont   map[*font.Font]FontID
	memFonts map[string][]byte
	fallback string
	logger   fontscan.Logger
}

// NewResolver creates a Resolver with the embedded default font
// registered as the universal fallback.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	fm := fontscan.NewFontMap(cfg.Logger)
	if cfg.UseSystemFonts {
		dir, err := os.UserCacheDir()
		if err == nil {
			err = fm.UseSystemFonts(dir)
		}
		if err != nil && cfg.Logger != nil {
			cfg.Logger.Printf("text: system font scan failed: %v", err)
		}
	}
	r := &Resolver{
		fontMap:  fm,
		ids:      make(map[Font]FontID),
		byFont:   make(map[*font.Font]FontID),
		memFonts: make(map[string][]byte),
		fallback: cfg.FallbackFamily,
		logger:   cfg.Logger,
	}
	if r.fallback == "" {
		r.fallback = DefaultFamily
	}
	if err := r.addFontLocked(embeddedFileID, DefaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	return r, nil
}

// AddFonts registers raw font file bytes with the resolver. The fonts
// become candidates for family queries alongside system fonts.
func (r *Resolver) AddFonts(data [][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range data {
		id := fmt.Sprintf("mem://font-%d-%d", len(r.memFonts), i)
		if err := r.addFontLocked(id, "", d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) addFontLocked(fileID, family string, data []byte) error {
	if err := r.fontMap.AddFont(bytes.NewReader(data), fileID, family); err != nil {
		return fmt.Errorf("text: register font %q: %w", fileID, err)
	}
	r.memFonts[fileID] = data
	return nil
}

// FontID resolves a Font descriptor to a handle in the font table,
// loading the face on first use. Resolution failures are recoverable:
// callers should fall back to a default font, not abort rendering.
func (r *Resolver) FontID(f Font) (FontID, error) {
	r.mu.RLock()
	id, ok := r.ids[f]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[f]; ok {
		return id, nil
	}
	return r.resolveLocked(f)
}

func (r *Resolver) resolveLocked(f Font) (FontID, error) {
	family := f.Family
	if family == "" {
		family = r.fallback
	}
	r.fontMap.SetQuery(fontscan.Query{
		Families: []string{family, r.fallback},
		Aspect:   queryAspect(f),
	})
	// Resolve against space rather than a letter so icon fonts,
	// which lack alphabetic coverage, still match their own family.
	face := r.fontMap.ResolveFace(' ')
	if face == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoFontMatch, f.Family)
	}
	if _, ok := face.NominalGlyph('m'); !ok && !isIconFamily(family) {
		return 0, fmt.Errorf("%w: %q has no glyph for 'm'", ErrMissingGlyphCoverage, family)
	}

	if id, ok := r.byFont[face.Font]; ok {
		// Same face already loaded under another descriptor.
		r.ids[f] = id
		return id, nil
	}

	resolvedFamily, resolvedAspect := r.fontMap.FontMetadata(face.Font)
	data, index := r.fontDataLocked(face.Font)
	loaded := &LoadedFont{
		Data:    data,
		Index:   index,
		IsEmoji: hasColorTables(data, index),
		Family:  resolvedFamily,
		fnt:     face.Font,
		aspect:  resolvedAspect,
	}
	id := FontID(len(r.fonts))
	r.fonts = append(r.fonts, loaded)
	r.ids[f] = id
	r.byFont[face.Font] = id
	return id, nil
}

// Font returns the loaded font for id.
func (r *Resolver) Font(id FontID) (*LoadedFont, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(r.fonts) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	return r.fonts[id], nil
}

// Len returns the number of loaded fonts.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fonts)
}

// AllFontNames returns the distinct family names in the font table,
// in load order.
func (r *Resolver) AllFontNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.fonts))
	names := make([]string, 0, len(r.fonts))
	for _, f := range r.fonts {
		if !seen[f.Family] {
			seen[f.Family] = true
			names = append(names, f.Family)
		}
	}
	return names
}

// idForFont recovers the FontID for a font reported back by the
// shaping engine. Reports false when shaping substituted a face the
// resolver never loaded.
func (r *Resolver) idForFont(ft *font.Font) (FontID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byFont[ft]
	return id, ok
}

// fontDataLocked recovers the raw bytes behind a resolved font, from
// the in-memory registry for embedded fonts or from disk for scanned
// system fonts.
func (r *Resolver) fontDataLocked(ft *font.Font) ([]byte, int) {
	loc := r.fontMap.FontLocation(ft)
	if d, ok := r.memFonts[loc.File]; ok {
		return d, int(loc.Index)
	}
	d, err := os.ReadFile(loc.File)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("text: read font file %q: %v", loc.File, err)
		}
		return nil, int(loc.Index)
	}
	return d, int(loc.Index)
}

// shapingFontmap returns a face source for shaping fallback that
// resolves against one run's family and aspect. Each call re-applies
// the query under the resolver lock, so concurrent FontID resolution
// cannot corrupt the shared font map state.
func (r *Resolver) shapingFontmap(family string, aspect font.Aspect) *queryFontmap {
	return &queryFontmap{
		r: r,
		query: fontscan.Query{
			Families: []string{family, r.fallback},
			Aspect:   aspect,
		},
	}
}

type queryFontmap struct {
	r     *Resolver
	query fontscan.Query
}

func (q *queryFontmap) ResolveFace(ch rune) *font.Face {
	q.r.mu.Lock()
	defer q.r.mu.Unlock()
	q.r.fontMap.SetQuery(q.query)
	return q.r.fontMap.ResolveFace(ch)
}

func queryAspect(f Font) font.Aspect {
	a := font.Aspect{
		Weight:  font.Weight(f.Weight),
		Stretch: font.StretchNormal,
		Style:   font.StyleNormal,
	}
	if a.Weight == 0 {
		a.Weight = font.WeightNormal
	}
	if f.Style == StyleItalic || f.Style == StyleOblique {
		a.Style = font.StyleItalic
	}
	return a
}

func isIconFamily(family string) bool {
	return strings.Contains(family, "Icons") || strings.Contains(family, "Symbol")
}

var colorFontTags = [...]ot.Tag{
	ot.MustNewTag("COLR"),
	ot.MustNewTag("CBDT"),
	ot.MustNewTag("sbix"),
}

func hasColorTables(data []byte, index int) bool {
	if len(data) == 0 {
		return false
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil || index < 0 || index >= len(loaders) {
		return false
	}
	for _, tag := range colorFontTags {
		if loaders[index].HasTable(tag) {
			return true
		}
	}
	return false
}
