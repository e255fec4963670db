// github.com/guldfisk/proxypdf - a streaming PDF writer for proxy card sheets
// Copyright (C) 2026  The proxypdf Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package proxypdf

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// Default card and margin sizes, in points.
const (
	DefaultCardWidth  = 2.5 * Inch
	DefaultCardHeight = 3.5 * Inch
	DefaultMargin     = 0.1 * Inch
)

// Options controls page and card geometry.  The zero value selects an A4
// page, the default card size and no margins; passing a nil *Options to
// NewWriter selects the package defaults including the standard outer
// margin.
type Options struct {
	// PageSize is the media box of every page.  The zero rectangle selects
	// A4.
	PageSize rect.Rect

	// CardWidth and CardHeight give the card footprint.  Zero values select
	// the standard 2.5in x 3.5in card.
	CardWidth  float64
	CardHeight float64

	// Margin is the outer page margin, applied on all four sides.  If two
	// margins plus a card exceed the page size in some direction, the margin
	// is reduced so that the card is centered in that direction instead.
	Margin float64

	// CardMargin is the extra spacing between adjacent cards.
	CardMargin float64

	// MaxPages limits the number of pages in the document.  Zero means no
	// limit.  When a page flush would exceed the limit, the document fails
	// with ErrDocumentFull.
	MaxPages int
}

// geometry is the validated, clamped form of Options used by the layout
// engine.
type geometry struct {
	pageWidth, pageHeight float64
	cardWidth, cardHeight float64
	margin                float64
	cardMargin            float64
	maxPages              int
}

func (opt *Options) geometry() (geometry, error) {
	if opt == nil {
		opt = &Options{Margin: DefaultMargin}
	}

	g := geometry{
		pageWidth:  opt.PageSize.URx - opt.PageSize.LLx,
		pageHeight: opt.PageSize.URy - opt.PageSize.LLy,
		cardWidth:  opt.CardWidth,
		cardHeight: opt.CardHeight,
		margin:     opt.Margin,
		cardMargin: opt.CardMargin,
		maxPages:   opt.MaxPages,
	}
	if g.pageWidth == 0 && g.pageHeight == 0 {
		g.pageWidth = A4.URx - A4.LLx
		g.pageHeight = A4.URy - A4.LLy
	}
	if g.cardWidth == 0 {
		g.cardWidth = DefaultCardWidth
	}
	if g.cardHeight == 0 {
		g.cardHeight = DefaultCardHeight
	}

	if g.pageWidth <= 0 || g.pageHeight <= 0 {
		return geometry{}, fmt.Errorf("proxypdf: invalid page size %gx%g", g.pageWidth, g.pageHeight)
	}
	if g.cardWidth <= 0 || g.cardHeight <= 0 {
		return geometry{}, fmt.Errorf("proxypdf: invalid card size %gx%g", g.cardWidth, g.cardHeight)
	}
	if g.margin < 0 || g.cardMargin < 0 || g.maxPages < 0 {
		return geometry{}, fmt.Errorf("proxypdf: negative margin or page limit")
	}

	if 2*g.margin+g.cardWidth > g.pageWidth {
		g.margin = (g.pageWidth - g.cardWidth) / 2
	}
	if 2*g.margin+g.cardHeight > g.pageHeight {
		g.margin = (g.pageHeight - g.cardHeight) / 2
	}
	if g.margin < 0 {
		return geometry{}, fmt.Errorf("proxypdf: card size %gx%g does not fit on a %gx%g page",
			g.cardWidth, g.cardHeight, g.pageWidth, g.pageHeight)
	}

	return g, nil
}
