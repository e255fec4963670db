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
	"bytes"
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/guldfisk/proxypdf/pdf"
)

// placement records one card instance on the current page.  pos is the
// lower-left corner of the card, in page coordinates.
type placement struct {
	form pdf.Reference
	pos  vec.Vec2
}

func (w *Writer) resetCursor() {
	w.cursor = vec.Vec2{X: w.geom.margin, Y: w.geom.pageHeight - w.geom.margin}
}

// place adds one card instance at the current cursor position and advances
// the cursor.  The cursor gives the top-left corner of the next slot.
//
// The overflow checks require room for two cards (or two rows) before
// accepting the next slot, so rows and pages can turn over one slot earlier
// than a tight packing would.  This matches the layout this package has
// always produced; printed sheets depend on the card count per page, so the
// checks are kept as they are.
func (w *Writer) place(form pdf.Reference) error {
	g := &w.geom
	w.placements = append(w.placements, placement{
		form: form,
		pos:  vec.Vec2{X: w.cursor.X, Y: w.cursor.Y - g.cardHeight},
	})

	if w.cursor.X+2*(g.cardWidth+g.cardMargin) > g.pageWidth-g.margin {
		if w.cursor.Y-2*(g.cardHeight-g.cardMargin) < g.margin {
			return w.flushPage()
		}
		w.cursor = vec.Vec2{X: g.margin, Y: w.cursor.Y - g.cardHeight - g.cardMargin}
	} else {
		w.cursor.X += g.cardWidth + g.cardMargin
	}
	return nil
}

// flushPage turns the pending placements into a content stream and a page
// object, appends the page to the document, and resets the layout state.
func (w *Writer) flushPage() error {
	g := &w.geom
	if g.maxPages > 0 && len(w.pages) >= g.maxPages {
		return ErrDocumentFull
	}

	buf := &bytes.Buffer{}
	buf.WriteString("1 0 0 1 0 0 cm")
	for i, p := range w.placements {
		m := matrix.Scale(g.cardWidth, g.cardHeight).Mul(matrix.Translate(p.pos.X, p.pos.Y))
		fmt.Fprintf(buf, " q %s %s %s %s %s %s cm /FormXob.%d Do Q",
			coord(m[0]), coord(m[1]), coord(m[2]), coord(m[3]), coord(m[4]), coord(m[5]),
			i+1)
	}

	contentStream, err := pdf.NewStream(buf.Bytes(), nil)
	if err != nil {
		return err
	}
	content, err := w.out.WriteIndirect(contentStream, pdf.Reference{})
	if err != nil {
		return err
	}

	xObjects := make(pdf.Dict, len(w.placements))
	for i, p := range w.placements {
		xObjects[i] = pdf.DictEntry{
			Key:   pdf.Name(fmt.Sprintf("FormXob.%d", i+1)),
			Value: p.form,
		}
	}
	pageDict := pdf.Dict{
		{Key: "MediaBox", Value: pdf.Array{
			pdf.Integer(0), pdf.Integer(0),
			pdf.Real(g.pageWidth), pdf.Real(g.pageHeight),
		}},
		{Key: "Type", Value: pdf.Name("Page")},
		{Key: "Parent", Value: w.pagesRoot},
		{Key: "Contents", Value: content},
		{Key: "Resources", Value: pdf.Dict{
			{Key: "ProcSet", Value: pdf.Array{
				pdf.Name("PDF"), pdf.Name("Text"),
				pdf.Name("ImageB"), pdf.Name("ImageC"), pdf.Name("ImageI"),
			}},
			{Key: "XObject", Value: xObjects},
		}},
	}
	page, err := w.out.WriteIndirect(pageDict, pdf.Reference{})
	if err != nil {
		return err
	}
	w.pages = append(w.pages, page)

	w.placements = w.placements[:0]
	w.resetCursor()
	return nil
}

// coord formats a content stream operand.
func coord(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
