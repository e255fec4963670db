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
	"errors"
	"io"
	"os"

	"seehuhn.de/go/geom/vec"

	"github.com/guldfisk/proxypdf/pdf"
)

var (
	// ErrClosed is returned when a Writer is used after Save.
	ErrClosed = errors.New("proxypdf: writer already saved")

	// ErrDocumentFull is returned when a page flush would exceed
	// Options.MaxPages.
	ErrDocumentFull = errors.New("proxypdf: page limit reached")
)

// Writer writes one proxy sheet document.  A Writer must not be used from
// more than one goroutine.
//
// Every error reported by a Writer is terminal: the document cannot be
// completed and the output written so far must be discarded.
type Writer struct {
	out  *pdf.Writer
	geom geometry

	catalog   pdf.Reference
	pagesRoot pdf.Reference
	pages     []pdf.Reference

	cursor     vec.Vec2
	placements []placement

	err   error
	saved bool
}

// NewWriter prepares a proxy sheet document for writing.  The configuration
// is validated before any byte is written to w.  A nil opt selects the
// defaults: an A4 page, 2.5in x 3.5in cards and a 0.1in outer margin.
//
// The file header and the document catalog are written immediately.  The
// page tree root only gets its object number reserved here; its content is
// not known until Save.
func NewWriter(w io.Writer, opt *Options) (*Writer, error) {
	g, err := opt.geometry()
	if err != nil {
		return nil, err
	}

	out, err := pdf.NewWriter(w)
	if err != nil {
		return nil, err
	}

	pw := &Writer{
		out:  out,
		geom: g,
	}
	pw.resetCursor()

	pw.pagesRoot = out.Alloc()

	pw.catalog, err = out.WriteIndirect(pdf.Dict{
		{Key: "Type", Value: pdf.Name("Catalog")},
		{Key: "Pages", Value: pw.pagesRoot},
	}, pdf.Reference{})
	if err != nil {
		return nil, err
	}

	return pw, nil
}

// AddProxy adds amount copies of the given card image to the sheet.  The
// image is embedded once, no matter how many copies are placed.  Calls with
// amount <= 0 do nothing.
func (w *Writer) AddProxy(img *Image, amount int) error {
	if w.err != nil {
		return w.err
	}
	if w.saved {
		return ErrClosed
	}
	if amount <= 0 {
		return nil
	}

	form, err := w.embedImage(img)
	if err != nil {
		return w.fail(err)
	}
	for i := 0; i < amount; i++ {
		err = w.place(form)
		if err != nil {
			return w.fail(err)
		}
	}
	return nil
}

// NumPages returns the number of pages flushed so far.  Cards placed on the
// current, still partial page are not counted until Save.
func (w *Writer) NumPages() int {
	return len(w.pages)
}

// Save flushes the trailing partial page, finalizes the page tree root, and
// writes the cross-reference table and trailer.  The Writer cannot be used
// afterwards.  Save does not close the underlying io.Writer.
func (w *Writer) Save() error {
	if w.err != nil {
		return w.err
	}
	if w.saved {
		return ErrClosed
	}

	if len(w.placements) > 0 {
		err := w.flushPage()
		if err != nil {
			return w.fail(err)
		}
	}

	kids := make(pdf.Array, len(w.pages))
	for i, page := range w.pages {
		kids[i] = page
	}
	_, err := w.out.WriteIndirect(pdf.Dict{
		{Key: "Type", Value: pdf.Name("Pages")},
		{Key: "Count", Value: pdf.Integer(len(w.pages))},
		{Key: "Kids", Value: kids},
	}, w.pagesRoot)
	if err != nil {
		return w.fail(err)
	}

	err = w.out.Close(w.catalog)
	if err != nil {
		return w.fail(err)
	}

	w.saved = true
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

// Write writes a proxy sheet containing each of the given images once.
func Write(w io.Writer, images []*Image, opt *Options) error {
	pw, err := NewWriter(w, opt)
	if err != nil {
		return err
	}
	for _, img := range images {
		err = pw.AddProxy(img, 1)
		if err != nil {
			return err
		}
	}
	return pw.Save()
}

// Create writes a proxy sheet containing each of the given images once to
// the named file.  A previous file with the same name is overwritten.
func Create(name string, images []*Image, opt *Options) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	err = Write(fd, images, opt)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
