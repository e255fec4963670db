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

package pdf

import (
	"fmt"
	"io"
)

// notWritten marks an allocated object number whose content has not been
// serialized yet.
const notWritten = -1

// Writer writes a PDF file to an io.Writer, one indirect object at a time.
//
// Objects are written strictly in increasing byte order; the writer never
// seeks.  An object number can be allocated before its content is known
// (Alloc) and filled in later (WriteIndirect), which allows forward
// references by number.  Close emits the cross-reference table and trailer.
type Writer struct {
	w       *posWriter
	nextRef int

	// offsets[i] is the byte offset of object i+1, or notWritten.
	offsets []int64
}

// NewWriter prepares a PDF file for writing and emits the file header.
func NewWriter(w io.Writer) (*Writer, error) {
	pdf := &Writer{
		w:       &posWriter{w: w},
		nextRef: 1,
	}

	_, err := pdf.w.Write([]byte("%PDF-1.3\n%cool beans\n"))
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Alloc allocates an object number for an indirect object without writing
// anything.  The returned reference can be embedded in other objects before
// the referenced object itself is written.
func (pdf *Writer) Alloc() Reference {
	ref := Reference{Number: pdf.nextRef}
	pdf.nextRef++
	pdf.offsets = append(pdf.offsets, notWritten)
	return ref
}

// WriteIndirect writes obj to the file as an indirect object.  If ref is the
// zero Reference, a new object number is allocated.  The byte offset of the
// object header is recorded for the cross-reference table.  Writing the same
// reference twice is an error.
func (pdf *Writer) WriteIndirect(obj Object, ref Reference) (Reference, error) {
	if ref.IsZero() {
		ref = pdf.Alloc()
	} else if ref.Number < 1 || ref.Number >= pdf.nextRef {
		return Reference{}, fmt.Errorf("pdf: reference %d 0 R was never allocated", ref.Number)
	} else if pdf.offsets[ref.Number-1] != notWritten {
		return Reference{}, fmt.Errorf("pdf: object %d 0 R already written", ref.Number)
	}

	pos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d 0 obj\n", ref.Number)
	if err != nil {
		return Reference{}, err
	}
	if obj == nil {
		_, err = pdf.w.Write([]byte("null"))
	} else {
		err = obj.PDF(pdf.w)
	}
	if err != nil {
		return Reference{}, err
	}
	_, err = pdf.w.Write([]byte("\nendobj\n"))
	if err != nil {
		return Reference{}, err
	}

	pdf.offsets[ref.Number-1] = pos
	return ref, nil
}

// Close writes the cross-reference table, the trailer dictionary and the
// final startxref section.  Every allocated object must have been written
// before Close is called, otherwise the table would contain invalid entries
// and Close fails.  Close does not close the underlying io.Writer.
func (pdf *Writer) Close(root Reference) error {
	if root.IsZero() {
		return fmt.Errorf("pdf: missing document catalog")
	}
	for i, off := range pdf.offsets {
		if off == notWritten {
			return fmt.Errorf("pdf: object %d 0 R allocated but never written", i+1)
		}
	}

	xrefPos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("0000000000 65535 f \n"))
	if err != nil {
		return err
	}
	for _, off := range pdf.offsets {
		_, err = fmt.Fprintf(pdf.w, "%010d 00000 n \n", off)
		if err != nil {
			return err
		}
	}

	_, err = pdf.w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	trailer := Dict{
		{"Size", Integer(pdf.nextRef)},
		{"Root", root},
	}
	err = trailer.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return err
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
