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

// Package pdf implements the small subset of the PDF file format needed to
// write documents consisting of image XObjects placed on pages: the native
// object types, compressed stream objects, and a single-pass document writer
// which emits a classic cross-reference table.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Object represents a native PDF object.  The types implementing this
// interface are Bool, Integer, Real, Name, String, Array, Dict, *Stream and
// Reference.  A nil Object serializes as null.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the Object interface.
func (x Bool) PDF(w io.Writer) error {
	var s string
	if x {
		s = "true"
	} else {
		s = "false"
	}
	_, err := w.Write([]byte(s))
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	s := strconv.FormatInt(int64(x), 10)
	_, err := w.Write([]byte(s))
	return err
}

// Real represents a real number in a PDF file.
type Real float64

// PDF implements the Object interface.  Non-finite values cannot be
// represented in the file format and fail with an encoding error.
func (x Real) PDF(w io.Writer) error {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return fmt.Errorf("pdf: cannot encode %v as a number", float64(x))
	}
	s := strconv.FormatFloat(float64(x), 'f', -1, 64)
	if !bytes.ContainsRune([]byte(s), '.') {
		s = s + "."
	}
	_, err := w.Write([]byte(s))
	return err
}

// String represents a literal byte string in a PDF file.
type String []byte

// PDF implements the Object interface.
func (x String) PDF(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteByte('(')
	for _, c := range x {
		switch {
		case c == '(' || c == ')' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c < 32 || c >= 127:
			fmt.Fprintf(buf, `\%03o`, c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
	_, err := w.Write(buf.Bytes())
	return err
}

// Name represents a name in a PDF file, e.g. a type tag or a resource key.
type Name string

// PDF implements the Object interface.
func (x Name) PDF(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteByte('/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if isSpace[c] || isDelimiter[c] || c < 0x21 || c > 0x7e || c == '#' {
			fmt.Fprintf(buf, "#%02x", c)
		} else {
			buf.WriteByte(c)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Array represents an array of objects in a PDF file.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	_, err := w.Write([]byte("["))
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err = w.Write([]byte(" "))
			if err != nil {
				return err
			}
		}
		if val == nil {
			_, err = w.Write([]byte("null"))
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("]"))
	return err
}

// DictEntry is one key-value pair of a Dict.
type DictEntry struct {
	Key   Name
	Value Object
}

// Dict represents a dictionary object in a PDF file.  Entries are written in
// the order they appear in the slice, so output is deterministic.  Keys must
// be unique; a duplicate key is an encoding error.
type Dict []DictEntry

// Get returns the value stored under the given key, or nil if the key is not
// present.
func (x Dict) Get(key Name) Object {
	for _, e := range x {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := w.Write([]byte("null"))
		return err
	}

	_, err := w.Write([]byte("<<"))
	if err != nil {
		return err
	}

	seen := make(map[Name]bool, len(x))
	for _, e := range x {
		if seen[e.Key] {
			return fmt.Errorf("pdf: duplicate dictionary key /%s", e.Key)
		}
		seen[e.Key] = true

		_, err = w.Write([]byte("\n"))
		if err != nil {
			return err
		}
		err = e.Key.PDF(w)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(" "))
		if err != nil {
			return err
		}
		if e.Value == nil {
			_, err = w.Write([]byte("null"))
		} else {
			err = e.Value.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("\n>>"))
	return err
}

// Stream represents a stream object in a PDF file.  Data holds the encoded
// payload exactly as it appears between the stream and endstream keywords;
// it is immutable once the stream has been constructed.
type Stream struct {
	Dict Dict
	Data []byte
}

// PDF implements the Object interface.
func (x *Stream) PDF(w io.Writer) error {
	err := x.Dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}
	_, err = w.Write(x.Data)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nendstream"))
	return err
}

// Reference represents a reference to an indirect object in a PDF file.  The
// zero value is not a valid reference; object numbers start at 1 and the
// generation number is always 0 for files produced by this package.
type Reference struct {
	Number int
}

// IsZero reports whether r is the zero, invalid reference.
func (r Reference) IsZero() bool {
	return r.Number == 0
}

// PDF implements the Object interface.
func (r Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d 0 R", r.Number)
	return err
}

var isSpace = makeByteSet(0, 9, 10, 12, 13, 32)
var isDelimiter = makeByteSet('(', ')', '<', '>', '[', ']', '{', '}', '/', '%')

func makeByteSet(cc ...byte) [256]bool {
	var res [256]bool
	for _, c := range cc {
		res[c] = true
	}
	return res
}
