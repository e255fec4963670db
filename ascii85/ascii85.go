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

// Package ascii85 implements the ASCII85 encoding as used by the PDF
// ASCII85Decode filter.  This differs from the stdlib encoding/ascii85
// package in the details required by PDF: the encoder emits the "z"
// shorthand for all-zero groups and terminates the data with the "~>"
// marker, and the decoder tolerates embedded white space and requires the
// end marker.
package ascii85

import (
	"errors"
	"io"
)

// NewEncoder returns a WriteCloser which ASCII85-encodes everything written
// to it and writes the result to w.  Close flushes the final partial group
// and appends the "~>" end marker; it does not close w.
func NewEncoder(w io.Writer) io.WriteCloser {
	return &encoder{
		w:   w,
		buf: make([]byte, 0, 80),
	}
}

type encoder struct {
	w   io.Writer
	buf []byte
	v   uint32
	k   int
}

func (e *encoder) Write(p []byte) (n int, err error) {
	for n, b := range p {
		e.v = e.v<<8 | uint32(b)
		e.k++
		if e.k == 4 {
			if cap(e.buf) < len(e.buf)+8 { // space for "xxxxx~>\n"
				err = e.flush()
				if err != nil {
					return n, err
				}
			}

			v := e.v
			if v == 0 {
				e.buf = append(e.buf, 'z')
			} else {
				c4 := byte(v%85) + '!'
				v /= 85
				c3 := byte(v%85) + '!'
				v /= 85
				c2 := byte(v%85) + '!'
				v /= 85
				c1 := byte(v%85) + '!'
				v /= 85
				c0 := byte(v%85) + '!'
				e.buf = append(e.buf, c0, c1, c2, c3, c4)
			}

			e.v = 0
			e.k = 0
		}
	}
	return len(p), nil
}

func (e *encoder) Close() error {
	if e.k != 0 {
		v := e.v << ((4 - e.k) * 8)
		var c [5]byte
		for i := 4; i >= 0; i-- {
			c[i] = byte(v%85) + '!'
			v /= 85
		}
		e.buf = append(e.buf, c[:e.k+1]...)
		e.v = 0
		e.k = 0
	}
	e.buf = append(e.buf, '~', '>')
	return e.flush()
}

func (e *encoder) flush() error {
	e.buf = append(e.buf, '\n')
	_, err := e.w.Write(e.buf)
	if err != nil {
		return err
	}
	e.buf = e.buf[:0]
	return nil
}

// NewDecoder returns a reader which decodes ASCII85-encoded data read from
// r.  Reading continues until the "~>" end marker is found; a missing end
// marker is reported as io.ErrUnexpectedEOF.
func NewDecoder(r io.Reader) io.Reader {
	return &decoder{r: r}
}

type decoder struct {
	r              io.Reader
	immediateError error
	delayedError   error
	buf            [512]byte
	outbuf         [4]byte
	leftover       []byte
	pos, nbuf      int
	v              uint32
	k              int
	isEnd          bool
}

func (r *decoder) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.immediateError != nil {
		return 0, r.immediateError
	}

	if len(r.leftover) > 0 {
		n = copy(p, r.leftover)
		r.leftover = r.leftover[n:]
	}

	for n < len(p) {
		// get the next input byte
		for r.pos == r.nbuf && r.delayedError == nil {
			r.nbuf, r.delayedError = r.r.Read(r.buf[:])
			r.pos = 0

			if r.delayedError == io.EOF {
				r.delayedError = io.ErrUnexpectedEOF
			}
		}
		if r.pos == r.nbuf {
			r.immediateError = r.delayedError
			return n, r.immediateError
		}
		c := r.buf[r.pos]
		r.pos++

		// "~" can only be the first part of the end marker "~>"
		if r.isEnd {
			if c == '>' {
				r.immediateError = io.EOF
			} else {
				r.immediateError = errors.New("invalid end marker in ASCII85 stream")
			}
			return n, r.immediateError
		}

		// all white space characters are ignored
		if isSpace(c) {
			continue
		}

		if c >= '!' && c < '!'+85 {
			r.v = r.v*85 + uint32(c-'!')
			r.k++
		} else if r.k == 0 && c == 'z' {
			r.v = 0
			r.k = 5
		} else if c == '~' {
			switch r.k {
			case 0:
				// pass
			case 1:
				r.immediateError = errors.New("unexpected end marker in ASCII85 stream")
				return n, r.immediateError
			default:
				for i := r.k; i < 5; i++ {
					r.v = r.v*85 + 84
				}
				r.outbuf[0] = byte(r.v >> 24)
				r.outbuf[1] = byte(r.v >> 16)
				r.outbuf[2] = byte(r.v >> 8)
				r.outbuf[3] = byte(r.v)
				l := copy(p[n:], r.outbuf[:r.k-1])
				n += l
				if l < r.k-1 {
					r.leftover = r.outbuf[l : r.k-1]
				}
			}
			r.isEnd = true
			continue
		} else {
			r.immediateError = errors.New("invalid character in ASCII85 stream")
			return n, r.immediateError
		}

		if r.k == 5 {
			r.outbuf[0] = byte(r.v >> 24)
			r.outbuf[1] = byte(r.v >> 16)
			r.outbuf[2] = byte(r.v >> 8)
			r.outbuf[3] = byte(r.v)
			r.k = 0
			r.v = 0

			l := copy(p[n:], r.outbuf[:])
			n += l
			if l < 4 {
				r.leftover = r.outbuf[l:]
			}
		}
	}
	return n, r.immediateError
}

func isSpace(c byte) bool {
	switch c {
	case 0, 9, 10, 12, 13, 32:
		return true
	}
	return false
}
