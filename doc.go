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

// Package proxypdf writes printable sheets of fixed-size card images
// ("proxies") as PDF files, for print-and-cut use.
//
// Cards are tiled across pages in a grid; a new page is started whenever the
// current one is full.  The file is produced in a single streaming pass: each
// image is embedded as a pair of compressed XObjects (color plane plus alpha
// soft mask) as soon as it is submitted, and each page is written out as soon
// as it is full.
//
//	w, err := proxypdf.NewWriter(out, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.AddProxy(img, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.Save()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All failures are terminal for the document being written: the output must
// be discarded if any method reports an error.
package proxypdf
