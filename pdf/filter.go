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
	"bytes"
	"compress/zlib"
	"fmt"

	"github.com/guldfisk/proxypdf/ascii85"
)

// NewStream builds a stream object from raw data.  The data is first
// compressed with the Flate filter and then wrapped in the ASCII85 transport
// encoding, so the stream dictionary always declares the filter chain
//
//	/Filter [/ASCII85Decode /FlateDecode]
//
// in decode order, together with the /Length of the encoded payload.  Extra
// dictionary entries are appended after these two; an extra entry named
// Filter or Length is an error.
func NewStream(data []byte, extra Dict) (*Stream, error) {
	buf := &bytes.Buffer{}
	enc := ascii85.NewEncoder(buf)
	zw := zlib.NewWriter(enc)
	_, err := zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	encoded := buf.Bytes()

	dict := Dict{
		{"Filter", Array{Name("ASCII85Decode"), Name("FlateDecode")}},
		{"Length", Integer(len(encoded))},
	}
	for _, e := range extra {
		if e.Key == "Filter" || e.Key == "Length" {
			return nil, fmt.Errorf("pdf: stream dictionary entry /%s is reserved", e.Key)
		}
		dict = append(dict, e)
	}

	return &Stream{Dict: dict, Data: encoded}, nil
}
