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
	"math"
	"strings"
	"testing"
)

func format(t *testing.T, obj Object) string {
	t.Helper()
	buf := &bytes.Buffer{}
	var err error
	if obj == nil {
		_, err = buf.WriteString("null")
	} else {
		err = obj.PDF(buf)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Integer(0), "0"},
		{Integer(-12), "-12"},
		{Real(1.5), "1.5"},
		{Real(2), "2."},
		{Real(-0.25), "-0.25"},
		{Real(7.2), "7.2"},
		{Name("Page"), "/Page"},
		{Name("FormXob.1"), "/FormXob.1"},
		{Name("a b"), "/a#20b"},
		{String("hello"), "(hello)"},
		{String("he(ll)o"), `(he\(ll\)o)`},
		{String("\000"), `(\000)`},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Array{}, "[]"},
		{Array{Name("PDF"), Name("ImageC")}, "[/PDF /ImageC]"},
		{Reference{Number: 7}, "7 0 R"},
		{Dict{}, "<<\n>>"},
		{Dict{{"Type", Name("Page")}}, "<<\n/Type /Page\n>>"},
		{
			Dict{
				{"Width", Integer(10)},
				{"Height", Integer(20)},
			},
			"<<\n/Width 10\n/Height 20\n>>",
		},
	}
	for _, test := range cases {
		out := format(t, test.in)
		if out != test.out {
			t.Errorf("wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestDictOrder(t *testing.T) {
	// entries must appear in insertion order, not sorted
	d := Dict{
		{"Zebra", Integer(1)},
		{"Apple", Integer(2)},
	}
	out := format(t, d)
	if strings.Index(out, "Zebra") > strings.Index(out, "Apple") {
		t.Errorf("entries reordered: %q", out)
	}
}

func TestDictDuplicateKey(t *testing.T) {
	d := Dict{
		{"Type", Name("Page")},
		{"Type", Name("Pages")},
	}
	err := d.PDF(&bytes.Buffer{})
	if err == nil {
		t.Error("duplicate key not detected")
	}
}

func TestDictGet(t *testing.T) {
	d := Dict{
		{"Width", Integer(10)},
		{"Height", Integer(20)},
	}
	if got := d.Get("Height"); got != Integer(20) {
		t.Errorf("got %v, want 20", got)
	}
	if got := d.Get("Depth"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestRealNonFinite(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Real(x).PDF(&bytes.Buffer{})
		if err == nil {
			t.Errorf("%v: encoding error expected", x)
		}
	}
}

func TestStreamFormat(t *testing.T) {
	s := &Stream{
		Dict: Dict{{"Length", Integer(5)}},
		Data: []byte("hello"),
	}
	out := format(t, s)
	want := "<<\n/Length 5\n>>\nstream\nhello\nendstream"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
