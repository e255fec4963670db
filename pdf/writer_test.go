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
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := NewWriter(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "%PDF-1.3\n%cool beans\n" {
		t.Errorf("wrong header %q", got)
	}
}

// xrefEntries extracts the in-use entries of the cross-reference table from
// a finished file.
func xrefEntries(t *testing.T, body []byte) []int64 {
	t.Helper()
	idx := bytes.LastIndex(body, []byte("\nxref\n"))
	if idx < 0 {
		t.Fatal("no xref section")
	}
	lines := strings.Split(string(body[idx+1:]), "\n")
	var count int
	_, err := fmt.Sscanf(lines[1], "0 %d", &count)
	if err != nil {
		t.Fatal(err)
	}
	if lines[2] != "0000000000 65535 f " {
		t.Fatalf("bad free entry %q", lines[2])
	}
	var offsets []int64
	for _, line := range lines[3 : 2+count] {
		if len(line) != 19 || !strings.HasSuffix(line, " 00000 n ") {
			t.Fatalf("bad xref entry %q", line)
		}
		off, err := strconv.ParseInt(line[:10], 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		offsets = append(offsets, off)
	}
	return offsets
}

func TestXRef(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf)
	if err != nil {
		t.Fatal(err)
	}

	// deferred object: referenced from the catalog before it is written
	deferred := w.Alloc()
	catalog, err := w.WriteIndirect(Dict{
		{"Type", Name("Catalog")},
		{"Pages", deferred},
	}, Reference{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.WriteIndirect(Dict{
		{"Type", Name("Pages")},
		{"Count", Integer(0)},
		{"Kids", Array{}},
	}, deferred)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(catalog)
	if err != nil {
		t.Fatal(err)
	}
	body := buf.Bytes()

	offsets := xrefEntries(t, body)
	if len(offsets) != 2 {
		t.Fatalf("got %d entries, want 2", len(offsets))
	}
	for i, off := range offsets {
		header := []byte(fmt.Sprintf("%d 0 obj\n", i+1))
		if !bytes.HasPrefix(body[off:], header) {
			t.Errorf("offset %d does not point at object %d", off, i+1)
		}
	}

	if !bytes.Contains(body, []byte("trailer\n<<\n/Size 3\n/Root 2 0 R\n>>")) {
		t.Error("bad trailer")
	}

	// startxref points at the xref keyword
	idx := bytes.LastIndex(body, []byte("startxref\n"))
	var start int64
	_, err = fmt.Sscanf(string(body[idx:]), "startxref\n%d", &start)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(body[start:], []byte("xref\n")) {
		t.Errorf("startxref %d does not point at the xref section", start)
	}
	if !bytes.HasSuffix(body, []byte("%%EOF\n")) {
		t.Error("missing file terminator")
	}
}

func TestWriteTwice(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	ref, err := w.WriteIndirect(Integer(1), Reference{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.WriteIndirect(Integer(2), ref)
	if err == nil {
		t.Error("double write not detected")
	}
}

func TestUnallocatedReference(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.WriteIndirect(Integer(1), Reference{Number: 5})
	if err == nil {
		t.Error("unallocated reference not detected")
	}
}

func TestCloseUnwritten(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	root, err := w.WriteIndirect(Dict{{"Type", Name("Catalog")}}, Reference{})
	if err != nil {
		t.Fatal(err)
	}
	w.Alloc() // reserved but never written
	err = w.Close(root)
	if err == nil {
		t.Error("unwritten object not detected")
	}
}

func TestCloseWithoutRoot(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(Reference{})
	if err == nil {
		t.Error("missing catalog not detected")
	}
}
