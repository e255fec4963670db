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

// Proxypdf tiles card images onto pages of a printable PDF file.
//
// Usage:
//
//	proxypdf [options] image ...
//
// Each argument is an image file (PNG, JPEG, GIF, BMP, TIFF or WebP).  Every
// image is placed -n times onto the sheet, in argument order.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"

	"github.com/guldfisk/proxypdf"
)

func main() {
	out := flag.String("o", "proxies.pdf", "output file name")
	pageName := flag.String("page", "a4", "page size (a4, a5 or letter)")
	margin := flag.Float64("margin", 0.1, "outer page margin in inches")
	cardMargin := flag.Float64("card-margin", 0, "spacing between cards in inches")
	copies := flag.Int("n", 1, "number of copies per image")
	dpi := flag.Int("dpi", 0, "resample images to this resolution (0 keeps the original pixels)")
	maxPages := flag.Int("max-pages", 0, "maximum number of pages (0 means unlimited)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: proxypdf [options] image ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	pageSize, err := lookupPage(*pageName)
	if err != nil {
		log.Fatal(err)
	}

	fd, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}

	w, err := proxypdf.NewWriter(fd, &proxypdf.Options{
		PageSize:   pageSize,
		Margin:     *margin * proxypdf.Inch,
		CardMargin: *cardMargin * proxypdf.Inch,
		MaxPages:   *maxPages,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range flag.Args() {
		img, err := loadImage(name, *dpi)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		err = w.AddProxy(img, *copies)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
	}

	err = w.Save()
	if err != nil {
		log.Fatal(err)
	}
	err = fd.Close()
	if err != nil {
		log.Fatal(err)
	}
}

func lookupPage(name string) (rect.Rect, error) {
	switch name {
	case "a4":
		return proxypdf.A4, nil
	case "a5":
		return proxypdf.A5, nil
	case "letter":
		return proxypdf.Letter, nil
	}
	return rect.Rect{}, fmt.Errorf("unknown page size %q", name)
}

func loadImage(name string, dpi int) (*proxypdf.Image, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	src, _, err := image.Decode(fd)
	if err != nil {
		return nil, err
	}

	if dpi > 0 {
		dst := image.NewNRGBA(image.Rect(0, 0,
			int(2.5*float64(dpi)+0.5), int(3.5*float64(dpi)+0.5)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		src = dst
	}

	return proxypdf.NewImage(src), nil
}
