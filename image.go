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
	"fmt"
	"image"
	"image/draw"

	"github.com/guldfisk/proxypdf/pdf"
)

// Image is a decoded card image.  RGB holds the interleaved 8-bit color
// samples, row by row, and Alpha holds one 8-bit opacity sample per pixel.
type Image struct {
	Width  int
	Height int
	RGB    []byte // Width*Height*3 bytes
	Alpha  []byte // Width*Height bytes
}

// NewImage converts a Go image into the plane form consumed by AddProxy.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rectangle{Max: b.Size()})
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	img := &Image{
		Width:  w,
		Height: h,
		RGB:    make([]byte, 0, w*h*3),
		Alpha:  make([]byte, 0, w*h),
	}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			img.RGB = append(img.RGB, row[x], row[x+1], row[x+2])
			img.Alpha = append(img.Alpha, row[x+3])
		}
	}
	return img
}

func (img *Image) validate() error {
	if img == nil {
		return fmt.Errorf("proxypdf: nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("proxypdf: invalid image size %dx%d", img.Width, img.Height)
	}
	n := img.Width * img.Height
	if len(img.RGB) != 3*n {
		return fmt.Errorf("proxypdf: RGB plane has %d bytes, want %d", len(img.RGB), 3*n)
	}
	if len(img.Alpha) != n {
		return fmt.Errorf("proxypdf: alpha plane has %d bytes, want %d", len(img.Alpha), n)
	}
	return nil
}

// embedImage writes the two XObjects for img: first the grayscale soft mask
// carrying the alpha plane, then the color image referencing the mask via
// /SMask.  It returns the reference to the color object, which is what page
// content streams draw.
func (w *Writer) embedImage(img *Image) (pdf.Reference, error) {
	err := img.validate()
	if err != nil {
		return pdf.Reference{}, err
	}

	maskStream, err := pdf.NewStream(img.Alpha, pdf.Dict{
		{Key: "BitsPerComponent", Value: pdf.Integer(8)},
		{Key: "ColorSpace", Value: pdf.Name("DeviceGray")},
		{Key: "Decode", Value: pdf.Array{pdf.Integer(0), pdf.Integer(1)}},
		{Key: "Height", Value: pdf.Integer(img.Height)},
		{Key: "Width", Value: pdf.Integer(img.Width)},
		{Key: "Subtype", Value: pdf.Name("Image")},
		{Key: "Type", Value: pdf.Name("XObject")},
	})
	if err != nil {
		return pdf.Reference{}, err
	}
	mask, err := w.out.WriteIndirect(maskStream, pdf.Reference{})
	if err != nil {
		return pdf.Reference{}, err
	}

	colorStream, err := pdf.NewStream(img.RGB, pdf.Dict{
		{Key: "BitsPerComponent", Value: pdf.Integer(8)},
		{Key: "ColorSpace", Value: pdf.Name("DeviceRGB")},
		{Key: "Height", Value: pdf.Integer(img.Height)},
		{Key: "Width", Value: pdf.Integer(img.Width)},
		{Key: "Subtype", Value: pdf.Name("Image")},
		{Key: "Type", Value: pdf.Name("XObject")},
		{Key: "SMask", Value: mask},
	})
	if err != nil {
		return pdf.Reference{}, err
	}
	return w.out.WriteIndirect(colorStream, pdf.Reference{})
}
