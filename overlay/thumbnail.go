package overlay

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail downscales a rendered page so its longer edge fits maxEdge
// pixels. Images already within the bound come back unchanged; upscaling
// never happens.
func Thumbnail(src image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return src
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	outW, outH := maxEdge, maxEdge
	if w > h {
		outH = h * maxEdge / w
	} else {
		outW = w * maxEdge / h
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
