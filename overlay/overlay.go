// Package overlay translates page boxes into screen-space rectangles for
// preview display. It feeds nothing back into the analysis report.
package overlay

import "github.com/pressproof/preflight/report"

// Rect is a screen-space rectangle in bitmap pixels, top-left origin.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Map places a page box onto a rendered bitmap. Document space has its
// origin bottom-left; the bitmap's is top-left, so the vertical axis flips
// around the bitmap height.
func Map(box, media report.PageBox, scale, bitmapHeight float64) Rect {
	return Rect{
		X:      (box.X - media.X) * scale,
		Y:      bitmapHeight - (box.Y+box.Height-media.Y)*scale,
		Width:  box.Width * scale,
		Height: box.Height * scale,
	}
}

// PageOverlay carries the screen rectangles of one page's optional boxes.
// Boxes the page does not define stay nil and draw nothing.
type PageOverlay struct {
	Trim  *Rect `json:"trim,omitempty"`
	Bleed *Rect `json:"bleed,omitempty"`
	Crop  *Rect `json:"crop,omitempty"`
}

// ForPage maps a page's trim, bleed and crop boxes for the given render
// scale and rendered bitmap height.
func ForPage(info report.PageInfo, scale, bitmapHeight float64) PageOverlay {
	var o PageOverlay
	if info.TrimBox != nil {
		r := Map(*info.TrimBox, info.MediaBox, scale, bitmapHeight)
		o.Trim = &r
	}
	if info.BleedBox != nil {
		r := Map(*info.BleedBox, info.MediaBox, scale, bitmapHeight)
		o.Bleed = &r
	}
	if info.CropBox != nil {
		r := Map(*info.CropBox, info.MediaBox, scale, bitmapHeight)
		o.Crop = &r
	}
	return o
}
