package render

// Viewport maps screen-plane meters onto a W x H pixel surface. The physical
// screen is ScreenSize meters on a side, centered, with y pointing up.
type Viewport struct {
	W, H       float64
	ScreenSize float64
}

func (v Viewport) ToPixel(x, y float64) (px, py float64) {
	return v.W/2 + x/v.ScreenSize*v.W, v.H/2 - y/v.ScreenSize*v.H
}

func (v Viewport) FromPixel(px, py float64) (x, y float64) {
	return (px - v.W/2) / v.W * v.ScreenSize, (v.H/2 - py) / v.H * v.ScreenSize
}
