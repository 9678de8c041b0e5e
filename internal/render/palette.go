package render

import "image/color"

var (
	colorBackgroundTop    = Hex("#34495e")
	colorBackgroundBottom = Hex("#2c3e50")
	colorGunBody          = Hex("#95a5a6")
	colorCathode          = Hex("#e74c3c")
	colorAnode            = Hex("#f39c12")
	colorPositivePlate    = Hex("#e74c3c")
	colorNegativePlate    = Hex("#3498db")
	colorScreenFrame      = Hex("#27ae60")
	colorScreenPhosphor   = Hex("#2ecc71")
	colorBeam             = Hex("#f1c40f")
	colorFieldLine        = RGBA(255, 255, 255, 0.3)
)

func impactColor(brightness float64) color.NRGBA {
	return RGBA(241, 196, 64, brightness)
}

func phosphorGreen(alpha float64) color.NRGBA {
	return RGBA(0, 255, 0, alpha)
}
