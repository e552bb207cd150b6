package template

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

// PixelsPerPoint converts Excel point geometry to pixels at 96 DPI
// (1 pt = 1/72 inch, 96/72 = 1.33 px).
const PixelsPerPoint = 1.33

// PointsToPixels converts a point measurement to whole pixels.
func PointsToPixels(pt float64) int {
	return int(pt * PixelsPerPoint)
}

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}
