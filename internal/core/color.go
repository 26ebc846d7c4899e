package core

// Color is the foreground color of a screen cell. The terminal driver maps
// each value to an ANSI 256 color.
type Color uint8

// Colors the snake board is drawn with.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorWhite
	ColorGray
	ColorBrightGreen
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
)
