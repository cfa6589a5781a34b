package tui

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

// halfBlocks draws img with one terminal cell per two vertical pixels: the
// upper half block takes the top pixel as foreground and the bottom one as
// background. Transparent pixels are composited over black.
func halfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := rgb(img.At(x, y))
			bottom := [3]uint8{}
			if y+1 < b.Max.Y {
				bottom = rgb(img.At(x, y+1))
			}
			writeColor(&sb, "38", top)
			writeColor(&sb, "48", bottom)
			sb.WriteString("▀")
		}
		sb.WriteString("\x1b[0m")
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func rgb(c color.Color) [3]uint8 {
	// RGBA is alpha-premultiplied, so this is already composited over black.
	r, g, b, _ := c.RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func writeColor(sb *strings.Builder, layer string, c [3]uint8) {
	sb.WriteString("\x1b[")
	sb.WriteString(layer)
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(c[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[2])))
	sb.WriteByte('m')
}
