package render

import (
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"roomviz/internal/room"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// halfBlock paints its foreground on the upper half of the cell and
	// its background on the lower half, giving two tiles per terminal row.
	halfBlock = '▀'
)

// PreviewBackground is what transparent canvas pixels are shown as.
var PreviewBackground = color.RGBA{10, 10, 15, 255}

// Preview renders a room canvas as truecolor half-block text: one column
// per tile and one row per two tiles.
func Preview(img image.Image) (string, error) {
	scale, err := ScaleOf(img)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(room.Size * room.Size / 2 * 40)
	for y := 0; y < room.Size; y += 2 {
		for x := 0; x < room.Size; x++ {
			top := tileAverage(img, scale, room.XY{X: x, Y: y})
			bottom := PreviewBackground
			if y+1 < room.Size {
				bottom = tileAverage(img, scale, room.XY{X: x, Y: y + 1})
			}
			writeHalfBlock(&sb, top, bottom)
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// WritePreview writes Preview(img) to w.
func WritePreview(w io.Writer, img image.Image) error {
	s, err := Preview(img)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// writeHalfBlock writes one cell's full SGR + character to the builder.
// Uses combined SGR to avoid state leakage between cells.
func writeHalfBlock(sb *strings.Builder, fg, bg color.RGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(fg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.B)))
	sb.WriteByte('m')
	sb.WriteRune(halfBlock)
}

// tileAverage is the mean color of a tile composited over PreviewBackground.
func tileAverage(img image.Image, scale int, xy room.XY) color.RGBA {
	rect := TileRect(scale, xy).Add(img.Bounds().Min)
	var sr, sg, sb uint64
	bgR, bgG, bgB := uint32(PreviewBackground.R)*0x101, uint32(PreviewBackground.G)*0x101, uint32(PreviewBackground.B)*0x101
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			// RGBA() is alpha-premultiplied, so "over" is src + dst*(1-a).
			r, g, b, a := img.At(x, y).RGBA()
			inv := 0xffff - a
			sr += uint64(r + bgR*inv/0xffff)
			sg += uint64(g + bgG*inv/0xffff)
			sb += uint64(b + bgB*inv/0xffff)
		}
	}
	n := uint64(scale * scale)
	return color.RGBA{
		R: uint8(sr / n >> 8),
		G: uint8(sg / n >> 8),
		B: uint8(sb / n >> 8),
		A: 255,
	}
}
