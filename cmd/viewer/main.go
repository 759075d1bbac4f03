package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"nibasm/pkg/grid"
	"nibasm/pkg/isa"
	"nibasm/pkg/memimage"
)

const (
	cols       = 16
	rows       = isa.MemorySize / cols
	cellWidth  = 24
	cellHeight = 16
	marginX    = 32
	marginY    = 20

	screenWidth  = marginX + cols*cellWidth + 8
	screenHeight = marginY + rows*cellHeight + 28
)

var (
	colorByte    = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	colorZero    = color.RGBA{0x50, 0x50, 0x50, 0xff}
	colorCell    = color.RGBA{0x60, 0xc0, 0xff, 0xff}
	colorCursor  = color.RGBA{0xff, 0xd0, 0x40, 0xff}
	colorHeading = color.RGBA{0x80, 0x80, 0xa0, 0xff}
)

// Viewer shows a memory image as a 16x16 grid of bytes. It never executes
// anything.
type Viewer struct {
	path   string
	image  []byte
	cursor int
	err    error

	face text.Face // created on first draw
}

func NewViewer(path string, image []byte) (*Viewer, error) {
	padded, err := memimage.Pad(image)
	if err != nil {
		return nil, err
	}
	return &Viewer{path: path, image: padded}, nil
}

func (v *Viewer) move(dx, dy int) {
	x, y := grid.GetGridCoords(v.cursor, cols)
	v.cursor = grid.GetGridIndex(x+dx, y+dy, cols, isa.MemorySize)
}

// reload re-reads the image file, keeping the cursor where it is.
func (v *Viewer) reload() {
	image, err := memimage.Read(v.path)
	if err == nil {
		image, err = memimage.Pad(image)
	}
	if err != nil {
		v.err = err
		return
	}
	v.image = image
	v.err = nil
}

func (v *Viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.move(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.move(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.move(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.move(0, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.cursor = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	return nil
}

// status describes the byte under the cursor and the instruction cell it
// belongs to.
func (v *Viewer) status() string {
	if v.err != nil {
		return v.err.Error()
	}
	cell := v.cursor &^ (isa.CellSize - 1)
	hi, lo := v.image[cell], v.image[cell+1]
	s := fmt.Sprintf("%02X: %02X  cell %02X: %02X%02X", v.cursor, v.image[v.cursor], cell, hi, lo)
	if decoded := memimage.Decode(hi, lo); decoded != "" {
		s += "  " + decoded
	}
	return s
}

func (v *Viewer) byteColor(i int) color.Color {
	switch {
	case i == v.cursor:
		return colorCursor
	case i&^(isa.CellSize-1) == v.cursor&^(isa.CellSize-1):
		return colorCell
	case v.image[i] == 0:
		return colorZero
	default:
		return colorByte
	}
}

func (v *Viewer) drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, v.face, op)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.face == nil {
		v.face = text.NewGoXFace(basicfont.Face7x13)
	}

	for c := 0; c < cols; c++ {
		v.drawText(screen, fmt.Sprintf("%X", c), marginX+c*cellWidth+4, 2, colorHeading)
	}
	for r := 0; r < rows; r++ {
		v.drawText(screen, fmt.Sprintf("%X0", r), 4, marginY+r*cellHeight, colorHeading)
	}

	for i, b := range v.image {
		x, y := grid.GetGridCoords(i, cols)
		px := marginX + x*cellWidth
		py := marginY + y*cellHeight
		v.drawText(screen, fmt.Sprintf("%02X", b), px, py, v.byteColor(i))
	}

	ebitenutil.DebugPrintAt(screen, v.status(), 4, marginY+rows*cellHeight+8)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage:\n%s image-path\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	image, err := memimage.Read(path)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	viewer, err := NewViewer(path, image)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("nibasm viewer - " + path)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
