package viz

import (
	"strings"

	"github.com/san-kum/limbshift/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TableView maps the table plane (world X right, world Z away from the
// participant) onto canvas sub-pixels. Y is dropped.
type TableView struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
	canvas     *Canvas
}

// NewTableView fits the given points with a margin on every side.
func NewTableView(c *Canvas, margin float64, pts ...geom.Vec3) *TableView {
	v := &TableView{canvas: c}
	if len(pts) == 0 {
		v.MinX, v.MaxX, v.MinZ, v.MaxZ = -1, 1, -1, 1
		return v
	}
	v.MinX, v.MaxX = pts[0][0], pts[0][0]
	v.MinZ, v.MaxZ = pts[0][2], pts[0][2]
	for _, p := range pts[1:] {
		v.MinX = min(v.MinX, p[0])
		v.MaxX = max(v.MaxX, p[0])
		v.MinZ = min(v.MinZ, p[2])
		v.MaxZ = max(v.MaxZ, p[2])
	}
	v.MinX -= margin
	v.MaxX += margin
	v.MinZ -= margin
	v.MaxZ += margin
	return v
}

// Project returns sub-pixel coordinates; far Z is at the top.
func (v *TableView) Project(p geom.Vec3) (int, int) {
	w := float64(v.canvas.Width*2 - 1)
	h := float64(v.canvas.Height*4 - 1)
	spanX := v.MaxX - v.MinX
	spanZ := v.MaxZ - v.MinZ
	if spanX <= 0 || spanZ <= 0 {
		return 0, 0
	}
	x := (p[0] - v.MinX) / spanX * w
	y := (v.MaxZ - p[2]) / spanZ * h
	return int(x + 0.5), int(y + 0.5)
}

func (v *TableView) Dot(p geom.Vec3) {
	x, y := v.Project(p)
	v.canvas.Set(x, y)
}

// Cross draws a small plus sign centered on p.
func (v *TableView) Cross(p geom.Vec3) {
	x, y := v.Project(p)
	v.canvas.DrawLine(x-2, y, x+2, y)
	v.canvas.DrawLine(x, y-2, x, y+2)
}

func (v *TableView) Line(a, b geom.Vec3) {
	x0, y0 := v.Project(a)
	x1, y1 := v.Project(b)
	v.canvas.DrawLine(x0, y0, x1, y1)
}
