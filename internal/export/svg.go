// Package export writes simulated reaches to files for offline inspection.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
)

const (
	realColor    = "#6c6c6c"
	handColor    = "#00d787"
	elbowColor   = "#5fafff"
	targetColor  = "#ffaf00"
	anchorColor  = "#ff5f87"
	centerColor  = "#d0d0d0"
	backgroundColor = "#0a0a0a"
)

// bounds is the table area seen from above, in metres.
type bounds struct {
	minX, maxX, minZ, maxZ float64
}

func newBounds(pts []geom.Vec3) bounds {
	b := bounds{minX: pts[0].X(), maxX: pts[0].X(), minZ: pts[0].Z(), maxZ: pts[0].Z()}
	for _, p := range pts[1:] {
		b.minX = min(b.minX, p.X())
		b.maxX = max(b.maxX, p.X())
		b.minZ = min(b.minZ, p.Z())
		b.maxZ = max(b.maxZ, p.Z())
	}

	rangeX := b.maxX - b.minX
	rangeZ := b.maxZ - b.minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minZ -= rangeZ * 0.1
	b.maxZ += rangeZ * 0.1
	return b
}

// project maps a table point to pixels; +Z (away from the participant) is up.
func (b bounds) project(p geom.Vec3, width, height int) (float64, float64) {
	x := (p.X() - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Z()-b.minZ)/(b.maxZ-b.minZ)*float64(height)
	return x, y
}

// ReachSVG draws a top-down view of the layout with the real and virtual
// limb paths of a simulated reach.
func ReachSVG(l *layout.Layout, frames []engine.Frame, width, height int) string {
	if l == nil || len(frames) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	pts := []geom.Vec3{l.Shoulder, l.HandCenter, l.ElbowCenter}
	for _, p := range l.Hands {
		pts = append(pts, p)
	}
	for _, p := range l.Elbows {
		pts = append(pts, p)
	}
	for _, f := range frames {
		pts = append(pts, f.RealHand, f.VirtualHand, f.RealElbow, f.VirtualElbow)
	}
	b := newBounds(pts)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, backgroundColor))

	circle := func(p geom.Vec3, r float64, color string) {
		x, y := b.project(p, width, height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, color))
	}

	for _, p := range l.Hands {
		circle(p, 5, targetColor)
	}
	for _, p := range l.Elbows {
		circle(p, 3.5, targetColor)
	}
	circle(l.Shoulder, 4, centerColor)
	circle(l.HandCenter, 4, centerColor)
	circle(l.ElbowCenter, 4, centerColor)

	path := func(fn func(engine.Frame) geom.Vec3, color string, dashed bool) {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"`, color))
		if dashed {
			sb.WriteString(` stroke-dasharray="4 3"`)
		}
		sb.WriteString(` d="M`)
		for i, f := range frames {
			x, y := b.project(fn(f), width, height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	path(func(f engine.Frame) geom.Vec3 { return f.RealHand }, realColor, true)
	path(func(f engine.Frame) geom.Vec3 { return f.RealElbow }, realColor, true)
	path(func(f engine.Frame) geom.Vec3 { return f.VirtualElbow }, elbowColor, false)
	path(func(f engine.Frame) geom.Vec3 { return f.VirtualHand }, handColor, false)

	last := frames[len(frames)-1]
	circle(last.HandAnchor, 3, anchorColor)
	circle(last.ElbowAnchor, 3, anchorColor)

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteReachSVG renders the reach and writes it to path.
func WriteReachSVG(path string, l *layout.Layout, frames []engine.Frame, width, height int) error {
	svg := ReachSVG(l, frames, width, height)
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
