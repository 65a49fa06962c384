// Package mapview holds the marker set for the current result page and
// draws it as a character grid.
package mapview

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"npisearch/internal/domain"
)

const (
	// SinglePinSpan is the half-width in degrees of the box around a lone pin
	SinglePinSpan = 0.01
	// PaddingRatio widens fitted bounds by this fraction of their span on each side
	PaddingRatio = 0.1

	emptyCell   = '·'
	overlapCell = '#'
)

// Layer owns the markers shown on the map. It must be cleared before every
// re-render so pins from a previous search never linger.
type Layer struct {
	mu      sync.Mutex
	markers []domain.Marker
}

// NewLayer creates an empty layer
func NewLayer() *Layer {
	return &Layer{}
}

// Clear removes every marker
func (l *Layer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = nil
}

// Replace clears the layer and adds markers in one step
func (l *Layer) Replace(markers []domain.Marker) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = append([]domain.Marker(nil), markers...)
}

// Markers returns a copy of the current markers
func (l *Layer) Markers() []domain.Marker {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Marker(nil), l.markers...)
}

// Len returns the number of markers
func (l *Layer) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.markers)
}

// Bounds is a latitude/longitude box
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Center returns the middle of the box
func (b Bounds) Center() domain.GeoPoint {
	return domain.GeoPoint{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}
}

// Contains reports whether p lies inside the box
func (b Bounds) Contains(p domain.GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Fit returns a padded box around all markers. ok is false for no markers.
func Fit(markers []domain.Marker) (b Bounds, ok bool) {
	if len(markers) == 0 {
		return Bounds{}, false
	}

	b = Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLng: math.Inf(1), MaxLng: math.Inf(-1),
	}
	for _, m := range markers {
		b.MinLat = math.Min(b.MinLat, m.Point.Lat)
		b.MaxLat = math.Max(b.MaxLat, m.Point.Lat)
		b.MinLng = math.Min(b.MinLng, m.Point.Lng)
		b.MaxLng = math.Max(b.MaxLng, m.Point.Lng)
	}

	latPad := math.Max((b.MaxLat-b.MinLat)*PaddingRatio, SinglePinSpan)
	lngPad := math.Max((b.MaxLng-b.MinLng)*PaddingRatio, SinglePinSpan)
	b.MinLat -= latPad
	b.MaxLat += latPad
	b.MinLng -= lngPad
	b.MaxLng += lngPad
	return b, true
}

// PinLabel is the single character drawn for the marker at result index i
func PinLabel(i int) rune {
	switch {
	case i < 9:
		return rune('1' + i)
	case i < 9+26:
		return rune('a' + i - 9)
	default:
		return '+'
	}
}

// Grid projects markers onto a width x height character grid.
// Pins sharing a cell are drawn as '#'.
func Grid(markers []domain.Marker, width, height int) []string {
	if width < 1 || height < 1 {
		return nil
	}

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(emptyCell), width))
	}

	if b, ok := Fit(markers); ok {
		for _, m := range markers {
			x := project(m.Point.Lng, b.MinLng, b.MaxLng, width)
			y := height - 1 - project(m.Point.Lat, b.MinLat, b.MaxLat, height)
			if cells[y][x] == emptyCell {
				cells[y][x] = PinLabel(m.Index)
			} else {
				cells[y][x] = overlapCell
			}
		}
	}

	rows := make([]string, height)
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}

func project(v, lo, hi float64, size int) int {
	if hi <= lo || size == 1 {
		return 0
	}
	i := int(math.Round((v - lo) / (hi - lo) * float64(size-1)))
	return max(0, min(size-1, i))
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	pinStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Render draws the layer's markers inside a border of the given outer size
func (l *Layer) Render(width, height int) string {
	markers := l.Markers()
	rows := Grid(markers, width-2, height-2)
	if rows == nil {
		return ""
	}

	for i, row := range rows {
		var b strings.Builder
		for _, r := range row {
			if r == emptyCell {
				b.WriteString(dimStyle.Render(string(r)))
			} else {
				b.WriteString(pinStyle.Render(string(r)))
			}
		}
		rows[i] = b.String()
	}
	return frameStyle.Render(strings.Join(rows, "\n"))
}

// Legend lists pin labels with their marker labels
func Legend(markers []domain.Marker) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		out = append(out, string(PinLabel(m.Index))+" "+m.Label+" ("+
			strconv.FormatFloat(m.Point.Lat, 'f', 4, 64)+", "+
			strconv.FormatFloat(m.Point.Lng, 'f', 4, 64)+")")
	}
	return out
}
