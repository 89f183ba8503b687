package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// maxBarWidth caps the number of cells in the grade bar.
const maxBarWidth = 60

// bandOrder lists bands from steepest climb to steepest descent.
var bandOrder = []domain.Band{
	domain.BandSteepUp,
	domain.BandModerateUp,
	domain.BandGentleUp,
	domain.BandFlat,
	domain.BandGentleDown,
	domain.BandModerateDown,
	domain.BandSteepDown,
}

// Presenter implements session.Presenter by writing to a terminal.
type Presenter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewPresenter writes to w. With color set, segments are drawn using
// 24-bit ANSI colors matching the band palette.
func NewPresenter(w io.Writer, color bool) *Presenter {
	return &Presenter{w: w, color: color}
}

func (p *Presenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

func (p *Presenter) SetBusy(busy bool) {
	if busy {
		p.printf("Finding route...\n")
	}
}

func (p *Presenter) Clear() {
	p.printf("Difficulty: -\nAscent: -\nDescent: -\nMax Grade: -\n")
}

// DrawSegments prints a grade bar followed by the share of each band.
func (p *Presenter) DrawSegments(segments []domain.Segment) {
	if len(segments) == 0 {
		p.printf("(no segments)\n")
		return
	}

	var b strings.Builder
	b.WriteString(p.bar(segments))
	b.WriteByte('\n')

	counts := make(map[domain.Band]int, len(bandOrder))
	for _, s := range segments {
		counts[s.Band]++
	}
	for _, band := range bandOrder {
		n := counts[band]
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %-13s %4d  (%.0f%%)\n",
			p.paint(band.Color(), "■"), band, n, 100*float64(n)/float64(len(segments)))
	}
	p.printf("%s", b.String())
}

func (p *Presenter) ShowStats(stats domain.RouteStats) {
	p.printf("Ascent: %.1f%%\nDescent: %.1f%%\nMax Grade: %.1f%%\nDifficulty: %s\n",
		stats.TotalAscentPct, stats.TotalDescentPct, stats.MaxAbsGradePct, stats.Difficulty)
}

func (p *Presenter) ShowError(err error) {
	p.printf("Error: %v\n", err)
}

func (p *Presenter) ShowRaw(points []domain.ElevationPoint) {
	if points == nil {
		return
	}
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		p.ShowError(err)
		return
	}
	p.printf("%s\n", data)
}

// bar samples the segments down to at most maxBarWidth cells.
func (p *Presenter) bar(segments []domain.Segment) string {
	width := min(len(segments), maxBarWidth)
	var b strings.Builder
	for i := 0; i < width; i++ {
		s := segments[i*len(segments)/width]
		b.WriteString(p.paint(s.Color(), "█"))
	}
	return b.String()
}

func (p *Presenter) paint(hex, s string) string {
	if !p.color {
		return s
	}
	r, g, bl, ok := parseHex(hex)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, bl, s)
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
