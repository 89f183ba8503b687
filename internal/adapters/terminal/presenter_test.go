package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

func TestShowStats(t *testing.T) {
	var buf bytes.Buffer
	NewPresenter(&buf, false).ShowStats(domain.RouteStats{
		TotalAscentPct: 5, TotalDescentPct: 9, MaxAbsGradePct: 9, Difficulty: domain.DifficultyEasy,
	})

	want := "Ascent: 5.0%\nDescent: 9.0%\nMax Grade: 9.0%\nDifficulty: Easy\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDrawSegments_Plain(t *testing.T) {
	var buf bytes.Buffer
	NewPresenter(&buf, false).DrawSegments([]domain.Segment{
		{Slope: 5, Band: domain.BandModerateUp},
		{Slope: -9, Band: domain.BandSteepDown},
	})

	out := buf.String()
	if !strings.HasPrefix(out, "██\n") {
		t.Errorf("expected a 2-cell bar, got %q", out)
	}
	if !strings.Contains(out, "moderate-up") || !strings.Contains(out, "steep-down") {
		t.Errorf("expected band summary, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output must not contain escape codes")
	}
}

func TestDrawSegments_ColorUsesBandPalette(t *testing.T) {
	var buf bytes.Buffer
	NewPresenter(&buf, true).DrawSegments([]domain.Segment{{Slope: 9, Band: domain.BandSteepUp}})

	// #d73027
	if !strings.Contains(buf.String(), "\x1b[38;2;215;48;39m") {
		t.Errorf("expected steep-up color escape, got %q", buf.String())
	}
}

func TestDrawSegments_BarIsCapped(t *testing.T) {
	segs := make([]domain.Segment, 500)
	for i := range segs {
		segs[i] = domain.Segment{Band: domain.BandFlat}
	}
	var buf bytes.Buffer
	NewPresenter(&buf, false).DrawSegments(segs)

	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if n := strings.Count(firstLine, "█"); n != maxBarWidth {
		t.Errorf("expected %d cells, got %d", maxBarWidth, n)
	}
}

func TestShowErrorAndRaw(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)
	p.ShowError(errors.New("route unavailable"))
	p.ShowRaw(nil)
	p.ShowRaw([]domain.ElevationPoint{{GeoPoint: domain.GeoPoint{Lat: 1, Lon: 2}}})

	out := buf.String()
	if !strings.HasPrefix(out, "Error: route unavailable\n") {
		t.Errorf("unexpected error line: %q", out)
	}
	if !strings.Contains(out, `"lat": 1`) || !strings.Contains(out, `"slope_pct": null`) {
		t.Errorf("expected raw JSON, got %q", out)
	}
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#4CAF50")
	if !ok || r != 0x4c || g != 0xaf || b != 0x50 {
		t.Errorf("got %d %d %d %v", r, g, b, ok)
	}
	if _, _, _, ok := parseHex("green"); ok {
		t.Error("expected failure for non-hex input")
	}
}
