package domain

import "time"

// Band is the severity classification of a segment's grade.
type Band string

const (
	BandSteepUp      Band = "steep-up"
	BandModerateUp   Band = "moderate-up"
	BandGentleUp     Band = "gentle-up"
	BandFlat         Band = "flat"
	BandGentleDown   Band = "gentle-down"
	BandModerateDown Band = "moderate-down"
	BandSteepDown    Band = "steep-down"
)

var bandColors = map[Band]string{
	BandSteepUp:      "#d73027", // red
	BandModerateUp:   "#fc8d59", // orange
	BandGentleUp:     "#fee08b", // yellow
	BandFlat:         "#4CAF50", // green
	BandGentleDown:   "#abd9e9", // light blue
	BandModerateDown: "#74add1", // medium blue
	BandSteepDown:    "#4575b4", // dark blue
}

// Color returns the hex display color of the band.
func (b Band) Color() string {
	if c, ok := bandColors[b]; ok {
		return c
	}
	return bandColors[BandFlat]
}

// Difficulty is a coarse label summarizing a route's total ascent.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
	DifficultyBrutal   Difficulty = "Brutal"
)

// Segment is the piece of route between two consecutive elevation points.
type Segment struct {
	From  GeoPoint `json:"from"`
	To    GeoPoint `json:"to"`
	Slope float64  `json:"slope_pct"`
	Band  Band     `json:"band"`
}

// Color returns the display color of the segment.
func (s Segment) Color() string {
	return s.Band.Color()
}

// RouteStats aggregates the grade of all segments of a route.
// Ascent and descent are sums of grade percentages, not meters.
type RouteStats struct {
	TotalAscentPct  float64    `json:"total_ascent_pct"`
	TotalDescentPct float64    `json:"total_descent_pct"`
	MaxAbsGradePct  float64    `json:"max_abs_grade_pct"`
	Difficulty      Difficulty `json:"difficulty"`
}

// Profile is the render-ready result of aggregating an elevation path.
type Profile struct {
	Segments []Segment  `json:"segments"`
	Stats    RouteStats `json:"stats"`
}

// RoutePlan is the outcome of one two-point route request.
type RoutePlan struct {
	Start      GeoPoint         `json:"start"`
	End        GeoPoint         `json:"end"`
	Geometry   string           `json:"geometry"`
	Points     []ElevationPoint `json:"points,omitempty"`
	Profile    Profile          `json:"profile"`
	ComputedAt time.Time        `json:"computed_at"`
}

// RouteComputed is the event published after a plan completes.
type RouteComputed struct {
	Start      GeoPoint   `json:"start"`
	End        GeoPoint   `json:"end"`
	Segments   int        `json:"segments"`
	Stats      RouteStats `json:"stats"`
	ComputedAt time.Time  `json:"computed_at"`
}

// AnnotatedPoint is a decoded polyline vertex with its raw elevation and
// the chunked slope assigned by the elevation annotator.
type AnnotatedPoint struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	ElevM    *float64 `json:"elev_m"`
	SlopePct float64  `json:"slope_pct"`
}

// ElevationSummary is the elevation annotator's response for a polyline.
type ElevationSummary struct {
	TotalAscentM  float64          `json:"total_ascent_m"`
	TotalDescentM float64          `json:"total_descent_m"`
	MaxSlopePct   float64          `json:"max_slope_pct"`
	AvgSlopePct   float64          `json:"avg_slope_pct"`
	Difficulty    string           `json:"difficulty"`
	Points        []AnnotatedPoint `json:"points"`
}
