package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 43.2630, -2.9350 ")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 43.263, Lon: -2.935}, p)
}

func TestParsePoint_Invalid(t *testing.T) {
	for _, in := range []string{"", "43.26", "abc,1", "1,abc", "91,0", "0,-181"} {
		_, err := parsePoint(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in)
	}
}
