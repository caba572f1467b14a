package repository

import (
	"testing"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCityCacheKey(t *testing.T) {
	assert.Equal(t, "issues:city:bangalore", cityCacheKey(" Bangalore "))
	assert.Equal(t, cityCacheKey("BANGALORE"), cityCacheKey("bangalore"))
}

func TestParseIssueID(t *testing.T) {
	id, ok := parseIssueID("6")
	assert.True(t, ok)
	assert.Equal(t, int64(6), id)

	for _, bad := range []string{"", "abc", "0", "-3", "6.5"} {
		_, ok := parseIssueID(bad)
		assert.False(t, ok, bad)
	}
}

func TestTagStrings(t *testing.T) {
	got := tagStrings([]models.Tag{models.TagPedestrianSafety, models.TagParking})

	assert.Equal(t, []string{"pedestrian_safety", "parking"}, got)
	assert.Empty(t, tagStrings(nil))
}
