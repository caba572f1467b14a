package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTag_KnownSpellings(t *testing.T) {
	for _, raw := range []string{"cyclist_facilities", "Cyclist Facilities", "cyclist-facilities", "CyclistFacilities", "  CYCLIST_facilities "} {
		assert.Equal(t, TagCyclistFacilities, CanonicalTag(raw), raw)
	}
}

func TestCanonicalTag_Unknown(t *testing.T) {
	assert.Equal(t, Tag("bus_stop_shelter"), CanonicalTag("Bus Stop - Shelter"))
	assert.Equal(t, Tag("cafe"), CanonicalTag("Café"))
	assert.Equal(t, Tag(""), CanonicalTag("   "))
	assert.False(t, Tag("bus_stop_shelter").Known())
}

func TestTagKey(t *testing.T) {
	assert.Equal(t, "pedestriansafety", TagPedestrianSafety.Key())
	assert.Equal(t, Tag("Pedestrian-Safety").Key(), TagPedestrianSafety.Key())
}

func TestCanonicalTags_DropsEmpty(t *testing.T) {
	tags := CanonicalTags([]string{"parking", "", "Women Safety"})
	assert.Equal(t, []Tag{TagParking, TagWomenSafety}, tags)
}

func TestSeverity(t *testing.T) {
	s, ok := ParseSeverity(" Critical ")
	assert.True(t, ok)
	assert.Equal(t, SeverityCritical, s)

	_, ok = ParseSeverity("urgent")
	assert.False(t, ok)

	assert.Less(t, SeverityCritical.Rank(), SeverityModerate.Rank())
	assert.Less(t, SeverityModerate.Rank(), SeverityMinor.Rank())
	assert.Less(t, SeverityMinor.Rank(), Severity("").Rank())
}

func TestLocationUsable(t *testing.T) {
	var nilLoc *Location
	assert.False(t, nilLoc.Usable())
	assert.True(t, (&Location{Latitude: 12.97, Longitude: 77.59}).Usable())
	assert.False(t, (&Location{Latitude: 91, Longitude: 0}).Usable())
	assert.False(t, (&Location{Latitude: 0, Longitude: -181}).Usable())
}

func TestMainCategory(t *testing.T) {
	assert.Equal(t, TagOther, (&Issue{}).MainCategory())
	assert.Equal(t, TagParking, (&Issue{Tags: []Tag{TagParking, TagAccessibility}}).MainCategory())
	assert.Equal(t, CategoryColor(TagOther), CategoryColor(Tag("unknown")))
}
