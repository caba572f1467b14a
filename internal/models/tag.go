package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tag - идентификатор категории. Значения приводятся к канонической форме
// один раз при приеме данных (CanonicalTag), дальше сравниваются по Key.
type Tag string

const (
	TagPedestrianSafety     Tag = "pedestrian_safety"
	TagCyclistFacilities    Tag = "cyclist_facilities"
	TagPublicTransport      Tag = "public_transport"
	TagAccessibility        Tag = "accessibility"
	TagRoadInfrastructure   Tag = "road_infrastructure"
	TagTrafficSafety        Tag = "traffic_safety"
	TagStreetLighting       Tag = "street_lighting"
	TagLastMileConnectivity Tag = "last_mile_connectivity"
	TagWomenSafety          Tag = "women_safety"
	TagParking              Tag = "parking"
	TagOther                Tag = "other"
)

var knownTags = []Tag{
	TagPedestrianSafety,
	TagCyclistFacilities,
	TagPublicTransport,
	TagAccessibility,
	TagRoadInfrastructure,
	TagTrafficSafety,
	TagStreetLighting,
	TagLastMileConnectivity,
	TagWomenSafety,
	TagParking,
	TagOther,
}

var categoryColors = map[Tag]string{
	TagPedestrianSafety:     "#2563eb",
	TagCyclistFacilities:    "#059669",
	TagPublicTransport:      "#7c3aed",
	TagAccessibility:        "#db2777",
	TagRoadInfrastructure:   "#ea580c",
	TagTrafficSafety:        "#dc2626",
	TagStreetLighting:       "#ca8a04",
	TagLastMileConnectivity: "#0891b2",
	TagWomenSafety:          "#be185d",
	TagParking:              "#4b5563",
	TagOther:                "#6b7280",
}

// tagsByKey индексирует известные теги по ключу без разделителей
var tagsByKey = func() map[string]Tag {
	m := make(map[string]Tag, len(knownTags))
	for _, t := range knownTags {
		m[t.Key()] = t
	}
	return m
}()

// KnownTags возвращает закрытый список категорий
func KnownTags() []Tag {
	out := make([]Tag, len(knownTags))
	copy(out, knownTags)
	return out
}

// CanonicalTag приводит произвольное написание тега к канонической форме.
// "Cyclist Facilities", "cyclist-facilities" и "CyclistFacilities" дают TagCyclistFacilities.
// Неизвестные теги сохраняются в виде lower_snake.
func CanonicalTag(raw string) Tag {
	folded := fold(raw)
	if folded == "" {
		return ""
	}
	if t, ok := tagsByKey[stripSeparators(folded)]; ok {
		return t
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		if isSeparator(r) {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return Tag(b.String())
}

// CanonicalTags применяет CanonicalTag к набору, отбрасывая пустые значения
func CanonicalTags(raw []string) []Tag {
	out := make([]Tag, 0, len(raw))
	for _, r := range raw {
		if t := CanonicalTag(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Key - ключ сравнения: нижний регистр, без '_', ' ' и '-'
func (t Tag) Key() string {
	return stripSeparators(strings.ToLower(string(t)))
}

// Known сообщает, входит ли тег в закрытый список категорий
func (t Tag) Known() bool {
	_, ok := tagsByKey[t.Key()]
	return ok
}

// CategoryColor - цвет кольца маркера для главной категории
func CategoryColor(t Tag) string {
	if c, ok := categoryColors[t]; ok {
		return c
	}
	return categoryColors[TagOther]
}

func fold(s string) string {
	t := transform.Chain(norm.NFKD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}

func isSeparator(r rune) bool {
	return r == '_' || r == ' ' || r == '-'
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, s)
}
