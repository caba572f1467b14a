package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bangaloreIssues - те же четыре проблемы, что и в сид-миграции
func bangaloreIssues() []*models.Issue {
	return []*models.Issue{
		{
			ID: "6", Title: "Broken footpath near Silk Board junction", City: "Bangalore",
			Description: "Pedestrians are forced onto the carriageway",
			Tags:        []models.Tag{models.TagPedestrianSafety, models.TagRoadInfrastructure},
			Severity:    models.SeverityCritical, Upvotes: 24,
			Location:  &models.Location{Latitude: 12.9177, Longitude: 77.6238},
			CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "7", Title: "No protected cycle lane on Outer Ring Road", City: "Bangalore",
			Description: "Cyclists share lanes with heavy traffic",
			Tags:        []models.Tag{models.TagCyclistFacilities, models.TagTrafficSafety},
			Severity:    models.SeverityModerate, Upvotes: 37,
			Location:  &models.Location{Latitude: 12.9352, Longitude: 77.6974},
			CreatedAt: time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "8", Title: "Bus stops without shelter on Hosur Road", City: "Bangalore",
			Description: "Commuters wait in rain and heat",
			Tags:        []models.Tag{models.TagPublicTransport, models.TagAccessibility},
			Severity:    models.SeverityModerate, Upvotes: 42,
			Location:  &models.Location{Latitude: 12.8996, Longitude: 77.6410},
			CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "9", Title: "Dark underpass at Koramangala", City: "Bangalore",
			Description: "Street lighting is broken, unsafe at night",
			Tags:        []models.Tag{models.TagStreetLighting, models.TagWomenSafety},
			Severity:    models.SeverityMinor, Upvotes: 56,
			Location:  &models.Location{Latitude: 12.9279, Longitude: 77.6271},
			CreatedAt: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func ids(issues []*models.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.ID
	}
	return out
}

func TestApply_SeverityCritical(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Severity = "critical"

	res := Apply(bangaloreIssues(), f)

	assert.Equal(t, []string{"6"}, ids(res.Visible))
}

func TestApply_MostUpvoted(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.SortBy = SortMostUpvoted

	res := Apply(bangaloreIssues(), f)

	assert.Equal(t, []string{"9", "8", "7", "6"}, ids(res.Page))
}

func TestApply_SelectedTags(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Tags = []string{"cyclist_facilities"}

	res := Apply(bangaloreIssues(), f)
	assert.Equal(t, []string{"7"}, ids(res.Visible))

	// Другое написание того же тега
	f.Tags = []string{"Cyclist-Facilities"}
	res = Apply(bangaloreIssues(), f)
	assert.Equal(t, []string{"7"}, ids(res.Visible))
}

func TestApply_TagsAreORMatched(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Tags = []string{"parking", "women safety", "public-transport"}

	res := Apply(bangaloreIssues(), f)

	assert.ElementsMatch(t, []string{"8", "9"}, ids(res.Visible))
}

func TestApply_PaginationClamp(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.ItemsPerPage = 10
	f.CurrentPage = 5

	res := Apply(bangaloreIssues(), f)

	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.Page, 4)
}

func TestApply_PageSlice(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.SortBy = SortMostUpvoted
	f.ItemsPerPage = 3
	f.CurrentPage = 2

	res := Apply(bangaloreIssues(), f)

	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, []string{"6"}, ids(res.Page))
}

func TestApply_EmptyResultHasOnePage(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Search = "no such words"
	f.CurrentPage = 3

	res := Apply(bangaloreIssues(), f)

	assert.Empty(t, res.Visible)
	assert.Empty(t, res.Page)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
}

func TestApply_Search(t *testing.T) {
	f := DefaultFilter("bangalore")
	f.Search = "  LIGHTING "
	res := Apply(bangaloreIssues(), f)
	assert.Equal(t, []string{"9"}, ids(res.Visible), "description match, case-insensitive")

	f.Search = "cycle lane"
	res = Apply(bangaloreIssues(), f)
	assert.Equal(t, []string{"7"}, ids(res.Visible), "title match")

	f.Search = "   "
	res = Apply(bangaloreIssues(), f)
	assert.Len(t, res.Visible, 4, "blank search is no constraint")
}

func TestApply_CityIsHardBoundary(t *testing.T) {
	issues := append(bangaloreIssues(), &models.Issue{ID: "10", City: "Delhi", Severity: models.SeverityCritical})

	res := Apply(issues, DefaultFilter("BANGALORE"))
	assert.NotContains(t, ids(res.Visible), "10")

	res = Apply(issues, DefaultFilter("delhi"))
	assert.Equal(t, []string{"10"}, ids(res.Visible))
}

func TestApply_Category(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Category = "Accessibility"
	res := Apply(bangaloreIssues(), f)
	assert.Equal(t, []string{"8"}, ids(res.Visible))

	f.Category = "ALL"
	res = Apply(bangaloreIssues(), f)
	assert.Len(t, res.Visible, 4)
}

func TestApply_UnknownSeverityMatchesNothing(t *testing.T) {
	f := DefaultFilter("Bangalore")
	f.Severity = "urgent"

	res := Apply(bangaloreIssues(), f)

	assert.Empty(t, res.Visible)
}

func TestApply_MostCriticalIsStable(t *testing.T) {
	res := Apply(bangaloreIssues(), DefaultFilter("Bangalore"))

	// 7 и 8 оба moderate и сохраняют входной порядок
	assert.Equal(t, []string{"6", "7", "8", "9"}, ids(res.Visible))
}

func TestApply_MostRecent_ZeroDateSortsLast(t *testing.T) {
	issues := append(bangaloreIssues(), &models.Issue{ID: "11", City: "Bangalore"})
	f := DefaultFilter("Bangalore")
	f.SortBy = SortMostRecent

	res := Apply(issues, f)

	assert.Equal(t, []string{"9", "8", "7", "6", "11"}, ids(res.Visible))
}

func TestApply_SortIsIdempotent(t *testing.T) {
	issues := make([]*models.Issue, 0, 20)
	for i := 0; i < 20; i++ {
		issues = append(issues, &models.Issue{ID: fmt.Sprint(i), City: "Pune", Upvotes: i % 3})
	}
	f := DefaultFilter("Pune")
	f.SortBy = SortMostUpvoted
	f.ItemsPerPage = MaxItemsPerPage

	once := Apply(issues, f)
	twice := Apply(once.Visible, f)

	assert.Equal(t, ids(once.Visible), ids(twice.Visible))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	issues := bangaloreIssues()
	before := ids(issues)
	f := DefaultFilter("Bangalore")
	f.SortBy = SortMostUpvoted

	Apply(issues, f)

	assert.Equal(t, before, ids(issues))
}

func TestApply_SubsetInvariants(t *testing.T) {
	all := bangaloreIssues()
	filters := []Filter{
		DefaultFilter("Bangalore"),
		{City: "Bangalore", Tags: []string{"traffic_safety", "parking"}, ItemsPerPage: 1, CurrentPage: 2},
		{City: "Bangalore", Severity: "moderate", SortBy: SortMostRecent, ItemsPerPage: 1, CurrentPage: 99},
		{City: "Bangalore", Search: "road", ItemsPerPage: -4},
	}

	for _, f := range filters {
		res := Apply(all, f)
		require.GreaterOrEqual(t, res.TotalPages, 1)
		require.GreaterOrEqual(t, res.CurrentPage, 1)
		require.LessOrEqual(t, res.CurrentPage, res.TotalPages)
		assert.Subset(t, ids(all), ids(res.Visible))
		assert.Subset(t, ids(res.Visible), ids(res.Page))
		assert.LessOrEqual(t, len(res.Page), res.ItemsPerPage)
	}
}

func TestTotalPagesAndClamp(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(21, 0))

	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(7, 3))
	assert.Equal(t, 1, ClampPage(2, 0))
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, SortMostRecent, ParseSortBy("MOST_RECENT"))
	assert.Equal(t, SortMostUpvoted, ParseSortBy("most_upvoted"))
	assert.Equal(t, SortMostCritical, ParseSortBy("whatever"))
}
