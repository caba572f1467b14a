// Package query выводит из полного списка проблем города видимый набор
// и текущую страницу. Пакет не делает ввода-вывода и никогда не возвращает ошибок:
// некорректные значения фильтра просто ничего не находят.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/shenikar/mobility_map/internal/models"
)

// All - значение фильтра категории/серьезности "без ограничения"
const All = "all"

const (
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
)

type SortBy string

const (
	SortMostCritical SortBy = "most_critical"
	SortMostRecent   SortBy = "most_recent"
	SortMostUpvoted  SortBy = "most_upvoted"
)

// ParseSortBy возвращает порядок сортировки, неизвестные значения дают most_critical
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortMostRecent:
		return SortMostRecent
	case SortMostUpvoted:
		return SortMostUpvoted
	}
	return SortMostCritical
}

// Filter - состояние фильтров, сортировки и пагинации сессии просмотра
type Filter struct {
	City         string   `json:"city"`
	Category     string   `json:"category"`
	Severity     string   `json:"severity"`
	Tags         []string `json:"tags"`
	Search       string   `json:"search"`
	SortBy       SortBy   `json:"sort_by"`
	ItemsPerPage int      `json:"items_per_page"`
	CurrentPage  int      `json:"current_page"`
}

// DefaultFilter - фильтр новой сессии
func DefaultFilter(city string) Filter {
	return Filter{
		City:         city,
		Category:     All,
		Severity:     All,
		SortBy:       SortMostCritical,
		ItemsPerPage: DefaultItemsPerPage,
		CurrentPage:  1,
	}
}

// Result - результат прогона фильтра
type Result struct {
	Visible      []*models.Issue `json:"-"`
	Page         []*models.Issue `json:"issues"`
	VisibleCount int             `json:"visible_count"`
	TotalPages   int             `json:"total_pages"`
	CurrentPage  int             `json:"current_page"`
	ItemsPerPage int             `json:"items_per_page"`
}

// Apply фильтрует, сортирует и режет на страницы. Входной срез не изменяется.
func Apply(all []*models.Issue, f Filter) Result {
	per := normalizeItemsPerPage(f.ItemsPerPage)
	m := newMatcher(f)

	visible := make([]*models.Issue, 0, len(all))
	for _, issue := range all {
		if issue != nil && m.match(issue) {
			visible = append(visible, issue)
		}
	}
	sortIssues(visible, ParseSortBy(string(f.SortBy)))

	total := TotalPages(len(visible), per)
	page := ClampPage(f.CurrentPage, total)

	start := min((page-1)*per, len(visible))
	end := min(page*per, len(visible))

	return Result{
		Visible:      visible,
		Page:         visible[start:end:end],
		VisibleCount: len(visible),
		TotalPages:   total,
		CurrentPage:  page,
		ItemsPerPage: per,
	}
}

// TotalPages = ceil(count/per), но не меньше 1
func TotalPages(count, per int) int {
	per = normalizeItemsPerPage(per)
	if count <= 0 {
		return 1
	}
	return (count + per - 1) / per
}

// ClampPage зажимает номер страницы в [1, total]
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func normalizeItemsPerPage(per int) int {
	if per < 1 {
		return DefaultItemsPerPage
	}
	if per > MaxItemsPerPage {
		return MaxItemsPerPage
	}
	return per
}

type matcher struct {
	city     string
	category string
	severity models.Severity
	// noMatch выставляется, если значение фильтра не распознано
	noMatch bool
	tagKeys map[string]struct{}
	search  string
}

func newMatcher(f Filter) matcher {
	m := matcher{city: strings.TrimSpace(f.City)}

	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, All) {
		m.category = models.CanonicalTag(c).Key()
	}

	if s := strings.TrimSpace(f.Severity); s != "" && !strings.EqualFold(s, All) {
		sev, ok := models.ParseSeverity(s)
		if !ok {
			m.noMatch = true
		}
		m.severity = sev
	}

	for _, raw := range f.Tags {
		key := models.CanonicalTag(raw).Key()
		if key == "" {
			continue
		}
		if m.tagKeys == nil {
			m.tagKeys = make(map[string]struct{})
		}
		m.tagKeys[key] = struct{}{}
	}

	m.search = strings.ToLower(strings.TrimSpace(f.Search))
	return m
}

func (m matcher) match(issue *models.Issue) bool {
	if m.noMatch {
		return false
	}
	if m.city != "" && !strings.EqualFold(strings.TrimSpace(issue.City), m.city) {
		return false
	}
	if m.category != "" && !hasTagKey(issue.Tags, func(k string) bool { return k == m.category }) {
		return false
	}
	if m.severity != "" && issue.Severity != m.severity {
		return false
	}
	if len(m.tagKeys) > 0 && !hasTagKey(issue.Tags, func(k string) bool {
		_, ok := m.tagKeys[k]
		return ok
	}) {
		return false
	}
	if m.search != "" &&
		!strings.Contains(strings.ToLower(issue.Title), m.search) &&
		!strings.Contains(strings.ToLower(issue.Description), m.search) {
		return false
	}
	return true
}

func hasTagKey(tags []models.Tag, ok func(string) bool) bool {
	for _, t := range tags {
		if ok(t.Key()) {
			return true
		}
	}
	return false
}

var epoch = time.Unix(0, 0)

// sortTime - нулевая дата сортируется как Unix epoch
func sortTime(t time.Time) time.Time {
	if t.IsZero() {
		return epoch
	}
	return t
}

// sortIssues - устойчивая сортировка на месте
func sortIssues(issues []*models.Issue, by SortBy) {
	switch by {
	case SortMostRecent:
		slices.SortStableFunc(issues, func(a, b *models.Issue) int {
			return sortTime(b.CreatedAt).Compare(sortTime(a.CreatedAt))
		})
	case SortMostUpvoted:
		slices.SortStableFunc(issues, func(a, b *models.Issue) int {
			return b.Upvotes - a.Upvotes
		})
	default:
		slices.SortStableFunc(issues, func(a, b *models.Issue) int {
			return a.Severity.Rank() - b.Severity.Rank()
		})
	}
}
