package markers

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface записывает вызовы картографического SDK
type fakeSurface struct {
	mu        sync.Mutex
	markers   map[string]Marker
	emphasis  map[string]Emphasis
	calls     []string
	blinks    map[string]int
	flights   []Position
	addErr    map[string]error
	flyToErr  error
	duplicate bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		markers:  make(map[string]Marker),
		emphasis: make(map[string]Emphasis),
		blinks:   make(map[string]int),
		addErr:   make(map[string]error),
	}
}

func (f *fakeSurface) AddMarker(m Marker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.addErr[m.IssueID]; err != nil {
		return err
	}
	if _, ok := f.markers[m.IssueID]; ok {
		f.duplicate = true
	}
	f.markers[m.IssueID] = m
	f.emphasis[m.IssueID] = EmphasisNormal
	f.calls = append(f.calls, "add:"+m.IssueID)
	return nil
}

func (f *fakeSurface) RemoveMarker(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.markers, id)
	delete(f.emphasis, id)
	f.calls = append(f.calls, "remove:"+id)
	return nil
}

func (f *fakeSurface) SetPosition(id string, p Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.markers[id]
	m.Position = p
	f.markers[id] = m
	f.calls = append(f.calls, "move:"+id)
	return nil
}

func (f *fakeSurface) SetEmphasis(id string, e Emphasis, intensity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emphasis[id] = e
	if e == EmphasisHighlighted && intensity == 2 {
		f.blinks[id]++
	}
	return nil
}

func (f *fakeSurface) FlyTo(p Position, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flights = append(f.flights, p)
	return f.flyToErr
}

func (f *fakeSurface) highlightedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for id, e := range f.emphasis {
		if e == EmphasisHighlighted {
			out = append(out, id)
		}
	}
	return out
}

func (f *fakeSurface) blinkCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blinks[id]
}

func (f *fakeSurface) markerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.markers)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func issueAt(id string, lat, lng float64) *models.Issue {
	return &models.Issue{
		ID:       id,
		City:     "Bangalore",
		Tags:     []models.Tag{models.TagPedestrianSafety},
		Severity: models.SeverityModerate,
		Location: &models.Location{Latitude: lat, Longitude: lng},
	}
}

func newReadySync(t *testing.T, surface *fakeSurface) *Synchronizer {
	s := NewSynchronizer(surface, testLogger(), Options{BlinkInterval: 5 * time.Millisecond})
	s.Ready()
	t.Cleanup(s.Close)
	return s
}

func TestDiff_RemoveBeforeCreate(t *testing.T) {
	current := map[string]Marker{}
	for _, id := range []string{"1", "2"} {
		m, _ := MarkerFor(issueAt(id, 10, 20))
		current[id] = m
	}
	moved := issueAt("2", 11, 21)

	cmds := Diff(current, []*models.Issue{moved, issueAt("3", 12, 22)})

	require.Len(t, cmds, 3)
	assert.Equal(t, OpRemove, cmds[0].Op)
	assert.Equal(t, "1", cmds[0].Marker.IssueID)
	assert.Equal(t, OpUpdate, cmds[1].Op)
	assert.Equal(t, "2", cmds[1].Marker.IssueID)
	assert.Equal(t, OpCreate, cmds[2].Op)
	assert.Equal(t, "3", cmds[2].Marker.IssueID)
}

func TestDiff_SkipsUnusableAndDuplicates(t *testing.T) {
	noLoc := &models.Issue{ID: "x"}
	bad := issueAt("y", 120, 0)

	cmds := Diff(nil, []*models.Issue{noLoc, bad, issueAt("1", 1, 1), issueAt("1", 1, 1), nil})

	require.Len(t, cmds, 1)
	assert.Equal(t, "1", cmds[0].Marker.IssueID)
}

func TestMarkerFor_Style(t *testing.T) {
	issue := issueAt("6", 12.9, 77.6)
	issue.Severity = models.SeverityCritical

	m, ok := MarkerFor(issue)

	require.True(t, ok)
	assert.Equal(t, Position{Lng: 77.6, Lat: 12.9}, m.Position)
	assert.Equal(t, models.CategoryColor(models.TagPedestrianSafety), m.Style.Ring)
	assert.Equal(t, models.SeverityColor(models.SeverityCritical), m.Style.Dot)
}

func TestSync_MarkerCountMatchesUsableIssues(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)

	s.Sync([]*models.Issue{issueAt("1", 1, 1), issueAt("2", 2, 2), {ID: "3"}})
	assert.Equal(t, []string{"1", "2"}, s.MarkerIDs())
	assert.Equal(t, 2, surface.markerCount())

	s.Sync([]*models.Issue{issueAt("2", 2, 2), issueAt("4", 4, 4)})
	assert.Equal(t, []string{"2", "4"}, s.MarkerIDs())
	assert.Equal(t, 2, surface.markerCount())
	assert.False(t, surface.duplicate)
}

func TestSync_DeferredUntilReady(t *testing.T) {
	surface := newFakeSurface()
	s := NewSynchronizer(surface, testLogger(), Options{BlinkInterval: 5 * time.Millisecond})
	t.Cleanup(s.Close)

	s.Failed(errors.New("style failed to load"))
	s.Sync([]*models.Issue{issueAt("1", 1, 1)})
	s.Sync([]*models.Issue{issueAt("2", 2, 2), issueAt("3", 3, 3)})
	s.Select("3")
	assert.Equal(t, 0, surface.markerCount())

	s.Ready()

	// применяется только последний запрос
	assert.Equal(t, []string{"2", "3"}, s.MarkerIDs())
	assert.Equal(t, "3", s.Highlighted())
	assert.Len(t, surface.flights, 1)
}

func TestSelect_SupersedesPreviousHighlight(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("6", 6, 6), issueAt("7", 7, 7)})

	s.Select("6")
	s.Select("7")

	assert.Equal(t, "7", s.Highlighted())
	assert.Equal(t, "7", s.Blinking())
	assert.Equal(t, []string{"7"}, surface.highlightedIDs())

	assert.Eventually(t, func() bool { return surface.blinkCount("7") >= 2 }, time.Second, 5*time.Millisecond)
	before := surface.blinkCount("6")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, surface.blinkCount("6"), "old blink timer must be stopped")
	assert.Equal(t, []string{"7"}, surface.highlightedIDs())
}

func TestSelect_Deselect(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("6", 6, 6)})
	s.Select("6")

	s.Select("")

	assert.Empty(t, s.Highlighted())
	assert.Empty(t, s.Blinking())
	assert.Empty(t, surface.highlightedIDs())
}

func TestSelect_FlyToFailureDoesNotBlockSelection(t *testing.T) {
	surface := newFakeSurface()
	surface.flyToErr = errors.New("camera busy")
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("6", 6, 6)})

	s.Select("6")

	assert.Equal(t, "6", s.Highlighted())
}

func TestSelect_BeforeMarkerPlacedFliesOnSync(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)

	s.Select("6")
	assert.Empty(t, surface.flights)

	s.Sync([]*models.Issue{issueAt("6", 6, 6)})

	assert.Equal(t, "6", s.Highlighted())
	surface.mu.Lock()
	defer surface.mu.Unlock()
	require.Len(t, surface.flights, 1)
	assert.Equal(t, Position{Lng: 6, Lat: 6}, surface.flights[0])
}

func TestSelect_FliesOncePerSelection(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("6", 6, 6)})
	s.Select("6")

	s.Sync([]*models.Issue{issueAt("6", 6, 6), issueAt("7", 7, 7)})

	surface.mu.Lock()
	defer surface.mu.Unlock()
	assert.Len(t, surface.flights, 1)
}

func TestSync_RemovingHighlightedStopsBlink(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("6", 6, 6), issueAt("7", 7, 7)})
	s.Select("6")

	s.Sync([]*models.Issue{issueAt("7", 7, 7)})

	assert.Empty(t, s.Highlighted())
	assert.Empty(t, s.Blinking())

	// проблема вернулась в видимый набор - подсветка восстанавливается
	s.Sync([]*models.Issue{issueAt("6", 6, 6), issueAt("7", 7, 7)})
	assert.Equal(t, "6", s.Highlighted())
}

func TestSync_UpdateMovesMarker(t *testing.T) {
	surface := newFakeSurface()
	s := newReadySync(t, surface)
	s.Sync([]*models.Issue{issueAt("1", 1, 1)})

	s.Sync([]*models.Issue{issueAt("1", 5, 5)})

	assert.Contains(t, surface.calls, "move:1")
	assert.Equal(t, Position{Lng: 5, Lat: 5}, surface.markers["1"].Position)
}

func TestSync_AddFailureIsNotRegistered(t *testing.T) {
	surface := newFakeSurface()
	surface.addErr["2"] = errors.New("sdk error")
	s := newReadySync(t, surface)

	s.Sync([]*models.Issue{issueAt("1", 1, 1), issueAt("2", 2, 2)})

	assert.Equal(t, []string{"1"}, s.MarkerIDs())
}

func TestClose_TearsDownEverything(t *testing.T) {
	surface := newFakeSurface()
	s := NewSynchronizer(surface, testLogger(), Options{BlinkInterval: 5 * time.Millisecond})
	s.Ready()
	issues := make([]*models.Issue, 0, 5)
	for i := 0; i < 5; i++ {
		issues = append(issues, issueAt(fmt.Sprint(i), float64(i), float64(i)))
	}
	s.Sync(issues)
	s.Select("3")

	s.Close()
	s.Close()

	assert.Equal(t, 0, surface.markerCount())
	assert.Empty(t, s.MarkerIDs())
	assert.Empty(t, s.Blinking())

	// после закрытия запросы игнорируются
	s.Sync(issues)
	assert.Equal(t, 0, surface.markerCount())
}

func TestBlinker_SingleActiveTimer(t *testing.T) {
	b := NewBlinker(2 * time.Millisecond)
	var mu sync.Mutex
	ticks := map[string]int{}
	tick := func(h *Blink, _ int) {
		if !b.IsActive(h) {
			return
		}
		mu.Lock()
		ticks[h.issueID]++
		mu.Unlock()
	}

	first := b.Start("a", tick)
	second := b.Start("b", tick)

	assert.False(t, b.IsActive(first))
	assert.True(t, b.IsActive(second))
	assert.Equal(t, "b", b.ActiveIssue())

	b.Stop()
	b.Wait()
	assert.Empty(t, b.ActiveIssue())
}
