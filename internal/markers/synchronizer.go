package markers

import (
	"slices"
	"sync"
	"time"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBlinkInterval = 600 * time.Millisecond
	DefaultFocusZoom     = 15.0
)

type Options struct {
	BlinkInterval time.Duration
	FocusZoom     float64
}

// Synchronizer - единственный владелец маркеров на Surface.
// До события загрузки карты (Ready) все запросы откладываются, применяется только последний.
type Synchronizer struct {
	mu      sync.Mutex
	surface Surface
	log     *logrus.Entry
	zoom    float64
	blinker *Blinker

	ready  bool
	closed bool

	markers map[string]Marker

	pending    []*models.Issue
	hasPending bool

	selected    string
	highlighted string
	pendingFly  bool
}

func NewSynchronizer(surface Surface, logger *logrus.Logger, opts Options) *Synchronizer {
	if opts.BlinkInterval <= 0 {
		opts.BlinkInterval = DefaultBlinkInterval
	}
	if opts.FocusZoom <= 0 {
		opts.FocusZoom = DefaultFocusZoom
	}
	return &Synchronizer{
		surface: surface,
		log:     logger.WithField("component", "markers"),
		zoom:    opts.FocusZoom,
		blinker: NewBlinker(opts.BlinkInterval),
		markers: make(map[string]Marker),
	}
}

// Ready - карта загрузилась; применяем отложенную синхронизацию и выбор
func (s *Synchronizer) Ready() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ready {
		return
	}
	s.ready = true
	s.log.Debug("Map surface ready")

	if s.hasPending {
		s.reconcileLocked(s.pending)
		s.pending = nil
		s.hasPending = false
	}
	s.applySelectionLocked()
}

// Failed - карта не смогла загрузиться. Синхронизатор продолжает откладывать
// запросы и применит их, если Ready все-таки придет.
func (s *Synchronizer) Failed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.WithError(err).Error("Map surface failed to initialize")
}

// Sync приводит маркеры в соответствие с видимым набором
func (s *Synchronizer) Sync(visible []*models.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	snapshot := slices.Clone(visible)
	if !s.ready {
		s.pending = snapshot
		s.hasPending = true
		s.log.WithField("count", len(snapshot)).Debug("Map not ready, sync deferred")
		return
	}
	s.reconcileLocked(snapshot)
	s.applySelectionLocked()
}

// Select меняет выбранную проблему; "" снимает выбор
func (s *Synchronizer) Select(issueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || issueID == s.selected {
		return
	}
	s.selected = issueID
	s.pendingFly = issueID != ""
	if !s.ready {
		return
	}
	s.applySelectionLocked()
}

// Close снимает все маркеры и останавливает мигание. Повторный вызов безопасен.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.blinker.Stop()
	s.highlighted = ""

	for _, id := range s.markerIDsLocked() {
		if err := s.surface.RemoveMarker(id); err != nil {
			s.log.WithError(err).WithField("issue_id", id).Debug("Failed to remove marker on teardown")
		}
		delete(s.markers, id)
	}
	s.pending = nil
	s.hasPending = false
	s.mu.Unlock()

	// вне блокировки: горутина мигания может ждать s.mu
	s.blinker.Wait()
	s.log.Debug("Marker synchronizer closed")
}

// MarkerIDs - отсортированные ID проблем, для которых стоят маркеры
func (s *Synchronizer) MarkerIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markerIDsLocked()
}

// Highlighted - ID подсвеченного маркера или ""
func (s *Synchronizer) Highlighted() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// Blinking - ID маркера с активным таймером мигания или ""
func (s *Synchronizer) Blinking() string {
	return s.blinker.ActiveIssue()
}

func (s *Synchronizer) markerIDsLocked() []string {
	ids := make([]string, 0, len(s.markers))
	for id := range s.markers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Synchronizer) reconcileLocked(visible []*models.Issue) {
	for _, issue := range visible {
		if issue != nil && !issue.Location.Usable() {
			s.log.WithField("issue_id", issue.ID).Warn("Issue has no usable coordinates, marker not placed")
		}
	}

	for _, cmd := range Diff(s.markers, visible) {
		id := cmd.Marker.IssueID
		log := s.log.WithFields(logrus.Fields{"issue_id": id, "op": cmd.Op})

		switch cmd.Op {
		case OpRemove:
			if s.highlighted == id {
				s.blinker.Stop()
				s.highlighted = ""
			}
			if err := s.surface.RemoveMarker(id); err != nil {
				log.WithError(err).Warn("Failed to remove marker")
			}
			delete(s.markers, id)

		case OpUpdate:
			prev := s.markers[id]
			if prev.Style == cmd.Marker.Style {
				if err := s.surface.SetPosition(id, cmd.Marker.Position); err != nil {
					log.WithError(err).Warn("Failed to move marker")
					continue
				}
				s.markers[id] = cmd.Marker
				continue
			}
			// стиль меняется только пересозданием
			if err := s.surface.RemoveMarker(id); err != nil {
				log.WithError(err).Warn("Failed to remove marker for restyle")
			}
			delete(s.markers, id)
			if s.highlighted == id {
				s.blinker.Stop()
				s.highlighted = ""
			}
			s.addLocked(cmd.Marker, log)

		case OpCreate:
			s.addLocked(cmd.Marker, log)
		}
	}
}

func (s *Synchronizer) addLocked(m Marker, log *logrus.Entry) {
	if err := s.surface.AddMarker(m); err != nil {
		log.WithError(err).Warn("Failed to add marker")
		return
	}
	s.markers[m.IssueID] = m
}

// applySelectionLocked держит подсветку ровно на выбранном маркере
func (s *Synchronizer) applySelectionLocked() {
	if s.highlighted != "" && s.highlighted != s.selected {
		prev := s.highlighted
		s.blinker.Stop()
		s.highlighted = ""
		if _, ok := s.markers[prev]; ok {
			if err := s.surface.SetEmphasis(prev, EmphasisNormal, 0); err != nil {
				s.log.WithError(err).WithField("issue_id", prev).Warn("Failed to reset marker emphasis")
			}
		}
	}

	if s.selected == "" {
		s.pendingFly = false
		return
	}

	// маркера еще нет: перелет остается в ожидании до его появления
	m, ok := s.markers[s.selected]
	if !ok {
		return
	}

	if s.highlighted != s.selected {
		if err := s.surface.SetEmphasis(m.IssueID, EmphasisHighlighted, 1); err != nil {
			s.log.WithError(err).WithField("issue_id", m.IssueID).Warn("Failed to highlight marker")
		}
		s.highlighted = m.IssueID
		s.blinker.Start(m.IssueID, s.onBlink)
	}

	if s.pendingFly {
		s.pendingFly = false
		// перелет - удобство, ошибка не влияет на выбор
		if err := s.surface.FlyTo(m.Position, s.zoom); err != nil {
			s.log.WithError(err).WithField("issue_id", m.IssueID).Debug("FlyTo failed")
		}
	}
}

func (s *Synchronizer) onBlink(h *Blink, intensity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.blinker.IsActive(h) {
		return
	}
	if err := s.surface.SetEmphasis(h.issueID, EmphasisHighlighted, intensity); err != nil {
		s.log.WithError(err).WithField("issue_id", h.issueID).Debug("Blink tick failed")
	}
}
