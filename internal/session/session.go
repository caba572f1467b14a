// Package session - состояние одной сессии просмотра карты: город, список проблем,
// фильтры, пагинация и выбранная проблема. Живет столько же, сколько соединение карты.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/query"
	"github.com/sirupsen/logrus"
)

// IssueSource - источник проблем города
type IssueSource interface {
	ListCityIssues(ctx context.Context, city string) ([]*models.Issue, error)
}

// IssueSourceFunc - адаптер функции к IssueSource
type IssueSourceFunc func(ctx context.Context, city string) ([]*models.Issue, error)

func (f IssueSourceFunc) ListCityIssues(ctx context.Context, city string) ([]*models.Issue, error) {
	return f(ctx, city)
}

// MarkerSync - потребитель видимого набора и выбора (markers.Synchronizer)
type MarkerSync interface {
	Sync(visible []*models.Issue)
	Select(issueID string)
}

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification - временное сообщение пользователю
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

// View - то, что рендерит список и панель деталей
type View struct {
	City     string       `json:"city"`
	Filter   query.Filter `json:"filter"`
	Result   query.Result `json:"result"`
	Selected string       `json:"selected_issue_id,omitempty"`
	Loading  bool         `json:"loading"`
}

type Session struct {
	mu       sync.Mutex
	source   IssueSource
	markers  MarkerSync
	notifier Notifier
	log      *logrus.Entry

	city     string
	issues   []*models.Issue
	filter   query.Filter
	result   query.Result
	selected string

	// loadSeq - токен последнего запроса; ответы с другим токеном отбрасываются
	loadSeq uint64
	loading bool
	// inflight - версии проблем, влитые во время незавершенной загрузки
	inflight map[string]*models.Issue
}

func New(source IssueSource, markers MarkerSync, notifier Notifier, logger *logrus.Logger) *Session {
	s := &Session{
		source:   source,
		markers:  markers,
		notifier: notifier,
		log:      logger.WithField("component", "session"),
		filter:   query.DefaultFilter(""),
	}
	s.result = query.Apply(nil, s.filter)
	return s
}

// LoadCity загружает проблемы города. Смена города сбрасывает фильтры и выбор.
// Если за время запроса пришел более новый LoadCity, ответ отбрасывается.
func (s *Session) LoadCity(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	if !strings.EqualFold(city, s.city) {
		s.city = city
		s.issues = nil
		s.filter = query.DefaultFilter(city)
		s.setSelectedLocked("")
		s.recomputeLocked()
	}
	s.loading = true
	s.inflight = make(map[string]*models.Issue)
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"city": city, "seq": seq})
	issues, err := s.source.ListCityIssues(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		log.Debug("Discarding stale city load")
		return nil
	}
	s.loading = false
	inflight := s.inflight
	s.inflight = nil
	if err != nil {
		log.WithError(err).Error("Failed to load city issues")
		s.notify(LevelError, "Could not load issues for "+city)
		return err
	}

	s.issues = mergeNewer(issues, inflight)
	s.recomputeLocked()
	log.WithField("count", len(issues)).Info("City issues loaded")
	return nil
}

// UpdateFilter применяет изменение фильтров и пересчитывает видимый набор.
// Город меняется только через LoadCity.
func (s *Session) UpdateFilter(update func(f *query.Filter)) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.filter)
	s.filter.City = s.city
	s.recomputeLocked()
	return s.viewLocked()
}

// SetPage переходит на страницу, номер зажимается в допустимый диапазон
func (s *Session) SetPage(page int) View {
	return s.UpdateFilter(func(f *query.Filter) { f.CurrentPage = page })
}

// Select делает проблему выбранной; "" снимает выбор. Клик по карточке и по маркеру
// приходят сюда же.
func (s *Session) Select(issueID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSelectedLocked(strings.TrimSpace(issueID))
	return s.viewLocked()
}

// ApplyIssueUpdate вливает свежую версию одной проблемы (голос, участник, документ)
// в текущий список, не перезаписывая остальные.
func (s *Session) ApplyIssueUpdate(issue *models.Issue) bool {
	if issue == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !strings.EqualFold(strings.TrimSpace(issue.City), s.city) {
		return false
	}
	if s.inflight != nil {
		s.inflight[issue.ID] = issue
	}

	archived := issue.Status == models.IssueStatusArchived
	idx := slices.IndexFunc(s.issues, func(i *models.Issue) bool { return i.ID == issue.ID })
	switch {
	case idx >= 0 && archived:
		s.issues = slices.Delete(slices.Clone(s.issues), idx, idx+1)
		if s.selected == issue.ID {
			s.setSelectedLocked("")
		}
	case idx >= 0:
		s.issues = slices.Clone(s.issues)
		s.issues[idx] = issue
	case !archived:
		s.issues = append(slices.Clone(s.issues), issue)
	default:
		return false
	}
	s.recomputeLocked()
	return true
}

// City - текущий город сессии
func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	return View{
		City:     s.city,
		Filter:   s.filter,
		Result:   s.result,
		Selected: s.selected,
		Loading:  s.loading,
	}
}

func (s *Session) setSelectedLocked(id string) {
	if id == s.selected {
		return
	}
	s.selected = id
	s.markers.Select(id)
}

// recomputeLocked пересчитывает результат, возвращает зажатую страницу в фильтр
// и отдает текущую страницу синхронизатору маркеров
func (s *Session) recomputeLocked() {
	prevPage := s.filter.CurrentPage
	s.result = query.Apply(s.issues, s.filter)
	s.filter.CurrentPage = s.result.CurrentPage
	s.filter.ItemsPerPage = s.result.ItemsPerPage
	if prevPage > s.result.CurrentPage {
		s.log.WithFields(logrus.Fields{
			"requested_page": prevPage,
			"current_page":   s.result.CurrentPage,
		}).Debug("Current page clamped to last page")
	}
	s.markers.Sync(s.result.Page)
}

// mergeNewer накладывает на ответ загрузки версии, пришедшие пока запрос был в пути.
// Версия из ответа остается, только если она обновлена позже.
func mergeNewer(fetched []*models.Issue, newer map[string]*models.Issue) []*models.Issue {
	out := make([]*models.Issue, 0, len(fetched)+len(newer))
	seen := make(map[string]struct{}, len(newer))
	for _, issue := range fetched {
		if issue == nil {
			continue
		}
		n, ok := newer[issue.ID]
		if !ok || n.UpdatedAt.Before(issue.UpdatedAt) {
			out = append(out, issue)
			if ok {
				seen[issue.ID] = struct{}{}
			}
			continue
		}
		seen[issue.ID] = struct{}{}
		if n.Status != models.IssueStatusArchived {
			out = append(out, n)
		}
	}

	ids := make([]string, 0, len(newer))
	for id := range newer {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		if n := newer[id]; n.Status != models.IssueStatusArchived {
			out = append(out, n)
		}
	}
	return out
}

func (s *Session) notify(level Level, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(Notification{Level: level, Message: msg})
	}
}
