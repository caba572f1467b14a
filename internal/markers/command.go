// Package markers держит набор маркеров карты в соответствии с видимыми проблемами.
//
// Каждый маркер принадлежит ровно одной проблеме (ключ - Issue.ID) и живет только
// в реестре Synchronizer. Изменения вычисляются явным диффом (Diff) в виде
// команд remove/update/create и применяются к Surface в этом порядке.
package markers

import (
	"slices"
	"strings"

	"github.com/shenikar/mobility_map/internal/models"
)

// Position - координаты в порядке картографического SDK: [lng, lat]
type Position struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Style - кольцо по главной категории и точка по серьезности
type Style struct {
	Ring string `json:"ring"`
	Dot  string `json:"dot"`
}

type Marker struct {
	IssueID  string   `json:"issue_id"`
	Position Position `json:"position"`
	Style    Style    `json:"style"`
}

type Emphasis string

const (
	EmphasisNormal      Emphasis = "normal"
	EmphasisHighlighted Emphasis = "highlighted"
)

// Surface - примитивы картографического SDK, которыми пользуется синхронизатор
type Surface interface {
	AddMarker(m Marker) error
	RemoveMarker(issueID string) error
	SetPosition(issueID string, p Position) error
	// SetEmphasis переключает подсветку; intensity чередуется 1/2 при мигании, 0 для normal
	SetEmphasis(issueID string, e Emphasis, intensity int) error
	FlyTo(p Position, zoom float64) error
}

type Op string

const (
	OpRemove Op = "remove"
	OpUpdate Op = "update"
	OpCreate Op = "create"
)

type Command struct {
	Op     Op     `json:"op"`
	Marker Marker `json:"marker"`
}

// MarkerFor строит маркер проблемы; ok=false, если координаты непригодны
func MarkerFor(issue *models.Issue) (Marker, bool) {
	if issue == nil || !issue.Location.Usable() {
		return Marker{}, false
	}
	return Marker{
		IssueID: issue.ID,
		Position: Position{
			Lng: issue.Location.Longitude,
			Lat: issue.Location.Latitude,
		},
		Style: Style{
			Ring: models.CategoryColor(issue.MainCategory()),
			Dot:  models.SeverityColor(issue.Severity),
		},
	}, true
}

// Diff сравнивает текущий реестр с видимым набором. Команды упорядочены:
// сначала все remove, затем update, затем create. Проблемы без пригодных
// координат пропускаются, повторяющиеся ID учитываются один раз.
func Diff(current map[string]Marker, visible []*models.Issue) []Command {
	wanted := make(map[string]Marker, len(visible))
	order := make([]string, 0, len(visible))
	for _, issue := range visible {
		m, ok := MarkerFor(issue)
		if !ok {
			continue
		}
		if _, dup := wanted[m.IssueID]; dup {
			continue
		}
		wanted[m.IssueID] = m
		order = append(order, m.IssueID)
	}

	var removes, updates, creates []Command
	for id, m := range current {
		if _, ok := wanted[id]; !ok {
			removes = append(removes, Command{Op: OpRemove, Marker: m})
		}
	}
	// порядок обхода map случаен, удаления упорядочиваем для детерминизма
	slices.SortFunc(removes, func(a, b Command) int {
		return strings.Compare(a.Marker.IssueID, b.Marker.IssueID)
	})

	for _, id := range order {
		m := wanted[id]
		prev, exists := current[id]
		switch {
		case !exists:
			creates = append(creates, Command{Op: OpCreate, Marker: m})
		case prev != m:
			updates = append(updates, Command{Op: OpUpdate, Marker: m})
		}
	}

	cmds := make([]Command, 0, len(removes)+len(updates)+len(creates))
	cmds = append(cmds, removes...)
	cmds = append(cmds, updates...)
	return append(cmds, creates...)
}
