package realtime

import (
	"github.com/shenikar/mobility_map/internal/markers"
	"github.com/shenikar/mobility_map/internal/query"
)

// Типы входящих сообщений
const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeFilter      = "filter"
	MsgTypePage        = "page"
	MsgTypeSelect      = "select"
	MsgTypeMarkerClick = "marker_click"
	MsgTypeMapReady    = "map_ready"
	MsgTypeMapError    = "map_error"
)

// Типы исходящих сообщений
const (
	MsgTypeView         = "view"
	MsgTypeMarker       = "marker"
	MsgTypeNotification = "notification"
)

// Действия над маркерами в исходящем сообщении marker
const (
	MarkerAdd      = "add"
	MarkerRemove   = "remove"
	MarkerMove     = "move"
	MarkerEmphasis = "emphasis"
	MarkerFlyTo    = "fly_to"
)

// Message - входящее сообщение от карты браузера
type Message struct {
	Type    string       `json:"type"`
	City    string       `json:"city,omitempty"`
	Filter  *FilterPatch `json:"filter,omitempty"`
	Page    int          `json:"page,omitempty"`
	IssueID string       `json:"issue_id,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// FilterPatch - изменение фильтров; nil поля не трогаются
type FilterPatch struct {
	Category     *string  `json:"category,omitempty"`
	Severity     *string  `json:"severity,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Search       *string  `json:"search,omitempty"`
	SortBy       *string  `json:"sort_by,omitempty"`
	ItemsPerPage *int     `json:"items_per_page,omitempty"`
}

// Apply переносит изменения в фильтр сессии
func (p *FilterPatch) Apply(f *query.Filter) {
	if p == nil {
		return
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Severity != nil {
		f.Severity = *p.Severity
	}
	if p.Tags != nil {
		f.Tags = p.Tags
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.SortBy != nil {
		f.SortBy = query.ParseSortBy(*p.SortBy)
	}
	if p.ItemsPerPage != nil {
		f.ItemsPerPage = *p.ItemsPerPage
	}
}

// Envelope - исходящее сообщение
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// MarkerOp - команда для картографического SDK в браузере
type MarkerOp struct {
	Action    string            `json:"action"`
	IssueID   string            `json:"issue_id,omitempty"`
	Marker    *markers.Marker   `json:"marker,omitempty"`
	Position  *markers.Position `json:"position,omitempty"`
	Emphasis  markers.Emphasis  `json:"emphasis,omitempty"`
	Intensity int               `json:"intensity,omitempty"`
	Zoom      float64           `json:"zoom,omitempty"`
}
