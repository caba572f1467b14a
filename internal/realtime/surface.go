package realtime

import "github.com/shenikar/mobility_map/internal/markers"

// wsSurface передает примитивы карты в браузер как сообщения marker
type wsSurface struct {
	c *Client
}

func (s wsSurface) AddMarker(m markers.Marker) error {
	return s.c.enqueue(MsgTypeMarker, MarkerOp{Action: MarkerAdd, IssueID: m.IssueID, Marker: &m})
}

func (s wsSurface) RemoveMarker(issueID string) error {
	return s.c.enqueue(MsgTypeMarker, MarkerOp{Action: MarkerRemove, IssueID: issueID})
}

func (s wsSurface) SetPosition(issueID string, p markers.Position) error {
	return s.c.enqueue(MsgTypeMarker, MarkerOp{Action: MarkerMove, IssueID: issueID, Position: &p})
}

func (s wsSurface) SetEmphasis(issueID string, e markers.Emphasis, intensity int) error {
	return s.c.enqueue(MsgTypeMarker, MarkerOp{Action: MarkerEmphasis, IssueID: issueID, Emphasis: e, Intensity: intensity})
}

func (s wsSurface) FlyTo(p markers.Position, zoom float64) error {
	return s.c.enqueue(MsgTypeMarker, MarkerOp{Action: MarkerFlyTo, Position: &p, Zoom: zoom})
}
