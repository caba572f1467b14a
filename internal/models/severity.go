package models

import "strings"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// ParseSeverity приводит строку к значению перечисления
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityCritical:
		return SeverityCritical, true
	case SeverityModerate:
		return SeverityModerate, true
	case SeverityMinor:
		return SeverityMinor, true
	}
	return "", false
}

// Rank - порядок сортировки "most critical": critical < moderate < minor < неизвестное
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityModerate:
		return 1
	case SeverityMinor:
		return 2
	}
	return 3
}

// SeverityColor - цвет внутренней точки маркера и бейджа
func SeverityColor(s Severity) string {
	switch s {
	case SeverityCritical:
		return "#dc2626"
	case SeverityModerate:
		return "#f59e0b"
	case SeverityMinor:
		return "#16a34a"
	}
	return "#6b7280"
}
