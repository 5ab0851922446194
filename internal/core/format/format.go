// Package format derives display strings from domain records.
//
// The same functions back the web templates (as english_date,
// service_summary and service_subtitle) and the generated documents,
// so both always agree. Every entry point accepting an optional value
// returns an empty string when the value is absent.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/pew/internal/core/domain"
)

// Ordinal returns the English ordinal suffix for a day of the month.
func Ordinal(day int) string {
	switch day % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// EnglishDate formats t as "Saturday 25th December 2021".
// The zero time yields "".
func EnglishDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d%s %s %d", t.Weekday(), t.Day(), Ordinal(t.Day()), t.Month(), t.Year())
}

// ISODate formats t as YYYY-MM-DD. The zero time yields "".
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// ServiceSummary returns "<YYYY-MM-DD> <subtitle>".
// An undated service is summarised by its subtitle alone.
func ServiceSummary(s *domain.Service) string {
	if s == nil {
		return ""
	}
	if !s.HasDate() {
		return ServiceSubtitle(s)
	}
	return ISODate(s.Date) + " " + ServiceSubtitle(s)
}

// ServiceSubtitle composes the feast and ministers line:
//
//	Feast (Secondary), Celebrant (Preacher: Other)
//
// The preacher clause is dropped when the preacher is the celebrant.
func ServiceSubtitle(s *domain.Service) string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.PrimaryFeast.Name)
	if s.SecondaryFeast != nil {
		b.WriteString(" (" + s.SecondaryFeast.Name + ")")
	}
	b.WriteString(", ")

	c, p := s.Celebrant, s.Preacher
	switch {
	case c != "" && p != "" && p != c:
		b.WriteString(c + " (Preacher: " + p + ")")
	case c != "":
		b.WriteString(c)
	case p != "":
		b.WriteString("Preacher: " + p)
	}
	return b.String()
}

// Helpers returns the named template helpers. The result converts
// directly to html/template.FuncMap and text/template.FuncMap.
func Helpers() map[string]any {
	return map[string]any{
		"english_date":     EnglishDate,
		"service_summary":  ServiceSummary,
		"service_subtitle": ServiceSubtitle,
	}
}
