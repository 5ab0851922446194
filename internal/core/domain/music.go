package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MusicCategory classifies a piece of service music.
type MusicCategory string

const (
	// CategoryHymn is a congregational hymn, usually from a hymnal.
	CategoryHymn MusicCategory = "Hymn"
	// CategoryAnthem is a choir anthem.
	CategoryAnthem MusicCategory = "Anthem"
	// CategoryPlainsong is chant.
	CategoryPlainsong MusicCategory = "Plainsong"
)

// Valid reports whether c is one of the known categories.
func (c MusicCategory) Valid() bool {
	switch c {
	case CategoryHymn, CategoryAnthem, CategoryPlainsong:
		return true
	}
	return false
}

// HymnColumns is the exact, ordered header of the hymns table.
var HymnColumns = []string{"number", "firstLine"}

// HymnRow is one row of the New English Hymnal index.
type HymnRow struct {
	Number    int
	FirstLine string
}

// HymnRowFromCells parses a row whose cells follow HymnColumns.
func HymnRowFromCells(row []string) (HymnRow, error) {
	if len(row) != len(HymnColumns) {
		return HymnRow{}, ErrInvalidInput
	}
	n, err := strconv.Atoi(row[0])
	if err != nil {
		return HymnRow{}, fmt.Errorf("hymn number %q: %w", row[0], ErrInvalidInput)
	}
	return HymnRow{Number: n, FirstLine: row[1]}, nil
}

// Music is a hymn, anthem or piece of plainsong.
type Music struct {
	Title    string
	Category MusicCategory

	// Optional attributes; empty when unknown.
	Composer string
	Lyrics   string
	Ref      string
}

// HymnRef returns the reference code for a hymnal number, e.g. "NEH: 30".
func HymnRef(number int) string {
	return fmt.Sprintf("NEH: %d", number)
}

// ParseHymnRef normalises user input to a hymn reference: a bare number
// such as "30" becomes "NEH: 30"; anything else is returned trimmed.
func ParseHymnRef(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return HymnRef(n)
	}
	return s
}

// Hymn converts an index row into a Music value.
func (r HymnRow) Hymn() Music {
	return Music{
		Title:    r.FirstLine,
		Category: CategoryHymn,
		Ref:      HymnRef(r.Number),
	}
}

// Attr returns the value of the named attribute.
func (m Music) Attr(name string) (string, bool) {
	switch name {
	case "title":
		return m.Title, true
	case "category":
		return string(m.Category), true
	case "composer":
		return m.Composer, true
	case "lyrics":
		return m.Lyrics, true
	case "ref":
		return m.Ref, true
	default:
		return "", false
	}
}

// String renders hymns as "<ref>, <title>" and everything else by title.
func (m Music) String() string {
	if m.Category == CategoryHymn {
		return m.Ref + ", " + m.Title
	}
	return m.Title
}
