package domain

import "time"

// Service is a scheduled occurrence of a feast: one or two feasts, the
// ministers, and the music. It is assembled per request and never mutated.
type Service struct {
	Title string

	// Date is the zero time when the service is undated.
	Date time.Time

	Celebrant string
	Preacher  string

	// PrimaryFeast is required.
	PrimaryFeast Feast

	// SecondaryFeast is commemorated alongside the primary one; nil when absent.
	SecondaryFeast *Feast

	IntroitHymn     *Music
	OffertoryHymn   *Music
	RecessionalHymn *Music
	Anthem          Music
}

// HasDate reports whether the service carries a date.
func (s *Service) HasDate() bool {
	return !s.Date.IsZero()
}

// Collects returns the primary collect (if non-empty) followed by the
// secondary collect (if a secondary feast exists and its collect is non-empty).
func (s *Service) Collects() []string {
	out := make([]string, 0, 2)
	if s.PrimaryFeast.Collect != "" {
		out = append(out, s.PrimaryFeast.Collect)
	}
	if s.SecondaryFeast != nil && s.SecondaryFeast.Collect != "" {
		out = append(out, s.SecondaryFeast.Collect)
	}
	return out
}

// The propers below always come from the primary feast, even when a
// secondary feast is present. Whether the secondary should ever take
// precedence is unresolved.

// IntroitProper returns the primary feast's introit.
func (s *Service) IntroitProper() string { return s.PrimaryFeast.Introit }

// OffertoryProper returns the primary feast's offertory.
func (s *Service) OffertoryProper() string { return s.PrimaryFeast.Offertory }

// CommunionProper returns the primary feast's communion.
func (s *Service) CommunionProper() string { return s.PrimaryFeast.Communion }

// EpistleRef returns the primary feast's epistle reference.
func (s *Service) EpistleRef() string { return s.PrimaryFeast.EpistleRef }

// Epistle returns the primary feast's epistle text.
func (s *Service) Epistle() string { return s.PrimaryFeast.Epistle }

// GospelRef returns the primary feast's gospel reference.
func (s *Service) GospelRef() string { return s.PrimaryFeast.GospelRef }

// Gospel returns the primary feast's gospel text.
func (s *Service) Gospel() string { return s.PrimaryFeast.Gospel }

// Tables holds the reference data loaded once at startup.
type Tables struct {
	Feasts []Feast
	Hymns  []HymnRow
}
