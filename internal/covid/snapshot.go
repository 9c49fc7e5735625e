package covid

import (
	"strconv"
	"strings"
	"time"
)

// Field defaults applied when the dashboard does not provide a value
const (
	DefaultRenewalDate      = ""
	DefaultDomesticCount    = "0"
	DefaultVaccineRateTitle = ""
	DefaultVaccineRate      = "0%"
)

// Snapshot represents the metrics scraped from one load of the dashboard
type Snapshot struct {
	RenewalDate              string    `json:"renewal_date"`
	DomesticCount            string    `json:"domestic_count"` // Raw text, may contain thousands separators
	VaccineRateTitle         string    `json:"vaccine_rate_title"`
	VaccineRate              string    `json:"vaccine_rate"`
	ChildVaccineRateTitle    string    `json:"child_vaccine_rate_title"`
	ChildVaccineRateSubTitle string    `json:"child_vaccine_rate_subtitle"`
	ChildVaccineRate         string    `json:"child_vaccine_rate"`
	Available                bool      `json:"available"` // False for the placeholder built after a failed fetch
	SourceURL                string    `json:"source_url,omitempty"`
	FetchedAt                time.Time `json:"fetched_at,omitempty"`
}

// NewSnapshot creates a Snapshot with every field set to its default
func NewSnapshot() Snapshot {
	return Snapshot{
		RenewalDate:              DefaultRenewalDate,
		DomesticCount:            DefaultDomesticCount,
		VaccineRateTitle:         DefaultVaccineRateTitle,
		VaccineRate:              DefaultVaccineRate,
		ChildVaccineRateTitle:    DefaultVaccineRateTitle,
		ChildVaccineRateSubTitle: DefaultVaccineRateTitle,
		ChildVaccineRate:         DefaultVaccineRate,
		Available:                true,
	}
}

// Placeholder creates the all-defaults Snapshot rendered when nothing could be fetched
func Placeholder(sourceURL string) Snapshot {
	s := NewSnapshot()
	s.Available = false
	s.SourceURL = sourceURL
	return s
}

// ParsedCount returns DomesticCount with grouping separators removed, as a
// non-negative integer. Text that does not parse yields 0.
func (s Snapshot) ParsedCount() int {
	return ParseCount(s.DomesticCount)
}

// ChildVaccineLabel joins the child vaccine title and subtitle as "title(subtitle)"
func (s Snapshot) ChildVaccineLabel() string {
	return s.ChildVaccineRateTitle + "(" + s.ChildVaccineRateSubTitle + ")"
}

// ParseCount parses case-count text such as "1,234" into an integer
func ParseCount(text string) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if cleaned == "" {
		return 0
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
