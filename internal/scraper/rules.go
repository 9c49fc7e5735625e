package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/covid-widget/internal/covid"
	"github.com/pfrederiksen/covid-widget/internal/logger"
)

// Field names a Snapshot field a Rule fills in
type Field string

const (
	FieldRenewalDate              Field = "renewal_date"
	FieldDomesticCount            Field = "domestic_count"
	FieldVaccineRateTitle         Field = "vaccine_rate_title"
	FieldVaccineRate              Field = "vaccine_rate"
	FieldChildVaccineRateTitle    Field = "child_vaccine_rate_title"
	FieldChildVaccineRateSubTitle Field = "child_vaccine_rate_subtitle"
	FieldChildVaccineRate         Field = "child_vaccine_rate"
)

// Cleanup is a per-field text transform applied after default substitution
type Cleanup int

const (
	CleanupNone Cleanup = iota
	CleanupLastDate
	CleanupStripNewlines
	CleanupRateMarker
)

var (
	// "MM.DD. 00시 기준" ("as of midnight"). The separator is often an &nbsp;,
	// which \s alone does not match.
	renewalDatePattern = regexp.MustCompile(`\d{2}\.\d{2}\.[\s\p{Zs}]00시 기준`)

	// Rate followed by a parenthesised delta, e.g. "78.5%(+0.1)"
	rateMarkerPattern = regexp.MustCompile(`([\d.,]+%)\s*\(`)

	newlineReplacer = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")
)

// Rule locates one field inside a revision's container
type Rule struct {
	Field   Field
	Path    string
	Default string
	Cleanup Cleanup
}

// Revision is the extraction table for one version of the dashboard markup
type Revision struct {
	Name      string
	Container string
	Rules     []Rule
}

// RevisionOccurGraph covers the earliest layout, which only published the
// renewal date and the daily domestic count.
var RevisionOccurGraph = Revision{
	Name:      "occur-graph",
	Container: "div.mainlive_container div.liveToggleOuter",
	Rules: []Rule{
		{Field: FieldRenewalDate, Path: "h2 span.livedate", Default: covid.DefaultRenewalDate, Cleanup: CleanupLastDate},
		{Field: FieldDomesticCount, Path: "div.liveNum_today_new ul.datalist > li:first-of-type span.data", Default: covid.DefaultDomesticCount},
	},
}

// RevisionVaccineMarker adds the vaccination rate, published with a trailing
// "(+delta)" marker that is cut off.
var RevisionVaccineMarker = Revision{
	Name:      "vaccine-marker",
	Container: "div.mainlive_container div.liveboard_layout",
	Rules: []Rule{
		{Field: FieldRenewalDate, Path: "h2 span.livedate", Default: covid.DefaultRenewalDate, Cleanup: CleanupLastDate},
		{Field: FieldDomesticCount, Path: "div.occur_graph > table.ds_table tbody > tr:first-of-type > td:nth-of-type(4) > span", Default: covid.DefaultDomesticCount},
		{Field: FieldVaccineRateTitle, Path: "div.vaccine_list .box:last-of-type .item", Default: covid.DefaultVaccineRateTitle},
		{Field: FieldVaccineRate, Path: "div.vaccine_list .box:last-of-type .percent", Default: covid.DefaultVaccineRate, Cleanup: CleanupRateMarker},
	},
}

// RevisionLiveboard covers the current liveboard layout with the full field set
var RevisionLiveboard = Revision{
	Name:      "liveboard",
	Container: "div.mainlive_container div.liveboard_layout",
	Rules: []Rule{
		{Field: FieldRenewalDate, Path: "h2 span.livedate", Default: covid.DefaultRenewalDate, Cleanup: CleanupLastDate},
		{Field: FieldDomesticCount, Path: "div.occur_graph > table.ds_table tbody > tr:first-of-type > td:nth-of-type(4) > span", Default: covid.DefaultDomesticCount},
		{Field: FieldVaccineRateTitle, Path: "div.vaccine_list .box:last-of-type .item", Default: covid.DefaultVaccineRateTitle},
		{Field: FieldVaccineRate, Path: "div.vaccine_list .box:last-of-type .percent", Default: covid.DefaultVaccineRate, Cleanup: CleanupStripNewlines},
		{Field: FieldChildVaccineRateTitle, Path: "div.child_list > .item", Default: covid.DefaultVaccineRateTitle},
		{Field: FieldChildVaccineRateSubTitle, Path: "div.child_list .box:last-of-type .object", Default: covid.DefaultVaccineRateTitle},
		{Field: FieldChildVaccineRate, Path: "div.child_list .box:last-of-type .percent", Default: covid.DefaultVaccineRate, Cleanup: CleanupStripNewlines},
	},
}

// DefaultRevision is the table used when none is configured
var DefaultRevision = RevisionLiveboard

var revisions = map[string]Revision{
	RevisionOccurGraph.Name:    RevisionOccurGraph,
	RevisionVaccineMarker.Name: RevisionVaccineMarker,
	RevisionLiveboard.Name:     RevisionLiveboard,
}

// RevisionByName returns the extraction table registered under name
func RevisionByName(name string) (Revision, error) {
	rev, ok := revisions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Revision{}, fmt.Errorf("unknown revision: %s (must be one of %s)", name, strings.Join(RevisionNames(), ", "))
	}
	return rev, nil
}

// RevisionNames lists the registered revision names in sorted order
func RevisionNames() []string {
	names := make([]string, 0, len(revisions))
	for name := range revisions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract runs the revision's rules against doc. It never fails: a rule whose
// selector matches nothing contributes its default value.
func Extract(doc *goquery.Document, rev Revision) covid.Snapshot {
	snapshot := covid.NewSnapshot()

	for _, rule := range rev.Rules {
		value := queryText(doc, rev.Container, rule.Path)
		if value == "" {
			logger.Debug("field defaulted", logger.Fields{
				"field":    string(rule.Field),
				"revision": rev.Name,
				"default":  rule.Default,
			})
			value = rule.Default
		}

		setField(&snapshot, rule.Field, rule.Cleanup.apply(value))
	}

	return snapshot
}

// queryText returns the trimmed text of the first element matching path under container
func queryText(doc *goquery.Document, container, path string) string {
	selector := strings.TrimSpace(container + " " + path)
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

func (c Cleanup) apply(text string) string {
	switch c {
	case CleanupLastDate:
		return lastDate(text)
	case CleanupStripNewlines:
		return newlineReplacer.Replace(text)
	case CleanupRateMarker:
		return rateBeforeMarker(newlineReplacer.Replace(text))
	default:
		return text
	}
}

// lastDate returns the last renewal-date token in text, or "" when there is none.
// Pages sometimes carry several candidates and the last one is current.
func lastDate(text string) string {
	matches := renewalDatePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// rateBeforeMarker returns the rate captured before the last "(" marker, or text
// unchanged when no marker is present
func rateBeforeMarker(text string) string {
	matches := rateMarkerPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text
	}
	return matches[len(matches)-1][1]
}

func setField(s *covid.Snapshot, field Field, value string) {
	switch field {
	case FieldRenewalDate:
		s.RenewalDate = value
	case FieldDomesticCount:
		s.DomesticCount = value
	case FieldVaccineRateTitle:
		s.VaccineRateTitle = value
	case FieldVaccineRate:
		s.VaccineRate = value
	case FieldChildVaccineRateTitle:
		s.ChildVaccineRateTitle = value
	case FieldChildVaccineRateSubTitle:
		s.ChildVaccineRateSubTitle = value
	case FieldChildVaccineRate:
		s.ChildVaccineRate = value
	}
}
