package widget

import (
	"time"

	"github.com/pfrederiksen/covid-widget/internal/covid"
)

const (
	DefaultTitle           = "Covid-19"
	DefaultRefreshInterval = 180 * time.Minute
	TitleIcon              = "burn"
	UnavailableText        = "data unavailable"
)

// Align is the horizontal alignment of a row
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Row is one line of the widget
type Row struct {
	Kind     RowKind `json:"kind"`
	Icon     string  `json:"icon,omitempty"`
	Text     string  `json:"text"`
	Align    Align   `json:"align"`
	FontSize int     `json:"font_size"`
	Bold     bool    `json:"bold,omitempty"`
}

// Classification is the presentation tier derived from a case count
type Classification struct {
	Tier     string `json:"tier"`
	Color    string `json:"color"`
	FontSize int    `json:"font_size"`
}

// Widget is everything a surface needs to draw the status widget
type Widget struct {
	Title        string         `json:"title"`
	URL          string         `json:"url,omitempty"`
	Device       DeviceClass    `json:"device"`
	Background   string         `json:"background"`
	Tier         string         `json:"tier"`
	Count        int            `json:"count"`
	Available    bool           `json:"available"`
	RefreshAfter time.Time      `json:"refresh_after"`
	Rows         []Row          `json:"rows"`
	Snapshot     covid.Snapshot `json:"snapshot"`
}

// Presenter holds one selection of tier table, font rule and layout
type Presenter struct {
	Title           string
	Tiers           TierTable
	Font            FontRule
	Layout          Layout
	RefreshInterval time.Duration
}

// NewPresenter creates a Presenter with the default tables
func NewPresenter() Presenter {
	return Presenter{
		Title:           DefaultTitle,
		Tiers:           TiersClassic,
		Font:            FontTwoTier,
		Layout:          LayoutFull,
		RefreshInterval: DefaultRefreshInterval,
	}
}

// Classify derives the colour and count font size for count
func (p Presenter) Classify(count int, device DeviceClass) Classification {
	tier := p.Tiers.Classify(count)
	return Classification{
		Tier:     tier.Name,
		Color:    tier.Color,
		FontSize: p.Font.Size(count, device),
	}
}

// Present assembles the ordered display rows for snapshot
func (p Presenter) Present(snapshot covid.Snapshot, device DeviceClass) []Row {
	class := p.Classify(snapshot.ParsedCount(), device)

	rows := make([]Row, 0, len(p.Layout.Metadata)+3)
	rows = append(rows,
		Row{Kind: RowTitle, Icon: TitleIcon, Text: p.Title, Align: AlignCenter, FontSize: TitleFontSize(device), Bold: true},
		Row{Kind: RowCount, Text: snapshot.DomesticCount, Align: AlignCenter, FontSize: class.FontSize, Bold: true},
	)

	for _, kind := range p.Layout.Metadata {
		rows = append(rows, Row{Kind: kind, Text: metadataText(kind, snapshot), Align: AlignRight, FontSize: MetadataFont})
	}

	if !snapshot.Available {
		rows = append(rows, Row{Kind: RowStatus, Text: UnavailableText, Align: AlignRight, FontSize: MetadataFont})
	}

	return rows
}

// Build assembles the complete widget. The refresh time is a hint for the host
// scheduler, which decides when the widget is actually refreshed.
func (p Presenter) Build(snapshot covid.Snapshot, device DeviceClass, now time.Time) *Widget {
	count := snapshot.ParsedCount()
	class := p.Classify(count, device)

	interval := p.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &Widget{
		Title:        p.Title,
		URL:          snapshot.SourceURL,
		Device:       device,
		Background:   class.Color,
		Tier:         class.Tier,
		Count:        count,
		Available:    snapshot.Available,
		RefreshAfter: now.Add(interval),
		Rows:         p.Present(snapshot, device),
		Snapshot:     snapshot,
	}
}

func metadataText(kind RowKind, s covid.Snapshot) string {
	switch kind {
	case RowRenewalDate:
		return s.RenewalDate
	case RowVaccine:
		return s.VaccineRateTitle + ": " + s.VaccineRate
	case RowChildVaccine:
		return s.ChildVaccineLabel() + ": " + s.ChildVaccineRate
	default:
		return ""
	}
}

// Classify derives the colour and count font size using the default tables
func Classify(count int, device DeviceClass) Classification {
	return NewPresenter().Classify(count, device)
}

// Present assembles display rows using the default tables
func Present(snapshot covid.Snapshot, device DeviceClass) []Row {
	return NewPresenter().Present(snapshot, device)
}
