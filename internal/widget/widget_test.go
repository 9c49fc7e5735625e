package widget

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/covid-widget/internal/covid"
)

func sampleSnapshot() covid.Snapshot {
	s := covid.NewSnapshot()
	s.RenewalDate = "03.21. 00시 기준"
	s.DomesticCount = "2,345"
	s.VaccineRateTitle = "3차 접종"
	s.VaccineRate = "63.8%"
	s.ChildVaccineRateTitle = "소아 접종"
	s.ChildVaccineRateSubTitle = "5~11세"
	s.ChildVaccineRate = "1.2%"
	s.SourceURL = "http://ncov.mohw.go.kr"
	return s
}

func TestPresent_FullLayout(t *testing.T) {
	got := Present(sampleSnapshot(), DevicePhone)

	want := []Row{
		{Kind: RowTitle, Icon: "burn", Text: "Covid-19", Align: AlignCenter, FontSize: 17, Bold: true},
		{Kind: RowCount, Text: "2,345", Align: AlignCenter, FontSize: 45, Bold: true},
		{Kind: RowRenewalDate, Text: "03.21. 00시 기준", Align: AlignRight, FontSize: 10},
		{Kind: RowVaccine, Text: "3차 접종: 63.8%", Align: AlignRight, FontSize: 10},
		{Kind: RowChildVaccine, Text: "소아 접종(5~11세): 1.2%", Align: AlignRight, FontSize: 10},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Present() mismatch (-want +got):\n%s", diff)
	}
}

func TestPresent_Layouts(t *testing.T) {
	tests := []struct {
		layout Layout
		kinds  []RowKind
	}{
		{LayoutFull, []RowKind{RowTitle, RowCount, RowRenewalDate, RowVaccine, RowChildVaccine}},
		{LayoutVaccine, []RowKind{RowTitle, RowCount, RowRenewalDate, RowVaccine}},
		{LayoutBasic, []RowKind{RowTitle, RowCount, RowRenewalDate}},
	}

	for _, tt := range tests {
		t.Run(tt.layout.Name, func(t *testing.T) {
			p := NewPresenter()
			p.Layout = tt.layout

			rows := p.Present(sampleSnapshot(), DeviceTablet)

			kinds := make([]RowKind, len(rows))
			for i, row := range rows {
				kinds[i] = row.Kind
			}
			if diff := cmp.Diff(tt.kinds, kinds); diff != "" {
				t.Errorf("row kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPresent_Deterministic(t *testing.T) {
	snapshot := sampleSnapshot()
	first := Present(snapshot, DeviceTablet)

	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Present(snapshot, DeviceTablet)); diff != "" {
			t.Fatalf("Present() not deterministic (-first +got):\n%s", diff)
		}
	}
}

func TestPresent_Placeholder(t *testing.T) {
	rows := Present(covid.Placeholder("http://ncov.mohw.go.kr"), DevicePhone)

	last := rows[len(rows)-1]
	if last.Kind != RowStatus || last.Text != UnavailableText {
		t.Errorf("last row = %+v, want status row", last)
	}
	if rows[1].Text != "0" {
		t.Errorf("count row = %q, want 0", rows[1].Text)
	}
	if rows[1].FontSize != 55 {
		t.Errorf("count font = %d, want 55", rows[1].FontSize)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		count  int
		device DeviceClass
		want   Classification
	}{
		{500, DevicePhone, Classification{Tier: "blue", Color: "#0099ff", FontSize: 55}},
		{1500, DeviceTablet, Classification{Tier: "coral-red", Color: "#f05454", FontSize: 55}},
		{3001, DevicePhone, Classification{Tier: "near-black", Color: "#222831", FontSize: 45}},
	}

	for _, tt := range tests {
		if got := Classify(tt.count, tt.device); got != tt.want {
			t.Errorf("Classify(%d, %s) = %+v, want %+v", tt.count, tt.device, got, tt.want)
		}
	}
}

func TestPresenter_Variant(t *testing.T) {
	p := Presenter{
		Title:  "코로나19",
		Tiers:  TiersRescaled,
		Font:   FontDigitDecay,
		Layout: LayoutBasic,
	}

	got := p.Classify(12345, DeviceTablet)
	want := Classification{Tier: "red", Color: "#e53935", FontSize: 54}
	if got != want {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}

	rows := p.Present(sampleSnapshot(), DeviceTablet)
	if rows[0].Text != "코로나19" {
		t.Errorf("title row = %q", rows[0].Text)
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2022, 3, 21, 9, 0, 0, 0, time.UTC)

	w := NewPresenter().Build(sampleSnapshot(), DevicePhone, now)

	if w.Background != "#dc143c" {
		t.Errorf("Background = %s, want #dc143c", w.Background)
	}
	if w.Tier != "crimson" {
		t.Errorf("Tier = %s, want crimson", w.Tier)
	}
	if w.Count != 2345 {
		t.Errorf("Count = %d, want 2345", w.Count)
	}
	if want := now.Add(180 * time.Minute); !w.RefreshAfter.Equal(want) {
		t.Errorf("RefreshAfter = %v, want %v", w.RefreshAfter, want)
	}
	if w.URL != "http://ncov.mohw.go.kr" {
		t.Errorf("URL = %q", w.URL)
	}
	if !w.Available {
		t.Error("expected widget to be available")
	}
	if len(w.Rows) != 5 {
		t.Errorf("len(Rows) = %d, want 5", len(w.Rows))
	}
}

func TestBuild_CustomInterval(t *testing.T) {
	now := time.Now()
	p := NewPresenter()
	p.RefreshInterval = 30 * time.Minute

	w := p.Build(sampleSnapshot(), DeviceTablet, now)
	if !w.RefreshAfter.Equal(now.Add(30 * time.Minute)) {
		t.Errorf("RefreshAfter = %v, want now+30m", w.RefreshAfter)
	}
}

func TestLayoutByName(t *testing.T) {
	for _, name := range []string{"full", "vaccine", "basic"} {
		if layout, err := LayoutByName(name); err != nil || layout.Name != name {
			t.Errorf("LayoutByName(%q) = %q, %v", name, layout.Name, err)
		}
	}
	if _, err := LayoutByName("compact"); err == nil {
		t.Error("LayoutByName(compact) expected error, got nil")
	}
}
