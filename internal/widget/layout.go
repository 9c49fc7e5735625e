package widget

import (
	"fmt"
	"strings"
)

// RowKind identifies what a display row shows
type RowKind string

const (
	RowTitle        RowKind = "title"
	RowCount        RowKind = "count"
	RowRenewalDate  RowKind = "renewal_date"
	RowVaccine      RowKind = "vaccine"
	RowChildVaccine RowKind = "child_vaccine"
	RowStatus       RowKind = "status"
)

// Layout lists the metadata rows shown below the count, in order
type Layout struct {
	Name     string
	Metadata []RowKind
}

var (
	LayoutFull    = Layout{Name: "full", Metadata: []RowKind{RowRenewalDate, RowVaccine, RowChildVaccine}}
	LayoutVaccine = Layout{Name: "vaccine", Metadata: []RowKind{RowRenewalDate, RowVaccine}}
	LayoutBasic   = Layout{Name: "basic", Metadata: []RowKind{RowRenewalDate}}
)

var layouts = map[string]Layout{
	LayoutFull.Name:    LayoutFull,
	LayoutVaccine.Name: LayoutVaccine,
	LayoutBasic.Name:   LayoutBasic,
}

// LayoutByName returns the layout registered under name
func LayoutByName(name string) (Layout, error) {
	layout, ok := layouts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout: %s (must be one of %s)", name, strings.Join(keys(layouts), ", "))
	}
	return layout, nil
}
