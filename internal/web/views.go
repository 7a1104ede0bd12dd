package web

import (
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

type scheduleOption struct {
	ID       string
	Name     string
	Selected bool
}

type resultView struct {
	Title     string
	Summary   string
	Breakdown tariff.Breakdown
}

// fragment is the content of one result container. A zero fragment renders
// as an empty div.
type fragment struct {
	Result *resultView
	Error  string
}

type homeViewData struct {
	Schedules     []scheduleOption
	ScheduleID    string
	Units         string
	Amount        string
	InitialAmount string
	CostResult    fragment
	UnitsResult   fragment
}

type tierTable struct {
	Title       string
	UnitsHeader string
	Breakdown   tariff.Breakdown
}

func newTierTable(title, unitsHeader string, b tariff.Breakdown) tierTable {
	return tierTable{Title: title, UnitsHeader: unitsHeader, Breakdown: b}
}

func (s *Server) scheduleOptions(selected string) ([]scheduleOption, string) {
	registry := s.engine.Registry()
	if selected == "" {
		selected = registry.DefaultID()
	}
	options := make([]scheduleOption, 0)
	for _, sch := range registry.Schedules() {
		options = append(options, scheduleOption{
			ID:       sch.ID,
			Name:     sch.Name,
			Selected: sch.ID == selected,
		})
	}
	return options, selected
}
