// Package dashboard holds the dashboard's interaction model: the page layout
// declaration and the dispatch function that maps an interaction to new
// outputs.
package dashboard

import (
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/filter"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
)

// ClickToleranceMeters is how far from a parcel centroid a map click may land
// and still select it when it falls outside every boundary.
const ClickToleranceMeters = 25

// Phase summarizes the dashboard state
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseFiltered Phase = "filtered"
	PhaseSelected Phase = "selected"
	PhaseReset    Phase = "reset"
)

// State is everything the client carries between interactions
type State struct {
	Phase     Phase
	Filters   models.DashboardFilter
	Selection string // parcel id, empty when nothing was clicked
}

// EventKind is the kind of user interaction
type EventKind int

const (
	// EventInput is any change to the filter controls
	EventInput EventKind = iota
	// EventClick is a click on the map
	EventClick
	// EventReset is the clear-filters button
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventClick:
		return "click"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is one interaction. Filters holds the controls as they are after the
// interaction, for every kind but reset.
type Event struct {
	Kind    EventKind
	Filters models.DashboardFilter

	// Click target: a parcel id, or a coordinate to resolve against the
	// boundaries.
	ParcelID string
	Lat      *float64
	Lon      *float64
}

// Dispatch applies ev to st and renders the result. It reads base only and
// keeps no state, so equal inputs give equal outputs.
func Dispatch(base *dataset.Base, st State, ev Event) (State, models.Outputs) {
	if ev.Kind == EventReset {
		return State{Phase: PhaseReset}, render.Reset(base)
	}

	next := State{Filters: ev.Filters, Selection: dataset.CanonicalID(st.Selection)}
	if ev.Kind == EventClick {
		if id, ok := clickTarget(base, ev); ok {
			next.Selection = id
		}
	}
	next.Phase = phaseOf(next)

	res, err := filter.Apply(base, filter.FromDashboard(next.Filters))
	if err != nil {
		// an unknown metric or an empty subset renders as the no-data state
		logging.Debug().Err(err).Str("phase", string(next.Phase)).Msg("Filters matched no parcel")
	}
	out := render.Render(base, res.Parcels, res.Metric, next.Selection)
	out.Controls = next.Filters
	return next, out
}

// clickTarget resolves the clicked parcel. A coordinate that hits nothing
// reports false and the previous selection stays.
func clickTarget(base *dataset.Base, ev Event) (string, bool) {
	if id := dataset.CanonicalID(ev.ParcelID); id != "" {
		return id, true
	}
	if ev.Lat == nil || ev.Lon == nil {
		return "", false
	}
	p, ok := base.ParcelAt(*ev.Lat, *ev.Lon, ClickToleranceMeters)
	if !ok {
		return "", false
	}
	return p.ID, true
}

func phaseOf(st State) Phase {
	switch {
	case st.Selection != "":
		return PhaseSelected
	case !st.Filters.IsZero():
		return PhaseFiltered
	default:
		return PhaseIdle
	}
}
