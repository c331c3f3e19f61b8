package models

// Figure is a Plotly figure description rendered client side
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// NewFigure returns a figure with no traces
func NewFigure() Figure {
	return Figure{Data: []Trace{}}
}

// IsEmpty reports whether the figure has no traces and no title
func (f Figure) IsEmpty() bool {
	return len(f.Data) == 0 && f.Layout.Title == nil
}

// Trace is a single Plotly trace. Only the attributes the dashboard uses are modeled.
type Trace struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`

	// Cartesian traces (bar, scatter)
	X []string `json:"x,omitempty"`
	Y []Float  `json:"y,omitempty"`

	// Choropleth traces
	GeoJSON      string   `json:"geojson,omitempty"` // URL of the FeatureCollection
	FeatureIDKey string   `json:"featureidkey,omitempty"`
	Locations    []string `json:"locations,omitempty"`
	Z            []Float  `json:"z,omitempty"`
	ColorScale   string   `json:"colorscale,omitempty"`
	ColorBar     *Title   `json:"colorbar,omitempty"`

	// Map scatter traces
	Lat []float64 `json:"lat,omitempty"`
	Lon []float64 `json:"lon,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
}

// Marker styles trace markers
type Marker struct {
	Size    int     `json:"size,omitempty"`
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Title is a Plotly title object
type Title struct {
	Text string `json:"text"`
}

// Axis is a cartesian axis
type Axis struct {
	Title *Title `json:"title,omitempty"`
}

// MapView positions a map subplot
type MapView struct {
	Style  string  `json:"style,omitempty"`
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// Layout is the figure layout
type Layout struct {
	Title  *Title   `json:"title,omitempty"`
	XAxis  *Axis    `json:"xaxis,omitempty"`
	YAxis  *Axis    `json:"yaxis,omitempty"`
	Map    *MapView `json:"map,omitempty"`
	Height int      `json:"height,omitempty"`
}
