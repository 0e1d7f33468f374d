package highlight

// ViewKind names a side view the rendering boundary should refresh.
type ViewKind string

const (
	ViewTag      ViewKind = "tag"
	ViewRelation ViewKind = "relation"
	ViewRoute    ViewKind = "route"
	ViewStop     ViewKind = "stop"
)

// Point is a plain coordinate pair handed to the renderer.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is a labeled point overlay (stop marker, from/to endpoint).
type Marker struct {
	At    Point  `json:"at"`
	Label string `json:"label,omitempty"`
}

// Polyline is one highlighted line. A stroke line is the wide backing
// line drawn under its fill twin.
type Polyline struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Name   string  `json:"name,omitempty"`
	Stroke bool    `json:"stroke,omitempty"`
}

// Overlay is the complete highlight for one selection. Overlays are
// built whole and swapped atomically, never patched incrementally, so
// a stale overlay can never outlive its selection.
type Overlay struct {
	Markers []Marker   `json:"markers,omitempty"`
	Lines   []Polyline `json:"lines,omitempty"`
}

// Renderer is the rendering surface the state machine drives. It is
// implemented outside the core; the machine only emits draw/clear
// commands and view-refresh signals through it.
type Renderer interface {
	DrawOverlay(o Overlay)
	ClearOverlay()
	RefreshView(kind ViewKind)
}
