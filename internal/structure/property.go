package structure

// Property is metadata attached to a branch, contour, marker, edge or vessel.
// The set of variants is closed. Variants that denote group membership
// return their labels from GroupNames; the rest return nil.
type Property interface {
	Name() string
	GroupNames() []string
	property()
}

// Channel records the image channel a trace was made in.
type Channel struct {
	Version float64
	Number  float64
	Colour  RGB
}

// Punctum carries the measured statistics of one punctum marker.
type Punctum struct {
	Version             float64
	Spread              float64
	MeanLuminance       float64
	SurfaceArea         float64
	VoxelCount          float64
	Flag2D              bool
	Volume              float64
	Location            float64
	ColocalizedFraction float64
	ProximalFraction    float64
}

// Set lists the named sets an entity belongs to.
type Set struct {
	Items []string
}

// TraceAssociation labels an entity with a single anatomical term.
type TraceAssociation struct {
	Label string
}

// GUID is a globally unique identifier for the entity.
type GUID struct {
	Value string
}

// FillDensity is a scalar densitometry reading.
type FillDensity struct {
	Value float64
}

// TreeOrder is the branch order assigned by the tracing tool.
type TreeOrder struct {
	Order int
}

// GenericField is one typed value of a Generic property. Type follows the
// source convention: "s" string, "n" number, "b" boolean.
type GenericField struct {
	Type  string
	Value string
}

// Generic is any named property without a dedicated variant.
type Generic struct {
	PropertyName string
	Fields       []GenericField
}

func (Channel) Name() string          { return "Channel" }
func (Punctum) Name() string          { return "Punctum" }
func (VolumeRLE) Name() string        { return "VolumeRLE" }
func (Set) Name() string              { return "Set" }
func (TraceAssociation) Name() string { return "TraceAssociation" }
func (GUID) Name() string             { return "GUID" }
func (FillDensity) Name() string      { return "FillDensity" }
func (TreeOrder) Name() string        { return "TreeOrder" }
func (g Generic) Name() string        { return g.PropertyName }

func (Channel) GroupNames() []string     { return nil }
func (Punctum) GroupNames() []string     { return nil }
func (VolumeRLE) GroupNames() []string   { return nil }
func (FillDensity) GroupNames() []string { return nil }
func (TreeOrder) GroupNames() []string   { return nil }

func (s Set) GroupNames() []string {
	out := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (t TraceAssociation) GroupNames() []string {
	if t.Label == "" {
		return nil
	}
	return []string{t.Label}
}

func (g GUID) GroupNames() []string {
	if g.Value == "" {
		return nil
	}
	return []string{g.Value}
}

// GroupNames of a Generic property are its non-empty string fields. A generic
// property without any string field names no group.
func (g Generic) GroupNames() []string {
	var out []string
	for _, f := range g.Fields {
		if f.Type == "s" && f.Value != "" {
			out = append(out, f.Value)
		}
	}
	return out
}

func (Channel) property()          {}
func (Punctum) property()          {}
func (VolumeRLE) property()        {}
func (Set) property()              {}
func (TraceAssociation) property() {}
func (GUID) property()             {}
func (FillDensity) property()      {}
func (TreeOrder) property()        {}
func (Generic) property()          {}

// TextGroupNames flattens the group names of every property in props, in
// order.
func TextGroupNames(props []Property) []string {
	var out []string
	for _, p := range props {
		out = append(out, p.GroupNames()...)
	}
	return out
}

// FindTraceAssociation returns the last TraceAssociation among props.
func FindTraceAssociation(props []Property) (TraceAssociation, bool) {
	var (
		found TraceAssociation
		ok    bool
	)
	for _, p := range props {
		if ta, isTA := p.(TraceAssociation); isTA {
			found, ok = ta, true
		}
	}
	return found, ok
}
