package parser

import (
	"fmt"

	"github.com/dgallion1/tracemesh/internal/structure"
)

func (c converter) properties(docs []propertyDoc) ([]structure.Property, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]structure.Property, 0, len(docs))
	for i, pd := range docs {
		p, err := c.property(pd)
		if err != nil {
			return nil, fmt.Errorf("property %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (c converter) property(pd propertyDoc) (structure.Property, error) {
	switch pd.Name {
	case "Channel":
		rgb, err := colour(pd.Colour)
		if err != nil {
			return nil, err
		}
		return structure.Channel{Version: pd.Version, Number: pd.Number, Colour: rgb}, nil
	case "Punctum":
		return structure.Punctum{
			Version:             pd.Version,
			Spread:              pd.Spread,
			MeanLuminance:       pd.MeanLuminance,
			SurfaceArea:         pd.SurfaceArea,
			VoxelCount:          pd.VoxelCount,
			Flag2D:              pd.Flag2D,
			Volume:              pd.Volume,
			Location:            pd.Location,
			ColocalizedFraction: pd.ColocalizedFraction,
			ProximalFraction:    pd.ProximalFraction,
		}, nil
	case "VolumeRLE":
		return structure.ParseVolumeDescription(pd.Description)
	case "Set":
		return structure.Set{Items: pd.Items}, nil
	case "TraceAssociation":
		return structure.TraceAssociation{Label: pd.Label}, nil
	case "GUID":
		return structure.GUID{Value: pd.Value}, nil
	case "FillDensity":
		return structure.FillDensity{Value: pd.Density}, nil
	case "TreeOrder":
		return structure.TreeOrder{Order: pd.Order}, nil
	case "":
		return nil, fmt.Errorf("property without a name")
	}

	if c.strict {
		return nil, fmt.Errorf("%w: %q", structure.ErrUnknownProperty, pd.Name)
	}
	g := structure.Generic{PropertyName: pd.Name}
	for _, f := range pd.Fields {
		switch f.Type {
		case "s", "n", "b":
		default:
			return nil, fmt.Errorf("property %q: field type %q is not one of s, n, b", pd.Name, f.Type)
		}
		g.Fields = append(g.Fields, structure.GenericField{Type: f.Type, Value: f.Value})
	}
	return g, nil
}
