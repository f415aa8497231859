package structure

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VolumeRLE is a run-length encoded voxel volume attached to a punctum.
type VolumeRLE struct {
	Scaling    [3]float64
	Foreground int
	Counts     [3]float64
	Origin     [3]float64
	Runs       []int
}

const volumeHeaderFields = 10

// MaxVoxels bounds the grid size of one punctum volume.
const MaxVoxels = 1 << 24

// ParseVolumeDescription decodes the space separated description:
// scaling(3) foreground-total(1) voxel-counts(3) origin(3) runs(...).
func ParseVolumeDescription(desc string) (VolumeRLE, error) {
	fields := strings.Fields(desc)
	if len(fields) < volumeHeaderFields {
		return VolumeRLE{}, &DataError{Msg: "volume description too short", Have: len(fields), Want: volumeHeaderFields}
	}
	nums := make([]float64, volumeHeaderFields)
	for i := range volumeHeaderFields {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return VolumeRLE{}, fmt.Errorf("volume description field %d: %w", i, err)
		}
		nums[i] = f
	}
	v := VolumeRLE{
		Scaling:    [3]float64{nums[0], nums[1], nums[2]},
		Foreground: int(nums[3]),
		Counts:     [3]float64{nums[4], nums[5], nums[6]},
		Origin:     [3]float64{nums[7], nums[8], nums[9]},
	}
	if _, err := v.voxelTotal(); err != nil {
		return VolumeRLE{}, err
	}
	for i, f := range fields[volumeHeaderFields:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return VolumeRLE{}, fmt.Errorf("volume run %d: %w", i, err)
		}
		if n < 0 {
			return VolumeRLE{}, &DataError{Msg: fmt.Sprintf("volume run %d is negative", i), Have: n}
		}
		v.Runs = append(v.Runs, n)
	}
	return v, nil
}

// voxelTotal checks the voxel counts and returns their product. Each count
// must be a finite non-negative integer and the product at most MaxVoxels.
func (v VolumeRLE) voxelTotal() (int, error) {
	total := 1.0
	for i, c := range v.Counts {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 || c != math.Trunc(c) {
			return 0, &DataError{Msg: fmt.Sprintf("voxel count %d is not a non-negative integer: %v", i, c)}
		}
		total *= c
	}
	if total > MaxVoxels {
		return 0, &DataError{Msg: fmt.Sprintf("volume of %.0f voxels exceeds the limit", total), Want: MaxVoxels}
	}
	return int(total), nil
}

// TotalVoxels is the product of the voxel counts, or 0 when the counts are
// invalid.
func (v VolumeRLE) TotalVoxels() int {
	total, err := v.voxelTotal()
	if err != nil {
		return 0
	}
	return total
}

// cornerOrder maps the lexicographic min/max product onto the element
// node ordering of a trilinear cube.
var cornerOrder = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// Corners returns the eight corner coordinates of the volume's bounding box.
func (v VolumeRLE) Corners() [8][3]float64 {
	var lo, hi [3]float64
	for i := range 3 {
		half := v.Scaling[i] * (v.Counts[i] - 1) / 2
		lo[i] = v.Origin[i] - half
		hi[i] = v.Origin[i] + half
	}
	var product [8][3]float64
	n := 0
	for _, x := range [2]float64{lo[0], hi[0]} {
		for _, y := range [2]float64{lo[1], hi[1]} {
			for _, z := range [2]float64{lo[2], hi[2]} {
				product[n] = [3]float64{x, y, z}
				n++
			}
		}
	}
	var out [8][3]float64
	for i, idx := range cornerOrder {
		out[i] = product[idx]
	}
	return out
}

// Values expands the runs into one field value per voxel: background runs
// (even index) are 0.25, foreground runs are 1.0, and any voxels not covered
// by a run are 0.0. Runs covering more voxels than the volume holds are a
// DataError.
func (v VolumeRLE) Values() ([]float64, error) {
	total, err := v.voxelTotal()
	if err != nil {
		return nil, err
	}
	covered := 0
	for i, run := range v.Runs {
		if run < 0 {
			return nil, &DataError{Msg: fmt.Sprintf("volume run %d is negative", i), Have: run}
		}
		if run > total-covered {
			have := covered + run
			if have < covered {
				have = math.MaxInt
			}
			return nil, &DataError{Msg: "voxel runs exceed the total voxel count", Have: have, Want: total}
		}
		covered += run
	}

	values := make([]float64, total)
	n := 0
	for i, run := range v.Runs {
		value := 1.0
		if i%2 == 0 {
			value = 0.25
		}
		for range run {
			values[n] = value
			n++
		}
	}
	return values, nil
}
