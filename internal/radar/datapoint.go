package radar

// DataPoint is one spoke of the chart. Name is fixed once created; Value
// changes only through the owning Model.
type DataPoint struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cloneData(data []DataPoint) []DataPoint {
	if len(data) == 0 {
		return nil
	}
	out := make([]DataPoint, len(data))
	copy(out, data)
	return out
}

// Names returns the names of data in order.
func Names(data []DataPoint) []string {
	out := make([]string, len(data))
	for i, p := range data {
		out[i] = p.Name
	}
	return out
}

// Values returns the values of data in order.
func Values(data []DataPoint) []int {
	out := make([]int, len(data))
	for i, p := range data {
		out[i] = p.Value
	}
	return out
}
