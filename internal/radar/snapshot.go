package radar

import (
	"math"
	"strconv"
)

// Snapshot holds the fields of a chart that survive a host restart.
type Snapshot struct {
	MaxValue    int         `json:"max_value" yaml:"max_value"`
	Data        []DataPoint `json:"data,omitempty" yaml:"data,omitempty"`
	Selected    int         `json:"selected" yaml:"selected"`
	Offset      float64     `json:"offset" yaml:"offset"`
	Interactive bool        `json:"interactive" yaml:"interactive"`
}

// Validate reports the first field that makes s unusable.
func (s *Snapshot) Validate() error {
	if s.MaxValue < 0 {
		return &SnapshotError{Field: "max_value", Reason: "is negative"}
	}
	if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
		return &SnapshotError{Field: "offset", Reason: "is not finite"}
	}
	if len(s.Data) == 0 {
		if s.Interactive {
			return &SnapshotError{Field: "interactive", Reason: "set without data"}
		}
		return nil
	}
	if s.Selected < 0 || s.Selected >= len(s.Data) {
		return &SnapshotError{Field: "selected", Reason: "out of range " + strconv.Itoa(s.Selected)}
	}
	// values above MaxValue are legal after the ring count shrinks
	for i, p := range s.Data {
		if p.Value < 0 {
			return &SnapshotError{Field: "data[" + strconv.Itoa(i) + "].value", Reason: "is negative"}
		}
	}
	return nil
}

// Snapshot captures the persistable state of the model.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		MaxValue:    m.maxValue,
		Data:        cloneData(m.data),
		Selected:    m.selected,
		Offset:      m.animator.Offset(),
		Interactive: m.interactive,
	}
}

// Restore loads s into the model. Interactive mode is re-applied through
// SetInteractive and data listeners are notified again. A snapshot that
// fails validation resets the model to its defaults instead; the
// validation error is returned for the caller's information only.
func (m *Model) Restore(s Snapshot) error {
	if err := s.Validate(); err != nil {
		Logger().Warn("discarding snapshot", "err", err)
		m.reset()
		return err
	}
	m.maxValue = s.MaxValue
	m.data = cloneData(s.Data)
	m.selected = 0
	if m.HasData() {
		m.selected = s.Selected
	}
	m.animator.Stop(s.Offset)
	m.SetInteractive(s.Interactive)
	if m.HasData() {
		m.notifyData()
	}
	m.changed()
	return nil
}

func (m *Model) reset() {
	m.maxValue = DefaultMaxValue
	m.data = nil
	m.selected = 0
	m.animator.Stop(0)
	m.SetInteractive(false)
	m.changed()
}
