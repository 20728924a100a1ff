package radar

// Listener receives change notifications from a Model. Callbacks run
// synchronously on the goroutine that mutated the model.
type Listener interface {
	OnDataChanged(data []DataPoint)
	OnSelectedItemChanged(index int, name string, value int)
	OnSelectedValueChanged(value int)
	OnMaxValueChanged(maxValue int)
	OnInteractiveModeChanged(interactive bool)
}

// NopListener implements Listener with empty methods; embed it to handle
// a subset of events.
type NopListener struct{}

func (NopListener) OnDataChanged([]DataPoint)               {}
func (NopListener) OnSelectedItemChanged(int, string, int) {}
func (NopListener) OnSelectedValueChanged(int)              {}
func (NopListener) OnMaxValueChanged(int)                   {}
func (NopListener) OnInteractiveModeChanged(bool)           {}

// Funcs adapts optional callbacks to Listener. Nil fields are skipped.
type Funcs struct {
	DataChanged            func(data []DataPoint)
	SelectedItemChanged    func(index int, name string, value int)
	SelectedValueChanged   func(value int)
	MaxValueChanged        func(maxValue int)
	InteractiveModeChanged func(interactive bool)
}

func (f Funcs) OnDataChanged(data []DataPoint) {
	if f.DataChanged != nil {
		f.DataChanged(data)
	}
}

func (f Funcs) OnSelectedItemChanged(index int, name string, value int) {
	if f.SelectedItemChanged != nil {
		f.SelectedItemChanged(index, name, value)
	}
}

func (f Funcs) OnSelectedValueChanged(value int) {
	if f.SelectedValueChanged != nil {
		f.SelectedValueChanged(value)
	}
}

func (f Funcs) OnMaxValueChanged(maxValue int) {
	if f.MaxValueChanged != nil {
		f.MaxValueChanged(maxValue)
	}
}

func (f Funcs) OnInteractiveModeChanged(interactive bool) {
	if f.InteractiveModeChanged != nil {
		f.InteractiveModeChanged(interactive)
	}
}

// Subscription identifies a registered listener.
type Subscription struct {
	id int
}

type registry struct {
	nextID  int
	entries []registryEntry
}

type registryEntry struct {
	id int
	l  Listener
}

func (r *registry) add(l Listener) Subscription {
	if l == nil {
		return Subscription{}
	}
	r.nextID++
	r.entries = append(r.entries, registryEntry{id: r.nextID, l: l})
	return Subscription{id: r.nextID}
}

func (r *registry) remove(s Subscription) {
	for i, e := range r.entries {
		if e.id == s.id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// each calls fn for every listener registered when the notification
// started, in registration order.
func (r *registry) each(fn func(Listener)) {
	entries := r.entries
	for _, e := range entries {
		fn(e.l)
	}
}
