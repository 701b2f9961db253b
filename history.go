package gesture

// Input is the read-only view of the input stream handed to computations.
// It exposes the current frame, the previous frame of the same contact
// group, and the first sample seen for each contact still down.
type Input struct {
	Frame Frame
	Prev  *Frame

	first map[int]Sample
}

// Primary returns the first sample of the current frame, if it is valid.
func (in *Input) Primary() (Sample, bool) {
	if len(in.Frame.Samples) == 0 {
		return Sample{}, false
	}
	s := in.Frame.Samples[0]
	if !s.Valid() {
		return Sample{}, false
	}
	return s, true
}

// FirstTouch returns the first sample recorded for contact id in the
// current contact group.
func (in *Input) FirstTouch(id int) (Sample, bool) {
	s, ok := in.first[id]
	return s, ok
}

// Previous returns contact id's sample from the previous frame.
func (in *Input) Previous(id int) (Sample, bool) {
	if in.Prev == nil {
		return Sample{}, false
	}
	for _, s := range in.Prev.Samples {
		if s.ID == id && s.Valid() {
			return s, true
		}
	}
	return Sample{}, false
}

// Restarted reports whether the current frame opened a new contact group.
func (in *Input) Restarted() bool {
	return in.Prev == nil
}

// contactHistory tracks one contact group across frames.
type contactHistory struct {
	active bool
	first  map[int]Sample
	prev   *Frame
}

// begin folds f into the history and returns the view for this frame.
// A START frame, or any frame while no group is open, opens a new group.
func (h *contactHistory) begin(f Frame) *Input {
	if f.Phase == PhaseStart || !h.active {
		h.active = true
		h.prev = nil
		h.first = make(map[int]Sample, len(f.Samples))
	}

	// Contacts that lifted lose their first-touch record so a reused ID
	// starts fresh.
	present := make(map[int]Sample, len(f.Samples))
	for _, s := range f.Samples {
		if !s.Valid() {
			continue
		}
		if first, ok := h.first[s.ID]; ok {
			present[s.ID] = first
		} else {
			present[s.ID] = s
		}
	}
	h.first = present

	return &Input{Frame: f, Prev: h.prev, first: h.first}
}

// end records f as the previous frame, or closes the group on a terminal phase.
func (h *contactHistory) end(f Frame) {
	if f.Phase.Terminal() {
		h.active = false
		h.prev = nil
		h.first = nil
		return
	}
	cp := Frame{Phase: f.Phase, Samples: append([]Sample(nil), f.Samples...)}
	h.prev = &cp
}
