package cutscene

// Commentary is the running commentary, anchored to an object when
// ObjectHandle is set.
type Commentary struct {
	Label            string `json:"label,omitempty"`
	ObjectHandle     *int   `json:"object_handle,omitempty"`
	Active           bool   `json:"active"`
	SuppressedReason string `json:"suppressed_reason,omitempty"`
}

func (c Commentary) displayLabel() string {
	if c.Label == "" {
		return "<none>"
	}
	return c.Label
}

func (c Commentary) equal(o Commentary) bool {
	if c.Label != o.Label || c.Active != o.Active || c.SuppressedReason != o.SuppressedReason {
		return false
	}
	if c.ObjectHandle == nil || o.ObjectHandle == nil {
		return c.ObjectHandle == nil && o.ObjectHandle == nil
	}
	return *c.ObjectHandle == *o.ObjectHandle
}

// SetCommentary replaces the commentary record, logging only when it changed.
func (r *Runtime) SetCommentary(c Commentary) {
	changed := r.commentary == nil || !r.commentary.equal(c)
	rec := c
	r.commentary = &rec
	if !changed {
		return
	}
	if c.Active {
		r.events.Addf("commentary.active %s", c.displayLabel())
	} else {
		r.events.Addf("commentary.suppressed %s", c.displayLabel())
	}
}

func (r *Runtime) DisableCommentary() {
	if r.commentary == nil {
		r.events.Add("commentary.active off")
		return
	}
	label := r.commentary.displayLabel()
	r.commentary = nil
	r.events.Addf("commentary.active off (%s)", label)
}

// UpdateCommentaryVisibility suspends active commentary that can no longer
// be seen and resumes suspended commentary that can.
func (r *Runtime) UpdateCommentaryVisibility(visible bool, reason string) {
	c := r.commentary
	if c == nil {
		return
	}
	switch {
	case c.Active && !visible:
		c.Active = false
		c.SuppressedReason = reason
		r.events.Addf("commentary.suspend %s", c.displayLabel())
	case !c.Active && visible:
		c.Active = true
		c.SuppressedReason = ""
		r.events.Addf("commentary.resume %s", c.displayLabel())
	}
}

func (r *Runtime) Commentary() (Commentary, bool) {
	if r.commentary == nil {
		return Commentary{}, false
	}
	c := *r.commentary
	if c.ObjectHandle != nil {
		h := *c.ObjectHandle
		c.ObjectHandle = &h
	}
	return c, true
}
