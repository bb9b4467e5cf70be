package audio

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Parameter codes understood by SetParam and GetParam.
const (
	ParamPlayCount = 256
	ParamGroup     = 1024
	ParamVolume    = 1536
	ParamPan       = 1792
)

const (
	defaultVolume    = 127
	defaultPan       = 64
	defaultPlayCount = 1
)

type SfxInstance struct {
	Handle     string   `json:"handle"`
	Numeric    int      `json:"numeric"`
	Cue        string   `json:"cue"`
	Parameters []string `json:"parameters"`
	Group      *int     `json:"group,omitempty"`
	Priority   *int     `json:"priority,omitempty"`
	Volume     int      `json:"volume"`
	Pan        int      `json:"pan"`
	PlayCount  int      `json:"play_count"`
}

// Sfx is a copy of the sound effect state. Active is ordered by numeric
// handle.
type Sfx struct {
	Active  []SfxInstance `json:"active"`
	History []string      `json:"history"`
}

type sfxState struct {
	next      int
	active    map[string]*SfxInstance
	byNumeric map[int]string
	history   []string
}

func newSfxState() sfxState {
	return sfxState{
		active:    map[string]*SfxInstance{},
		byNumeric: map[int]string{},
	}
}

// PlaySfx starts a sound effect and returns its handle.
func (r *Runtime) PlaySfx(cue string, params []string) string {
	numeric := r.sfx.next
	handle := fmt.Sprintf("sfx_%04d", numeric)
	r.sfx.next++

	r.sfx.active[handle] = &SfxInstance{
		Handle:     handle,
		Numeric:    numeric,
		Cue:        cue,
		Parameters: slices.Clone(params),
		Volume:     defaultVolume,
		Pan:        defaultPan,
		PlayCount:  defaultPlayCount,
	}
	r.sfx.byNumeric[numeric] = handle

	if len(params) == 0 {
		r.sfx.history = append(r.sfx.history, fmt.Sprintf("sfx.play %s -> %s", cue, handle))
	} else {
		r.sfx.history = append(r.sfx.history, fmt.Sprintf("sfx.play %s [%s] -> %s", cue, strings.Join(params, ", "), handle))
	}
	if r.callback != nil {
		r.callback.SfxPlay(cue, params, handle)
	}
	r.events.Addf("sfx.play %s", cue)
	return handle
}

// StopSfx stops the effect with the given handle, falling back to the first
// effect playing that cue. An empty target stops every effect.
func (r *Runtime) StopSfx(target string) {
	label := "sfx.stop all"
	if target == "" {
		clear(r.sfx.active)
		clear(r.sfx.byNumeric)
	} else {
		label = "sfx.stop " + target
		if inst, ok := r.sfx.active[target]; ok {
			r.removeSfx(inst)
		} else {
			for _, n := range slices.Sorted(maps.Keys(r.sfx.byNumeric)) {
				if inst := r.sfx.active[r.sfx.byNumeric[n]]; strings.EqualFold(inst.Cue, target) {
					r.removeSfx(inst)
					break
				}
			}
		}
	}

	r.sfx.history = append(r.sfx.history, label)
	if r.callback != nil {
		r.callback.SfxStop(target)
	}
	r.events.Add(label)
}

func (r *Runtime) removeSfx(inst *SfxInstance) {
	delete(r.sfx.active, inst.Handle)
	delete(r.sfx.byNumeric, inst.Numeric)
}

// StopSfxNumeric stops an effect by its numeric id.
func (r *Runtime) StopSfxNumeric(numeric int) {
	if h, ok := r.sfx.byNumeric[numeric]; ok {
		r.StopSfx(h)
		return
	}
	r.StopSfx(strconv.Itoa(numeric))
}

// StartImuse plays cue with the given priority and group and returns its
// numeric id.
func (r *Runtime) StartImuse(cue string, priority, group *int) int {
	var params []string
	if priority != nil {
		params = append(params, fmt.Sprintf("priority=%d", *priority))
	}
	if group != nil {
		params = append(params, fmt.Sprintf("group=%d", *group))
	}

	handle := r.PlaySfx(cue, params)
	inst := r.sfx.active[handle]
	if group != nil {
		g := *group
		inst.Group = &g
	}
	if priority != nil {
		p := *priority
		inst.Priority = &p
	}
	inst.PlayCount = defaultPlayCount
	return inst.Numeric
}

// SetParam updates a parameter of a live effect. Unknown ids are ignored.
func (r *Runtime) SetParam(numeric, code, value int) {
	h, ok := r.sfx.byNumeric[numeric]
	if !ok {
		return
	}
	inst, ok := r.sfx.active[h]
	if !ok {
		return
	}

	switch code {
	case ParamVolume:
		inst.Volume = value
		r.events.Addf("sfx.param %s volume %d", inst.Cue, value)
	case ParamPan:
		inst.Pan = value
		r.events.Addf("sfx.param %s pan %d", inst.Cue, value)
	case ParamPlayCount:
		inst.PlayCount = max(value, 0)
		r.events.Addf("sfx.param %s play_count %d", inst.Cue, inst.PlayCount)
	case ParamGroup:
		g := value
		inst.Group = &g
		r.events.Addf("sfx.param %s group %d", inst.Cue, value)
	default:
		r.events.Addf("sfx.param %s code %d value %d", inst.Cue, code, value)
	}
}

// GetParam reads a parameter of a live effect.
func (r *Runtime) GetParam(numeric, code int) (int, bool) {
	h, ok := r.sfx.byNumeric[numeric]
	if !ok {
		return 0, false
	}
	inst, ok := r.sfx.active[h]
	if !ok {
		return 0, false
	}

	switch code {
	case ParamPlayCount:
		return inst.PlayCount, true
	case ParamVolume:
		return inst.Volume, true
	case ParamPan:
		return inst.Pan, true
	case ParamGroup:
		if inst.Group == nil {
			return 0, true
		}
		return *inst.Group, true
	default:
		return 0, false
	}
}

func (r *Runtime) Sfx() Sfx {
	s := Sfx{
		Active:  []SfxInstance{},
		History: slices.Clone(r.sfx.history),
	}
	for _, inst := range r.sfx.active {
		c := *inst
		c.Parameters = slices.Clone(inst.Parameters)
		s.Active = append(s.Active, c)
	}
	slices.SortFunc(s.Active, func(a, b SfxInstance) int {
		return cmp.Compare(a.Numeric, b.Numeric)
	})
	if s.History == nil {
		s.History = []string{}
	}
	return s
}
