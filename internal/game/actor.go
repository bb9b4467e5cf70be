package game

import (
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-grim/internal/geometry"
)

type Actor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle int    `json:"handle"`

	Costume          string   `json:"costume,omitempty"`
	BaseCostume      string   `json:"base_costume,omitempty"`
	CostumeStack     []string `json:"costume_stack"`
	CurrentChore     string   `json:"current_chore,omitempty"`
	WalkChore        string   `json:"walk_chore,omitempty"`
	TalkChore        string   `json:"talk_chore,omitempty"`
	TalkDropChore    string   `json:"talk_drop_chore,omitempty"`
	MumbleChore      string   `json:"mumble_chore,omitempty"`
	LastChoreCostume string   `json:"last_chore_costume,omitempty"`
	TalkColor        string   `json:"talk_color,omitempty"`
	HeadTarget       string   `json:"head_target,omitempty"`
	HeadLookRate     *float64 `json:"head_look_rate,omitempty"`
	CollisionMode    string   `json:"collision_mode,omitempty"`
	IgnoringBoxes    bool     `json:"ignoring_boxes"`

	CurrentSet     string   `json:"current_set,omitempty"`
	AtInterest     bool     `json:"at_interest"`
	Position       *Vec3    `json:"position,omitempty"`
	Rotation       *Vec3    `json:"rotation,omitempty"`
	Scale          *float64 `json:"scale,omitempty"`
	CollisionScale *float64 `json:"collision_scale,omitempty"`
	Selected       bool     `json:"selected"`
	Visible        bool     `json:"visible"`
	Speaking       bool     `json:"speaking"`
	LastLine       string   `json:"last_line,omitempty"`

	// Sectors caches the last resolved hit per kind, keyed WALK, HOT or CAMERA.
	Sectors map[string]geometry.SectorHit `json:"sectors"`
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	c := *a
	c.CostumeStack = slices.Clone(a.CostumeStack)
	c.Sectors = maps.Clone(a.Sectors)
	if a.HeadLookRate != nil {
		v := *a.HeadLookRate
		c.HeadLookRate = &v
	}
	if a.Position != nil {
		v := *a.Position
		c.Position = &v
	}
	if a.Rotation != nil {
		v := *a.Rotation
		c.Rotation = &v
	}
	if a.Scale != nil {
		v := *a.Scale
		c.Scale = &v
	}
	if a.CollisionScale != nil {
		v := *a.CollisionScale
		c.CollisionScale = &v
	}
	return &c
}

// CanonicalActorID derives the stable id used to key an actor from the label
// scripts refer to it by.
func CanonicalActorID(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r < 0x80 && (r >= 'a' && r <= 'z' || r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '.' || r == '-' || r == '_' || r == ':':
			if !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
	}
	id := strings.TrimRight(b.String(), "_")
	if id == "" {
		return "actor"
	}
	return id
}

func (w *WorldState) resolveActorID(label string) string {
	if id, ok := w.labels[label]; ok {
		return id
	}
	if _, ok := w.actors[label]; ok {
		return label
	}
	return CanonicalActorID(label)
}

// ensureActor returns the actor referred to by label, creating it on first
// reference.
func (w *WorldState) ensureActor(label string) *Actor {
	id := w.resolveActorID(label)
	a, ok := w.actors[id]
	if !ok {
		a = &Actor{
			ID:      id,
			Name:    label,
			Visible: true,
			Sectors: map[string]geometry.SectorHit{},
		}
		w.actors[id] = a
		w.assignHandle(a, 0)
	}
	if _, ok := w.labels[label]; !ok {
		w.labels[label] = id
	}
	return a
}

func (w *WorldState) assignHandle(a *Actor, preferred int) {
	h := preferred
	if _, taken := w.handles[h]; h <= 0 || taken {
		for {
			h = w.nextHandle
			w.nextHandle++
			if _, taken := w.handles[h]; !taken {
				break
			}
		}
	}
	a.Handle = h
	w.handles[h] = a.ID
	w.log("actor.register %s (#%d)", a.Name, h)
}

// RegisterActor creates or renames the actor for label and returns its id and
// handle. The preferred handle is used when the actor is new and the handle
// is free.
func (w *WorldState) RegisterActor(label string, preferred int) (string, int) {
	id := w.resolveActorID(label)
	if a, ok := w.actors[id]; ok {
		a.Name = label
		w.labels[label] = id
		return id, a.Handle
	}

	a := &Actor{
		ID:      id,
		Name:    label,
		Visible: true,
		Sectors: map[string]geometry.SectorHit{},
	}
	w.actors[id] = a
	w.labels[label] = id
	w.assignHandle(a, preferred)
	return id, a.Handle
}

// Actor looks an actor up by label or id without creating it.
func (w *WorldState) Actor(label string) (*Actor, bool) {
	a, ok := w.actors[w.resolveActorID(label)]
	return a, ok
}

func (w *WorldState) ActorByHandle(handle int) (*Actor, bool) {
	id, ok := w.handles[handle]
	if !ok {
		return nil, false
	}
	a, ok := w.actors[id]
	return a, ok
}

// Actors returns every known actor ordered by id.
func (w *WorldState) Actors() []*Actor {
	ids := slices.Sorted(maps.Keys(w.actors))
	out := make([]*Actor, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.actors[id])
	}
	return out
}

func (w *WorldState) SelectActor(label string) string {
	a := w.ensureActor(label)
	if w.selected != "" && w.selected != a.ID {
		if prev, ok := w.actors[w.selected]; ok {
			prev.Selected = false
		}
	}
	a.Selected = true
	w.selected = a.ID
	w.log("actor.select %s", a.ID)
	return a.ID
}

// SelectedActor returns the selected actor's id, or "" when none is.
func (w *WorldState) SelectedActor() string {
	return w.selected
}

// FocusActor is the selected actor, falling back to the primary actor.
func (w *WorldState) FocusActor() (*Actor, bool) {
	if a, ok := w.actors[w.selected]; ok {
		return a, true
	}
	a, ok := w.actors[PrimaryActor]
	return a, ok
}

func (w *WorldState) SetActorCostume(label, costume string) {
	a := w.ensureActor(label)
	a.Costume = costume
	if costume == "" {
		a.CostumeStack = nil
		w.log("actor.%s.costume <nil>", a.ID)
		return
	}
	if n := len(a.CostumeStack); n > 0 {
		a.CostumeStack[n-1] = costume
	} else {
		a.CostumeStack = append(a.CostumeStack, costume)
	}
	w.log("actor.%s.costume %s", a.ID, costume)
}

func (w *WorldState) SetActorBaseCostume(label, costume string) {
	a := w.ensureActor(label)
	a.BaseCostume = costume
	a.CostumeStack = nil
	if costume != "" {
		a.CostumeStack = append(a.CostumeStack, costume)
	}
	w.log("actor.%s.base_costume %s", a.ID, orNil(costume))
}

// PushActorCostume pushes costume and returns the new stack depth.
func (w *WorldState) PushActorCostume(label, costume string) int {
	a := w.ensureActor(label)
	a.CostumeStack = append(a.CostumeStack, costume)
	a.Costume = costume
	depth := len(a.CostumeStack)
	w.log("actor.%s.push_costume %s depth %d", a.ID, costume, depth)
	return depth
}

// PopActorCostume removes the top costume and returns the one now worn. The
// base of the stack is never popped.
func (w *WorldState) PopActorCostume(label string) (string, bool) {
	a := w.ensureActor(label)
	n := len(a.CostumeStack)
	if n <= 1 {
		w.log("actor.%s.pop_costume blocked", a.ID)
		return "", false
	}
	removed := a.CostumeStack[n-1]
	a.CostumeStack = a.CostumeStack[:n-1]
	a.Costume = a.CostumeStack[n-2]
	w.log("actor.%s.pop_costume %s", a.ID, removed)
	return a.Costume, true
}

func (w *WorldState) SetActorChore(label, chore, costume string) {
	a := w.ensureActor(label)
	a.CurrentChore = chore
	a.LastChoreCostume = costume
	w.log("actor.%s.chore %s %s", a.ID, orNil(chore), orNil(costume))
}

func (w *WorldState) SetActorWalkChore(label, chore, costume string) {
	a := w.ensureActor(label)
	a.WalkChore = chore
	w.log("actor.%s.walk_chore %s %s", a.ID, orNil(chore), orNil(costume))
}

func (w *WorldState) SetActorTalkChore(label, chore, drop, costume string) {
	a := w.ensureActor(label)
	a.TalkChore = chore
	a.TalkDropChore = drop
	w.log("actor.%s.talk_chore %s drop %s costume %s", a.ID, orNil(chore), orNil(drop), orNil(costume))
}

func (w *WorldState) SetActorMumbleChore(label, chore, costume string) {
	a := w.ensureActor(label)
	a.MumbleChore = chore
	w.log("actor.%s.mumble_chore %s costume %s", a.ID, orNil(chore), orNil(costume))
}

func (w *WorldState) SetActorTalkColor(label, color string) {
	a := w.ensureActor(label)
	a.TalkColor = color
	w.log("actor.%s.talk_color %s", a.ID, orNil(color))
}

func (w *WorldState) SetActorHeadTarget(label, target string) {
	a := w.ensureActor(label)
	a.HeadTarget = target
	w.log("actor.%s.head_target %s", a.ID, orNil(target))
}

func (w *WorldState) SetActorHeadLookRate(label string, rate *float64) {
	a := w.ensureActor(label)
	a.HeadLookRate = rate
	w.log("actor.%s.head_rate %s", a.ID, floatLabel(rate))
}

func (w *WorldState) SetActorCollisionMode(label, mode string) {
	a := w.ensureActor(label)
	a.CollisionMode = mode
	w.log("actor.%s.collision_mode %s", a.ID, orNil(mode))
}

func (w *WorldState) SetActorIgnoreBoxes(label string, ignore bool) {
	a := w.ensureActor(label)
	a.IgnoringBoxes = ignore
	w.log("actor.%s.ignore_boxes %t", a.ID, ignore)
}

func (w *WorldState) PutActorInSet(label, setFile string) {
	a := w.ensureActor(label)
	a.CurrentSet = setFile
	w.log("actor.%s.enter %s", a.ID, setFile)
}

func (w *WorldState) ActorAtInterest(label string) {
	a := w.ensureActor(label)
	a.AtInterest = true
	w.log("actor.%s.at_interest", a.ID)
}

// SetActorPosition moves the actor and any object linked to it.
func (w *WorldState) SetActorPosition(label string, pos Vec3) {
	a := w.ensureActor(label)
	p := pos
	a.Position = &p
	w.log("actor.%s.pos %s", a.ID, pos)
	w.updateLinkedObject(a, pos)
}

func (w *WorldState) SetActorRotation(label string, rot Vec3) {
	a := w.ensureActor(label)
	r := rot
	a.Rotation = &r
	w.log("actor.%s.rot %s", a.ID, rot)
}

func (w *WorldState) SetActorScale(label string, scale *float64) {
	a := w.ensureActor(label)
	a.Scale = scale
	w.log("actor.%s.scale %s", a.ID, floatLabel(scale))
}

func (w *WorldState) SetActorCollisionScale(label string, scale *float64) {
	a := w.ensureActor(label)
	a.CollisionScale = scale
	w.log("actor.%s.collision_scale %s", a.ID, floatLabel(scale))
}

// SetActorVisibility shows or hides the actor and the object linked to it.
func (w *WorldState) SetActorVisibility(label string, visible bool) {
	state := "hidden"
	if visible {
		state = "visible"
	}
	w.log("actor.visibility %s %s", label, state)

	a, ok := w.Actor(label)
	if !ok {
		return
	}
	a.Visible = visible
	if h, ok := w.objectsByActor[a.Handle]; ok {
		w.SetObjectVisible(h, visible)
	}
}

// byHandle resolves a handle for the handle based setters, logging op when
// the handle is unknown.
func (w *WorldState) byHandle(op string, handle int) (*Actor, bool) {
	a, ok := w.ActorByHandle(handle)
	if !ok {
		w.log("actor.%s.unknown_handle #%d", op, handle)
	}
	return a, ok
}

func (w *WorldState) SetActorRotationByHandle(handle int, rot Vec3) bool {
	a, ok := w.byHandle("rot", handle)
	if !ok {
		return false
	}
	w.SetActorRotation(a.ID, rot)
	return true
}

func (w *WorldState) SetActorScaleByHandle(handle int, scale *float64) bool {
	a, ok := w.byHandle("scale", handle)
	if !ok {
		return false
	}
	w.SetActorScale(a.ID, scale)
	return true
}

func (w *WorldState) SetActorCollisionScaleByHandle(handle int, scale *float64) bool {
	a, ok := w.byHandle("collision_scale", handle)
	if !ok {
		return false
	}
	w.SetActorCollisionScale(a.ID, scale)
	return true
}

// ActorPosition returns the actor's position, falling back to the position
// of the object linked to it.
func (w *WorldState) ActorPosition(handle int) (Vec3, bool) {
	if a, ok := w.ActorByHandle(handle); ok && a.Position != nil {
		return *a.Position, true
	}
	if h, ok := w.objectsByActor[handle]; ok {
		if o := w.objects[h]; o.Position != nil {
			return *o.Position, true
		}
	}
	return Vec3{}, false
}

func (w *WorldState) SetActorMoving(handle int, moving bool) {
	if moving {
		w.moving[handle] = true
	} else {
		delete(w.moving, handle)
	}
}

func (w *WorldState) IsActorMoving(handle int) bool {
	return w.moving[handle]
}

func (w *WorldState) recordSectorHit(a *Actor, hit geometry.SectorHit) {
	a.Sectors[hit.Kind] = hit
}

// SetActorSpeaking records the line an actor is saying.
func (w *WorldState) SetActorSpeaking(label, line string, speaking bool) {
	a := w.ensureActor(label)
	a.Speaking = speaking
	if line != "" {
		a.LastLine = line
	}
}
