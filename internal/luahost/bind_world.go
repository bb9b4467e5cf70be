package luahost

import (
	"github.com/Shopify/go-lua"
	"github.com/pixil98/go-grim/internal/game"
)

// actorFunc adapts a binding that needs a resolved actor label in its first
// argument. Unresolvable actors make the call a no-op.
func (h *Host) actorFunc(fn func(l *lua.State, label string) int) lua.Function {
	return func(l *lua.State) int {
		label, ok := h.actorArg(l, 1)
		if !ok {
			return 0
		}
		return fn(l, label)
	}
}

func (h *Host) registerSets(l *lua.State) {
	w := h.world()
	h.setFunctions(l, map[string]lua.Function{
		"SwitchToSet": func(l *lua.State) int {
			w.SwitchToSet(lua.CheckString(l, 1))
			return 0
		},
		"LoadSet": func(l *lua.State) int {
			w.LoadSet(lua.CheckString(l, 1))
			return 0
		},
		"MakeSectorActive": func(l *lua.State) int {
			name := lua.CheckString(l, 1)
			res := w.SetSectorActive(stringArg(l, 3), name, boolArg(l, 2, true))
			l.PushString(res.String())
			return 1
		},
		"IsSectorActive": func(l *lua.State) int {
			l.PushBoolean(w.IsSectorActive(h.setArg(l, 2), lua.CheckString(l, 1)))
			return 1
		},
		"SetCurrentSetup": func(l *lua.State) int {
			file := h.setArg(l, 2)
			if file == "" {
				return 0
			}
			w.SetCurrentSetup(file, lua.CheckInteger(l, 1))
			return 0
		},
		"GetCurrentSetup": func(l *lua.State) int {
			idx, ok := w.CurrentSetup(h.setArg(l, 1))
			return pushOptInt(l, idx, ok)
		},
		"GetActorSector": h.actorFunc(func(l *lua.State, label string) int {
			hit := w.DefaultSectorHit(label, stringArg(l, 2))
			l.PushInteger(hit.ID)
			l.PushString(hit.Name)
			l.PushString(hit.Kind)
			return 3
		}),
		"IsActorInSector": h.actorFunc(func(l *lua.State, label string) int {
			query := lua.CheckString(l, 2)
			for _, kind := range []string{"walk", "hot", "camera"} {
				if hit, ok := w.ResolveSectorHit(label, kind); ok && hit.Name == query {
					l.PushBoolean(true)
					return 1
				}
			}
			l.PushBoolean(w.EvaluateSectorName(label, query))
			return 1
		}),
	})
}

func (h *Host) registerActors(l *lua.State) {
	w := h.world()
	h.setFunctions(l, map[string]lua.Function{
		"RegisterActor": func(l *lua.State) int {
			id, handle := w.RegisterActor(lua.CheckString(l, 1), lua.OptInteger(l, 2, 0))
			l.PushString(id)
			l.PushInteger(handle)
			return 2
		},
		"SelectActor": h.actorFunc(func(l *lua.State, label string) int {
			l.PushString(w.SelectActor(label))
			return 1
		}),
		"PutActorInSet": h.actorFunc(func(l *lua.State, label string) int {
			w.PutActorInSet(label, h.setArg(l, 2))
			return 0
		}),
		"SetActorPosition": h.actorFunc(func(l *lua.State, label string) int {
			if v, ok := vecArg(l, 2); ok {
				w.SetActorPosition(label, v)
			}
			return 0
		}),
		"GetActorPosition": func(l *lua.State) int {
			handle, ok := h.actorHandleArg(l, 1)
			if !ok {
				return 0
			}
			pos, ok := w.ActorPosition(handle)
			if !ok {
				l.PushNil()
				return 1
			}
			return pushVec(l, pos)
		},
		"SetActorRotation": h.actorFunc(func(l *lua.State, label string) int {
			if v, ok := vecArg(l, 2); ok {
				w.SetActorRotation(label, v)
			}
			return 0
		}),
		"GetActorRotation": h.actorFunc(func(l *lua.State, label string) int {
			a, ok := w.Actor(label)
			if !ok || a.Rotation == nil {
				l.PushNil()
				return 1
			}
			return pushVec(l, *a.Rotation)
		}),
		"SetActorScale": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorScale(label, optNumberArg(l, 2))
			return 0
		}),
		"SetActorCollisionScale": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorCollisionScale(label, optNumberArg(l, 2))
			return 0
		}),
		"SetActorVisibility": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorVisibility(label, boolArg(l, 2, true))
			return 0
		}),
		"SetActorCostume": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorCostume(label, stringArg(l, 2))
			return 0
		}),
		"SetActorBaseCostume": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorBaseCostume(label, stringArg(l, 2))
			return 0
		}),
		"PushActorCostume": h.actorFunc(func(l *lua.State, label string) int {
			l.PushInteger(w.PushActorCostume(label, lua.CheckString(l, 2)))
			return 1
		}),
		"PopActorCostume": h.actorFunc(func(l *lua.State, label string) int {
			costume, ok := w.PopActorCostume(label)
			return pushOptString(l, costume, ok)
		}),
		"SetActorChore": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorChore(label, stringArg(l, 2), stringArg(l, 3))
			return 0
		}),
		"SetActorWalkChore": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorWalkChore(label, stringArg(l, 2), stringArg(l, 3))
			return 0
		}),
		"SetActorTalkChore": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorTalkChore(label, stringArg(l, 2), stringArg(l, 3), stringArg(l, 4))
			return 0
		}),
		"SetActorMumbleChore": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorMumbleChore(label, stringArg(l, 2), stringArg(l, 3))
			return 0
		}),
		"SetActorTalkColor": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorTalkColor(label, stringArg(l, 2))
			return 0
		}),
		"SetActorHeadTarget": h.actorFunc(func(l *lua.State, label string) int {
			target := stringArg(l, 2)
			if l.TypeOf(2) == lua.TypeNumber || l.TypeOf(2) == lua.TypeTable {
				target, _ = h.actorArg(l, 2)
			}
			w.SetActorHeadTarget(label, target)
			return 0
		}),
		"SetActorHeadLookRate": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorHeadLookRate(label, optNumberArg(l, 2))
			return 0
		}),
		"SetActorCollisionMode": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorCollisionMode(label, stringArg(l, 2))
			return 0
		}),
		"SetActorIgnoreBoxes": h.actorFunc(func(l *lua.State, label string) int {
			w.SetActorIgnoreBoxes(label, boolArg(l, 2, true))
			return 0
		}),
		"ActorAtInterest": h.actorFunc(func(l *lua.State, label string) int {
			w.ActorAtInterest(label)
			return 0
		}),
		"WalkActorVector": func(l *lua.State) int {
			handle, ok := h.actorHandleArg(l, 1)
			if !ok {
				l.PushBoolean(false)
				return 1
			}
			delta, _ := vecArg(l, 2)
			next := 5
			if l.TypeOf(2) == lua.TypeTable {
				next = 3
			}
			l.PushBoolean(w.WalkActorVector(handle, delta, optNumberArg(l, next), optNumberArg(l, next+1)))
			return 1
		},
		"WalkActorTo": func(l *lua.State) int {
			handle, ok := h.actorHandleArg(l, 1)
			target, okTarget := vecArg(l, 2)
			l.PushBoolean(ok && okTarget && w.WalkActorTo(handle, target))
			return 1
		},
		"IsActorMoving": func(l *lua.State) int {
			handle, ok := h.actorHandleArg(l, 1)
			l.PushBoolean(ok && w.IsActorMoving(handle))
			return 1
		},
	})
}

func (h *Host) registerObjects(l *lua.State) {
	w := h.world()
	h.setFunctions(l, map[string]lua.Function{
		"RegisterObject": func(l *lua.State) int {
			lua.CheckType(l, 1, lua.TypeTable)
			obj, ok := h.objectArg(l, 1)
			if !ok {
				lua.ArgumentError(l, 1, "object handle expected")
				return 0
			}
			l.PushBoolean(w.RegisterObject(obj))
			return 1
		},
		"UnregisterObject": func(l *lua.State) int {
			handle, ok := h.objectHandleArg(l, 1)
			l.PushBoolean(ok && w.UnregisterObject(handle))
			return 1
		},
		"SetObjectTouchable": func(l *lua.State) int {
			if handle, ok := h.objectHandleArg(l, 1); ok {
				w.SetObjectTouchable(handle, boolArg(l, 2, true))
			}
			return 0
		},
		"SetObjectVisible": func(l *lua.State) int {
			if handle, ok := h.objectHandleArg(l, 1); ok {
				w.SetObjectVisible(handle, boolArg(l, 2, true))
			}
			return 0
		},
		"GetVisibleThings": func(l *lua.State) int {
			w.RecordVisibleObjects(w.VisibleObjectHandles())
			l.NewTable()
			for _, v := range w.VisibleObjects() {
				name := v.Name
				if v.DisplayName != "" {
					name = v.DisplayName
				}
				l.PushString(name)
				l.RawSetInt(-2, v.Handle)
			}
			return 1
		},
		"GetHotlist": func(l *lua.State) int {
			return pushInts(l, w.Hotlist())
		},
	})
}

// objectHandleArg resolves an object given as a handle, a script name or a
// table carrying either.
func (h *Host) objectHandleArg(l *lua.State, idx int) (int, bool) {
	switch l.TypeOf(idx) {
	case lua.TypeNumber:
		return intArg(l, idx)
	case lua.TypeString:
		name := stringArg(l, idx)
		o, ok := h.world().ObjectByName(name)
		if !ok {
			h.events().Addf("object.unknown_name %s", name)
			return 0, false
		}
		return o.Handle, true
	case lua.TypeTable:
		idx = l.AbsIndex(idx)
		if n := fieldNumber(l, idx, "handle"); n != nil {
			return int(*n), true
		}
		l.Field(idx, "name")
		defer l.Pop(1)
		if l.TypeOf(-1) != lua.TypeString {
			return 0, false
		}
		return h.objectHandleArg(l, l.AbsIndex(-1))
	default:
		lua.ArgumentError(l, idx, "object handle or name expected")
		return 0, false
	}
}

// objectArg reads an object definition table.
func (h *Host) objectArg(l *lua.State, idx int) (game.Object, bool) {
	idx = l.AbsIndex(idx)
	handle := fieldNumber(l, idx, "handle")
	if handle == nil {
		return game.Object{}, false
	}

	obj := game.Object{
		Handle:      int(*handle),
		Name:        fieldString(l, idx, "name"),
		DisplayName: fieldString(l, idx, "string_name"),
		SetFile:     fieldString(l, idx, "set_file"),
		Touchable:   fieldBool(l, idx, "touchable", true),
		Visible:     fieldBool(l, idx, "visible", true),
	}
	if r := fieldNumber(l, idx, "range"); r != nil {
		obj.Range = *r
	}

	l.Field(idx, "position")
	if l.TypeOf(-1) == lua.TypeTable {
		v, _ := vecArg(l, -1)
		obj.Position = &v
	}
	l.Pop(1)
	if obj.Position == nil && fieldNumber(l, idx, "x") != nil {
		v, _ := vecArg(l, idx)
		obj.Position = &v
	}

	l.Field(idx, "interest_actor")
	if l.TypeOf(-1) != lua.TypeNil {
		if handle, ok := h.actorHandleArg(l, l.AbsIndex(-1)); ok {
			obj.InterestActor = handle
		}
	}
	l.Pop(1)

	return obj, true
}
