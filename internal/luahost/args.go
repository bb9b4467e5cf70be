package luahost

import (
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/pixil98/go-grim/internal/game"
)

// stringArg reads an optional string. Numbers are converted; anything else
// is absent.
func stringArg(l *lua.State, idx int) string {
	switch l.TypeOf(idx) {
	case lua.TypeString, lua.TypeNumber:
		s, _ := l.ToString(idx)
		return s
	default:
		return ""
	}
}

func optStringArg(l *lua.State, idx int) *string {
	if l.TypeOf(idx) != lua.TypeString && l.TypeOf(idx) != lua.TypeNumber {
		return nil
	}
	s := stringArg(l, idx)
	return &s
}

func intArg(l *lua.State, idx int) (int, bool) {
	if l.TypeOf(idx) != lua.TypeNumber {
		return 0, false
	}
	n, ok := l.ToNumber(idx)
	return int(n), ok
}

func optIntArg(l *lua.State, idx int) *int {
	n, ok := intArg(l, idx)
	if !ok {
		return nil
	}
	return &n
}

func optNumberArg(l *lua.State, idx int) *float64 {
	if l.TypeOf(idx) != lua.TypeNumber {
		return nil
	}
	n, _ := l.ToNumber(idx)
	return &n
}

// boolArg reads a flag the way scripts pass them: nil is def, zero, "0" and
// "false" are false and any other value follows Lua truthiness.
func boolArg(l *lua.State, idx int, def bool) bool {
	switch l.TypeOf(idx) {
	case lua.TypeNone, lua.TypeNil:
		return def
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n != 0
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s != "0" && s != "false"
	default:
		return l.ToBoolean(idx)
	}
}

// stringArgs collects the string arguments from idx to the top of the stack.
func stringArgs(l *lua.State, idx int) []string {
	var out []string
	for i := idx; i <= l.Top(); i++ {
		if s := stringArg(l, i); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// selfOffset skips the receiver when a method table is called with a colon.
func selfOffset(l *lua.State) int {
	if l.TypeOf(1) == lua.TypeTable {
		return 1
	}
	return 0
}

func fieldString(l *lua.State, idx int, name string) string {
	l.Field(idx, name)
	defer l.Pop(1)
	return stringArg(l, -1)
}

func fieldNumber(l *lua.State, idx int, name string) *float64 {
	l.Field(idx, name)
	defer l.Pop(1)
	return optNumberArg(l, -1)
}

func fieldBool(l *lua.State, idx int, name string, def bool) bool {
	l.Field(idx, name)
	defer l.Pop(1)
	return boolArg(l, -1, def)
}

// vecArg reads a vector given as three numbers or as a table with x, y and z
// (or 1, 2 and 3) entries. Missing components are zero.
func vecArg(l *lua.State, idx int) (game.Vec3, bool) {
	idx = l.AbsIndex(idx)
	switch l.TypeOf(idx) {
	case lua.TypeTable:
		var v game.Vec3
		for i, c := range []*float64{&v.X, &v.Y, &v.Z} {
			name := string(rune('x' + i))
			if n := fieldNumber(l, idx, name); n != nil {
				*c = *n
				continue
			}
			l.RawGetInt(idx, i+1)
			if n := optNumberArg(l, -1); n != nil {
				*c = *n
			}
			l.Pop(1)
		}
		return v, true
	case lua.TypeNumber:
		var v game.Vec3
		for i, c := range []*float64{&v.X, &v.Y, &v.Z} {
			if n := optNumberArg(l, idx+i); n != nil {
				*c = *n
			}
		}
		return v, true
	default:
		return game.Vec3{}, false
	}
}

func pushVec(l *lua.State, v game.Vec3) int {
	l.PushNumber(v.X)
	l.PushNumber(v.Y)
	l.PushNumber(v.Z)
	return 3
}

func pushOptString(l *lua.State, s string, ok bool) int {
	if !ok {
		l.PushNil()
		return 1
	}
	l.PushString(s)
	return 1
}

func pushOptInt(l *lua.State, n int, ok bool) int {
	if !ok {
		l.PushNil()
		return 1
	}
	l.PushInteger(n)
	return 1
}

func pushInts(l *lua.State, values []int) int {
	l.NewTable()
	for i, v := range values {
		l.PushInteger(v)
		l.RawSetInt(-2, i+1)
	}
	return 1
}

// actorArg resolves an actor given as a handle, a label or an actor table
// carrying hActor or name.
func (h *Host) actorArg(l *lua.State, idx int) (string, bool) {
	switch l.TypeOf(idx) {
	case lua.TypeNumber:
		n, _ := intArg(l, idx)
		a, ok := h.world().ActorByHandle(n)
		if !ok {
			h.events().Addf("actor.unknown_handle #%d", n)
			return "", false
		}
		return a.ID, true
	case lua.TypeString:
		s := strings.TrimSpace(stringArg(l, idx))
		return s, s != ""
	case lua.TypeTable:
		idx = l.AbsIndex(idx)
		l.Field(idx, "hActor")
		defer l.Pop(1)
		if l.TypeOf(-1) == lua.TypeNumber {
			return h.actorArg(l, l.AbsIndex(-1))
		}
		name := fieldString(l, idx, "name")
		return name, name != ""
	default:
		return "", false
	}
}

// actorHandleArg resolves an actor argument to a handle, registering the
// actor when it is new.
func (h *Host) actorHandleArg(l *lua.State, idx int) (int, bool) {
	label, ok := h.actorArg(l, idx)
	if !ok {
		return 0, false
	}
	if a, ok := h.world().Actor(label); ok {
		return a.Handle, true
	}
	_, handle := h.world().RegisterActor(label, 0)
	return handle, true
}

// setArg reads an optional set file, defaulting to the current set.
func (h *Host) setArg(l *lua.State, idx int) string {
	if s := stringArg(l, idx); s != "" {
		return s
	}
	cur, _ := h.world().CurrentSet()
	return cur.File
}
