package luahost

import (
	"fmt"

	"github.com/Shopify/go-lua"
)

// script is a Lua callable driven one step per resume. Each step calls it
// with a persistent state table followed by the start arguments; returning
// true or "yield" suspends it and any other result finishes it.
type script struct {
	host *Host
	slot int
}

func (s *script) pushEntry(l *lua.State) bool {
	l.Field(lua.RegistryIndex, scriptsKey)
	l.RawGetInt(-1, s.slot)
	l.Remove(-2)
	return l.TypeOf(-1) == lua.TypeTable
}

func (s *script) Resume() (bool, error) {
	l := s.host.state
	if l == nil {
		return false, ErrHostClosed
	}
	top := l.Top()
	defer l.SetTop(top)

	if !s.pushEntry(l) {
		return true, nil
	}
	entry := l.Top()

	l.Field(entry, "args")
	args := l.Top()
	l.Field(entry, "n")
	n, _ := intArg(l, -1)
	l.Pop(1)

	l.Field(entry, "fn")
	nargs := 1
	l.Field(entry, "self")
	if l.TypeOf(-1) == lua.TypeNil {
		l.Pop(1)
		nargs = 0
	}
	l.Field(entry, "state")
	nargs++
	for i := 1; i <= n; i++ {
		l.RawGetInt(args, i)
	}

	if err := l.ProtectedCall(nargs+n, 1, 0); err != nil {
		return false, err
	}

	switch l.TypeOf(-1) {
	case lua.TypeBoolean:
		return !l.ToBoolean(-1), nil
	case lua.TypeString:
		v, _ := l.ToString(-1)
		return v != "yield", nil
	default:
		return true, nil
	}
}

// Close drops the callable and its state table.
func (s *script) Close() {
	l := s.host.state
	if l == nil {
		return
	}
	l.Field(lua.RegistryIndex, scriptsKey)
	l.PushNil()
	l.RawSetInt(-2, s.slot)
	l.Pop(1)
}

// scriptLabel validates the callable at idx and derives the label used for
// single start checks.
func scriptLabel(l *lua.State, idx int) (string, error) {
	switch l.TypeOf(idx) {
	case lua.TypeFunction:
		return valueToken(l, idx), nil
	case lua.TypeString:
		name := stringArg(l, idx)
		l.Global(name)
		defer l.Pop(1)
		if l.TypeOf(-1) != lua.TypeFunction {
			return "", fmt.Errorf("no global function %q", name)
		}
		return name, nil
	case lua.TypeTable:
		l.Field(idx, "run")
		defer l.Pop(1)
		if l.TypeOf(-1) != lua.TypeFunction {
			return "", fmt.Errorf("script table has no run function")
		}
		for _, key := range []string{"name", "label"} {
			if s := fieldString(l, idx, key); s != "" {
				return s, nil
			}
		}
		return valueToken(l, -1), nil
	default:
		return "", fmt.Errorf("function expected, got %s", lua.TypeNameOf(l, idx))
	}
}

// valueToken is the runtime's printable identity of a value.
func valueToken(l *lua.State, idx int) string {
	s, _ := lua.ToStringMeta(l, idx)
	l.Pop(1)
	return s
}

// newScript stores the callable at idx and the arguments after it in the
// registry.
func (h *Host) newScript(l *lua.State, idx int) *script {
	idx = l.AbsIndex(idx)
	top := l.Top()
	slot := h.nextSlot
	h.nextSlot++

	l.Field(lua.RegistryIndex, scriptsKey)
	l.NewTable()

	switch l.TypeOf(idx) {
	case lua.TypeFunction:
		l.PushValue(idx)
	case lua.TypeString:
		l.Global(stringArg(l, idx))
	case lua.TypeTable:
		l.PushValue(idx)
		l.SetField(-2, "self")
		l.Field(idx, "run")
	}
	l.SetField(-2, "fn")

	l.NewTable()
	l.SetField(-2, "state")

	l.NewTable()
	for i := idx + 1; i <= top; i++ {
		l.PushValue(i)
		l.RawSetInt(-2, i-idx)
	}
	l.SetField(-2, "args")
	l.PushInteger(top - idx)
	l.SetField(-2, "n")

	l.RawSetInt(-2, slot)
	l.Pop(1)

	return &script{host: h, slot: slot}
}

func (h *Host) startScript(l *lua.State, single bool) int {
	label, err := scriptLabel(l, 1)
	if err != nil {
		lua.ArgumentError(l, 1, err.Error())
		return 0
	}

	body := h.newScript(l, 1)
	var handle int
	if single {
		handle = h.scripts().SingleStart(label, body)
	} else {
		handle = h.scripts().Start(label, body)
	}
	return pushOptInt(l, handle, handle != 0)
}

func (h *Host) registerScripts(l *lua.State) {
	h.setFunctions(l, map[string]lua.Function{
		"start_script": func(l *lua.State) int {
			return h.startScript(l, false)
		},
		"single_start_script": func(l *lua.State) int {
			return h.startScript(l, true)
		},
		"wait_for_script": func(l *lua.State) int {
			handle := lua.CheckInteger(l, 1)
			if err := h.scripts().Wait(handle, h.waitCeiling); err != nil {
				lua.Errorf(l, "%s", err.Error())
			}
			return 0
		},
		"stop_script": func(l *lua.State) int {
			l.PushBoolean(h.scripts().Stop(lua.CheckInteger(l, 1)))
			return 1
		},
		"find_script": func(l *lua.State) int {
			label, err := scriptLabel(l, 1)
			if err != nil {
				label = stringArg(l, 1)
			}
			handle, ok := h.scripts().FindHandle(label)
			return pushOptInt(l, handle, ok)
		},
		"script_running": func(l *lua.State) int {
			handle, ok := intArg(l, 1)
			l.PushBoolean(ok && h.scripts().IsRunning(handle))
			return 1
		},
		"active_scripts": func(l *lua.State) int {
			return pushInts(l, h.scripts().ActiveHandles())
		},
	})
}
