package luahost

import (
	"fmt"

	"github.com/Shopify/go-lua"
	"github.com/pixil98/go-grim/internal/audio"
)

// menuNoOps are widget methods scripts call for layout only.
var menuNoOps = []string{
	"add_image", "add_line", "add_button", "add_slider", "add_toggle",
	"setup", "destroy", "cancel", "refresh",
}

// statefulMenus are globals backed by a menu of the same name that can
// freeze the game while open.
var statefulMenus = []string{"menu_dialog", "menu_common", "menu_remap_keys", "menu_prefs"}

var menuColours = map[string][3]float64{
	"White":   {1, 1, 1},
	"Yellow":  {1, 0.9, 0.2},
	"Magenta": {0.9, 0.1, 0.9},
	"Aqua":    {0.1, 0.7, 0.9},
}

func noOp(*lua.State) int { return 0 }

// setSelfVisible mirrors visibility onto the receiver table when a method
// is called with a colon.
func setSelfVisible(l *lua.State, visible bool) {
	if l.IsTable(1) {
		l.PushBoolean(visible)
		l.SetField(1, "is_visible")
	}
}

func setGlobalField(l *lua.State, global, field string, v bool) {
	l.Global(global)
	if l.IsTable(-1) {
		l.PushBoolean(v)
		l.SetField(-2, field)
	}
	l.Pop(1)
}

// setMethods installs fns on the table at the top of the stack.
func setMethods(l *lua.State, fns map[string]lua.Function) {
	for name, fn := range fns {
		l.PushGoFunction(fn)
		l.SetField(-2, name)
	}
}

// setStubMeta gives the table at the top of the stack a metatable whose
// unknown methods log under the name built by stub.
func (h *Host) setStubMeta(l *lua.State, stub func(method string) string) {
	l.NewTable()
	l.PushGoFunction(func(l *lua.State) int {
		method := stringArg(l, 2)
		l.PushGoFunction(func(l *lua.State) int {
			h.events().Add(stub(method))
			return 0
		})
		return 1
	})
	l.SetField(-2, "__index")
	l.SetMetaTable(-2)
}

func (h *Host) registerMenus(l *lua.State) {
	l.PushGoFunction(noOp)
	l.SetGlobal("menu_ctor")
	for _, name := range []string{"createMenuWidget", "createMenuLayout", "LoadingMenuAllocator", "MenuCommon"} {
		l.NewTable()
		l.SetGlobal(name)
	}

	l.NewTable()
	l.PushGoFunction(func(l *lua.State) int {
		name := stringArg(l, 1+selfOffset(l))
		if name == "" {
			name = "menu"
		}
		h.pushMenuWidget(l, name)
		return 1
	})
	l.SetField(-2, "create")
	l.SetGlobal("game_menu")

	h.registerLoadingMenu(l)
	h.registerBootWarningMenu(l)
	h.registerSaveLoadMenu(l)
	for _, name := range statefulMenus {
		h.registerStatefulMenu(l, name)
	}
	h.registerFootsteps(l)
	h.registerColours(l)
}

// pushMenuWidget pushes a new widget menu table and registers it with the
// world.
func (h *Host) pushMenuWidget(l *lua.State, name string) {
	w := h.world()
	w.CreateMenu(name)
	h.events().Addf("menu.create %s", name)

	l.NewTable()
	l.PushString(name)
	l.SetField(-2, "name")
	l.PushBoolean(false)
	l.SetField(-2, "is_visible")

	fns := map[string]lua.Function{
		"show": func(l *lua.State) int {
			setSelfVisible(l, true)
			w.ShowMenu(name)
			h.events().Addf("menu.show %s", name)
			return 0
		},
		"autoFreeze": noOp,
	}
	for _, action := range []string{"hide", "close"} {
		fns[action] = func(l *lua.State) int {
			setSelfVisible(l, false)
			w.HideMenu(name, action)
			h.events().Addf("menu.%s %s", action, name)
			return 0
		}
	}
	for _, action := range []string{"freeze", "cleanup"} {
		fns[action] = func(l *lua.State) int {
			w.MarkMenu(name, action)
			h.events().Addf("menu.%s %s", action, name)
			return 0
		}
	}
	for _, m := range menuNoOps {
		fns[m] = noOp
	}
	setMethods(l, fns)
	h.setStubMeta(l, func(method string) string {
		return fmt.Sprintf("menu.stub %s.%s", name, method)
	})
}

// registerLoadingMenu installs loading_menu. Running it in auto mode pauses
// the game and schedules a freeze for the next tick, which lifts the pause.
func (h *Host) registerLoadingMenu(l *lua.State) {
	const name = "loading"
	w := h.world()

	freeze := func(l *lua.State, action string) {
		setGlobalField(l, "loading_menu", "is_visible", false)
		w.RecordPause("pause", false)
		w.HideMenu(name, action)
		h.events().Addf("loading_menu.%s", action)
	}

	h.pushMenuWidget(l, name)
	l.PushBoolean(false)
	l.SetField(-2, "autoFreeze")
	setMethods(l, map[string]lua.Function{
		"run": func(l *lua.State) int {
			auto := boolArg(l, 1+selfOffset(l), false)
			setGlobalField(l, "loading_menu", "autoFreeze", auto)
			setGlobalField(l, "loading_menu", "is_visible", true)
			w.RecordPause("pause", true)
			w.RunMenu(name, auto)
			mode := "manual"
			if auto {
				mode = "auto"
				h.scripts().SingleStart("loading_menu.freeze", &deferredCall{fn: func() {
					if h.state != nil {
						freeze(h.state, "freeze")
					}
				}})
			}
			h.events().Addf("loading_menu.run %s", mode)
			return 0
		},
		"freeze": func(l *lua.State) int {
			freeze(l, "freeze")
			return 0
		},
		"close": func(l *lua.State) int {
			freeze(l, "close")
			return 0
		},
	})
	l.SetGlobal("loading_menu")
}

// registerBootWarningMenu installs boot_warning_menu, which pauses the game
// while it is open.
func (h *Host) registerBootWarningMenu(l *lua.State) {
	const name = "boot_warning"
	w := h.world()

	closeMenu := func(l *lua.State) {
		setGlobalField(l, "boot_warning_menu", "is_visible", false)
		w.RecordPause("pause", false)
		w.HideMenu(name, "close")
		h.events().Add("boot_warning_menu.close")
	}

	h.pushMenuWidget(l, name)
	setMethods(l, map[string]lua.Function{
		"run": func(l *lua.State) int {
			setGlobalField(l, "boot_warning_menu", "is_visible", true)
			w.RecordPause("pause", true)
			w.ShowMenu(name)
			w.MarkMenu(name, "run")
			h.events().Add("boot_warning_menu.run")
			return 0
		},
		"close": func(l *lua.State) int {
			closeMenu(l)
			return 0
		},
		"check_timeout": func(l *lua.State) int {
			closeMenu(l)
			w.MarkMenu(name, "check_timeout")
			h.events().Add("boot_warning_menu.check_timeout")
			return 0
		},
	})
	l.SetGlobal("boot_warning_menu")
}

// registerStatefulMenu installs a menu global whose visibility drives the
// game pause when auto freeze is on.
func (h *Host) registerStatefulMenu(l *lua.State, name string) {
	w := h.world()
	w.CreateMenu(name)
	h.events().Addf("%s.create", name)

	show := func(l *lua.State) int {
		setSelfVisible(l, true)
		if w.ShowMenu(name) {
			w.RecordPause("pause", true)
		}
		h.events().Addf("%s.show", name)
		return 0
	}
	hide := func(l *lua.State) int {
		setSelfVisible(l, false)
		if w.HideMenu(name, "hide") {
			w.RecordPause("pause", false)
		}
		h.events().Addf("%s.hide", name)
		return 0
	}
	autoFreeze := func(l *lua.State) int {
		on := boolArg(l, 1+selfOffset(l), false)
		setGlobalField(l, name, "autoFreeze", on)
		if w.SetMenuAutoFreeze(name, on) {
			w.RecordPause("pause", on)
		}
		state := "off"
		if on {
			state = "on"
		}
		h.events().Addf("%s.auto_freeze %s", name, state)
		return 0
	}

	l.NewTable()
	l.PushString(name)
	l.SetField(-2, "name")
	l.PushBoolean(false)
	l.SetField(-2, "is_visible")
	l.PushBoolean(false)
	l.SetField(-2, "autoFreeze")

	fns := map[string]lua.Function{
		"show":            show,
		"show_menu":       show,
		"open":            show,
		"hide":            hide,
		"close":           hide,
		"auto_freeze":     autoFreeze,
		"set_auto_freeze": autoFreeze,
		"setAutoFreeze":   autoFreeze,
		"cleanup":         noOp,
	}
	for _, m := range menuNoOps {
		fns[m] = noOp
	}
	setMethods(l, fns)
	h.setStubMeta(l, func(method string) string {
		return fmt.Sprintf("%s.stub %s", name, method)
	})
	l.SetGlobal(name)
}

// registerSaveLoadMenu installs saveload_menu. It only records the modes
// scripts ask for.
func (h *Host) registerSaveLoadMenu(l *lua.State) {
	l.NewTable()
	l.PushString("SaveLoad")
	l.SetField(-2, "name")
	l.PushInteger(1)
	l.SetField(-2, "exit_index")
	l.NewTable()
	l.NewTable()
	l.SetField(-2, "items")
	l.SetField(-2, "menu")

	setMethods(l, map[string]lua.Function{
		"run": func(l *lua.State) int {
			mode := stringArg(l, 1+selfOffset(l))
			if mode == "" {
				mode = "<nil>"
			}
			h.events().Addf("saveload_menu.run %s", mode)
			return 0
		},
		"build_menu": func(l *lua.State) int {
			mode := ""
			if off := selfOffset(l); l.IsTable(1 + off) {
				mode = fieldString(l, 1+off, "mode")
			}
			if mode != "" {
				setSaveLoadExitMode(l, mode)
				h.events().Addf("saveload_menu.build_menu %s", mode)
			} else {
				h.events().Add("saveload_menu.build_menu")
			}
			return 0
		},
		"cleanup":    noOp,
		"destroy":    noOp,
		"add_item":   noOp,
		"add_button": noOp,
	})
	l.SetGlobal("saveload_menu")
}

// setSaveLoadExitMode stores mode on saveload_menu.menu.items[exit_index],
// creating the item when needed.
func setSaveLoadExitMode(l *lua.State, mode string) {
	top := l.Top()
	defer l.SetTop(top)

	l.Global("saveload_menu")
	if !l.IsTable(-1) {
		return
	}
	menu := l.Top()
	index := 1
	l.Field(menu, "exit_index")
	if n, ok := intArg(l, -1); ok {
		index = n
	}
	l.Field(menu, "menu")
	if !l.IsTable(-1) {
		return
	}
	l.Field(-1, "items")
	if !l.IsTable(-1) {
		return
	}
	items := l.Top()
	l.RawGetInt(items, index)
	if !l.IsTable(-1) {
		l.Pop(1)
		l.NewTable()
		l.PushValue(-1)
		l.RawSetInt(items, index)
	}
	l.PushString(mode)
	l.SetField(-2, "mode")
}

// registerFootsteps installs the footsteps table keyed by surface name.
// Surfaces without running sounds leave left_run and right_run unset.
func (h *Host) registerFootsteps(l *lua.State) {
	l.NewTable()
	for surface, fp := range audio.Footsteps {
		l.NewTable()
		l.PushString(fp.Prefix)
		l.SetField(-2, "prefix")
		counts := []struct {
			field string
			n     int
		}{
			{"left_walk", fp.LeftWalk},
			{"right_walk", fp.RightWalk},
			{"left_run", fp.LeftRun},
			{"right_run", fp.RightRun},
		}
		for _, c := range counts {
			if c.n == 0 {
				continue
			}
			l.PushInteger(c.n)
			l.SetField(-2, c.field)
		}
		l.SetField(-2, surface)
	}
	l.SetGlobal("footsteps")
}

func (h *Host) registerColours(l *lua.State) {
	for name, rgb := range menuColours {
		l.NewTable()
		for i, field := range []string{"r", "g", "b"} {
			l.PushNumber(rgb[i])
			l.SetField(-2, field)
		}
		l.SetGlobal(name)
	}
}

// deferredCall is a coroutine that runs fn on its first resume.
type deferredCall struct {
	fn func()
}

func (d *deferredCall) Resume() (bool, error) {
	d.fn()
	return true, nil
}

func (d *deferredCall) Close() {}
