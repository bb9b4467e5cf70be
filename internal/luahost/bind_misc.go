package luahost

import (
	"strings"

	"github.com/Shopify/go-lua"
)

func (h *Host) setFunctions(l *lua.State, fns map[string]lua.Function) {
	for name, fn := range fns {
		l.PushGoFunction(fn)
		l.SetGlobal(name)
	}
}

func (h *Host) register() {
	l := h.state
	h.registerScripts(l)
	h.registerSets(l)
	h.registerActors(l)
	h.registerObjects(l)
	h.registerCutscenes(l)
	h.registerMusic(l)
	h.registerSounds(l)
	h.registerProgress(l)
	h.registerMenus(l)
}

func (h *Host) registerProgress(l *lua.State) {
	w := h.world()
	h.setFunctions(l, map[string]lua.Function{
		"AddInventoryItem": func(l *lua.State) int {
			l.PushBoolean(w.AddInventoryItem(lua.CheckString(l, 1)))
			return 1
		},
		"RegisterInventoryRoom": func(l *lua.State) int {
			l.PushBoolean(w.RegisterInventoryRoom(lua.CheckString(l, 1)))
			return 1
		},
		"SetAchievementEligible": func(l *lua.State) int {
			w.SetAchievementEligible(lua.CheckString(l, 1), boolArg(l, 2, true))
			return 0
		},
		"IsAchievementEligible": func(l *lua.State) int {
			l.PushBoolean(w.IsAchievementEligible(lua.CheckString(l, 1)))
			return 1
		},
		"HasAchievementBeenEstablished": func(l *lua.State) int {
			l.PushBoolean(w.HasAchievementBeenEstablished(lua.CheckString(l, 1)))
			return 1
		},
		"SetVoiceEffect": func(l *lua.State) int {
			w.SetVoiceEffect(stringArg(l, 1))
			return 0
		},
		"LogEvent": func(l *lua.State) int {
			h.events().Add(strings.Join(stringArgs(l, 1), " "))
			return 0
		},
	})

	// game_pauser.pause(on) and game_pauser.resume(on) record the request
	// under the method's name.
	l.NewTable()
	for _, name := range []string{"pause", "resume"} {
		l.PushGoFunction(func(l *lua.State) int {
			w.RecordPause(name, boolArg(l, 1+selfOffset(l), false))
			return 0
		})
		l.SetField(-2, name)
	}
	l.SetGlobal("game_pauser")
}
