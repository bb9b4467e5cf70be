package luahost

import (
	"github.com/Shopify/go-lua"
)

func (h *Host) registerCutscenes(l *lua.State) {
	cs := h.engine.Cutscenes()
	h.setFunctions(l, map[string]lua.Function{
		"StartCutScene": func(l *lua.State) int {
			h.engine.PushCutScene(stringArg(l, 1), stringArgs(l, 2))
			return 0
		},
		"EndCutScene": func(l *lua.State) int {
			l.PushBoolean(h.engine.PopCutScene())
			return 1
		},
		"SetOverride": func(l *lua.State) int {
			cs.PushOverride(stringArg(l, 1))
			return 0
		},
		"KillOverride": func(l *lua.State) int {
			l.PushBoolean(cs.PopOverride())
			return 1
		},
		"ClearOverrides": func(l *lua.State) int {
			cs.ClearOverrides()
			return 0
		},
		"SetCommentary": func(l *lua.State) int {
			if l.TypeOf(1) == lua.TypeBoolean {
				h.engine.SetCommentaryActive(l.ToBoolean(1), stringArg(l, 2))
				return 0
			}
			label := stringArg(l, 1)
			h.engine.SetCommentaryActive(label != "" && boolArg(l, 2, true), label)
			return 0
		},
		"SayLine": func(l *lua.State) int {
			label, ok := h.actorArg(l, 1)
			if !ok {
				return 0
			}
			h.engine.BeginDialog(label, stringArg(l, 2))
			return 0
		},
		"EndLine": func(l *lua.State) int {
			var expected string
			if l.TypeOf(1) != lua.TypeNone && l.TypeOf(1) != lua.TypeNil {
				label, ok := h.actorArg(l, 1)
				if !ok {
					l.PushBoolean(false)
					return 1
				}
				expected = label
			}
			_, ok := h.engine.FinishDialog(expected)
			l.PushBoolean(ok)
			return 1
		},
		"IsMessageGoing": func(l *lua.State) int {
			l.PushBoolean(cs.IsMessageActive())
			return 1
		},
		"StartFullscreenMovie": func(l *lua.State) int {
			cs.StartFullscreenMovie(lua.CheckString(l, 1), lua.OptInteger(l, 2, 0))
			return 0
		},
		"IsFullscreenMoviePlaying": func(l *lua.State) int {
			l.PushBoolean(cs.PollFullscreenMovie())
			return 1
		},
	})
}
