package luahost

import (
	"github.com/Shopify/go-lua"
	"github.com/pixil98/go-grim/internal/audio"
)

// musicMethods is the closed set of methods the music table answers. Any
// other method is a logged no-op.
func (h *Host) musicMethods() map[string]lua.Function {
	a := h.engine.Audio()
	return map[string]lua.Function{
		"play": func(l *lua.State) int {
			off := selfOffset(l)
			a.PlayMusic(lua.CheckString(l, 1+off), stringArgs(l, 2+off))
			return 0
		},
		"queue": func(l *lua.State) int {
			off := selfOffset(l)
			a.QueueMusic(lua.CheckString(l, 1+off), stringArgs(l, 2+off))
			return 0
		},
		"stop": func(l *lua.State) int {
			a.StopMusic(stringArg(l, 1+selfOffset(l)))
			return 0
		},
		"pause": func(l *lua.State) int {
			a.PauseMusic()
			return 0
		},
		"resume": func(l *lua.State) int {
			a.ResumeMusic()
			return 0
		},
		"set_state": func(l *lua.State) int {
			a.SetMusicState(optStringArg(l, 1+selfOffset(l)))
			return 0
		},
		"push_state": func(l *lua.State) int {
			a.PushMusicState(optStringArg(l, 1+selfOffset(l)))
			return 0
		},
		"pop_state": func(l *lua.State) int {
			a.PopMusicState()
			return 0
		},
		"mute_group": func(l *lua.State) int {
			a.MuteMusicGroup(optStringArg(l, 1+selfOffset(l)))
			return 0
		},
		"unmute_group": func(l *lua.State) int {
			a.UnmuteMusicGroup(optStringArg(l, 1+selfOffset(l)))
			return 0
		},
		"set_volume": func(l *lua.State) int {
			a.SetMusicVolume(optNumberArg(l, 1+selfOffset(l)))
			return 0
		},
	}
}

// registerMusic installs the music table. Its metatable hands out a stub for
// unknown method names so scripts written against a richer music system keep
// running.
func (h *Host) registerMusic(l *lua.State) {
	a := h.engine.Audio()

	l.NewTable()
	for name, fn := range h.musicMethods() {
		l.PushGoFunction(fn)
		l.SetField(-2, name)
	}

	l.NewTable()
	l.PushGoFunction(func(l *lua.State) int {
		method := stringArg(l, 2)
		l.PushGoFunction(func(l *lua.State) int {
			a.MusicStub(method)
			return 0
		})
		return 1
	})
	l.SetField(-2, "__index")
	l.SetMetaTable(-2)

	l.SetGlobal("music")
}

func (h *Host) registerSounds(l *lua.State) {
	a := h.engine.Audio()
	h.setFunctions(l, map[string]lua.Function{
		"PlaySound": func(l *lua.State) int {
			l.PushString(a.PlaySfx(lua.CheckString(l, 1), stringArgs(l, 2)))
			return 1
		},
		"StopSound": func(l *lua.State) int {
			a.StopSfx(stringArg(l, 1))
			return 0
		},
		"ImStartSound": func(l *lua.State) int {
			l.PushInteger(a.StartImuse(lua.CheckString(l, 1), optIntArg(l, 2), optIntArg(l, 3)))
			return 1
		},
		"ImStopSound": func(l *lua.State) int {
			if l.TypeOf(1) == lua.TypeString {
				a.StopSfx(stringArg(l, 1))
				return 0
			}
			a.StopSfxNumeric(lua.CheckInteger(l, 1))
			return 0
		},
		"ImStopAllSounds": func(l *lua.State) int {
			a.StopSfx("")
			return 0
		},
		"ImSetParam": func(l *lua.State) int {
			a.SetParam(lua.CheckInteger(l, 1), lua.CheckInteger(l, 2), lua.CheckInteger(l, 3))
			return 0
		},
		"ImGetParam": func(l *lua.State) int {
			v, ok := a.GetParam(lua.CheckInteger(l, 1), lua.CheckInteger(l, 2))
			return pushOptInt(l, v, ok)
		},
	})

	for name, code := range map[string]int{
		"IM_SOUND_PLAY_COUNT": audio.ParamPlayCount,
		"IM_SOUND_GROUP":      audio.ParamGroup,
		"IM_SOUND_VOL":        audio.ParamVolume,
		"IM_SOUND_PAN":        audio.ParamPan,
	} {
		l.PushInteger(code)
		l.SetGlobal(name)
	}
}
