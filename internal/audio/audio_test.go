package audio

import (
	"strings"
	"testing"

	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-testutil"
)

type recordingCallback struct {
	calls []string
}

func (c *recordingCallback) MusicPlay(cue string, params []string) {
	c.calls = append(c.calls, "music.play "+cue+" "+strings.Join(params, ","))
}

func (c *recordingCallback) MusicStop(mode string) {
	c.calls = append(c.calls, "music.stop "+mode)
}

func (c *recordingCallback) SfxPlay(cue string, _ []string, handle string) {
	c.calls = append(c.calls, "sfx.play "+cue+" "+handle)
}

func (c *recordingCallback) SfxStop(target string) {
	c.calls = append(c.calls, "sfx.stop "+target)
}

func strPtr(s string) *string {
	return &s
}

func TestRuntime_MusicTransitions(t *testing.T) {
	events := eventlog.New()
	cb := &recordingCallback{}
	r := NewRuntime(events, WithCallback(cb))

	r.PlayMusic("mo_theme", []string{"loop", "fade"})
	r.QueueMusic("mo_outro", nil)
	r.PushMusicState(strPtr("office"))
	r.PushMusicState(strPtr("desk"))
	r.SetMusicState(strPtr("window"))
	r.MuteMusicGroup(strPtr("voices"))
	r.MuteMusicGroup(strPtr("ambient"))
	r.UnmuteMusicGroup(strPtr("voices"))
	vol := 0.5
	r.SetMusicVolume(&vol)
	r.PauseMusic()

	m := r.Music()
	if m.Current == nil {
		t.Fatal("expected a current cue")
	}
	testutil.AssertEqual(t, "current", m.Current.Name, "mo_theme")
	testutil.AssertEqual(t, "queued", len(m.Queued), 1)
	testutil.AssertEqual(t, "stack", strings.Join(m.StateStack, ","), "office,window")
	testutil.AssertEqual(t, "state", *m.CurrentState, "window")
	testutil.AssertEqual(t, "muted", strings.Join(m.MutedGroups, ","), "ambient")
	testutil.AssertEqual(t, "paused", m.Paused, true)
	testutil.AssertEqual(t, "volume", *m.Volume, 0.5)
	testutil.AssertEqual(t, "first history", m.History[0], "play mo_theme [loop, fade]")
	testutil.AssertEqual(t, "volume event", events.Entries()[len(events.Entries())-2], "music.volume 0.500")

	r.PopMusicState()
	m = r.Music()
	testutil.AssertEqual(t, "popped state", *m.CurrentState, "office")
	testutil.AssertEqual(t, "pop event", events.Last(), "music.state.pop window")

	r.PopMusicState()
	r.PopMusicState()
	testutil.AssertEqual(t, "empty pop", events.Last(), "music.state.pop <none>")
	if r.Music().CurrentState != nil {
		t.Error("expected no current state after popping everything")
	}

	r.StopMusic("")
	m = r.Music()
	if m.Current != nil {
		t.Error("expected music to be stopped")
	}
	testutil.AssertEqual(t, "stop clears pause", m.Paused, false)
	testutil.AssertEqual(t, "stop event", events.Last(), "music.stop")

	r.StopMusic("fade")
	testutil.AssertEqual(t, "stop mode event", events.Last(), "music.stop fade")
	testutil.AssertEqual(t, "callbacks", strings.Join(cb.calls, "|"), "music.play mo_theme loop,fade|music.stop |music.stop fade")
}

func TestRuntime_MusicNilArguments(t *testing.T) {
	tests := map[string]struct {
		apply    func(r *Runtime)
		expEvent string
	}{
		"set state":    {apply: func(r *Runtime) { r.SetMusicState(nil) }, expEvent: "music.state <nil>"},
		"push state":   {apply: func(r *Runtime) { r.PushMusicState(nil) }, expEvent: "music.state.push <nil>"},
		"mute group":   {apply: func(r *Runtime) { r.MuteMusicGroup(nil) }, expEvent: "music.mute <nil>"},
		"unmute group": {apply: func(r *Runtime) { r.UnmuteMusicGroup(nil) }, expEvent: "music.unmute <nil>"},
		"volume":       {apply: func(r *Runtime) { r.SetMusicVolume(nil) }, expEvent: "music.volume <nil>"},
		"stub":         {apply: func(r *Runtime) { r.MusicStub("crossfade") }, expEvent: "music.stub crossfade"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := eventlog.New()
			r := NewRuntime(events)
			tt.apply(r)
			testutil.AssertEqual(t, "event", events.Last(), tt.expEvent)
		})
	}
}

func TestRuntime_SfxTransitions(t *testing.T) {
	events := eventlog.New()
	cb := &recordingCallback{}
	r := NewRuntime(events, WithCallback(cb))

	h0 := r.PlaySfx("door_open", nil)
	h1 := r.PlaySfx("phone_ring", []string{"loud"})
	h2 := r.PlaySfx("door_open", nil)
	testutil.AssertEqual(t, "first handle", h0, "sfx_0000")
	testutil.AssertEqual(t, "second handle", h1, "sfx_0001")
	testutil.AssertEqual(t, "third handle", h2, "sfx_0002")

	s := r.Sfx()
	testutil.AssertEqual(t, "active", len(s.Active), 3)
	testutil.AssertEqual(t, "defaults", s.Active[0].Volume+s.Active[0].Pan+s.Active[0].PlayCount, 127+64+1)
	testutil.AssertEqual(t, "history", s.History[1], "sfx.play phone_ring [loud] -> sfx_0001")

	r.StopSfx("DOOR_OPEN")
	s = r.Sfx()
	testutil.AssertEqual(t, "cue stop removes one", len(s.Active), 2)
	testutil.AssertEqual(t, "cue stop removes first", s.Active[0].Handle, "sfx_0001")

	r.StopSfx("sfx_0002")
	testutil.AssertEqual(t, "handle stop", len(r.Sfx().Active), 1)
	testutil.AssertEqual(t, "handle stop event", events.Last(), "sfx.stop sfx_0002")

	r.StopSfx("missing")
	testutil.AssertEqual(t, "missing stop keeps", len(r.Sfx().Active), 1)

	r.StopSfx("")
	testutil.AssertEqual(t, "stop all", len(r.Sfx().Active), 0)
	testutil.AssertEqual(t, "stop all event", events.Last(), "sfx.stop all")
	testutil.AssertEqual(t, "last callback", cb.calls[len(cb.calls)-1], "sfx.stop ")

	h3 := r.PlaySfx("bell", nil)
	testutil.AssertEqual(t, "counter keeps counting", h3, "sfx_0003")
}

func TestRuntime_SfxOrderPastFourDigits(t *testing.T) {
	events := eventlog.New()
	r := NewRuntime(events)
	r.sfx.next = 9999

	h0 := r.PlaySfx("rain", nil)
	h1 := r.PlaySfx("thunder", nil)
	h2 := r.PlaySfx("rain", nil)
	testutil.AssertEqual(t, "four digits", h0, "sfx_9999")
	testutil.AssertEqual(t, "five digits", h1, "sfx_10000")

	var got []string
	for _, inst := range r.Sfx().Active {
		got = append(got, inst.Handle)
	}
	testutil.AssertEqual(t, "numeric order", got, []string{h0, h1, h2})

	r.StopSfx("rain")
	testutil.AssertEqual(t, "cue stop removes oldest", r.Sfx().Active[0].Handle, h1)
	testutil.AssertEqual(t, "newer rain kept", r.Sfx().Active[1].Handle, h2)
}

func TestRuntime_ImuseParams(t *testing.T) {
	events := eventlog.New()
	r := NewRuntime(events)

	priority, group := 64, 2
	id := r.StartImuse("glottis_song", &priority, &group)
	testutil.AssertEqual(t, "numeric", id, 0)
	testutil.AssertEqual(t, "params", strings.Join(r.Sfx().Active[0].Parameters, ","), "priority=64,group=2")

	tests := map[string]struct {
		code     int
		value    int
		expValue int
		expEvent string
	}{
		"volume":     {code: ParamVolume, value: 90, expValue: 90, expEvent: "sfx.param glottis_song volume 90"},
		"pan":        {code: ParamPan, value: 10, expValue: 10, expEvent: "sfx.param glottis_song pan 10"},
		"play count": {code: ParamPlayCount, value: -3, expValue: 0, expEvent: "sfx.param glottis_song play_count 0"},
		"group":      {code: ParamGroup, value: 4, expValue: 4, expEvent: "sfx.param glottis_song group 4"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r.SetParam(id, tt.code, tt.value)
			testutil.AssertEqual(t, "event", events.Last(), tt.expEvent)
			got, ok := r.GetParam(id, tt.code)
			testutil.AssertEqual(t, "found", ok, true)
			testutil.AssertEqual(t, "value", got, tt.expValue)
		})
	}

	r.SetParam(id, 42, 7)
	testutil.AssertEqual(t, "unknown code event", events.Last(), "sfx.param glottis_song code 42 value 7")
	_, ok := r.GetParam(id, 42)
	testutil.AssertEqual(t, "unknown code", ok, false)

	before := events.Len()
	r.SetParam(99, ParamVolume, 1)
	testutil.AssertEqual(t, "unknown id ignored", events.Len(), before)
	_, ok = r.GetParam(99, ParamVolume)
	testutil.AssertEqual(t, "unknown id", ok, false)

	r.StopSfxNumeric(id)
	testutil.AssertEqual(t, "numeric stop", events.Last(), "sfx.stop sfx_0000")
	r.StopSfxNumeric(12)
	testutil.AssertEqual(t, "numeric stop unknown", events.Last(), "sfx.stop 12")
}
