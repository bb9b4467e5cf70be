package cutscene

import (
	"strings"
	"testing"

	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-testutil"
)

func TestRuntime_PushCutScene(t *testing.T) {
	tests := map[string]struct {
		label      string
		flags      []string
		sector     string
		suppressed bool
		expEvent   string
	}{
		"plain": {
			label:    "intro",
			expEvent: "cut_scene.start intro",
		},
		"unnamed with flags": {
			flags:    []string{"no_skip", "letterbox"},
			expEvent: "cut_scene.start <unnamed> [no_skip, letterbox]",
		},
		"suppressed": {
			label:      "phone",
			sector:     "mo_ddtws",
			suppressed: true,
			expEvent:   "cut_scene.start phone (sector mo_ddtws inactive)",
		},
		"suppressed without sector": {
			label:      "phone",
			suppressed: true,
			expEvent:   "cut_scene.start phone (sector <unknown> inactive)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := eventlog.New()
			r := NewRuntime(events)
			r.PushCutScene(tt.label, tt.flags, "mo.set", tt.sector, tt.suppressed)
			testutil.AssertEqual(t, "event", events.Last(), tt.expEvent)
			testutil.AssertEqual(t, "depth", len(r.CutScenes()), 1)
		})
	}
}

func TestRuntime_CutSceneBlocking(t *testing.T) {
	events := eventlog.New()
	r := NewRuntime(events)

	r.PushCutScene("outer", nil, "mo.set", "mo_ddtws", false)
	r.PushCutScene("inner", nil, "mo.set", "mo_winws", false)

	r.HandleSectorActivation("MO.SET", "mo_ddtws", false)
	testutil.AssertEqual(t, "block event", events.Last(), "cut_scene.block outer")

	before := events.Len()
	r.HandleSectorActivation("mo.set", "mo_ddtws", false)
	r.HandleSectorActivation("hh.set", "mo_winws", false)
	testutil.AssertEqual(t, "repeat and other set are silent", events.Len(), before)

	stack := r.CutScenes()
	testutil.AssertEqual(t, "order kept", stack[0].Label+","+stack[1].Label, "outer,inner")
	testutil.AssertEqual(t, "outer suppressed", stack[0].Suppressed, true)
	testutil.AssertEqual(t, "inner suppressed", stack[1].Suppressed, false)

	r.HandleSectorActivation("mo.set", "MO_DDTWS", true)
	testutil.AssertEqual(t, "unblock event", events.Last(), "cut_scene.unblock outer")

	r.HandleSectorActivation("mo.set", "mo_winws", false)
	testutil.AssertEqual(t, "pop inner", r.PopCutScene(), true)
	testutil.AssertEqual(t, "end suppressed", events.Last(), "cut_scene.end inner (suppressed)")
	testutil.AssertEqual(t, "pop outer", r.PopCutScene(), true)
	testutil.AssertEqual(t, "end", events.Last(), "cut_scene.end outer")
	testutil.AssertEqual(t, "pop empty", r.PopCutScene(), false)
}

func TestRuntime_Overrides(t *testing.T) {
	events := eventlog.New()
	r := NewRuntime(events)

	r.PushOverride("close_door")
	r.PushOverride("skip_intro")
	testutil.AssertEqual(t, "stack", strings.Join(r.Overrides(), ","), "close_door,skip_intro")

	testutil.AssertEqual(t, "pop", r.PopOverride(), true)
	testutil.AssertEqual(t, "pop event", events.Last(), "cut_scene.override.pop skip_intro")

	r.PushOverride("phone")
	r.ClearOverrides()
	testutil.AssertEqual(t, "cleared", len(r.Overrides()), 0)
	entries := events.Entries()
	testutil.AssertEqual(t, "clear order", strings.Join(entries[len(entries)-2:], "|"), "cut_scene.override.pop phone|cut_scene.override.pop close_door")
	testutil.AssertEqual(t, "pop empty", r.PopOverride(), false)
}

func TestRuntime_Commentary(t *testing.T) {
	events := eventlog.New()
	r := NewRuntime(events)

	h := 4
	r.SetCommentary(Commentary{Label: "mo_desk", ObjectHandle: &h, Active: true})
	testutil.AssertEqual(t, "active event", events.Last(), "commentary.active mo_desk")

	same := 4
	before := events.Len()
	r.SetCommentary(Commentary{Label: "mo_desk", ObjectHandle: &same, Active: true})
	testutil.AssertEqual(t, "unchanged is silent", events.Len(), before)

	r.UpdateCommentaryVisibility(false, "not_visible")
	testutil.AssertEqual(t, "suspend event", events.Last(), "commentary.suspend mo_desk")
	c, ok := r.Commentary()
	testutil.AssertEqual(t, "found", ok, true)
	testutil.AssertEqual(t, "reason", c.SuppressedReason, "not_visible")

	before = events.Len()
	r.UpdateCommentaryVisibility(false, "not_visible")
	testutil.AssertEqual(t, "repeat suspend is silent", events.Len(), before)

	r.UpdateCommentaryVisibility(true, "")
	testutil.AssertEqual(t, "resume event", events.Last(), "commentary.resume mo_desk")
	c, _ = r.Commentary()
	testutil.AssertEqual(t, "active again", c.Active, true)
	testutil.AssertEqual(t, "reason cleared", c.SuppressedReason, "")

	r.SetCommentary(Commentary{Active: false})
	testutil.AssertEqual(t, "suppressed event", events.Last(), "commentary.suppressed <none>")

	r.DisableCommentary()
	testutil.AssertEqual(t, "disable event", events.Last(), "commentary.active off (<none>)")
	r.DisableCommentary()
	testutil.AssertEqual(t, "disable again", events.Last(), "commentary.active off")
	_, ok = r.Commentary()
	testutil.AssertEqual(t, "gone", ok, false)
}

func TestRuntime_Dialog(t *testing.T) {
	r := NewRuntime(eventlog.New())

	r.SetDialog(Dialog{ActorID: "manny", ActorLabel: "Manny", Line: "/mamo001/"})
	testutil.AssertEqual(t, "message", r.IsMessageActive(), true)
	testutil.AssertEqual(t, "speaker", r.SpeakingActor(), "manny")

	d, ok := r.TakeDialog()
	testutil.AssertEqual(t, "taken", ok, true)
	testutil.AssertEqual(t, "line", d.Line, "/mamo001/")
	_, ok = r.ActiveDialog()
	testutil.AssertEqual(t, "none left", ok, false)

	r.ClearDialogFlags()
	testutil.AssertEqual(t, "message cleared", r.IsMessageActive(), false)
	testutil.AssertEqual(t, "speaker cleared", r.SpeakingActor(), "")
}

func TestRuntime_FullscreenMovie(t *testing.T) {
	tests := map[string]struct {
		yields   int
		expPolls int
	}{
		"default": {yields: 0, expPolls: defaultMovieYields},
		"short":   {yields: 2, expPolls: 2},
		"single":  {yields: 1, expPolls: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := eventlog.New()
			r := NewRuntime(events)
			r.StartFullscreenMovie("intro.snm", tt.yields)
			testutil.AssertEqual(t, "start event", events.Last(), "cut_scene.fullscreen.start intro.snm")

			polls := 1
			for r.PollFullscreenMovie() {
				polls++
			}
			testutil.AssertEqual(t, "polls", polls, tt.expPolls)
			testutil.AssertEqual(t, "end event", events.Last(), "cut_scene.fullscreen.end intro.snm")
			testutil.AssertEqual(t, "idle", r.PollFullscreenMovie(), false)
		})
	}
}
