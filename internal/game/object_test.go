package game

import (
	"fmt"
	"math"
	"testing"

	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-grim/internal/geometry"
	"github.com/pixil98/go-testutil"
)

func vecPtr(x, y, z float64) *Vec3 {
	return &Vec3{X: x, Y: y, Z: z}
}

func atHeading(deg, dist float64) *Vec3 {
	rad := deg * math.Pi / 180
	return vecPtr(math.Cos(rad)*dist, math.Sin(rad)*dist, 0)
}

func TestWorldState_Hotlist(t *testing.T) {
	w := NewWorldState(eventlog.New())
	w.SwitchToSet("hl.set")
	w.SelectActor("Manny")
	w.SetActorPosition("Manny", Vec3{})

	w.RegisterObject(Object{Handle: 1, Name: "desk", Position: atHeading(10, 5), Range: 20, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 2, Name: "phone", DisplayName: "telephone", Position: atHeading(15, 5), Range: 20, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 3, Name: "window", Position: atHeading(25, 30), Range: 20, Touchable: true, Visible: true})

	handles := w.VisibleObjectHandles()
	testutil.AssertEqual(t, "visible", fmt.Sprint(handles), "[1 2 3]")

	w.RecordVisibleObjects(handles)
	testutil.AssertEqual(t, "hotlist", fmt.Sprint(w.Hotlist()), "[1 2]")
	testutil.AssertEqual(t, "hotlist event", w.Events().Last(), "scene.hotlist desk, telephone")

	visible := w.VisibleObjects()
	testutil.AssertEqual(t, "visible count", len(visible), 3)
	testutil.AssertEqual(t, "window in hotlist", visible[2].InHotlist, false)
	if visible[2].WithinRange == nil || visible[0].WithinRange == nil {
		t.Fatal("expected range to be measured")
	}
	testutil.AssertEqual(t, "window within range", *visible[2].WithinRange, false)
	testutil.AssertEqual(t, "desk within range", *visible[0].WithinRange, true)

	h, ok := w.CommentaryCandidate()
	testutil.AssertEqual(t, "candidate found", ok, true)
	testutil.AssertEqual(t, "candidate", h, 1)
}

func TestWorldState_RecordVisibleObjectsEmpty(t *testing.T) {
	tests := map[string]struct {
		handles  []int
		expEvent string
	}{
		"no handles":      {handles: nil, expEvent: "scene.visible <none>"},
		"unknown handles": {handles: []int{77}, expEvent: "scene.visible <unknown>"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			obs := &recordingObserver{}
			w := NewWorldState(eventlog.New())
			w.SetObserver(obs)

			w.RecordVisibleObjects(tt.handles)
			testutil.AssertEqual(t, "event", w.Events().Last(), tt.expEvent)
			testutil.AssertEqual(t, "hotlist", len(w.Hotlist()), 0)
			testutil.AssertEqual(t, "notified", obs.visibility, 1)
		})
	}
}

func TestWorldState_VisibleObjectsRespectSectorActivation(t *testing.T) {
	w, _ := officeWorld(t)
	w.SwitchToSet("mo.set")

	w.RegisterObject(Object{Handle: 1, Name: "desk", Position: vecPtr(1, 1, 0), Range: 1, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 2, Name: "coat", Position: vecPtr(5, 1, 0), Range: 1, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 3, Name: "outside", Position: vecPtr(9, 9, 0), Range: 1, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 4, Name: "other set", SetFile: "hh.set", Position: vecPtr(1, 1, 0), Range: 1, Touchable: true, Visible: true})
	w.RegisterObject(Object{Handle: 5, Name: "untouchable", Position: vecPtr(1, 1, 0), Range: 1, Visible: true})

	coat, _ := w.Object(2)
	testutil.AssertEqual(t, "coat sector count", len(coat.Sectors), 2)
	testutil.AssertEqual(t, "coat walk sector", coat.Sectors[0], ObjectSector{Name: "mo_closet", Kind: geometry.KindWalk})
	testutil.AssertEqual(t, "coat camera sector", coat.Sectors[1], ObjectSector{Name: "mo_desk_cam", Kind: geometry.KindCamera})

	testutil.AssertEqual(t, "closet inactive", fmt.Sprint(w.VisibleObjectHandles()), "[1 3]")

	w.SetSectorActive("mo.set", "mo_closet", true)
	testutil.AssertEqual(t, "closet active", fmt.Sprint(w.VisibleObjectHandles()), "[1 2 3]")

	testutil.AssertEqual(t, "anchored coat", w.CommentaryObjectVisible(2, true), true)
	testutil.AssertEqual(t, "anchored other set", w.CommentaryObjectVisible(4, true), false)
	testutil.AssertEqual(t, "anchored missing", w.CommentaryObjectVisible(99, true), false)
}

func TestWorldState_ActorVisibilityControlsObjects(t *testing.T) {
	w := NewWorldState(eventlog.New())
	w.SwitchToSet("hh.set")
	_, h := w.RegisterActor("Glottis", 0)
	w.SetActorPosition("Glottis", Vec3{X: 1, Y: 1})

	w.RegisterObject(Object{Handle: 8, Name: "glottis", InterestActor: h, Range: 1, Touchable: true, Visible: true})
	testutil.AssertEqual(t, "link event", hasEvent(w, "object.link actor#1100 -> glottis"), true)
	testutil.AssertEqual(t, "shown", fmt.Sprint(w.VisibleObjectHandles()), "[8]")

	w.SetActorVisibility("Glottis", false)
	o, _ := w.Object(8)
	testutil.AssertEqual(t, "object hidden", o.Visible, false)
	testutil.AssertEqual(t, "hidden event", w.Events().Last(), "object.visible #8 hidden")
	testutil.AssertEqual(t, "not shown", len(w.VisibleObjectHandles()), 0)

	w.SetActorVisibility("Glottis", true)
	testutil.AssertEqual(t, "shown again", fmt.Sprint(w.VisibleObjectHandles()), "[8]")
}

func TestWorldState_LinkedObjectFollowsActor(t *testing.T) {
	w, _ := officeWorld(t)
	w.SwitchToSet("mo.set")
	_, h := w.RegisterActor("Glottis", 0)

	w.RegisterObject(Object{Handle: 8, Name: "glottis", InterestActor: h, Position: vecPtr(1, 1, 0), Touchable: true, Visible: true})
	w.SetActorPosition("Glottis", Vec3{X: 5, Y: 1})

	o, _ := w.Object(8)
	testutil.AssertEqual(t, "object position", *o.Position, Vec3{X: 5, Y: 1})
	testutil.AssertEqual(t, "object sector", o.Sectors[0].Name, "mo_closet")
	testutil.AssertEqual(t, "event", w.Events().Last(), "object.actor#1101.pos glottis 5.000,1.000,0.000")

	pos, ok := w.ActorPosition(h)
	testutil.AssertEqual(t, "actor position found", ok, true)
	testutil.AssertEqual(t, "actor position", pos, Vec3{X: 5, Y: 1})
}

func TestWorldState_ObjectLifecycle(t *testing.T) {
	w := NewWorldState(eventlog.New())
	w.SwitchToSet("hh.set")

	testutil.AssertEqual(t, "new", w.RegisterObject(Object{Handle: 3, Name: "bone"}), false)
	testutil.AssertEqual(t, "register event", w.Events().Last(), "object.register bone (#3) @ hh.set")
	testutil.AssertEqual(t, "existing", w.RegisterObject(Object{Handle: 3, Name: "bone"}), true)
	testutil.AssertEqual(t, "update event", w.Events().Last(), "object.update bone (#3) @ hh.set")

	o, ok := w.ObjectByName("bone")
	testutil.AssertEqual(t, "by name", ok, true)
	testutil.AssertEqual(t, "by name handle", o.Handle, 3)

	w.SetObjectTouchable(3, true)
	testutil.AssertEqual(t, "touchable event", w.Events().Last(), "object.touchable #3 touchable")

	testutil.AssertEqual(t, "removed", w.UnregisterObject(3), true)
	testutil.AssertEqual(t, "removed again", w.UnregisterObject(3), false)
	testutil.AssertEqual(t, "objects", len(w.Objects()), 0)
}
