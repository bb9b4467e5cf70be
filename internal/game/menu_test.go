package game

import (
	"testing"

	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-testutil"
)

func TestWorldState_Menus(t *testing.T) {
	tests := map[string]struct {
		apply func(w *WorldState)
		exp   MenuState
	}{
		"created hidden": {
			apply: func(w *WorldState) { w.CreateMenu("menu_common") },
			exp:   MenuState{LastAction: "create"},
		},
		"show": {
			apply: func(w *WorldState) {
				w.CreateMenu("menu_common")
				w.ShowMenu("menu_common")
			},
			exp: MenuState{Visible: true, LastAction: "show"},
		},
		"show then hide": {
			apply: func(w *WorldState) {
				w.ShowMenu("menu_common")
				w.HideMenu("menu_common", "hide")
			},
			exp: MenuState{LastAction: "hide"},
		},
		"close keeps auto freeze": {
			apply: func(w *WorldState) {
				w.RunMenu("loading", true)
				w.HideMenu("loading", "close")
			},
			exp: MenuState{AutoFreeze: true, LastRunMode: "auto", LastAction: "close"},
		},
		"run manual": {
			apply: func(w *WorldState) { w.RunMenu("loading", false) },
			exp:   MenuState{Visible: true, LastRunMode: "manual", LastAction: "run"},
		},
		"mark leaves visibility": {
			apply: func(w *WorldState) {
				w.ShowMenu("inventory")
				w.MarkMenu("inventory", "cleanup")
			},
			exp: MenuState{Visible: true, LastAction: "cleanup"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorldState(eventlog.New())
			tt.apply(w)

			var got MenuState
			for _, m := range w.Menus() {
				got = m
			}
			testutil.AssertEqual(t, "menus", len(w.Menus()), 1)
			testutil.AssertEqual(t, "state", got, tt.exp)
		})
	}
}

func TestWorldState_SetMenuAutoFreeze(t *testing.T) {
	tests := map[string]struct {
		visible   bool
		initial   bool
		desired   bool
		expFollow bool
	}{
		"hidden menu":            {visible: false, initial: false, desired: true, expFollow: false},
		"visible menu changing":  {visible: true, initial: false, desired: true, expFollow: true},
		"visible menu unchanged": {visible: true, initial: true, desired: true, expFollow: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorldState(eventlog.New())
			w.CreateMenu("menu_prefs")
			w.SetMenuAutoFreeze("menu_prefs", tt.initial)
			if tt.visible {
				w.ShowMenu("menu_prefs")
			}

			testutil.AssertEqual(t, "follow", w.SetMenuAutoFreeze("menu_prefs", tt.desired), tt.expFollow)
			m, ok := w.Menu("menu_prefs")
			testutil.AssertEqual(t, "found", ok, true)
			testutil.AssertEqual(t, "auto freeze", m.AutoFreeze, tt.desired)
			testutil.AssertEqual(t, "last action", m.LastAction, "auto_freeze")
		})
	}
}

func TestWorldState_MenusCopy(t *testing.T) {
	w := NewWorldState(eventlog.New())
	w.ShowMenu("menu_dialog")

	menus := w.Menus()
	menus["menu_dialog"] = MenuState{}

	m, _ := w.Menu("menu_dialog")
	testutil.AssertEqual(t, "visible", m.Visible, true)
	_, ok := w.Menu("missing")
	testutil.AssertEqual(t, "missing", ok, false)
}
