package game

// MenuState is what the world knows about a script-driven menu. Menus draw
// nothing; scripts only open, close and freeze them.
type MenuState struct {
	Visible     bool   `json:"visible"`
	AutoFreeze  bool   `json:"auto_freeze"`
	LastRunMode string `json:"last_run_mode,omitempty"`
	LastAction  string `json:"last_action,omitempty"`
}

func (w *WorldState) menu(name string) *MenuState {
	m, ok := w.menus[name]
	if !ok {
		m = &MenuState{}
		w.menus[name] = m
	}
	return m
}

// CreateMenu registers the named menu, or resets an existing one, as hidden
// without auto freeze.
func (w *WorldState) CreateMenu(name string) {
	m := w.menu(name)
	m.Visible = false
	m.AutoFreeze = false
	m.LastAction = "create"
}

// ShowMenu makes the menu visible and reports whether it auto freezes.
func (w *WorldState) ShowMenu(name string) bool {
	m := w.menu(name)
	m.Visible = true
	m.LastAction = "show"
	return m.AutoFreeze
}

// HideMenu hides the menu, recording action as the cause, and reports
// whether it auto freezes.
func (w *WorldState) HideMenu(name, action string) bool {
	m := w.menu(name)
	m.Visible = false
	m.LastAction = action
	return m.AutoFreeze
}

// MarkMenu records an action that leaves visibility alone.
func (w *WorldState) MarkMenu(name, action string) {
	w.menu(name).LastAction = action
}

// SetMenuAutoFreeze changes the auto freeze flag. It reports whether the
// game pause should follow the new value, which is when a visible menu
// changed its flag.
func (w *WorldState) SetMenuAutoFreeze(name string, on bool) bool {
	m := w.menu(name)
	follow := m.Visible && m.AutoFreeze != on
	m.AutoFreeze = on
	m.LastAction = "auto_freeze"
	return follow
}

// RunMenu opens the menu in auto or manual mode.
func (w *WorldState) RunMenu(name string, autoFreeze bool) {
	m := w.menu(name)
	m.AutoFreeze = autoFreeze
	m.LastRunMode = "manual"
	if autoFreeze {
		m.LastRunMode = "auto"
	}
	m.Visible = true
	m.LastAction = "run"
}

func (w *WorldState) Menu(name string) (MenuState, bool) {
	m, ok := w.menus[name]
	if !ok {
		return MenuState{}, false
	}
	return *m, true
}

// Menus returns a copy of every registered menu keyed by name.
func (w *WorldState) Menus() map[string]MenuState {
	out := make(map[string]MenuState, len(w.menus))
	for name, m := range w.menus {
		out[name] = *m
	}
	return out
}
