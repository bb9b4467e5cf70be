package cutscene

type Dialog struct {
	ActorID    string `json:"actor_id"`
	ActorLabel string `json:"actor_label"`
	Line       string `json:"line"`
}

// SetDialog makes d the active line.
func (r *Runtime) SetDialog(d Dialog) {
	r.speaking = d.ActorID
	r.message = true
	r.dialog = &d
}

func (r *Runtime) ActiveDialog() (Dialog, bool) {
	if r.dialog == nil {
		return Dialog{}, false
	}
	return *r.dialog, true
}

// TakeDialog removes and returns the active line.
func (r *Runtime) TakeDialog() (Dialog, bool) {
	d, ok := r.ActiveDialog()
	r.dialog = nil
	return d, ok
}

func (r *Runtime) ClearDialogFlags() {
	r.speaking = ""
	r.message = false
}

func (r *Runtime) IsMessageActive() bool {
	return r.message
}

// SpeakingActor returns the id of the actor saying the active line, or "".
func (r *Runtime) SpeakingActor() string {
	return r.speaking
}

type Movie struct {
	Name            string `json:"name"`
	YieldsRemaining int    `json:"yields_remaining"`
}

// StartFullscreenMovie begins a movie that plays for the given number of
// polls. Non-positive counts use the default.
func (r *Runtime) StartFullscreenMovie(name string, yields int) {
	if yields <= 0 {
		yields = defaultMovieYields
	}
	r.movie = &Movie{Name: name, YieldsRemaining: yields}
	r.events.Addf("cut_scene.fullscreen.start %s", name)
}

// PollFullscreenMovie advances the movie and reports whether it is still
// playing.
func (r *Runtime) PollFullscreenMovie() bool {
	if r.movie == nil {
		return false
	}
	if r.movie.YieldsRemaining > 1 {
		r.movie.YieldsRemaining--
		return true
	}
	name := r.movie.Name
	r.movie = nil
	r.events.Addf("cut_scene.fullscreen.end %s", name)
	return false
}

func (r *Runtime) FullscreenMovie() (Movie, bool) {
	if r.movie == nil {
		return Movie{}, false
	}
	return *r.movie, true
}
