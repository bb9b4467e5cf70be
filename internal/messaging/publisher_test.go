package messaging

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-grim/internal/audio"
	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-testutil"
)

type message struct {
	subject string
	env     Envelope
}

type recordingPublisher struct {
	messages []message
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.messages = append(p.messages, message{subject: subject, env: env})
	return p.err
}

func TestAudioPublisher(t *testing.T) {
	tests := map[string]struct {
		prefix     string
		send       func(p *AudioPublisher)
		expSubject string
		expKind    string
		expCue     string
		expHandle  string
		expTarget  string
	}{
		"music play": {
			send:       func(p *AudioPublisher) { p.MusicPlay("mo_theme", []string{"loop"}) },
			expSubject: "grim.audio.music",
			expKind:    "play",
			expCue:     "mo_theme",
		},
		"music stop": {
			prefix:     "test",
			send:       func(p *AudioPublisher) { p.MusicStop("fade") },
			expSubject: "test.audio.music",
			expKind:    "stop",
			expTarget:  "fade",
		},
		"sfx play": {
			send:       func(p *AudioPublisher) { p.SfxPlay("door.wav", nil, "sfx_0000") },
			expSubject: "grim.audio.sfx",
			expKind:    "play",
			expCue:     "door.wav",
			expHandle:  "sfx_0000",
		},
		"sfx stop all": {
			send:       func(p *AudioPublisher) { p.SfxStop("") },
			expSubject: "grim.audio.sfx",
			expKind:    "stop",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := &recordingPublisher{}
			tt.send(NewAudioPublisher(rec, tt.prefix))

			testutil.AssertEqual(t, "messages", len(rec.messages), 1)
			msg := rec.messages[0]
			testutil.AssertEqual(t, "subject", msg.subject, tt.expSubject)
			testutil.AssertEqual(t, "kind", msg.env.Kind, tt.expKind)
			testutil.AssertEqual(t, "cue", msg.env.Cue, tt.expCue)
			testutil.AssertEqual(t, "handle", msg.env.Handle, tt.expHandle)
			testutil.AssertEqual(t, "target", msg.env.Target, tt.expTarget)

			_, err := uuid.Parse(msg.env.Id)
			testutil.AssertEqual(t, "id parses", err == nil, true)
		})
	}
}

func TestAudioPublisher_AsCallback(t *testing.T) {
	rec := &recordingPublisher{}
	r := audio.NewRuntime(eventlog.New(), audio.WithCallback(NewAudioPublisher(rec, "")))

	r.PlayMusic("mo_theme", nil)
	handle := r.PlaySfx("door.wav", nil)
	r.StopSfx(handle)

	testutil.AssertEqual(t, "messages", len(rec.messages), 3)
	testutil.AssertEqual(t, "sfx handle", rec.messages[1].env.Handle, handle)
	testutil.AssertEqual(t, "stop target", rec.messages[2].env.Target, handle)
}

func TestEventPublisher(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	log := eventlog.New(NewEventPublisher(rec, "grim"))

	log.Add("set.switch mo.set")
	log.Add("actor.select manny")

	testutil.AssertEqual(t, "messages", len(rec.messages), 2)
	testutil.AssertEqual(t, "subject", rec.messages[1].subject, "grim.events")
	testutil.AssertEqual(t, "seq", rec.messages[1].env.Seq, 2)
	testutil.AssertEqual(t, "entry", rec.messages[1].env.Entry, "actor.select manny")
	testutil.AssertEqual(t, "log kept", log.Len(), 2)
}

func TestEventSubject(t *testing.T) {
	tests := map[string]struct {
		prefix string
		exp    string
	}{
		"default": {prefix: "", exp: "grim.events"},
		"custom":  {prefix: "studio", exp: "studio.events"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "subject", EventSubject(tt.prefix), tt.exp)
		})
	}
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	testutil.AssertEqual(t, "publish", errors.Is(s.Publish("grim.events", nil), ErrNotStarted), true)
	_, err = s.Subscribe("grim.events", func([]byte) {})
	testutil.AssertEqual(t, "subscribe", errors.Is(err, ErrNotStarted), true)
}
