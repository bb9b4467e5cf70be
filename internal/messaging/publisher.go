package messaging

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const DefaultSubjectPrefix = "grim"

// Publisher sends raw messages. NatsServer satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the message body of every published notification.
type Envelope struct {
	Id     string    `json:"id"`
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Cue    string    `json:"cue,omitempty"`
	Params []string  `json:"params,omitempty"`
	Handle string    `json:"handle,omitempty"`
	Target string    `json:"target,omitempty"`
	Seq    int       `json:"seq,omitempty"`
	Entry  string    `json:"entry,omitempty"`
}

type subjects struct {
	music  string
	sfx    string
	events string
}

func newSubjects(prefix string) subjects {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return subjects{
		music:  prefix + ".audio.music",
		sfx:    prefix + ".audio.sfx",
		events: prefix + ".events",
	}
}

// EventSubject is the subject event log entries are published on.
func EventSubject(prefix string) string {
	return newSubjects(prefix).events
}

func publish(pub Publisher, subject string, env Envelope) {
	env.Id = uuid.New().String()
	env.Time = time.Now().UTC()

	data, err := json.Marshal(env)
	if err != nil {
		slog.Warn("encoding notification", "subject", subject, "error", err)
		return
	}
	err = pub.Publish(subject, data)
	switch {
	case errors.Is(err, ErrNotStarted):
		slog.Debug("broker not started, dropping notification", "subject", subject)
	case err != nil:
		slog.Warn("publishing notification", "subject", subject, "error", err)
	}
}

// AudioPublisher forwards music and sound effect notifications to the
// broker. Publish failures are logged and dropped.
type AudioPublisher struct {
	pub      Publisher
	subjects subjects
}

func NewAudioPublisher(pub Publisher, prefix string) *AudioPublisher {
	return &AudioPublisher{pub: pub, subjects: newSubjects(prefix)}
}

func (p *AudioPublisher) MusicPlay(cue string, params []string) {
	publish(p.pub, p.subjects.music, Envelope{Kind: "play", Cue: cue, Params: params})
}

func (p *AudioPublisher) MusicStop(mode string) {
	publish(p.pub, p.subjects.music, Envelope{Kind: "stop", Target: mode})
}

func (p *AudioPublisher) SfxPlay(cue string, params []string, handle string) {
	publish(p.pub, p.subjects.sfx, Envelope{Kind: "play", Cue: cue, Params: params, Handle: handle})
}

func (p *AudioPublisher) SfxStop(target string) {
	publish(p.pub, p.subjects.sfx, Envelope{Kind: "stop", Target: target})
}

// EventPublisher mirrors the world event log to the broker.
type EventPublisher struct {
	pub      Publisher
	subjects subjects
}

func NewEventPublisher(pub Publisher, prefix string) *EventPublisher {
	return &EventPublisher{pub: pub, subjects: newSubjects(prefix)}
}

func (p *EventPublisher) Event(seq int, entry string) {
	publish(p.pub, p.subjects.events, Envelope{Kind: "event", Seq: seq, Entry: entry})
}
