package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Layout is the date-time layout of start_time and timestamp in archive files.
const Layout = "2006-01-02 15:04:05"

// isoLayout is what ISO formatters (python isoformat, chrono) emit.
const isoLayout = "2006-01-02T15:04:05"

var (
	errNoSessions       = errors.New("no session in file")
	errMissingTimestamp = errors.New("missing field `timestamp`")
	errMissingStartTime = errors.New("missing field `start_time`")
)

// Record is one exercise session summary. Only the first session of a file
// is ever read.
type Record struct {
	Path           string
	StartTime      time.Time
	Timestamp      time.Time
	DistanceMeters float64
	TimerSeconds   float64
	AvgSpeed       float64
	AvgTemperature float64
	TotalAscent    float64
	TotalDescent   float64
}

// Message is the on-disk shape of a single array element.
type Message struct {
	Type string      `json:"type,omitempty"`
	Data MessageData `json:"data"`
}

// MessageData holds the session fields. Missing or null numbers stay zero.
type MessageData struct {
	StartTime      *DateTime `json:"start_time"`
	Timestamp      *DateTime `json:"timestamp"`
	TotalDistance  float64   `json:"total_distance"`
	TotalTimerTime float64   `json:"total_timer_time"`
	AvgSpeed       float64   `json:"avg_speed"`
	AvgTemperature float64   `json:"avg_temperature"`
	TotalAscent    float64   `json:"total_ascent"`
	TotalDescent   float64   `json:"total_descent"`
}

// DateTime is a naive wall-clock date-time, interpreted as UTC.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(Layout))
}

// ParseDateTime parses "2006-01-02 15:04:05", also accepting a T separator
// and trailing fractional seconds.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err == nil {
		return t, nil
	}
	if t, isoErr := time.Parse(isoLayout, s); isoErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q: %w", s, err)
}

// Decode reads a JSON array of session messages and returns the first one.
func Decode(r io.Reader) (Record, error) {
	var messages []Message
	if err := json.NewDecoder(r).Decode(&messages); err != nil {
		return Record{}, err
	}
	if len(messages) == 0 {
		return Record{}, errNoSessions
	}
	return messages[0].Record()
}

// Record converts the message into a Record.
func (m Message) Record() (Record, error) {
	d := m.Data
	if d.StartTime == nil {
		return Record{}, errMissingStartTime
	}
	if d.Timestamp == nil {
		return Record{}, errMissingTimestamp
	}
	return Record{
		StartTime:      d.StartTime.Time,
		Timestamp:      d.Timestamp.Time,
		DistanceMeters: d.TotalDistance,
		TimerSeconds:   d.TotalTimerTime,
		AvgSpeed:       d.AvgSpeed,
		AvgTemperature: d.AvgTemperature,
		TotalAscent:    d.TotalAscent,
		TotalDescent:   d.TotalDescent,
	}, nil
}

// NewMessage builds the on-disk message for a record.
func NewMessage(rec Record) Message {
	return Message{
		Type: "session",
		Data: MessageData{
			StartTime:      &DateTime{rec.StartTime},
			Timestamp:      &DateTime{rec.Timestamp},
			TotalDistance:  rec.DistanceMeters,
			TotalTimerTime: rec.TimerSeconds,
			AvgSpeed:       rec.AvgSpeed,
			AvgTemperature: rec.AvgTemperature,
			TotalAscent:    rec.TotalAscent,
			TotalDescent:   rec.TotalDescent,
		},
	}
}

// WriteMessages writes messages as a JSON array, the format Decode reads.
func WriteMessages(w io.Writer, messages ...Message) error {
	if messages == nil {
		messages = []Message{}
	}
	return json.NewEncoder(w).Encode(messages)
}
