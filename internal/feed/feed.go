package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
	"github.com/vedprakash-m/pathfinder-sub008/internal/event"
)

// maxRecordBytes bounds a single spool line. Records are small JSON
// objects; anything past this is a corrupt spool, not a real event.
const maxRecordBytes = 1 << 20

// Record is the wire form of one coordination event as the backend
// appends it to the spool. Priority and timestamp are optional; ToEvent
// applies the engine defaults when they are absent.
type Record struct {
	EventType string         `json:"event_type"`
	TripID    string         `json:"trip_id"`
	FamilyID  string         `json:"family_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Priority  string         `json:"priority,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// ToEvent validates the record and builds the engine event. Unknown
// priorities and missing required fields return ValidationErrors; the
// event type itself is open, so unrecognized types pass through for the
// rule registry to match.
func (r Record) ToEvent() (event.CoordinationEvent, error) {
	opts := make([]event.EventOption, 0, 5)
	if r.FamilyID != "" {
		opts = append(opts, event.WithFamily(r.FamilyID))
	}
	if r.UserID != "" {
		opts = append(opts, event.WithUser(r.UserID))
	}
	if len(r.Data) > 0 {
		opts = append(opts, event.WithData(r.Data))
	}
	if r.Priority != "" {
		p, err := event.ParsePriority(r.Priority)
		if err != nil {
			return event.CoordinationEvent{}, err
		}
		opts = append(opts, event.WithPriority(p))
	}
	if !r.Timestamp.IsZero() {
		opts = append(opts, event.WithTimestamp(r.Timestamp))
	}
	return event.New(event.Type(r.EventType), r.TripID, opts...)
}

// RecordFromEvent builds the wire form of an engine event, for tools
// that append to the spool.
func RecordFromEvent(ev event.CoordinationEvent) Record {
	return Record{
		EventType: string(ev.Type),
		TripID:    ev.TripID,
		FamilyID:  ev.FamilyID,
		UserID:    ev.UserID,
		Data:      event.CloneData(ev.Data),
		Priority:  ev.Priority.String(),
		Timestamp: ev.Timestamp,
	}
}

// decodeLine turns one non-blank spool line into an engine event.
func decodeLine(raw []byte) (event.CoordinationEvent, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return event.CoordinationEvent{}, err
	}
	return rec.ToEvent()
}

// ReadFile decodes every record in the spool at path. See Decode for
// the error contract; errors carry the path.
func ReadFile(path string) ([]event.CoordinationEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFeedError("opening spool", err).WithPath(path)
	}
	defer file.Close()
	return decode(file, path)
}

// Decode reads line-delimited JSON records from r and returns the
// decoded events in spool order. Blank lines are skipped. Malformed
// lines become positional FeedErrors joined into the returned error,
// but never abort the batch: the events slice holds every record that
// did decode.
func Decode(r io.Reader) ([]event.CoordinationEvent, error) {
	return decode(r, "")
}

func decode(r io.Reader, path string) ([]event.CoordinationEvent, error) {
	var (
		events []event.CoordinationEvent
		errs   []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		ev, err := decodeLine(raw)
		if err != nil {
			errs = append(errs, errors.NewFeedError("decoding record", err).
				WithPath(path).WithLine(line))
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, errors.NewFeedError("reading spool", err).WithPath(path))
	}

	return events, errors.Join(errs...)
}
