package queue

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAuditLine(t *testing.T) {
	body, err := json.Marshal(BookingEvent{
		Event:      EventBookingUpdated,
		BookingID:  12,
		UserID:     3,
		RoomID:     7,
		OccurredAt: "2026-10-15T12:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteAuditLine(&buf, body); err != nil {
		t.Fatalf("WriteAuditLine: %v", err)
	}
	want := "[2026-10-15T12:00:00Z] booking.updated | booking_id=12 | user_id=3 | room_id=7\n"
	if buf.String() != want {
		t.Errorf("line = %q, want %q", buf.String(), want)
	}
}

func TestWriteAuditLineRejects(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      `{"event":`,
		"missing event": `{"booking_id":1}`,
		"zero booking":  `{"event":"booking.created"}`,
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteAuditLine(&buf, []byte(body)); !errors.Is(err, ErrMalformedEvent) {
				t.Errorf("err = %v, want ErrMalformedEvent", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %q for rejected event", buf.String())
			}
		})
	}
}

func TestHandleMessageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "booking.log")
	c := NewConsumer("amqp://unused", "", path)
	if c.Queue != DefaultQueueName {
		t.Errorf("queue = %q", c.Queue)
	}
	for _, ev := range []string{EventBookingCreated, EventBookingUpdated} {
		body, _ := json.Marshal(BookingEvent{Event: ev, BookingID: 1, UserID: 2, RoomID: 3})
		if err := c.handleMessage(body); err != nil {
			t.Fatalf("handleMessage: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], EventBookingCreated) || !strings.Contains(lines[1], EventBookingUpdated) {
		t.Errorf("log contents = %q", data)
	}
}

func TestHandleMessageWriteFailureIsRetryable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewConsumer("amqp://unused", "", filepath.Join(blocker, "booking.log"))

	body, _ := json.Marshal(BookingEvent{Event: EventBookingCreated, BookingID: 1})
	err := c.handleMessage(body)
	if err == nil {
		t.Fatal("expected error when the log directory is a file")
	}
	if errors.Is(err, ErrMalformedEvent) {
		t.Errorf("I/O failure classified as malformed: %v", err)
	}

	if err := c.handleMessage([]byte(`{}`)); !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("malformed body: err = %v", err)
	}
}
