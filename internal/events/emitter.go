package events

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types written during a scan.
const (
	TypeScanStart    = "scan-start"
	TypeScanResult   = "scan-result"
	TypeScanFailed   = "scan-failed"
	TypeScanFinished = "scan-finished"
	TypeReport       = "report"
)

// Event represents a single NDJSON record. Every event of one invocation
// carries the same RunID.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	RunID     string                 `json:"runId,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Data      interface{}            `json:"data,omitempty"`
}

// Emitter writes NDJSON events to an io.Writer safely across goroutines.
type Emitter struct {
	writer io.Writer
	runID  string
	mu     sync.Mutex
}

// NewEmitter returns an emitter tagged with a fresh run id.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w, runID: uuid.NewString()}
}

// RunID is the identifier stamped on every event.
func (e *Emitter) RunID() string {
	return e.runID
}

// Emit serializes the event to JSON and appends a newline.
func (e *Emitter) Emit(evt Event) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	if evt.RunID == "" {
		evt.RunID = e.runID
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	_, err = e.writer.Write(append(payload, '\n'))
	return err
}
