package upload

// EventType ...
type EventType string

const (
	// EventCypressUpload is emitted after Cypress results were imported.
	EventCypressUpload EventType = "upload:cypress"
	// EventCucumberUpload is emitted after Cucumber results were imported.
	EventCucumberUpload EventType = "upload:cucumber"
)

// Event carries an uploaded payload and the test execution issue it was imported to.
type Event struct {
	Type     EventType
	Payload  interface{}
	IssueKey string
}

// EventSink receives upload events.
type EventSink interface {
	Emit(event Event)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}
