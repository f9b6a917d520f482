package events

// StepResultData is the wire payload of StepCompletedEvent and
// StepFailedEvent, reported by workers and consumed by the coordinator.
type StepResultData struct {
	BookingID  string `json:"booking_id"`
	Step       string `json:"step"`
	Succeeded  bool   `json:"succeeded"`
	Reference  string `json:"reference,omitempty"`
	ReasonCode string `json:"reason_code,omitempty"`
	Message    string `json:"message,omitempty"`
	Attempt    int    `json:"attempt"`
}
