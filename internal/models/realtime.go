package models

// ChangeEvent is broadcast over Redis whenever a tracked table changes.
// Subscribed clients use it as a refetch trigger; the payload carries the
// changed row for consumers that want to apply it incrementally.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // "INSERT" or "UPDATE"
	RowID  string `json:"row_id"`
	// ComplaintCode is set for complaint and status-update events so
	// clients tracking a single complaint can filter without a refetch.
	ComplaintCode string      `json:"complaint_code,omitempty"`
	Payload       interface{} `json:"payload,omitempty"`
}

// Subscription describes what a realtime client wants to receive.
// An empty Table matches every tracked table.
type Subscription struct {
	Table         string `json:"table"`
	ComplaintCode string `json:"complaint_code,omitempty"`
}

// Matches reports whether an event should be delivered for this subscription.
func (s Subscription) Matches(ev ChangeEvent) bool {
	if s.Table != "" && s.Table != ev.Table {
		return false
	}
	if s.ComplaintCode != "" && s.ComplaintCode != ev.ComplaintCode {
		return false
	}
	return true
}
