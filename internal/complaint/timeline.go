package complaint

import (
	"time"

	"nagarrakshak/backend/internal/models"
)

// timestampLayout is the human-readable format shown on the tracking screen.
const timestampLayout = "02 Jan 2006, 03:04 PM"

// processingLabel marks a stage the complaint has passed through without a
// log entry recording when. Older complaints predate full status logging.
const processingLabel = "Processing..."

// TimelineStep is one of the four canonical stages on the tracking screen.
type TimelineStep struct {
	Status    models.ComplaintStatus `json:"status"`
	Completed bool                   `json:"completed"`
	// Timestamp is the formatted log time, "Processing..." for a completed
	// stage with no log entry, or empty for a stage not yet reached.
	Timestamp       string `json:"timestamp"`
	AssignedTo      string `json:"assigned_to,omitempty"`
	AssignedContact string `json:"assigned_contact,omitempty"`
	Note            string `json:"note,omitempty"`
}

// BuildTimeline reconstructs the four-stage progress view from the
// complaint's current status and its status-update log. A stage is completed
// when the current status has reached or passed it; details come from the
// latest log entry for that stage.
func BuildTimeline(current models.ComplaintStatus, updates []models.StatusUpdate) []TimelineStep {
	currentRank := current.Rank()

	// Latest log entry per stage. Pending entries count toward Registered.
	latest := make(map[models.ComplaintStatus]*models.StatusUpdate, len(models.StageOrder))
	for i := range updates {
		upd := &updates[i]
		stage := upd.Status
		if stage == models.StatusPending {
			stage = models.StatusRegistered
		}
		if prev, ok := latest[stage]; !ok || upd.CreatedAt.After(prev.CreatedAt) {
			latest[stage] = upd
		}
	}

	steps := make([]TimelineStep, 0, len(models.StageOrder))
	for rank, stage := range models.StageOrder {
		step := TimelineStep{Status: stage, Completed: rank <= currentRank}
		if step.Completed {
			if upd, ok := latest[stage]; ok {
				step.Timestamp = formatTimestamp(upd.CreatedAt)
				step.AssignedTo = upd.AssignedTo
				step.AssignedContact = upd.AssignedContact
				step.Note = upd.Note
			} else {
				step.Timestamp = processingLabel
			}
		}
		steps = append(steps, step)
	}
	return steps
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}
