package runner

import "time"

// State tracks run progression. Transitions are strictly forward:
// not_started moves to running when the session comes up, and running
// ends in exactly one of completed or failed.
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Outcome summarizes one scenario run. It doubles as the manifest
// persisted to run.json when a workspace is configured.
type Outcome struct {
	RunID          string    `json:"run_id,omitempty"`
	Scenario       string    `json:"scenario"`
	TargetURL      string    `json:"target_url"`
	State          State     `json:"state"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	StepsTotal     int       `json:"steps_total"`
	StepsCompleted int       `json:"steps_completed"`
	Screenshot     string    `json:"screenshot,omitempty"`
	LogPath        string    `json:"log_path,omitempty"`
	Failure        string    `json:"failure,omitempty"`
}

func (o Outcome) fail(err error) (Outcome, error) {
	o.State = StateFailed
	o.Failure = err.Error()
	o.FinishedAt = time.Now()
	return o, err
}
