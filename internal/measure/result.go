package measure

import "time"

type Outcome string

const (
	Success       Outcome = "Success"
	Fail          Outcome = "Fail"
	NotApplicable Outcome = "NA"
)

// Result is what a measure run reports back: the terminal outcome plus every
// message registered along the way.
type Result struct {
	Measure          string        `json:"measure"`
	Outcome          Outcome       `json:"outcome"`
	InitialCondition string        `json:"initial_condition,omitempty"`
	FinalCondition   string        `json:"final_condition,omitempty"`
	Infos            []string      `json:"info,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
	Errors           []string      `json:"errors,omitempty"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration_ns"`
}

// Failed reports whether the run ended in Fail.
func (r Result) Failed() bool { return r.Outcome == Fail }
