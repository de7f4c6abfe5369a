package measure

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Runner collects what a measure reports during one run and logs each
// message as it arrives.
type Runner struct {
	log    *logrus.Entry
	result Result
}

func NewRunner(measureName string) *Runner {
	return &Runner{
		log: logrus.WithField("measure", measureName),
		result: Result{
			Measure:   measureName,
			Outcome:   Success,
			StartedAt: time.Now(),
		},
	}
}

func (r *Runner) RegisterInfo(msg string) {
	r.log.Info(msg)
	r.result.Infos = append(r.result.Infos, msg)
}

func (r *Runner) RegisterWarning(msg string) {
	r.log.Warn(msg)
	r.result.Warnings = append(r.result.Warnings, msg)
}

// RegisterError records msg and marks the run as failed.
func (r *Runner) RegisterError(msg string) {
	r.log.Error(msg)
	r.result.Errors = append(r.result.Errors, msg)
	r.result.Outcome = Fail
}

func (r *Runner) RegisterInitialCondition(msg string) {
	r.log.WithField("condition", "initial").Info(msg)
	r.result.InitialCondition = msg
}

func (r *Runner) RegisterFinalCondition(msg string) {
	r.log.WithField("condition", "final").Info(msg)
	r.result.FinalCondition = msg
}

// RegisterAsNotApplicable ends the run as NotApplicable. msg is kept as the
// final condition.
func (r *Runner) RegisterAsNotApplicable(msg string) {
	r.log.WithField("outcome", NotApplicable).Info(msg)
	r.result.Outcome = NotApplicable
	r.result.FinalCondition = msg
}

// ValidateUserArguments validates user against defs and registers every
// problem as an error. ok is false when the run must stop.
func (r *Runner) ValidateUserArguments(defs ArgumentVector, user UserArguments) (vals Values, ok bool) {
	vals, err := ValidateUserArguments(defs, user)
	if err != nil {
		for _, e := range unjoin(err) {
			r.RegisterError(e.Error())
		}
		return Values{}, false
	}
	return vals, true
}

// Result returns the collected result with the elapsed time filled in.
func (r *Runner) Result() Result {
	res := r.result
	res.Duration = time.Since(res.StartedAt)
	return res
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
