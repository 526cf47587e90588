// Package progress defines the stage/step reporting contract consumed by
// the QIF writer. Reporting is purely observational: the writer calls the
// reporter synchronously between items and never blocks on it.
//
// Reporters are passed through context so that instrumentation does not
// change function signatures. When no reporter is present a no-op
// implementation is returned.
package progress

import "context"

// Reporter receives stage and step notifications during a write.
type Reporter interface {
	// SetNumStages announces the total number of stages to come.
	SetNumStages(n int)

	// NewStage announces the start of a named stage.
	NewStage(name string)

	// SetNumSteps announces the number of steps in the current stage.
	SetNumSteps(n int)

	// NextStep reports completion of one step of the current stage.
	NextStep()
}

type contextKey struct{}

var reporterKey = contextKey{}

// WithReporter attaches a reporter to the context.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterKey, r)
}

// FromContext extracts the reporter from the context, or a no-op reporter
// when none is attached.
func FromContext(ctx context.Context) Reporter {
	if r, ok := ctx.Value(reporterKey).(Reporter); ok {
		return r
	}
	return noOpReporter{}
}

type noOpReporter struct{}

func (noOpReporter) SetNumStages(int) {}
func (noOpReporter) NewStage(string)  {}
func (noOpReporter) SetNumSteps(int)  {}
func (noOpReporter) NextStep()        {}

// Counter is a Reporter that tallies notifications. It is used by tests
// and by the CLI to summarize a write.
type Counter struct {
	Stages     []string
	TotalSteps int
	Done       int
}

// SetNumStages implements Reporter.
func (c *Counter) SetNumStages(n int) {}

// NewStage implements Reporter.
func (c *Counter) NewStage(name string) {
	c.Stages = append(c.Stages, name)
}

// SetNumSteps implements Reporter.
func (c *Counter) SetNumSteps(n int) {
	c.TotalSteps += n
}

// NextStep implements Reporter.
func (c *Counter) NextStep() {
	c.Done++
}
