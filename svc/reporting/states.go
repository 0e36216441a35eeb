package reporting

import "github.com/dmitrymomot/commercecore/pkg/statemachine"

// Export job states and the events that drive a ReportJob between them.
var (
	jobStatePending = statemachine.StringState(ReportPending)
	jobStateRunning = statemachine.StringState(ReportRunning)
	jobStateDone    = statemachine.StringState(ReportCompleted)
	jobStateFailed  = statemachine.StringState(ReportFailed)

	eventStart   = statemachine.StringEvent("start")
	eventSucceed = statemachine.StringEvent("succeed")
	eventFail    = statemachine.StringEvent("fail")
)

// buildJobMachine wires the pending -> running -> completed|failed
// transition table a fresh export job fires through.
func buildJobMachine() statemachine.StateMachine {
	return statemachine.MustNew(jobStatePending, statemachine.WithTransitions([]statemachine.TransitionDef{
		{From: jobStatePending, To: jobStateRunning, Event: eventStart},
		{From: jobStateRunning, To: jobStateDone, Event: eventSucceed},
		{From: jobStateRunning, To: jobStateFailed, Event: eventFail},
	}))
}
