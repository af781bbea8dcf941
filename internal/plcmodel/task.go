package plcmodel

// Task is a scheduling definition for a set of programs: an L5X <Task>
// or a PLCopen <task> within a resource.
type Task struct {
	Name        string
	Description string
	Priority    uint8
	Trigger     TaskTrigger
	WatchdogMs  *uint32
	Programs    []string
}

// PeriodicTask builds a periodic task running every periodMs.
func PeriodicTask(name string, periodMs uint32) Task {
	return Task{Name: name, Priority: 10, Trigger: TaskTrigger{Kind: TriggerPeriodic, PeriodMs: periodMs}}
}

// ContinuousTask builds a free-running continuous task.
func ContinuousTask(name string) Task {
	return Task{Name: name, Priority: 15, Trigger: TaskTrigger{Kind: TriggerContinuous}}
}

// EventTask builds a task triggered by a tag/event.
func EventTask(name, triggerTag string) Task {
	return Task{Name: name, Priority: 5, Trigger: TaskTrigger{Kind: TriggerEvent, TriggerTag: triggerTag}}
}

// TriggerKind enumerates what starts a Task's execution.
type TriggerKind int

const (
	TriggerPeriodic TriggerKind = iota
	TriggerContinuous
	TriggerEvent
	TriggerMotionGroup
)

// TaskTrigger is the sum of ways a Task can be scheduled. Only the field
// matching Kind is populated.
type TaskTrigger struct {
	Kind       TriggerKind
	PeriodMs   uint32 // TriggerPeriodic
	TriggerTag string // TriggerEvent
	GroupName  string // TriggerMotionGroup
}

// PeriodMsIfPeriodic returns the period and true if this trigger is
// periodic, or (0, false) otherwise.
func (t TaskTrigger) PeriodMsIfPeriodic() (uint32, bool) {
	if t.Kind == TriggerPeriodic {
		return t.PeriodMs, true
	}
	return 0, false
}
