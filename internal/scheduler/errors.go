package scheduler

import "errors"

var (
	// ErrScriptRunning is returned when a script is resumed from inside its
	// own body.
	ErrScriptRunning = errors.New("script is already running")
	// ErrStepCeiling is returned when a waited on script does not finish
	// within the step ceiling.
	ErrStepCeiling = errors.New("script exceeded step ceiling")
)
