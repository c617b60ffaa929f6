package vm

// RunID returns the UUID tagging the most recent (or in-progress) Run
// call, for correlating trace/log output across nested or repeated runs.
func (v *VM) RunID() string {
	return v.runID
}

// RegisterFileSize returns the size of the currently active register
// file.
func (v *VM) RegisterFileSize() int {
	return len(v.regs)
}

// FrameDepth returns the number of active call frames, including the
// implicit main frame.
func (v *VM) FrameDepth() int {
	return len(v.frames)
}
