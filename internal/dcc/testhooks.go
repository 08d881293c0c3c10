package dcc

// SetStartProcessForTests overrides the process spawner during tests.
func SetStartProcessForTests(fn func(executable string, args []string) error) func() {
	previous := startProcess
	startProcess = fn
	return func() { startProcess = previous }
}
