package process

import "testing"

// Real termination is covered by the browser integration tests; killing live
// processes from a unit test is not safe.

func TestKillProcessGroup_NonPositivePID(t *testing.T) {
	t.Parallel()

	// Must return without signaling: pid 0 would otherwise target our own group.
	KillProcessGroup(0)
	KillProcessGroup(-1)
}

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
