package process

// Notes:
// - Real termination is exercised by the chrome engine integration test; here
//   we only check that bogus PIDs are tolerated.

import "testing"

func TestKillProcessGroup_IgnoresBogusPIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, 999999999} {
		KillProcessGroup(pid)
	}
}
