package sim

import (
	"testing"

	"github.com/keepaway-sim/keepaway/sim/internal/testutil"
)

func loadGolden(t *testing.T) []testutil.GoldenTestCase {
	t.Helper()
	return testutil.LoadGoldenDataset(t).Tests
}
