package review_integration_tests

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/chainchaser/integration_tests/testutils"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	os.Exit(testutils.RunMain(m, &testEnv))
}
