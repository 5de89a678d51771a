package integration

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	code := m.Run()
	postgres.terminate()
	os.Exit(code)
}
