package version

import (
	"testing"
)

func TestInfoString(t *testing.T) {
	i := Info{GitCommit: "abc123", BuildDate: "2024-01-01", Version: "1.2.0"}
	expected := "git commit: abc123\nbuild date: 2024-01-01\nversion: 1.2.0"
	if s := i.String(); s != expected {
		t.Errorf("unexpected version string:\n%s", s)
	}
}

func TestGet(t *testing.T) {
	if Get().Version != Version {
		t.Error("unexpected version")
	}
	if len(Get().LogFields()) != 8 {
		t.Error("unexpected log fields")
	}
}
