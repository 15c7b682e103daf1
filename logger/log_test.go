package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	l := New("foons", "basearg", 1)
	c := DefaultConfig()
	c.Formatter = "json"
	c.JSONFormat.DisableTimestamp = true
	l.Configure(c)

	var b bytes.Buffer
	l.SetOutput(&b)
	return l, &b
}

func TestLog(t *testing.T) {
	l, b := newTestLogger()
	l.Info("test")

	expect := `{"basearg":1,"level":"info","msg":"test","ns":"foons"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestContextLog(t *testing.T) {
	l, b := newTestLogger()

	ctx := context.WithValue(context.Background(), RunIDKey, "run-1")
	l.Info("test", ctx)

	expect := `{"basearg":1,"level":"info","msg":"test","ns":"foons","runID":"run-1"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestErrorFieldLog(t *testing.T) {
	l, b := newTestLogger()

	err := errors.New("fooerr")
	l.Info("test", err)

	expect := `{"basearg":1,"error":"fooerr","level":"info","msg":"test","ns":"foons"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	l, b := newTestLogger()
	l.Debug("hidden")
	if b.Len() != 0 {
		t.Fatal("debug message logged at info level:", b.String())
	}

	l.SetLevel("debug")
	l.Debug("shown", "key", "value")
	expect := `{"basearg":1,"key":"value","level":"debug","msg":"shown","ns":"foons"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestSubLogger(t *testing.T) {
	l, b := newTestLogger()
	sub := l.NewSubLogger("child", "policy", "rr")
	sub.Info("test")

	expect := `{"basearg":1,"level":"info","msg":"test","ns":"child","policy":"rr"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Info("does not panic")
	l.WithFields("a", 1).Error("still fine")
}
