package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
)

func TestCheckLogging(t *testing.T) {
	path := writeHouse(t, starterHouse)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	if err := c.runCheck(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "generated plan") {
		t.Errorf("info output should summarize the plan:\n%s", out)
	}
	if strings.Contains(out, "carved room") {
		t.Errorf("carving details should need --verbose:\n%s", out)
	}

	buf.Reset()
	c.SetLogLevel(LogDebug)
	if err := c.runCheck(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	for _, want := range []string{"carved room", "room=Kitchen", "room=Living"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Wrote plan")

	line := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} INFO Wrote plan \(\S+\)`)
	if !line.MatchString(buf.String()) {
		t.Errorf("progress line = %q", buf.String())
	}
}
