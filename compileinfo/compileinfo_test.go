package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	z := &debug.BuildInfo{
		GoVersion: "go1.18",
		Path:      "github.com/carbocation/snpqc/cmd/hwefilter",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-06-01T06:39:06Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	c := fromBuildInfo(z)
	expected := CompileInfo{
		Package:    "github.com/carbocation/snpqc/cmd/hwefilter",
		Version:    "(devel)",
		GoVersion:  "go1.18",
		Commit:     "abc123",
		CommitTime: "2022-06-01T06:39:06Z",
		Modified:   true,
	}
	if c != expected {
		t.Fatalf("Got %+v, expected %+v", c, expected)
	}

	if s := c.String(); !strings.Contains(s, "abc123") || !strings.Contains(s, "modified") {
		t.Errorf("Unexpected description %q", s)
	}
}

func TestWithoutVCS(t *testing.T) {
	c := fromBuildInfo(&debug.BuildInfo{GoVersion: "go1.18", Path: "hwefilter"})
	if s := c.String(); !strings.Contains(s, "without VCS information") {
		t.Errorf("Unexpected description %q", s)
	}
}
