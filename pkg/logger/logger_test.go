package logger

import "testing"

func TestInitLevels(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"DEBUG":   "debug",
		" warn ":  "warn",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): level = %q, want %q", in, got, want)
		}
	}
	// restore default for other tests
	Init("")
}

func TestEnabledRespectsThreshold(t *testing.T) {
	Init("warn")
	defer Init("")
	if enabled(LevelDebug) || enabled(LevelInfo) {
		t.Fatal("debug/info should be suppressed at warn level")
	}
	if !enabled(LevelWarn) || !enabled(LevelError) {
		t.Fatal("warn/error should be enabled at warn level")
	}
}
