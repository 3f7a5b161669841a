package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("SAVETHEEARTH_TEST_VALUE", "abc")
	if got := GetEnv("SAVETHEEARTH_TEST_VALUE", "x"); got != "abc" {
		t.Errorf("GetEnv = %q, want abc", got)
	}
	if got := GetEnv("SAVETHEEARTH_TEST_MISSING", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q, want x", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"on", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"off", true, false},
		{"no", true, false},
		{" 0 ", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tc := range tests {
		t.Setenv("SAVETHEEARTH_TEST_BOOL", tc.value)
		if got := GetEnvBool("SAVETHEEARTH_TEST_BOOL", tc.fallback); got != tc.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tc.value, tc.fallback, got, tc.want)
		}
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("SAVETHEEARTH_TEST_INT", "42")
	if got := GetEnvInt64("SAVETHEEARTH_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt64 = %d, want 42", got)
	}
	t.Setenv("SAVETHEEARTH_TEST_INT", "forty-two")
	if got := GetEnvInt64("SAVETHEEARTH_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt64 malformed = %d, want fallback 7", got)
	}
}

func TestGameOverPauseFrames(t *testing.T) {
	if GameOverPauseFrames != TargetFPS {
		t.Fatalf("a one second pause at %d FPS should be %d frames, got %d", TargetFPS, TargetFPS, GameOverPauseFrames)
	}
}
