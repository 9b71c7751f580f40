package config

import (
	"slices"
	"testing"
	"time"
)

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.Key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key = %q", got)
	}
}

func TestMay(t *testing.T) {
	c := New().Prefix("JMCFG_")
	t.Setenv("JMCFG_S", "  hi ")
	t.Setenv("JMCFG_I", "7")
	t.Setenv("JMCFG_BADI", "seven")
	t.Setenv("JMCFG_F", "0.25")
	t.Setenv("JMCFG_B", "true")
	t.Setenv("JMCFG_D", "250ms")
	t.Setenv("JMCFG_BLANK", "   ")

	if got := c.MayString("S", "x"); got != "hi" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("BLANK", "x"); got != "x" {
		t.Fatalf("blank MayString = %q", got)
	}
	if got := c.MayInt("I", 1); got != 7 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADI", 1); got != 1 {
		t.Fatalf("bad MayInt = %d", got)
	}
	if got := c.MayFloat64("F", 1); got != 0.25 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayBool("B", false); !got {
		t.Fatalf("MayBool = false")
	}
	if got := c.MayDuration("D", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("MISSING", time.Second); got != time.Second {
		t.Fatalf("missing MayDuration = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("JMCFG_")
	tests := []struct {
		val  string
		want []string
	}{
		{"a, b,,c ", []string{"a", "b", "c"}},
		{" , ,", []string{"def"}},
		{"", []string{"def"}},
	}
	for _, tc := range tests {
		t.Setenv("JMCFG_LIST", tc.val)
		if got := c.MayCSV("LIST", []string{"def"}); !slices.Equal(got, tc.want) {
			t.Fatalf("MayCSV(%q) = %v, want %v", tc.val, got, tc.want)
		}
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("JMCFG_")
	t.Setenv("JMCFG_NEED", "v")
	if got := c.MustString("NEED"); got != "v" {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing key")
		}
	}()
	c.MustString("ABSENT")
}
