package raw

import "testing"

func TestConf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_LEVEL", " warn ")
	t.Setenv("LOG_CALLER", "1")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_BAD", "-3")

	if got := c.Get("LEVEL", "info"); got != "warn" {
		t.Errorf("get %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Errorf("default %q", got)
	}
	if !c.GetBool("CALLER", false) || c.GetBool("LEVEL", false) {
		t.Error("bool")
	}
	if c.GetInt("SAMPLE_EVERY", 0) != 10 || c.GetInt("BAD", 5) != 5 || c.GetInt("UNSET", 2) != 2 {
		t.Error("int")
	}
}
