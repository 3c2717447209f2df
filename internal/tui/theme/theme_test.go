package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
}

func TestSignColor(t *testing.T) {
	th := FlexokiDark
	if th.SignColor(10) != th.Revenue || th.SignColor(-1) != th.Cost {
		t.Error("SignColor picked the wrong role")
	}
	if len(Names()) != len(All) {
		t.Errorf("Names() has %d entries, want %d", len(Names()), len(All))
	}
}
