package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if ByName("tokyo-night").Name != "tokyo-night" {
		t.Error("known theme not found")
	}
	if ByName("nope").Name != FlexokiDark.Name {
		t.Error("unknown theme should fall back to flexoki-dark")
	}
}

func TestNextWraps(t *testing.T) {
	names := Names()
	last := names[len(names)-1]
	if Next(last).Name != names[0] {
		t.Errorf("Next(%q) should wrap to %q", last, names[0])
	}
	if Next(names[0]).Name != names[1] {
		t.Errorf("Next(%q) = %q", names[0], Next(names[0]).Name)
	}
}

func TestSigned(t *testing.T) {
	th := FlexokiDark
	if th.Signed(1) != th.Gain || th.Signed(-1) != th.Loss || th.Signed(0) != th.TextPrimary {
		t.Error("unexpected signed colors")
	}
	if th.Gain == th.Loss {
		t.Error("gains and losses share a color")
	}
}

func TestBuildFillsEveryRole(t *testing.T) {
	for _, th := range All {
		roles := map[string]string{
			"Background": string(th.Background), "Surface": string(th.Surface),
			"TextPrimary": string(th.TextPrimary), "Accent": string(th.Accent),
			"AccentDim": string(th.AccentDim), "Cyan": string(th.Cyan),
			"Gain": string(th.Gain), "Loss": string(th.Loss),
		}
		for role, c := range roles {
			if c == "" {
				t.Errorf("%s: %s is empty", th.Name, role)
			}
		}
		if th.BorderAccent != th.Accent {
			t.Errorf("%s: border accent %s differs from accent %s", th.Name, th.BorderAccent, th.Accent)
		}
	}
}

func TestGroupColors(t *testing.T) {
	keys := []string{"incomeStreams", "recurringExpenses", "oneTimeExpenses", "oneTimeIncomes", "debts", "investments", "assets"}
	for _, th := range All {
		seen := make(map[string]string)
		for _, k := range keys {
			c := string(th.Group(k))
			if c == "" {
				t.Errorf("%s: no color for %s", th.Name, k)
			}
			if other, dup := seen[c]; dup {
				t.Errorf("%s: %s and %s share color %s", th.Name, k, other, c)
			}
			seen[c] = k
		}
		if th.Group("pensions") != th.Accent {
			t.Errorf("%s: unknown group should use the accent", th.Name)
		}
	}
}
