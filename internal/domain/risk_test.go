package domain

import "testing"

func TestParseSafetyLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    SafetyLevel
		wantErr bool
	}{
		{in: "low", want: SafetyLow},
		{in: "medium", want: SafetyMedium},
		{in: "high", want: SafetyHigh},
		{in: "", wantErr: true},
		{in: "paranoid", wantErr: true},
		{in: "LOW", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseSafetyLevel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSafetyLevel(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSafetyLevel(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSafetyLevel(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSafetyLevelOrdering(t *testing.T) {
	if !(SafetyLow.Rank() < SafetyMedium.Rank() && SafetyMedium.Rank() < SafetyHigh.Rank()) {
		t.Fatal("levels must be strictly ordered low < medium < high")
	}
	if SafetyLevel("bogus").Rank() != 0 {
		t.Fatal("unknown level must rank below low")
	}
}

func TestActivatesNesting(t *testing.T) {
	levels := []SafetyLevel{SafetyLow, SafetyMedium, SafetyHigh}
	for i, active := range levels {
		for j, min := range levels {
			want := j <= i
			if got := active.Activates(min); got != want {
				t.Errorf("level %s activates min %s = %v, want %v", active, min, got, want)
			}
		}
	}
	if SafetyHigh.Activates(SafetyLevel("bogus")) {
		t.Fatal("a rule with an unknown minimum level must never activate")
	}
}

func TestRiskVerdictSafe(t *testing.T) {
	if !(RiskVerdict{}).Safe() {
		t.Fatal("empty verdict must be safe")
	}
	if (RiskVerdict{Reasons: []string{"x"}}).Safe() {
		t.Fatal("verdict with reasons must not be safe")
	}
}
