package cards

import "testing"

func mustParse(t *testing.T, token string) Card {
	t.Helper()
	c, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", token, err)
	}
	return c
}

func TestValidatePlayHigherOrEqualRank(t *testing.T) {
	top := mustParse(t, "5H")
	higher := []Card{mustParse(t, "8C")}
	if err := ValidatePlay(higher, &top, false); err != nil {
		t.Errorf("higher rank should be valid: %v", err)
	}

	lower := []Card{mustParse(t, "4D")}
	if err := ValidatePlay(lower, &top, false); err == nil {
		t.Error("lower rank on an unconstrained pile should be rejected")
	}
}

func TestValidatePlayMustPlayLow(t *testing.T) {
	top := mustParse(t, "7C")

	tooHigh := []Card{mustParse(t, "9H")}
	if err := ValidatePlay(tooHigh, &top, true); err == nil {
		t.Error("9H should be rejected under must-play-low")
	}

	ok := []Card{mustParse(t, "4D")}
	if err := ValidatePlay(ok, &top, true); err != nil {
		t.Errorf("4D should be accepted under must-play-low: %v", err)
	}
}

func TestValidatePlayTwoIsAlwaysWild(t *testing.T) {
	top := mustParse(t, "KC")
	two := []Card{mustParse(t, "2D")}
	if err := ValidatePlay(two, &top, true); err != nil {
		t.Errorf("a 2 should always be playable: %v", err)
	}
}

func TestValidatePlayTenBurnsWhenUnconstrained(t *testing.T) {
	top := mustParse(t, "KC")
	ten := []Card{mustParse(t, "10S")}
	if err := ValidatePlay(ten, &top, false); err != nil {
		t.Errorf("a 10 should burn an unconstrained pile: %v", err)
	}
}

func TestValidatePlayTenRejectedUnderMustPlayLow(t *testing.T) {
	top := mustParse(t, "7C")
	ten := []Card{mustParse(t, "10S")}
	if err := ValidatePlay(ten, &top, true); err == nil {
		t.Error("a 10 should be rejected under must-play-low (10 > 7)")
	}
}

func TestValidatePlayOnTwoTopIsAlwaysValid(t *testing.T) {
	top := mustParse(t, "2H")
	anyCard := []Card{mustParse(t, "3C")}
	if err := ValidatePlay(anyCard, &top, false); err != nil {
		t.Errorf("any card should be valid over a 2: %v", err)
	}
}

func TestValidatePlayEmptyPileAcceptsAnything(t *testing.T) {
	low := []Card{mustParse(t, "3D")}
	if err := ValidatePlay(low, nil, false); err != nil {
		t.Errorf("empty pile should accept any card: %v", err)
	}
}

func TestValidatePlayRejectsMixedRanks(t *testing.T) {
	played := []Card{mustParse(t, "5H"), mustParse(t, "6H")}
	if err := ValidatePlay(played, nil, false); err != ErrMixedRanks {
		t.Errorf("expected ErrMixedRanks, got %v", err)
	}
}

func TestValidatePlaySameRankMultiple(t *testing.T) {
	played := []Card{mustParse(t, "5H"), mustParse(t, "5D")}
	if err := ValidatePlay(played, nil, false); err != nil {
		t.Errorf("same-rank multi-card play should be valid: %v", err)
	}
}
