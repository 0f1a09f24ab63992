package wire

// compactKeys is the single source of truth for the compact-code
// substitution table described in spec.md §4.1 and §9: a short token
// stands in for a common field key during serialization, and the inverse
// substitution applies on parse. The reverse view is derived once at
// package init rather than hand-maintained, per the design notes.
//
// This deployment commits to compact-always keys and verbose-always values
// (spec.md §9's "single source-of-truth table" note) — numeric-looking
// values are never substituted in either direction.
var compactKeys = map[string]string{
	"name":                  "n",
	"cards":                 "c",
	"error":                 "e",
	"room_full":             "rf",
	"player_count":          "pc",
	"hand":                  "h",
	"reserves":              "r",
	"top_card":              "tc",
	"current_player":        "cp",
	"your_turn":             "yt",
	"must_play_low":         "ml",
	"deck_size":             "ds",
	"discard_pile_size":     "dp",
	"opponent_name":         "on",
	"opponent_hand_size":    "oh",
	"opponent_reserve_size": "os",
	"reason":                "rs",
	"winner":                "w",
	"status":                "st",
	"disconnect":            "dc",
	"members":               "m",
}

var expandKeys = reverseOf(compactKeys)

func reverseOf(m map[string]string) map[string]string {
	r := make(map[string]string, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

func compactKey(key string) string {
	if c, ok := compactKeys[key]; ok {
		return c
	}
	return key
}

func expandKey(code string) string {
	if k, ok := expandKeys[code]; ok {
		return k
	}
	return code
}
