// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package karakeep

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// isoLayouts are tried in order for string timestamps. Naive values are
// interpreted as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp interprets a bookmark's raw createdAt value and returns
// the time in UTC. Accepted forms: epoch seconds as a JSON number or a
// numeric string, and ISO-8601 with or without a zone designator.
// ok is false when the value is absent, null, or unparseable.
func ParseTimestamp(raw json.RawMessage) (t time.Time, ok bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return epochTime(num), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return epochTime(f), true
	}

	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// epochTime converts fractional epoch seconds to a UTC time.
func epochTime(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
}
