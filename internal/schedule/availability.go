package schedule

import (
	"fmt"
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/errors"
)

// ParseAvailability decodes the availability payload shape carried on
// coordination events into advisor input. The expected shape is a list of
//
//	- family_id: fam-a
//	  available:
//	    - {start: 2026-07-10T00:00:00Z, end: 2026-07-15T00:00:00Z}
//	  preferred: {start: 2026-07-12T00:00:00Z, end: 2026-07-13T00:00:00Z}
//
// with RFC 3339 timestamps. Native time.Time values are accepted too, so
// in-process callers need not round-trip through strings.
func ParseAvailability(raw any) ([]FamilyAvailability, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.NewValidationError("availability must be a list").WithField("availability")
	}

	fams := make([]FamilyAvailability, 0, len(items))
	for i, item := range items {
		fam, err := parseFamily(item)
		if err != nil {
			return nil, errors.Wrapf(err, "availability[%d]", i)
		}
		fams = append(fams, fam)
	}
	return fams, nil
}

func parseFamily(raw any) (FamilyAvailability, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return FamilyAvailability{}, errors.NewValidationError("availability entry must be a map")
	}

	fam := FamilyAvailability{}
	fam.FamilyID, _ = m["family_id"].(string)
	if fam.FamilyID == "" {
		return FamilyAvailability{}, errors.NewValidationError("availability entry missing family_id").
			WithField("family_id")
	}

	if rawWindows, ok := m["available"]; ok && rawWindows != nil {
		windows, ok := rawWindows.([]any)
		if !ok {
			return FamilyAvailability{}, errors.NewValidationError("available must be a list of windows").
				WithField("available")
		}
		for j, w := range windows {
			win, err := parseWindow(w)
			if err != nil {
				return FamilyAvailability{}, errors.Wrapf(err, "available[%d]", j)
			}
			fam.Available = append(fam.Available, win)
		}
	}

	if rawPref, ok := m["preferred"]; ok && rawPref != nil {
		win, err := parseWindow(rawPref)
		if err != nil {
			return FamilyAvailability{}, errors.Wrap(err, "preferred")
		}
		fam.Preferred = &win
	}
	return fam, nil
}

func parseWindow(raw any) (Window, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Window{}, errors.NewValidationError("window must be a map with start and end")
	}
	start, err := parseTime(m["start"])
	if err != nil {
		return Window{}, errors.Wrap(err, "start")
	}
	end, err := parseTime(m["end"])
	if err != nil {
		return Window{}, errors.Wrap(err, "end")
	}
	return Window{Start: start, End: end}, nil
}

func parseTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, errors.NewValidationError("timestamp must be RFC 3339").
				WithValue(v).WithCause(err)
		}
		return t, nil
	case nil:
		return time.Time{}, errors.NewValidationError("timestamp is required")
	}
	return time.Time{}, errors.NewValidationError(fmt.Sprintf("timestamp must be a string, got %T", raw))
}
