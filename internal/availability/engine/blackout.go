package engine

import (
	"sort"

	"courtside/pkg/model"
	"courtside/pkg/timeutil"
)

// minuteRange is a rule's time range pre-parsed to minute offsets.
type minuteRange struct {
	start int
	end   int
}

// parsedRule keeps a rule's reason with its parsed ranges. wholeDay means
// the rule had no explicit time ranges and blocks every minute.
type parsedRule struct {
	reason   string
	wholeDay bool
	ranges   []minuteRange
}

// BlackoutResolver answers whether a candidate window on one day is
// blocked by any of the rules it was built from. Rules are evaluated
// newest-first, so the most recently created overlapping rule supplies the
// reported reason; whether a window is blocked at all does not depend on
// order, since any overlap blocks.
type BlackoutResolver struct {
	rules []parsedRule
}

// NewBlackoutResolver pre-parses the active rules that already matched the
// venue, section, weekday and date. Malformed time strings inside a rule
// are skipped: a broken range must never block by accident, and a rule
// reduced to zero ranges by parse failures is dropped rather than promoted
// to a whole-day block.
func NewBlackoutResolver(rules []*model.BlockedSetting) *BlackoutResolver {
	ordered := make([]*model.BlockedSetting, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	r := &BlackoutResolver{}
	for _, rule := range ordered {
		if rule.BlocksWholeDay() {
			r.rules = append(r.rules, parsedRule{reason: rule.Reason, wholeDay: true})
			continue
		}
		parsed := parsedRule{reason: rule.Reason}
		for _, tr := range rule.Timings {
			start, err := timeutil.ToMinutes(tr.StartTime)
			if err != nil {
				continue
			}
			end, err := timeutil.ToMinutes(tr.EndTime)
			if err != nil {
				continue
			}
			parsed.ranges = append(parsed.ranges, minuteRange{start: start, end: end})
		}
		if len(parsed.ranges) > 0 {
			r.rules = append(r.rules, parsed)
		}
	}
	return r
}

// Check tests a candidate window [startMin, endMin) against the rules.
// Overlap is strict half-open: a window ending exactly when a block starts,
// or starting exactly when a block ends, is not blocked.
func (r *BlackoutResolver) Check(startMin, endMin int) (bool, string) {
	for _, rule := range r.rules {
		if rule.wholeDay {
			return true, rule.reason
		}
		for _, mr := range rule.ranges {
			if startMin < mr.end && endMin > mr.start {
				return true, rule.reason
			}
		}
	}
	return false, ""
}

// CheckWindow is Check for callers holding HH:MM strings. A malformed
// candidate window is the caller's error, unlike malformed rule ranges.
func (r *BlackoutResolver) CheckWindow(startTime, endTime string) (bool, string, error) {
	start, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return false, "", err
	}
	end, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return false, "", err
	}
	blocked, reason := r.Check(start, end)
	return blocked, reason, nil
}
