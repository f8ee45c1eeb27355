package engine

import (
	"time"

	"courtside/pkg/model"
	"courtside/pkg/timeutil"
)

// Generation is the outcome of one slot-generation pass. BlockedReason is
// the first reason any candidate was blocked; services surface it when the
// final slot list comes back empty.
type Generation struct {
	Slots         []model.Slot
	BlockedReason string
}

// Generate enumerates the bookable windows the setting defines for one
// normalized day. Each timing band is walked in declared order from its
// start in steps of the slot duration, emitting candidates while they fit
// inside the band. Bands with unparseable bounds are skipped. Blocked
// candidates are dropped but never abort the pass. For fixed inputs the
// output list and its ordering are fully deterministic.
func Generate(setting *model.SlotSetting, date time.Time, blackout *BlackoutResolver) Generation {
	var gen Generation

	weekday := timeutil.DayOfWeek(date)
	duration := setting.SlotDurationMin
	if duration <= 0 {
		return gen
	}
	price := Price(setting, weekday, duration)

	for _, band := range setting.Timings {
		bandStart, err := timeutil.ToMinutes(band.StartTime)
		if err != nil {
			continue
		}
		bandEnd, err := timeutil.ToMinutes(band.EndTime)
		if err != nil {
			continue
		}

		for cursor := bandStart; cursor+duration <= bandEnd; cursor += duration {
			start := timeutil.FromMinutes(cursor)
			end := timeutil.FromMinutes(cursor + duration)

			if blocked, reason := blackout.Check(cursor, cursor+duration); blocked {
				if gen.BlockedReason == "" {
					gen.BlockedReason = reason
				}
				continue
			}

			gen.Slots = append(gen.Slots, model.Slot{
				SlotID:      model.SlotKey(setting.SectionID, date, start),
				SectionID:   setting.SectionID,
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				DurationMin: duration,
				Price:       price,
				SettingName: setting.Name,
				Available:   true,
			})
		}
	}

	return gen
}
