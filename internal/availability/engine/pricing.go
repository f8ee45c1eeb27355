// Package engine holds the pure availability logic: pricing resolution,
// blackout evaluation, slot generation and setting selection. It performs
// no I/O; repositories feed it records and services assemble the results.
package engine

import "courtside/pkg/model"

// HourlyRate resolves the effective hourly price for a weekday: the
// setting's per-weekday override when present, else its base price.
func HourlyRate(setting *model.SlotSetting, weekday string) float64 {
	if rate, ok := setting.DayPrices[weekday]; ok {
		return rate
	}
	return setting.PricePerHour
}

// Price computes the line total for a duration at the weekday's hourly
// rate. No rounding is applied; currency presentation is the caller's
// concern.
func Price(setting *model.SlotSetting, weekday string, durationMin int) float64 {
	return HourlyRate(setting, weekday) * float64(durationMin) / 60
}
