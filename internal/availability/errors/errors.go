package errors

import "errors"

var (
	ErrSettingNotFound = errors.New("slot setting not found")

	ErrBlockedSettingNotFound = errors.New("blocked setting not found")

	ErrInvalidID = errors.New("invalid setting ID format")
)
