package repository

import (
	"encoding/base64"
	"time"
)

const (
	timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

	DefaultPageSize = 10
	MaxPageSize     = 50
)

// DecodeCursor will decode cursor from user for mysql
func DecodeCursor(encodedTime string) (time.Time, error) {
	byt, err := base64.StdEncoding.DecodeString(encodedTime)
	if err != nil {
		return time.Time{}, err
	}

	timeString := string(byt)
	t, err := time.Parse(timeFormat, timeString)

	return t, err
}

// EncodeCursor will encode cursor from mysql to user
func EncodeCursor(t time.Time) string {
	timeString := t.Format(timeFormat)

	return base64.StdEncoding.EncodeToString([]byte(timeString))
}

// PageVerify clamps num into (0, MaxPageSize]
func PageVerify(num *int64) {
	if *num <= 0 {
		*num = DefaultPageSize
	}
	if *num > MaxPageSize {
		*num = MaxPageSize
	}
}
