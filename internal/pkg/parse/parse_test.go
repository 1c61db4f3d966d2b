package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		raw    string
		want   int64
		hasErr bool
	}{
		{"₩4,500", 4500, false},
		{"69,445원", 69445, false},
		{"12345", 12345, false},
		{"4500.00", 4500, false},
		{"abc", 0, true},
		{"", 0, true},
		{"원", 0, true},
	}

	for _, c := range cases {
		got, err := Amount(c.raw)
		if c.hasErr {
			assert.Error(t, err, "raw=%q", c.raw)
			continue
		}
		assert.NoError(t, err, "raw=%q", c.raw)
		assert.Equal(t, c.want, got, "raw=%q", c.raw)
	}
}

func TestLocation(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"스타벅스 강남점", "스타벅스"},
		{"이마트 성수지점", "이마트"},
		{"  GS25   역삼점 ", "GS25"},
		{"맥도날드", "맥도날드"},
		{"본점", "본점"},
		{"", "unknown"},
		{"   ", "unknown"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Location(c.raw, "unknown"), "raw=%q", c.raw)
	}
}

func TestDateTime(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)

	cases := []struct {
		raw  string
		want string
	}{
		{"24.12.18·18:31:21", "2024-12-18 18:31:21"},
		{"25.1.2.19:11:30", "2025-01-02 19:11:30"},
		{"2025/01/02 19:11:30", "2025-01-02 19:11:30"},
		{"25-01-02 19:11", "2025-01-02 19:11:00"},
		{"2025년 1월 2일 19시 11분 30초", "2025-01-02 19:11:30"},
		{"2025년 1월 2일 19시 11분", "2025-01-02 19:11:00"},
		{"2025-01-02", "2025-01-02 12:00:00"},
		{"2025년 7월 9일", "2025-07-09 12:00:00"},
		{"19:11:30", "2025-01-15 19:11:30"},
	}

	for _, c := range cases {
		got := DateTime(c.raw, now)
		assert.Equal(t, c.want, got.Format("2006-01-02 15:04:05"), "raw=%q", c.raw)
	}
}

func TestDateTimeFallsBackToNow(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)

	assert.Equal(t, now, DateTime("", now))
	assert.Equal(t, now, DateTime("not a date", now))
}
