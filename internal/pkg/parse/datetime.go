package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Receipt datetime formats seen in the wild. Korean receipts print dates in
// many shapes ("24.12.18·18:31:21", "2025년 1월 2일 19시 11분", "2025/01/02
// 19:11"), so we normalize through ordered regexp patterns rather than
// time.Parse layouts alone.
type datetimePattern struct {
	re    *regexp.Regexp
	build func(m []string, now time.Time) string
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func century(yy string) string {
	if len(yy) == 2 {
		return "20" + yy
	}
	return yy
}

var datetimePatterns = []datetimePattern{
	// YY.MM.DD·HH:mm:ss or YY.MM.DD.HH:mm:ss
	{regexp.MustCompile(`(\d{2,4})\.(\d{1,2})\.(\d{1,2})[·.\s]+(\d{1,2}):(\d{2}):(\d{2})`),
		func(m []string, _ time.Time) string {
			return fmt.Sprintf("%s-%s-%s %s:%s:%s", century(m[1]), pad(m[2]), pad(m[3]), pad(m[4]), m[5], m[6])
		}},
	// YYYY/MM/DD HH:mm:ss
	{regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})\s+(\d{1,2}):(\d{2}):(\d{2})`),
		func(m []string, _ time.Time) string {
			return fmt.Sprintf("%s-%s-%s %s:%s:%s", m[1], pad(m[2]), pad(m[3]), pad(m[4]), m[5], m[6])
		}},
	// YY-MM-DD HH:mm or YYYY-MM-DD HH:mm
	{regexp.MustCompile(`(\d{2,4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?`),
		func(m []string, _ time.Time) string {
			sec := m[6]
			if sec == "" {
				sec = "00"
			}
			return fmt.Sprintf("%s-%s-%s %s:%s:%s", century(m[1]), pad(m[2]), pad(m[3]), pad(m[4]), m[5], sec)
		}},
	// YYYY년 M월 D일 H시 m분 (s초)
	{regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일\s*(\d{1,2})시\s*(\d{1,2})분(?:\s*(\d{1,2})초)?`),
		func(m []string, _ time.Time) string {
			sec := m[6]
			if sec == "" {
				sec = "00"
			}
			return fmt.Sprintf("%s-%s-%s %s:%s:%s", m[1], pad(m[2]), pad(m[3]), pad(m[4]), pad(m[5]), pad(sec))
		}},
	// MM/DD HH:mm, current year assumed
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})\s+(\d{1,2}):(\d{2})`),
		func(m []string, now time.Time) string {
			return fmt.Sprintf("%d-%s-%s %s:%s:00", now.Year(), pad(m[1]), pad(m[2]), pad(m[3]), m[4])
		}},
	// bare time HH:mm(:ss), today assumed
	{regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`),
		func(m []string, now time.Time) string {
			sec := m[3]
			if sec == "" {
				sec = "00"
			}
			return fmt.Sprintf("%s %s:%s:%s", now.Format("2006-01-02"), pad(m[1]), m[2], sec)
		}},
	// bare date YYYY-MM-DD / YYYY.MM.DD / YY.MM.DD, noon assumed
	{regexp.MustCompile(`^(\d{2,4})[.\-](\d{1,2})[.\-](\d{1,2})$`),
		func(m []string, _ time.Time) string {
			return fmt.Sprintf("%s-%s-%s 12:00:00", century(m[1]), pad(m[2]), pad(m[3]))
		}},
	// YYYY년 M월 D일, noon assumed
	{regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`),
		func(m []string, _ time.Time) string {
			return fmt.Sprintf("%s-%s-%s 12:00:00", m[1], pad(m[2]), pad(m[3]))
		}},
}

const normalizedLayout = "2006-01-02 15:04:05"

// DateTime normalizes a raw receipt date/time string to a time.Time. An empty
// or unparseable input falls back to now: a missing timestamp is not fatal,
// the classifier simply works with the upload time.
func DateTime(raw string, now time.Time) time.Time {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return now
	}

	for _, p := range datetimePatterns {
		m := p.re.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		candidate := p.build(m, now)
		if t, err := time.ParseInLocation(normalizedLayout, candidate, now.Location()); err == nil {
			return t
		}
	}
	return now
}
