package messageformat

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// dateLayouts are Go time layouts for a locale.
type dateLayouts struct {
	date string
	time string
}

var (
	isoLayouts = dateLayouts{date: "2006-01-02", time: "15:04"}

	// Keyed by "base-REGION" or "base". Region specific entries win.
	localeLayouts = map[string]dateLayouts{
		"en":    {date: "01/02/2006", time: "3:04 PM"},
		"en-GB": {date: "02/01/2006", time: "15:04"},
		"en-AU": {date: "02/01/2006", time: "3:04 PM"},
		"de":    {date: "02.01.2006", time: "15:04"},
		"fr":    {date: "02/01/2006", time: "15:04"},
		"es":    {date: "02/01/2006", time: "15:04"},
		"it":    {date: "02/01/2006", time: "15:04"},
		"pt":    {date: "02/01/2006", time: "15:04"},
		"nl":    {date: "02-01-2006", time: "15:04"},
		"ja":    {date: "2006/01/02", time: "15:04"},
		"zh":    {date: "2006-01-02", time: "15:04"},
		"ko":    {date: "2006.01.02", time: "15:04"},
		"pl":    {date: "02.01.2006", time: "15:04"},
		"ru":    {date: "02.01.2006", time: "15:04"},
		"uk":    {date: "02.01.2006", time: "15:04"},
		"ar":    {date: "02/01/2006", time: "3:04 PM"},
	}
)

func layoutsFor(tag language.Tag) dateLayouts {
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		if l, ok := localeLayouts[base.String()+"-"+region.String()]; ok {
			return l
		}
	}
	if l, ok := localeLayouts[base.String()]; ok {
		return l
	}
	return isoLayouts
}

// dateLayout returns the numeric date layout; short uses a two digit year.
func (l *locale) dateLayout(style dateStyle) string {
	if style == styleShort {
		return strings.Replace(l.layouts.date, "2006", "06", 1)
	}
	return l.layouts.date
}

// timeLayout returns the time layout; every style but short shows seconds.
func (l *locale) timeLayout(style dateStyle) string {
	if style == styleShort {
		return l.layouts.time
	}
	return strings.Replace(l.layouts.time, "04", "04:05", 1)
}

// toTime accepts time values and epoch milliseconds. Numeric values are
// interpreted in UTC.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case json.Number:
		ms, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(ms), true
	}
	ms, ok := toFloat(v)
	if !ok || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return fromMillis(ms), true
}

func fromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
