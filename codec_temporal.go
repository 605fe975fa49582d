package cqldb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// timestampCodec converts the wire type timestamp to time.Time. The wire
// representation is exactly 8 bytes, big-endian signed milliseconds since
// the Unix epoch.
type timestampCodec struct{}

func (timestampCodec) DataType() DataType     { return PrimitiveType(TypeTimestamp) }
func (timestampCodec) TargetType() TargetType { return TargetTime }

func (timestampCodec) Accepts(value interface{}) bool {
	_, ok := value.(time.Time)
	return ok
}

func (timestampCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(time.Time)
	if !ok {
		return nil, encodeErrorf("timestamp: cannot encode %T", value)
	}
	millis := v.Unix()*1000 + int64(v.Nanosecond())/int64(time.Millisecond)
	return encLong(millis), nil
}

func (timestampCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	millis, err := decLong(TypeTimestamp, data)
	if err != nil {
		return nil, err
	}
	return millisToTime(millis), nil
}

// Format emits the single canonical form: ISO-8601 with milliseconds, in
// UTC, single-quoted.
func (timestampCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(time.Time)
	if !ok {
		return "", encodeErrorf("timestamp: cannot format %T", value)
	}
	return "'" + v.UTC().Format("2006-01-02T15:04:05.000Z07:00") + "'", nil
}

// timestampLayouts are tried in order against a literal once the null and
// bare-integer alternatives are exhausted. Fractional seconds and seconds
// are optional, the date/time separator is T or a space, and the zone may
// be Z/±hh:mm/±hhmm/±hh, a named abbreviation, or absent (local zone).
// Longer layouts come first so a literal matches its most specific form.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999Z07:00",
	"2006-01-02T15:04:05.999-0700",
	"2006-01-02T15:04:05.999-07",
	"2006-01-02T15:04:05.999 MST",
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04-0700",
	"2006-01-02T15:04-07",
	"2006-01-02T15:04 MST",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999Z07:00",
	"2006-01-02 15:04:05.999-0700",
	"2006-01-02 15:04:05.999-07",
	"2006-01-02 15:04:05.999 MST",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04-0700",
	"2006-01-02 15:04-07",
	"2006-01-02 15:04 MST",
	"2006-01-02 15:04",
	"2006-01-02Z07:00",
	"2006-01-02-0700",
	"2006-01-02-07",
	"2006-01-02 MST",
	"2006-01-02",
}

// Parse accepts, in priority order: the null literals; a bare signed
// integer, read as milliseconds since the epoch; a date with optional time
// and optional zone per timestampLayouts. Literals without a zone are
// interpreted in the local zone. Named zone abbreviations resolve against
// the local zone database first, then zoneAbbrevOffsets; an abbreviation
// neither knows is a ParseError, never a zero-offset guess.
func (timestampCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := unquoteIfQuoted(strings.TrimSpace(literal))
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return millisToTime(millis), nil
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		if strings.Contains(layout, "MST") {
			t, err = resolveNamedZone(t)
			if err != nil {
				return nil, err
			}
		}
		return t, nil
	}
	return nil, parseErrorf("cannot parse %q as timestamp", literal)
}

// zoneAbbrevOffsets maps common zone abbreviations to their UTC offsets in
// seconds. Ambiguous abbreviations (CST is China, US Central or Cuba) are
// deliberately absent and fail to parse.
var zoneAbbrevOffsets = map[string]int{
	"WET":  0,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"WEST": 1 * 3600,
	"CEST": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"MSK":  3 * 3600,
	"HKT":  8 * 3600,
	"SGT":  8 * 3600,
	"JST":  9 * 3600,
	"KST":  9 * 3600,
	"AEST": 10 * 3600,
	"AEDT": 11 * 3600,
	"NZST": 12 * 3600,
	"NZDT": 13 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CDT":  -5 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
	"AKST": -9 * 3600,
	"AKDT": -8 * 3600,
	"HST":  -10 * 3600,
}

// resolveNamedZone re-anchors a time parsed from a literal with a zone
// abbreviation. When the abbreviation is unknown to the local zone database
// the time package fabricates a zero-offset location with that name; the
// wall clock must then be reinterpreted at the abbreviation's real offset,
// and abbreviations with no known offset fail instead of standing for UTC.
func resolveNamedZone(t time.Time) (time.Time, error) {
	name, offset := t.Zone()
	if offset != 0 || name == "UTC" || name == "GMT" || name == "UT" {
		return t, nil
	}
	sec, ok := zoneAbbrevOffsets[name]
	if !ok {
		return time.Time{}, parseErrorf("unknown zone abbreviation %q in timestamp", name)
	}
	loc := time.FixedZone(name, sec)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

func millisToTime(millis int64) time.Time {
	sec := millis / 1000
	nsec := (millis - sec*1000) * int64(time.Millisecond)
	return time.Unix(sec, nsec).UTC()
}

// dateCodec converts the wire type date to civil.Date. The wire
// representation is an unsigned 32-bit day count with the epoch centered at
// 2^31 (so the epoch day 1970-01-01 encodes as 0x80000000).
type dateCodec struct{}

var epochDate = civil.Date{Year: 1970, Month: time.January, Day: 1}

func (dateCodec) DataType() DataType     { return PrimitiveType(TypeDate) }
func (dateCodec) TargetType() TargetType { return TargetDate }

func (dateCodec) Accepts(value interface{}) bool {
	_, ok := value.(civil.Date)
	return ok
}

func (dateCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(civil.Date)
	if !ok {
		return nil, encodeErrorf("date: cannot encode %T", value)
	}
	days := int64(v.DaysSince(epochDate))
	return encInt(int32(days + 1<<31)), nil
}

func (dateCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := decInt(TypeDate, data)
	if err != nil {
		return nil, err
	}
	days := int64(uint32(raw)) - 1<<31
	return epochDate.AddDays(int(days)), nil
}

func (dateCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(civil.Date)
	if !ok {
		return "", encodeErrorf("date: cannot format %T", value)
	}
	return quote(v.String()), nil
}

// Parse accepts the null literals, a bare signed integer read as days since
// the epoch, or a yyyy-mm-dd date, quoted or not.
func (dateCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := unquoteIfQuoted(strings.TrimSpace(literal))
	if days, err := strconv.ParseInt(s, 10, 32); err == nil {
		return epochDate.AddDays(int(days)), nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return nil, parseErrorf("cannot parse %q as date", literal)
	}
	return d, nil
}

// timeCodec converts the wire type time to civil.Time. The wire
// representation is exactly 8 bytes, big-endian nanoseconds since midnight,
// in [0, 24h).
type timeCodec struct{}

const nanosPerDay = 24 * 60 * 60 * 1000000000

func (timeCodec) DataType() DataType     { return PrimitiveType(TypeTime) }
func (timeCodec) TargetType() TargetType { return TargetTimeOfDay }

func (timeCodec) Accepts(value interface{}) bool {
	_, ok := value.(civil.Time)
	return ok
}

func (timeCodec) Encode(value interface{}, _ ProtocolVersion) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(civil.Time)
	if !ok {
		return nil, encodeErrorf("time: cannot encode %T", value)
	}
	nanos := int64(v.Hour)*3600000000000 + int64(v.Minute)*60000000000 +
		int64(v.Second)*1000000000 + int64(v.Nanosecond)
	if nanos < 0 || nanos >= nanosPerDay {
		return nil, encodeErrorf("time: %v out of range", v)
	}
	return encLong(nanos), nil
}

func (timeCodec) Decode(data []byte, _ ProtocolVersion) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	nanos, err := decLong(TypeTime, data)
	if err != nil {
		return nil, err
	}
	if nanos < 0 || nanos >= nanosPerDay {
		return nil, decodeErrorf("time: %d nanoseconds out of range", nanos)
	}
	return nanosToTimeOfDay(nanos), nil
}

func (timeCodec) Format(value interface{}) (string, error) {
	if value == nil {
		return nullLiteral, nil
	}
	v, ok := value.(civil.Time)
	if !ok {
		return "", encodeErrorf("time: cannot format %T", value)
	}
	return fmt.Sprintf("'%02d:%02d:%02d.%09d'", v.Hour, v.Minute, v.Second, v.Nanosecond), nil
}

// Parse accepts the null literals, a bare signed integer read as
// nanoseconds since midnight, or an HH:MM:SS[.nnnnnnnnn] time, quoted or
// not.
func (timeCodec) Parse(literal string) (interface{}, error) {
	if isNullLiteral(literal) {
		return nil, nil
	}
	s := unquoteIfQuoted(strings.TrimSpace(literal))
	if nanos, err := strconv.ParseInt(s, 10, 64); err == nil {
		if nanos < 0 || nanos >= nanosPerDay {
			return nil, parseErrorf("cannot parse %q as time: out of range", literal)
		}
		return nanosToTimeOfDay(nanos), nil
	}
	t, err := civil.ParseTime(s)
	if err != nil {
		return nil, parseErrorf("cannot parse %q as time", literal)
	}
	return t, nil
}

func nanosToTimeOfDay(nanos int64) civil.Time {
	return civil.Time{
		Hour:       int(nanos / 3600000000000),
		Minute:     int(nanos / 60000000000 % 60),
		Second:     int(nanos / 1000000000 % 60),
		Nanosecond: int(nanos % 1000000000),
	}
}
