package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2024, 10, 17, 9, 30, 0, 0, time.UTC))
	want := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSplitHostPort(t *testing.T) {
	host, port := SplitHostPort("redis:6380", 6379)
	if host != "redis" || port != 6380 {
		t.Fatalf("unexpected %s:%d", host, port)
	}
	host, port = SplitHostPort("redis", 6379)
	if host != "redis" || port != 6379 {
		t.Fatalf("unexpected %s:%d", host, port)
	}
	host, port = SplitHostPort("", 6379)
	if host != "localhost" || port != 6379 {
		t.Fatalf("unexpected %s:%d", host, port)
	}
	host, port = SplitHostPort("redis:bad", 6379)
	if host != "redis" || port != 6379 {
		t.Fatalf("unexpected %s:%d", host, port)
	}
}
