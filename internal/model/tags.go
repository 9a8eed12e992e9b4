package model

import (
	"strings"
	"time"
)

const (
	MaxTags      = 3
	MaxTagLength = 20
)

// ParseTags splits a comma separated list into at most MaxTags distinct tags.
// Each piece is trimmed and cut to MaxTagLength characters before duplicates
// are dropped, so the first spelling seen wins.
func ParseTags(csv string) []string {
	out := make([]string, 0, MaxTags)
	for _, piece := range strings.Split(csv, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		if r := []rune(tag); len(r) > MaxTagLength {
			tag = strings.TrimSpace(string(r[:MaxTagLength]))
		}
		if contains(out, tag) {
			continue
		}
		out = append(out, tag)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// JoinTags is the inverse of ParseTags for already parsed tags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

var deadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDeadline reads a timezone-naive YYYY-MM-DDTHH:mm[:ss] string in loc.
// Anything else, including the empty string, yields nil.
func ParseDeadline(text string, loc *time.Location) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range deadlineLayouts {
		if tm, err := time.ParseInLocation(layout, text, loc); err == nil {
			return &tm
		}
	}
	return nil
}

// FormatDeadline renders a deadline in the form ParseDeadline accepts.
func FormatDeadline(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02T15:04")
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
