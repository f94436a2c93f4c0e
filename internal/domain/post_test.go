package domain

import (
	"testing"
	"time"

	"github.com/orgball2608/piazza/pkg/errors"
)

func TestStatusFlipsAtExpiry(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Post{ExpiresAt: expires}

	cases := []struct {
		now      time.Time
		status   Status
		timeLeft int64
	}{
		{expires.Add(-90 * time.Second), StatusLive, 90},
		{expires.Add(-1500 * time.Millisecond), StatusLive, 1},
		{expires.Add(-time.Millisecond), StatusLive, 0},
		{expires, StatusExpired, 0},
		{expires.Add(time.Hour), StatusExpired, 0},
	}

	for _, tc := range cases {
		if got := p.Status(tc.now); got != tc.status {
			t.Errorf("Status(%v) = %s, want %s", tc.now, got, tc.status)
		}
		if got := p.TimeLeftSeconds(tc.now); got != tc.timeLeft {
			t.Errorf("TimeLeftSeconds(%v) = %d, want %d", tc.now, got, tc.timeLeft)
		}
	}
}

func TestInterestScore(t *testing.T) {
	p := &Post{
		Likes:    []Reaction{{User: "a"}},
		Dislikes: []Reaction{{User: "b"}},
		Comments: []Comment{{User: "c", Text: "hi"}},
	}
	if got := p.InterestScore(); got != 3 {
		t.Fatalf("InterestScore = %d, want 3", got)
	}
	if c := p.Counts(); c.Likes != 1 || c.Dislikes != 1 {
		t.Fatalf("Counts = %+v", c)
	}
}

func TestParseTopics(t *testing.T) {
	topics, err := ParseTopics([]string{"Tech", "Sport", "Tech"})
	if err != nil {
		t.Fatalf("ParseTopics: %v", err)
	}
	if len(topics) != 2 || topics[0] != TopicTech || topics[1] != TopicSport {
		t.Fatalf("topics = %v", topics)
	}

	if _, err := ParseTopics(nil); !errors.IsValidation(err) {
		t.Fatalf("empty topics: got %v", err)
	}
	if _, err := ParseTopics([]string{"Tech", "Cooking"}); !errors.IsValidation(err) {
		t.Fatalf("unknown topic: got %v", err)
	}
}

func TestParseOptionalTopic(t *testing.T) {
	if topic, err := ParseOptionalTopic(""); err != nil || topic != "" {
		t.Fatalf("empty: %q %v", topic, err)
	}
	if topic, err := ParseOptionalTopic("Health"); err != nil || topic != TopicHealth {
		t.Fatalf("Health: %q %v", topic, err)
	}
	if _, err := ParseOptionalTopic("health"); !errors.IsValidation(err) {
		t.Fatalf("topics are case sensitive, got %v", err)
	}
}
