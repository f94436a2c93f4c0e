package domain

import (
	"github.com/samber/lo"

	"github.com/orgball2608/piazza/pkg/errors"
)

type Topic string

const (
	TopicPolitics Topic = "Politics"
	TopicHealth   Topic = "Health"
	TopicSport    Topic = "Sport"
	TopicTech     Topic = "Tech"
)

// Topics lists every topic a post may be tagged with.
var Topics = []Topic{TopicPolitics, TopicHealth, TopicSport, TopicTech}

func ParseTopic(s string) (Topic, error) {
	t := Topic(s)
	if !lo.Contains(Topics, t) {
		return "", errors.Validation("unknown topic " + s)
	}
	return t, nil
}

// ParseTopics validates a topic list and drops duplicates, keeping first-seen order.
func ParseTopics(raw []string) ([]Topic, error) {
	if len(raw) == 0 {
		return nil, errors.Validation("at least one topic is required")
	}

	topics := make([]Topic, 0, len(raw))
	for _, s := range raw {
		t, err := ParseTopic(s)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}

	return lo.Uniq(topics), nil
}

// ParseOptionalTopic treats an empty string as "any topic".
func ParseOptionalTopic(s string) (Topic, error) {
	if s == "" {
		return "", nil
	}
	return ParseTopic(s)
}
