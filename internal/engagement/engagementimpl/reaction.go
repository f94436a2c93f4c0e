package engagementimpl

import (
	"time"

	"github.com/samber/lo"

	"github.com/orgball2608/piazza/internal/domain"
)

type sentiment int

const (
	like sentiment = iota
	dislike
)

func (s sentiment) String() string {
	if s == dislike {
		return "dislike"
	}
	return "like"
}

// applyReaction drops the actor's opposite reaction, then adds theirs unless it is
// already present. Repeating the same reaction changes nothing.
func applyReaction(p *domain.Post, actor domain.Actor, s sentiment, now time.Time) {
	same, opposite := &p.Likes, &p.Dislikes
	if s == dislike {
		same, opposite = opposite, same
	}

	byActor := func(r domain.Reaction) bool {
		return r.User == actor.ID
	}

	*opposite = lo.Reject(*opposite, func(r domain.Reaction, _ int) bool {
		return byActor(r)
	})

	if !lo.ContainsBy(*same, byActor) {
		*same = append(*same, domain.Reaction{
			User:      actor.ID,
			Name:      actor.Name,
			CreatedAt: now,
		})
	}
}
