package post

import (
	"errors"
	"testing"

	"github.com/orgball2608/piazza/internal/domain"
)

func TestSnapshotRecordsSentiment(t *testing.T) {
	post := &domain.Post{
		Likes:    []domain.Reaction{{User: "u1"}, {User: "u2"}},
		Dislikes: []domain.Reaction{{User: "u3"}},
		Comments: []domain.Comment{{User: "u1", Text: "first"}},
	}

	snap := takeSnapshot(post)

	if snap.kinds["u1"] != kindLike || snap.kinds["u2"] != kindLike || snap.kinds["u3"] != kindDislike {
		t.Fatalf("kinds = %v", snap.kinds)
	}
	if snap.comments != 1 {
		t.Fatalf("comments = %d", snap.comments)
	}
}

func TestReactionRowsRejectsBothSentiments(t *testing.T) {
	post := &domain.Post{
		Likes:    []domain.Reaction{{User: "u1"}},
		Dislikes: []domain.Reaction{{User: "u1"}},
	}

	if _, err := reactionRows(post); !errors.Is(err, ErrReactionConflict) {
		t.Fatalf("err = %v, want ErrReactionConflict", err)
	}
}

func TestReactionRowsKeyedByUser(t *testing.T) {
	post := &domain.Post{
		Likes:    []domain.Reaction{{User: "u1", Name: "Ann"}},
		Dislikes: []domain.Reaction{{User: "u2", Name: "Bob"}},
	}

	rows, err := reactionRows(post)
	if err != nil {
		t.Fatalf("reactionRows: %v", err)
	}
	if rows["u1"].kind != kindLike || rows["u1"].reaction.Name != "Ann" {
		t.Fatalf("u1 = %+v", rows["u1"])
	}
	if rows["u2"].kind != kindDislike {
		t.Fatalf("u2 = %+v", rows["u2"])
	}
}
