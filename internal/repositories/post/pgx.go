package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/repositories"
	"github.com/orgball2608/piazza/pkg/logger"
)

const (
	kindLike    = "like"
	kindDislike = "dislike"
)

var ErrReactionConflict = errors.New("user holds both a like and a dislike")

var postColumns = []string{
	"id", "title", "body", "topics", "owner_id", "owner_name", "expires_at", "created_at", "updated_at",
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pool is the part of *pgxpool.Pool the repository uses.
type pool interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Pgx struct {
	pg     pool
	clock  clockwork.Clock
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, clock clockwork.Clock, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		clock:  clock,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// now is truncated to the precision Postgres stores.
func (p *Pgx) now() time.Time {
	return p.clock.Now().UTC().Truncate(time.Microsecond)
}

func (p *Pgx) Create(ctx context.Context, post domain.Post) (*domain.Post, error) {
	now := p.now()
	post.ID = uuid.NewString()
	post.ExpiresAt = post.ExpiresAt.UTC().Truncate(time.Microsecond)
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Likes = []domain.Reaction{}
	post.Dislikes = []domain.Reaction{}
	post.Comments = []domain.Comment{}

	query, args, err := repositories.SqBuilder.
		Insert("posts").
		Columns(postColumns...).
		Values(
			post.ID,
			post.Title,
			post.Body,
			topicStrings(post.Topics),
			post.Owner,
			post.OwnerName,
			post.ExpiresAt,
			post.CreatedAt,
			post.UpdatedAt,
		).ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return nil, errors.Join(err, ErrCannotCreate)
	}

	return &post, nil
}

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := p.get(ctx, p.pg, id, false)
	if err != nil {
		return nil, err
	}

	if err := p.loadEngagement(ctx, p.pg, []*domain.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *Pgx) List(ctx context.Context, filter Filter) ([]*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns...).
		From("posts")

	switch filter.Status {
	case domain.StatusLive:
		builder = builder.Where(sq.Gt{"expires_at": filter.Now})
	case domain.StatusExpired:
		builder = builder.Where(sq.LtOrEq{"expires_at": filter.Now})
	}

	if filter.Topic != "" {
		builder = builder.Where(sq.Expr("? = ANY(topics)", string(filter.Topic)))
	}

	switch filter.Order {
	case OrderCreatedAsc:
		builder = builder.OrderBy("created_at ASC", "id ASC")
	case OrderExpiresDesc:
		builder = builder.OrderBy("expires_at DESC", "id DESC")
	default:
		builder = builder.OrderBy("created_at DESC", "id DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	if err := p.loadEngagement(ctx, p.pg, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// Update locks the post row for the length of the transaction, so concurrent engagement on
// the same post is serialized while other posts proceed independently.
func (p *Pgx) Update(ctx context.Context, id string, fn MutateFunc) (*domain.Post, error) {
	tx, err := p.pg.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	post, err := p.get(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	if err := p.loadEngagement(ctx, tx, []*domain.Post{post}); err != nil {
		return nil, err
	}

	before := takeSnapshot(post)

	if err := fn(post); err != nil {
		return nil, err
	}

	changed, err := p.persistEngagement(ctx, tx, post, before)
	if err != nil {
		return nil, err
	}

	if changed {
		post.UpdatedAt = p.now()

		query, args, err := repositories.SqBuilder.
			Update("posts").
			Set("updated_at", post.UpdatedAt).
			Where(sq.Eq{"id": post.ID}).
			ToSql()
		if err != nil {
			return nil, repositories.ErrBadQuery
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to touch post %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit post %s: %w", post.ID, err)
	}

	return post, nil
}

func (p *Pgx) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete("posts").
		Where(sq.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired posts: %w", err)
	}

	return result.RowsAffected(), nil
}

func (p *Pgx) get(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scanPost(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// loadEngagement fills likes, dislikes and comments for posts in two queries. The ids
// are bound as one array parameter however many posts are loaded.
func (p *Pgx) loadEngagement(ctx context.Context, q querier, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Post, len(posts))
	for _, post := range posts {
		post.Likes = []domain.Reaction{}
		post.Dislikes = []domain.Reaction{}
		post.Comments = []domain.Comment{}
		byID[post.ID] = post
	}
	ids := lo.Keys(byID)

	query, args, err := repositories.SqBuilder.
		Select("post_id", "user_id", "kind", "name", "created_at").
		From("post_reactions").
		Where(sq.Expr("post_id = ANY(?)", ids)).
		OrderBy("created_at ASC", "user_id ASC").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query reactions: %w", err)
	}
	for rows.Next() {
		var postID, kind string
		var r domain.Reaction
		if err := rows.Scan(&postID, &r.User, &kind, &r.Name, &r.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan reaction row: %w", err)
		}
		post := byID[postID]
		if kind == kindLike {
			post.Likes = append(post.Likes, r)
		} else {
			post.Dislikes = append(post.Dislikes, r)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating reaction rows: %w", err)
	}

	query, args, err = repositories.SqBuilder.
		Select("post_id", "user_id", "name", "text", "created_at").
		From("post_comments").
		Where(sq.Expr("post_id = ANY(?)", ids)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	rows, err = q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var c domain.Comment
		if err := rows.Scan(&postID, &c.User, &c.Name, &c.Text, &c.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan comment row: %w", err)
		}
		byID[postID].Comments = append(byID[postID].Comments, c)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating comment rows: %w", err)
	}

	return nil
}

type reactionRow struct {
	kind     string
	reaction domain.Reaction
}

type snapshot struct {
	kinds    map[string]string
	comments int
}

func takeSnapshot(post *domain.Post) snapshot {
	kinds := make(map[string]string, len(post.Likes)+len(post.Dislikes))
	for _, r := range post.Likes {
		kinds[r.User] = kindLike
	}
	for _, r := range post.Dislikes {
		kinds[r.User] = kindDislike
	}
	return snapshot{kinds: kinds, comments: len(post.Comments)}
}

func reactionRows(post *domain.Post) (map[string]reactionRow, error) {
	rows := make(map[string]reactionRow, len(post.Likes)+len(post.Dislikes))
	for _, r := range post.Likes {
		rows[r.User] = reactionRow{kind: kindLike, reaction: r}
	}
	for _, r := range post.Dislikes {
		if _, ok := rows[r.User]; ok {
			return nil, ErrReactionConflict
		}
		rows[r.User] = reactionRow{kind: kindDislike, reaction: r}
	}
	return rows, nil
}

// persistEngagement writes the difference between before and the mutated post.
func (p *Pgx) persistEngagement(ctx context.Context, tx pgx.Tx, post *domain.Post, before snapshot) (bool, error) {
	after, err := reactionRows(post)
	if err != nil {
		return false, err
	}
	if len(post.Comments) < before.comments {
		p.logger.Warn("Rejected update that removed comments", "post_id", post.ID)
		return false, ErrCommentsEdited
	}

	changed := false

	for user := range before.kinds {
		if _, ok := after[user]; ok {
			continue
		}
		query, args, err := repositories.SqBuilder.
			Delete("post_reactions").
			Where(sq.Eq{"post_id": post.ID, "user_id": user}).
			ToSql()
		if err != nil {
			return false, repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return false, fmt.Errorf("failed to delete reaction: %w", err)
		}
		changed = true
	}

	for user, row := range after {
		if before.kinds[user] == row.kind {
			continue
		}
		query, args, err := repositories.SqBuilder.
			Insert("post_reactions").
			Columns("post_id", "user_id", "kind", "name", "created_at").
			Values(post.ID, user, row.kind, row.reaction.Name, row.reaction.CreatedAt).
			Suffix("ON CONFLICT (post_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, name = EXCLUDED.name, created_at = EXCLUDED.created_at").
			ToSql()
		if err != nil {
			return false, repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return false, fmt.Errorf("failed to upsert reaction: %w", err)
		}
		changed = true
	}

	appended := post.Comments[before.comments:]
	if len(appended) > 0 {
		builder := repositories.SqBuilder.
			Insert("post_comments").
			Columns("post_id", "user_id", "name", "text", "created_at")
		for _, c := range appended {
			builder = builder.Values(post.ID, c.User, c.Name, c.Text, c.CreatedAt)
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return false, repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return false, fmt.Errorf("failed to insert comments: %w", err)
		}
		changed = true
	}

	return changed, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var topics []string
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&topics,
		&post.Owner,
		&post.OwnerName,
		&post.ExpiresAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Topics = lo.Map(topics, func(t string, _ int) domain.Topic {
		return domain.Topic(t)
	})

	return &post, nil
}

func topicStrings(topics []domain.Topic) []string {
	return lo.Map(topics, func(t domain.Topic, _ int) string {
		return string(t)
	})
}
