package tag

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Repository stores generic tags: a tagged_items row points at any object
// by (content_type, object_id).
type Repository interface {
	Search(ctx context.Context, prefix string) ([]Tag, error)
	ListFor(ctx context.Context, contentType string, objectID uint) ([]Tag, error)
	Attach(ctx context.Context, contentType string, objectID uint, label string) (*Tag, error)
	Detach(ctx context.Context, contentType string, objectID, tagID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Search(ctx context.Context, prefix string) ([]Tag, error) {
	return r.query(ctx, `SELECT id, label FROM tags WHERE label ILIKE $1 ESCAPE '\' ORDER BY label`, db.EscapeLike(prefix)+"%")
}

func (r *repository) ListFor(ctx context.Context, contentType string, objectID uint) ([]Tag, error) {
	return r.query(ctx, `
		SELECT t.id, t.label
		FROM tags t
		JOIN tagged_items ti ON ti.tag_id = t.id
		WHERE ti.content_type = $1 AND ti.object_id = $2
		ORDER BY t.label
	`, contentType, objectID)
}

func (r *repository) query(ctx context.Context, q string, args ...any) ([]Tag, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Label); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Attach reuses the tag with the same label, creating it when missing, and
// links it to the object. Attaching twice is a no-op.
func (r *repository) Attach(ctx context.Context, contentType string, objectID uint, label string) (*Tag, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AttachTag"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t := &Tag{Label: label}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO tags (label) VALUES ($1)
		ON CONFLICT (label) DO UPDATE SET label = EXCLUDED.label
		RETURNING id
	`, label).Scan(&t.ID)
	if err != nil {
		log.Error("upsert tag failed", zap.Error(err))
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tagged_items (tag_id, content_type, object_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (tag_id, content_type, object_id) DO NOTHING
	`, t.ID, contentType, objectID); err != nil {
		log.Error("link tag failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) Detach(ctx context.Context, contentType string, objectID, tagID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM tagged_items
		WHERE content_type = $1 AND object_id = $2 AND tag_id = $3
	`, contentType, objectID, tagID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTagNotAttached
	}
	return nil
}
