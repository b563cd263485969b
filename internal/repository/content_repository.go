package repository

import (
	"context"
	"database/sql"

	"github.com/etkinlikhub/event-platform/internal/model"
)

// ContentRepo provides CRUD operations for content items. Read queries
// join the users table so listings can show the author's username next to
// each item without a second round trip.
type ContentRepo struct{ DB *sql.DB }

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{DB: db} }

// ContentFilter narrows List results. Empty fields are ignored; set
// fields are combined with AND and matched exactly.
type ContentFilter struct {
	Category string
	Status   string
}

const contentColumns = "c.id,c.title,c.content,c.category,c.status,c.author_id,u.username,c.created_at,c.updated_at"

func scanContent(s rowScanner) (model.Content, error) {
	var (
		c        model.Content
		body     sql.NullString
		category sql.NullString
		author   sql.NullInt64
		name     sql.NullString
	)
	err := s.Scan(&c.ID, &c.Title, &body, &category, &c.Status, &author,
		&name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Content{}, err
	}
	if body.Valid {
		c.Body = &body.String
	}
	if category.Valid {
		c.Category = &category.String
	}
	if author.Valid {
		a := uint64(author.Int64)
		c.AuthorID = &a
	}
	if name.Valid {
		c.AuthorName = &name.String
	}
	return c, nil
}

// List returns contents matching the filter, newest first.
func (r *ContentRepo) List(ctx context.Context, f ContentFilter) ([]model.Content, error) {
	query := "SELECT " + contentColumns + " FROM contents c LEFT JOIN users u ON c.author_id = u.id"
	args := make([]any, 0, 2)
	conds := make([]string, 0, 2)
	if f.Category != "" {
		conds = append(conds, "c.category=?")
		args = append(args, f.Category)
	}
	if f.Status != "" {
		conds = append(conds, "c.status=?")
		args = append(args, f.Status)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contents := make([]model.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// GetByID fetches a single content item with its author name. Returns
// ErrContentNotFound when absent. Draft items are returned like any
// other; visibility by id is not restricted.
func (r *ContentRepo) GetByID(ctx context.Context, id uint64) (model.Content, error) {
	c, err := scanContent(r.DB.QueryRowContext(ctx,
		"SELECT "+contentColumns+" FROM contents c LEFT JOIN users u ON c.author_id = u.id WHERE c.id=? LIMIT 1",
		id))
	if err == sql.ErrNoRows {
		return model.Content{}, ErrContentNotFound
	}
	return c, err
}

// Create inserts a content item and returns its ID.
func (r *ContentRepo) Create(ctx context.Context, c model.Content) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contents (title, content, category, status, author_id) VALUES (?,?,?,?,?)",
		c.Title, c.Body, c.Category, c.Status, c.AuthorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces the mutable columns of a content item.
func (r *ContentRepo) Update(ctx context.Context, id uint64, c model.Content) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE contents SET title=?, content=?, category=?, status=?,
		 updated_at=CURRENT_TIMESTAMP WHERE id=?`,
		c.Title, c.Body, c.Category, c.Status, id)
	return err
}

// Delete removes a content row.
func (r *ContentRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM contents WHERE id=?", id)
	return err
}
