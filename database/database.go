// munui/database/database.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"munui/config"
	"munui/models"
	"munui/utils"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// DatabaseService is the central struct for all database operations. The
// admin credential is injected at construction; the privileged operations
// check it before touching any row.
type DatabaseService struct {
	DB       *sql.DB
	logger   *slog.Logger
	adminKey *utils.AdminKey
}

// InitDB connects to the database, ensures the base schema, and runs
// versioned migrations.
func InitDB(dataSourceName string, adminKey *utils.AdminKey, logger *slog.Logger) (*DatabaseService, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to execute base schema: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	logger.Info("Database initialized")

	return &DatabaseService{
		DB:       db,
		logger:   logger,
		adminKey: adminKey,
	}, nil
}

// runMigrations applies all un-applied migrations.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	var latestVersion uint
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&latestVersion)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("could not get db version: %w", err)
	}

	for _, m := range allMigrations {
		if m.Version > latestVersion {
			logger.Info("Applying migration", "version", m.Version)
			tx, err := db.Begin()
			if err != nil {
				return err
			}

			if _, err := tx.Exec(m.Query); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to apply migration v%d: %w", m.Version, err)
			}
			if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", m.Version, utils.GetSQLTime()); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration record", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
			}
		}
	}
	return nil
}

// GetPostsForBoard returns every post on a board, newest first, each carrying
// its full reply sequence in chronological order. Replies are fetched in one
// batched query and grouped in memory, so listing a board costs exactly two
// queries regardless of post count. The two reads are not wrapped in a
// transaction; a write landing between them is a benign miss.
func (ds *DatabaseService) GetPostsForBoard(ctx context.Context, board string) ([]models.Post, error) {
	rows, err := ds.DB.QueryContext(ctx,
		"SELECT id, board, name, title, content, status, created_at FROM posts WHERE board = ? ORDER BY created_at DESC, id DESC", board)
	if err != nil {
		return nil, &models.StoreError{Op: "query posts", Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			ds.logger.Error("Failed to close rows in GetPostsForBoard", "error", err)
		}
	}()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Board, &p.Name, &p.Title, &p.Content, &p.Status, &p.CreatedAt); err != nil {
			return nil, &models.StoreError{Op: "scan post", Err: err}
		}
		p.Replies = []models.Reply{}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "iterate posts", Err: err}
	}
	if len(posts) == 0 {
		return posts, nil
	}

	postMap := make(map[int64]*models.Post, len(posts))
	postIDs := make([]interface{}, 0, len(posts))
	for i := range posts {
		postMap[posts[i].ID] = &posts[i]
		postIDs = append(postIDs, posts[i].ID)
	}

	query := "SELECT id, post_id, author, content, created_at FROM replies WHERE post_id IN (?" +
		strings.Repeat(",?", len(postIDs)-1) + ") ORDER BY created_at ASC, id ASC"
	replyRows, err := ds.DB.QueryContext(ctx, query, postIDs...)
	if err != nil {
		return nil, &models.StoreError{Op: "query replies", Err: err}
	}
	defer func() {
		if err := replyRows.Close(); err != nil {
			ds.logger.Error("Failed to close rows in GetPostsForBoard", "error", err)
		}
	}()

	for replyRows.Next() {
		var rep models.Reply
		if err := replyRows.Scan(&rep.ID, &rep.PostID, &rep.Author, &rep.Content, &rep.CreatedAt); err != nil {
			return nil, &models.StoreError{Op: "scan reply", Err: err}
		}
		if post, ok := postMap[rep.PostID]; ok {
			post.Replies = append(post.Replies, rep)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, &models.StoreError{Op: "iterate replies", Err: err}
	}

	return posts, nil
}

// CreatePost validates and inserts a new inquiry, returning its assigned id.
// Board membership is the caller's responsibility; the store trusts the slug.
func (ds *DatabaseService) CreatePost(ctx context.Context, board, name, title, content string) (int64, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return 0, &models.ValidationError{Msg: "title, content 필수"}
	}

	res, err := ds.DB.ExecContext(ctx,
		"INSERT INTO posts (board, name, title, content, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		board, strings.TrimSpace(name), title, content, config.DefaultStatus, utils.GetSQLTime())
	if err != nil {
		return 0, &models.StoreError{Op: "insert post", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &models.StoreError{Op: "read post id", Err: err}
	}
	return id, nil
}

// SetPostStatus updates the workflow status of a post. The update is scoped
// to both id and board; a non-matching pair affects zero rows, which is not
// an error.
func (ds *DatabaseService) SetPostStatus(ctx context.Context, board string, postID int64, status, key string) (int64, error) {
	if !ds.adminKey.Matches(key) {
		return 0, &models.AuthError{Msg: "관리자 키가 올바르지 않습니다."}
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return 0, &models.ValidationError{Msg: "status 필수"}
	}

	res, err := ds.DB.ExecContext(ctx,
		"UPDATE posts SET status = ? WHERE id = ? AND board = ?", status, postID, board)
	if err != nil {
		return 0, &models.StoreError{Op: "update status", Err: err}
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return 0, &models.StoreError{Op: "count updated rows", Err: err}
	}
	return updated, nil
}

// CreateReply inserts an admin reply on a post and returns its assigned id.
// The board in the route is not re-checked against the post; any existing
// post id is accepted. A missing post surfaces as a ReferentialError through
// the foreign key.
func (ds *DatabaseService) CreateReply(ctx context.Context, board string, postID int64, content, author, key string) (int64, error) {
	if !ds.adminKey.Matches(key) {
		return 0, &models.AuthError{Msg: "관리자 키가 올바르지 않습니다."}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, &models.ValidationError{Msg: "content 필수"}
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = config.DefaultReplyAuthor
	}

	res, err := ds.DB.ExecContext(ctx,
		"INSERT INTO replies (post_id, author, content, created_at) VALUES (?, ?, ?, ?)",
		postID, author, content, utils.GetSQLTime())
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, &models.ReferentialError{Msg: "존재하지 않는 글"}
		}
		return 0, &models.StoreError{Op: "insert reply", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &models.StoreError{Op: "read reply id", Err: err}
	}
	return id, nil
}

// Backup performs an online backup of the live SQLite database using
// VACUUM INTO.
func (ds *DatabaseService) Backup(backupDir string) (string, error) {
	if backupDir == "" {
		return "", fmt.Errorf("backup directory is not configured")
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("could not create backup directory %s: %w", backupDir, err)
	}

	timestamp := time.Now().UTC().Format("2006-01-02_15-04-05")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("munui_backup_%s.db", timestamp))

	ds.logger.Info("Starting database backup", "destination", backupPath)

	if _, err := ds.DB.Exec("VACUUM INTO ?", backupPath); err != nil {
		if removeErr := os.Remove(backupPath); removeErr != nil && !os.IsNotExist(removeErr) {
			ds.logger.Error("Failed to remove incomplete backup file", "path", backupPath, "error", removeErr)
		}
		return "", fmt.Errorf("VACUUM INTO command failed: %w", err)
	}

	return backupPath, nil
}

// isForeignKeyViolation reports whether err is a SQLite FK constraint
// failure.
func isForeignKeyViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
