package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// setupTestDB creates an in-memory SQLite database for repository testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Register callback to generate UUIDs for SQLite (since it doesn't support gen_random_uuid())
	db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema != nil {
			for _, field := range db.Statement.Schema.PrimaryFields {
				if field.DataType == "uuid" {
					fieldValue := field.ReflectValueOf(db.Statement.Context, db.Statement.ReflectValue)
					if fieldValue.IsZero() {
						field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
					}
				}
			}
		}
	})

	// Create tables manually for SQLite compatibility
	// SQLite doesn't support UUID type or gen_random_uuid()
	err = db.Exec(`
		CREATE TABLE boards (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			title TEXT NOT NULL,
			is_deleted INTEGER NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err, "Failed to create boards table")

	err = db.Exec(`
		CREATE TABLE board_participants (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			board_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			UNIQUE(board_id, user_id)
		)
	`).Error
	require.NoError(t, err, "Failed to create board_participants table")

	err = db.Exec(`
		CREATE TABLE goal_categories (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			board_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			is_deleted INTEGER NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err, "Failed to create goal_categories table")

	err = db.Exec(`
		CREATE TABLE goals (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			category_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'to_do',
			priority TEXT NOT NULL DEFAULT 'medium',
			due_date DATETIME,
			custom_fields TEXT
		)
	`).Error
	require.NoError(t, err, "Failed to create goals table")

	err = db.Exec(`
		CREATE TABLE goal_comments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			goal_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			text TEXT NOT NULL
		)
	`).Error
	require.NoError(t, err, "Failed to create goal_comments table")

	err = db.Exec(`
		CREATE TABLE attachments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			goal_id TEXT,
			status TEXT NOT NULL DEFAULT 'TEMP',
			file_name TEXT NOT NULL,
			file_key TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			content_type TEXT NOT NULL,
			uploaded_by TEXT NOT NULL,
			expires_at DATETIME
		)
	`).Error
	require.NoError(t, err, "Failed to create attachments table")

	return db
}

// seedBoard creates a board with its owner participant row
func seedBoard(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *domain.Board {
	board := &domain.Board{Title: "Test Board"}
	require.NoError(t, db.Create(board).Error)
	require.NoError(t, db.Create(&domain.BoardParticipant{
		BoardID: board.ID,
		UserID:  ownerID,
		Role:    domain.RoleOwner,
	}).Error)
	return board
}

// seedCategory creates a category on the board
func seedCategory(t *testing.T, db *gorm.DB, boardID, creatorID uuid.UUID) *domain.GoalCategory {
	category := &domain.GoalCategory{
		BoardID: boardID,
		UserID:  creatorID,
		Title:   "Test Category",
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

// seedGoal creates a goal in the category
func seedGoal(t *testing.T, db *gorm.DB, categoryID, authorID uuid.UUID, title string) *domain.Goal {
	goal := &domain.Goal{
		CategoryID: categoryID,
		UserID:     authorID,
		Title:      title,
		Status:     domain.GoalStatusToDo,
		Priority:   domain.GoalPriorityMedium,
	}
	require.NoError(t, db.Create(goal).Error)
	return goal
}

// seedTempAttachment creates a TEMP attachment expiring at the given time
func seedTempAttachment(t *testing.T, db *gorm.DB, uploaderID uuid.UUID, expiresAt time.Time) *domain.Attachment {
	attachment := &domain.Attachment{
		Status:      domain.AttachmentStatusTemp,
		FileName:    "report.pdf",
		FileKey:     "goals/" + uploaderID.String() + "/report.pdf",
		FileSize:    1024,
		ContentType: "application/pdf",
		UploadedBy:  uploaderID,
		ExpiresAt:   &expiresAt,
	}
	require.NoError(t, db.Create(attachment).Error)
	return attachment
}
