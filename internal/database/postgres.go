package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gocloud.dev/postgres"
	_ "gocloud.dev/postgres/awspostgres"
	_ "gocloud.dev/postgres/gcppostgres"

	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
)

// Repository defines the interface for database operations
type Repository interface {
	Close() error

	// Users
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Query history
	SaveQuery(ctx context.Context, entry *models.QueryHistory) error
	GetHistoryByDateAndPlayer(ctx context.Context, date time.Time, playerName string) ([]models.QueryHistory, error)
}

// PostgresRepository handles database operations
type PostgresRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRepository creates a new repository instance
func NewRepository(ctx context.Context, databaseURL string, logger *zap.Logger) (Repository, error) {
	// Retry connection with exponential backoff
	var db *sql.DB
	var err error
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		db, err = postgres.Open(ctx, databaseURL)
		if err == nil {
			// Test the connection
			if err = db.PingContext(ctx); err == nil {
				break
			}
			db.Close()
		}
		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * time.Second
			logger.Warn("Failed to connect to database, retrying...", zap.Int("attempt", i+1), zap.Duration("wait", waitTime), zap.Error(err))
			time.Sleep(waitTime)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	return &PostgresRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// GetUserByEmail retrieves a user by normalized email. Returns nil, nil when
// no such user exists.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	return &user, nil
}

// CreateUser persists a new user and fills in its generated ID.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

// SaveQuery appends one audit record for a successful analytics query.
func (r *PostgresRepository) SaveQuery(ctx context.Context, entry *models.QueryHistory) error {
	query := `
		INSERT INTO query_history (user_id, player_name, query_type, query_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.PlayerName,
		entry.QueryType,
		time.Time(entry.QueryDate),
	).Scan(&entry.ID)
	if err != nil {
		r.logger.Error("Failed to save query history", zap.String("player", entry.PlayerName), zap.Error(err))
		return err
	}
	return nil
}

// GetHistoryByDateAndPlayer returns the audit records for one date and player.
func (r *PostgresRepository) GetHistoryByDateAndPlayer(ctx context.Context, date time.Time, playerName string) ([]models.QueryHistory, error) {
	query := `
		SELECT id, user_id, player_name, query_type, query_date
		FROM query_history
		WHERE query_date = $1 AND player_name = $2
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, date, playerName)
	if err != nil {
		r.logger.Error("Failed to get query history", zap.String("player", playerName), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []models.QueryHistory
	for rows.Next() {
		var entry models.QueryHistory
		var queryDate time.Time
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.PlayerName, &entry.QueryType, &queryDate); err != nil {
			r.logger.Error("Failed to scan query history row", zap.Error(err))
			return nil, err
		}
		entry.QueryDate = models.APIDate(queryDate)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
