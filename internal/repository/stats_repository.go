package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxStatsRepository implements domain.StatsRepository using sqlx.
type sqlxStatsRepository struct {
	db *sqlx.DB
}

// NewSQLXStatsRepository creates a new instance of sqlxStatsRepository.
func NewSQLXStatsRepository(db *sqlx.DB) domain.StatsRepository {
	return &sqlxStatsRepository{db: db}
}

func (r *sqlxStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	var model models.UserStats
	query := `SELECT * FROM user_stats WHERE user_id = :user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for stats GetByUserID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats by user id: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *sqlxStatsRepository) Create(ctx context.Context, stats *domain.UserStats) error {
	model := models.StatsFromDomain(stats)
	model.UpdatedAt = time.Now()

	query := `INSERT INTO user_stats (id, user_id, total_questions_answered, total_sessions_completed, total_time_spent, average_score, highest_score, lowest_score, category_stats, difficulty_stats, daily_stats, achievements, current_streak, longest_streak, last_practice_date, weak_topics, strong_topics, updated_at)
	          VALUES (:id, :user_id, :total_questions_answered, :total_sessions_completed, :total_time_spent, :average_score, :highest_score, :lowest_score, :category_stats, :difficulty_stats, :daily_stats, :achievements, :current_streak, :longest_streak, :last_practice_date, :weak_topics, :strong_topics, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create user stats: %w", err)
	}
	return nil
}

func (r *sqlxStatsRepository) Update(ctx context.Context, stats *domain.UserStats) error {
	model := models.StatsFromDomain(stats)
	model.UpdatedAt = time.Now()

	query := `UPDATE user_stats
	          SET total_questions_answered = :total_questions_answered,
	              total_sessions_completed = :total_sessions_completed,
	              total_time_spent = :total_time_spent,
	              average_score = :average_score,
	              highest_score = :highest_score,
	              lowest_score = :lowest_score,
	              category_stats = :category_stats,
	              difficulty_stats = :difficulty_stats,
	              daily_stats = :daily_stats,
	              achievements = :achievements,
	              current_streak = :current_streak,
	              longest_streak = :longest_streak,
	              last_practice_date = :last_practice_date,
	              weak_topics = :weak_topics,
	              strong_topics = :strong_topics,
	              updated_at = :updated_at
	          WHERE user_id = :user_id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("no stats row found for user %s", stats.UserID)
	}
	return nil
}

// ListTop returns the ranked stats rows joined with user display fields.
// The sort column is chosen from a fixed set; ties break on user id so
// the order is stable.
func (r *sqlxStatsRepository) ListTop(ctx context.Context, sort domain.LeaderboardSort, limit int) ([]domain.LeaderboardEntry, error) {
	var orderBy string
	switch sort {
	case domain.LeaderboardSessions:
		orderBy = "s.total_sessions_completed DESC"
	case domain.LeaderboardStreak:
		orderBy = "s.longest_streak DESC"
	default:
		orderBy = "s.average_score DESC"
	}

	query := fmt.Sprintf(`SELECT s.user_id, u.name, u.email, s.average_score, s.total_sessions_completed, s.longest_streak, s.total_questions_answered
	          FROM user_stats s
	          JOIN users u ON u.id = s.user_id
	          ORDER BY %s, s.user_id ASC
	          FETCH FIRST :row_limit ROWS ONLY`, orderBy)

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare leaderboard query: %w", err)
	}
	defer stmt.Close()

	var rows []models.LeaderboardRow
	if err := stmt.SelectContext(ctx, &rows, map[string]interface{}{"row_limit": limit}); err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}
