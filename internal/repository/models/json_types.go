package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"prepdeck/internal/domain"
)

// The embedded-document columns (session questions, bank questions, stat
// breakdowns) are stored as JSON text in CLOBs. Each slice type
// implements driver.Valuer and sql.Scanner so sqlx reads and writes them
// transparently.

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("json scan: unsupported type %T", value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// QuestionSlice stores a session's embedded question list.
type QuestionSlice []domain.Question

func (s QuestionSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *QuestionSlice) Scan(value interface{}) error {
	*s = QuestionSlice{}
	return jsonScan(s, value)
}

// BankQuestionSlice stores a bank's embedded question list.
type BankQuestionSlice []domain.BankQuestion

func (s BankQuestionSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *BankQuestionSlice) Scan(value interface{}) error {
	*s = BankQuestionSlice{}
	return jsonScan(s, value)
}

// CategoryStatSlice stores the per-category breakdown of user stats.
type CategoryStatSlice []domain.CategoryStat

func (s CategoryStatSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *CategoryStatSlice) Scan(value interface{}) error {
	*s = CategoryStatSlice{}
	return jsonScan(s, value)
}

// DifficultyStatSlice stores the per-difficulty breakdown of user stats.
type DifficultyStatSlice []domain.DifficultyStat

func (s DifficultyStatSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *DifficultyStatSlice) Scan(value interface{}) error {
	*s = DifficultyStatSlice{}
	return jsonScan(s, value)
}

// DailyStatSlice stores the rolling per-day breakdown of user stats.
type DailyStatSlice []domain.DailyStat

func (s DailyStatSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *DailyStatSlice) Scan(value interface{}) error {
	*s = DailyStatSlice{}
	return jsonScan(s, value)
}

// AchievementSlice stores the unlocked achievement list of user stats.
type AchievementSlice []domain.Achievement

func (s AchievementSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *AchievementSlice) Scan(value interface{}) error {
	*s = AchievementSlice{}
	return jsonScan(s, value)
}

// StringSlice stores a plain string list as JSON text.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return jsonScan(s, value)
}
