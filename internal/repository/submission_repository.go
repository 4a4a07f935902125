package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/service"
)

// SubmissionRepository сохраняет заявки с форм в PostgreSQL.
type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Send сохраняет заявку. Реализует service.Sender.
func (r *SubmissionRepository) Send(ctx context.Context, sub *models.Submission) error {
	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return fmt.Errorf("submission: не удалось сериализовать payload: %w", err)
	}

	query := `
		INSERT INTO submissions (id, kind, target_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.ExecContext(ctx, query, sub.ID, sub.Kind, sub.TargetID, payload, sub.CreatedAt)
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify помечает сетевые ошибки и ошибки PostgreSQL классов 08 и 40 как временные.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "40":
			return fmt.Errorf("%w: %v", service.ErrTransient, err)
		}
		return fmt.Errorf("submission: ошибка базы данных: %w", err)
	}
	return fmt.Errorf("%w: %v", service.ErrTransient, err)
}
