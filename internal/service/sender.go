package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/models"
)

// ErrTransient помечает ошибку доставки, после которой имеет смысл повторить попытку.
var ErrTransient = errors.New("submission: временная ошибка доставки")

// Sender доставляет заявку получателю (база, очередь, внешний сервис).
type Sender interface {
	Send(ctx context.Context, sub *models.Submission) error
}

// SenderFunc позволяет использовать функцию как Sender.
type SenderFunc func(ctx context.Context, sub *models.Submission) error

func (f SenderFunc) Send(ctx context.Context, sub *models.Submission) error {
	return f(ctx, sub)
}

// LogSender пишет каждую заявку в структурированный лог и, если задан,
// передаёт её следующему получателю.
type LogSender struct {
	next Sender
	log  *logrus.Entry
}

// NewLogSender создаёт логирующий sender. next может быть nil.
func NewLogSender(next Sender) *LogSender {
	return &LogSender{next: next, log: logger.Component("submissions")}
}

func (s *LogSender) Send(ctx context.Context, sub *models.Submission) error {
	entry := s.log.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"kind":          sub.Kind,
		"payload":       sub.Payload,
	})
	if sub.TargetID != nil {
		entry = entry.WithField("target_id", *sub.TargetID)
	}

	if s.next == nil {
		entry.Info("submission received")
		return nil
	}

	if err := s.next.Send(ctx, sub); err != nil {
		entry.WithError(err).Warn("submission delivery failed")
		return err
	}
	entry.Info("submission delivered")
	return nil
}
