package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
	"github.com/ignatzorin/localhire/internal/storage"
	"github.com/ignatzorin/localhire/internal/validation"
)

// WaitlistWelcomeMessage показывается после успешной записи в лист ожидания.
const WaitlistWelcomeMessage = "Welcome aboard! You're now on our exclusive waitlist."

// CatalogReader - то, что сервису нужно от каталога.
type CatalogReader interface {
	JobByID(id uuid.UUID) (models.Job, error)
	ArtisanByID(id uuid.UUID) (models.Artisan, error)
	ProductByID(id uuid.UUID) (models.Product, error)
}

// FileStore сохраняет вложения к заявкам.
type FileStore interface {
	Save(ctx context.Context, group string, originalName string, r io.Reader, policy storage.Policy) (*models.UploadedFile, error)
	Delete(ctx context.Context, relativePath string) error
}

// Upload - файл из multipart-формы.
type Upload struct {
	Name   string
	Reader io.Reader
}

// SubmissionOptions настраивает доставку заявок.
type SubmissionOptions struct {
	// Timeout ограничивает одну попытку доставки.
	Timeout time.Duration
	// WaitlistDelay - пауза перед записью в лист ожидания.
	WaitlistDelay time.Duration
}

// SubmissionService принимает заявки с форм и доставляет их получателю.
// Каждая попытка ограничена таймаутом; временная ошибка повторяется один раз.
type SubmissionService struct {
	catalog  CatalogReader
	files    FileStore
	sender   Sender
	opts     SubmissionOptions
	inflight singleflight.Group
	now      func() time.Time
	log      *logrus.Entry

	mu      sync.Mutex
	flights map[string]*waitlistFlight
}

// waitlistFlight - общий контекст одной записи в лист ожидания.
// Отменяется, когда уходит последний ожидающий вызов.
type waitlistFlight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewSubmissionService создаёт сервис заявок.
func NewSubmissionService(catalog CatalogReader, files FileStore, sender Sender, opts SubmissionOptions) *SubmissionService {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &SubmissionService{
		catalog: catalog,
		files:   files,
		sender:  sender,
		opts:    opts,
		now:     time.Now,
		log:     logger.Component("submission_service"),
		flights: make(map[string]*waitlistFlight),
	}
}

// SubmitHireRequest отправляет запрос на найм мастера.
func (s *SubmissionService) SubmitHireRequest(ctx context.Context, req models.HireRequest) (*models.SubmissionResult, error) {
	artisan, err := s.catalog.ArtisanByID(req.ArtisanID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateContact(req.Contact, validation.ContactRules{RequirePhone: true}); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("project_details", req.ProjectDetails, validation.MaxDescriptionLength); err != nil {
		return nil, err
	}

	sub := s.envelope(models.SubmissionHireRequest, &artisan.ID, req)
	if err := s.deliver(ctx, sub); err != nil {
		return nil, err
	}
	return result(sub, fmt.Sprintf("Hire request for %s submitted!", artisan.Name)), nil
}

// SubmitApplication отправляет отклик на вакансию. Резюме обязательно.
func (s *SubmissionService) SubmitApplication(ctx context.Context, app models.Application, resume *Upload) (*models.SubmissionResult, error) {
	job, err := s.catalog.JobByID(app.JobID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateContact(app.Contact, validation.ContactRules{}); err != nil {
		return nil, err
	}
	if resume == nil || resume.Reader == nil {
		return nil, apperror.ErrResumeRequired
	}

	file, err := s.files.Save(ctx, "resumes", resume.Name, resume.Reader, storage.ResumePolicy)
	if err != nil {
		return nil, err
	}
	app.Resume = file

	sub := s.envelope(models.SubmissionApplication, &job.ID, app)
	if err := s.deliver(ctx, sub); err != nil {
		s.discard(file)
		return nil, err
	}
	return result(sub, fmt.Sprintf("Application for %s submitted!", job.Title)), nil
}

// SubmitProductPurchase оформляет покупку товара.
func (s *SubmissionService) SubmitProductPurchase(ctx context.Context, p models.Purchase) (*models.SubmissionResult, error) {
	product, err := s.catalog.ProductByID(p.ProductID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateContact(p.Buyer, validation.ContactRules{}); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("shipping_address", p.ShippingAddress, validation.MaxAddressLength); err != nil {
		return nil, err
	}
	if err := validation.ValidatePaymentMethod(p.PaymentMethod); err != nil {
		return nil, err
	}

	sub := s.envelope(models.SubmissionPurchase, &product.ID, p)
	if err := s.deliver(ctx, sub); err != nil {
		return nil, err
	}
	return result(sub, fmt.Sprintf("Purchase of %s confirmed!", product.Title)), nil
}

// SubmitJobPosting публикует вакансию. Картинка необязательна.
// Каталог не меняется: заявка только доставляется получателю.
func (s *SubmissionService) SubmitJobPosting(ctx context.Context, posting models.JobPosting, image *Upload) (*models.SubmissionResult, error) {
	if err := validation.ValidateContact(posting.Poster, validation.ContactRules{RequireCompany: true}); err != nil {
		return nil, err
	}
	job := posting.Job
	for _, check := range []struct {
		field, value string
		max          int
	}{
		{"title", job.Title, validation.MaxTitleLength},
		{"category", job.Category, validation.MaxTitleLength},
		{"location", job.Location, validation.MaxLocationLength},
		{"salary", job.Salary, validation.MaxTitleLength},
		{"description", job.Description, validation.MaxDescriptionLength},
	} {
		if err := validation.ValidateRequiredText(check.field, check.value, check.max); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateSkills(job.Skills); err != nil {
		return nil, err
	}

	posting.Job.ID = uuid.New()
	file, err := s.saveOptional(ctx, "jobs", image)
	if err != nil {
		return nil, err
	}
	posting.Image = file

	sub := s.envelope(models.SubmissionJobPosting, nil, posting)
	if err := s.deliver(ctx, sub); err != nil {
		s.discard(file)
		return nil, err
	}
	return result(sub, "Job posted successfully!"), nil
}

// SubmitProductPosting публикует товар. Картинка необязательна.
func (s *SubmissionService) SubmitProductPosting(ctx context.Context, posting models.ProductPosting, image *Upload) (*models.SubmissionResult, error) {
	if err := validation.ValidateContact(posting.Poster, validation.ContactRules{RequirePhone: true}); err != nil {
		return nil, err
	}
	product := posting.Product
	for _, check := range []struct {
		field, value string
		max          int
	}{
		{"title", product.Title, validation.MaxTitleLength},
		{"category", product.Category, validation.MaxTitleLength},
		{"location", product.Location, validation.MaxLocationLength},
		{"price", product.Price, validation.MaxTitleLength},
		{"description", product.Description, validation.MaxDescriptionLength},
	} {
		if err := validation.ValidateRequiredText(check.field, check.value, check.max); err != nil {
			return nil, err
		}
	}

	posting.Product.ID = uuid.New()
	posting.Product.CreatedAt = s.now().UTC()
	file, err := s.saveOptional(ctx, "products", image)
	if err != nil {
		return nil, err
	}
	posting.Image = file

	sub := s.envelope(models.SubmissionProductPosting, nil, posting)
	if err := s.deliver(ctx, sub); err != nil {
		s.discard(file)
		return nil, err
	}
	return result(sub, "Product posted successfully!"), nil
}

// SubmitWaitlistSignup записывает email в лист ожидания.
// Повторная отправка того же email с тем же типом, пока первая ещё
// выполняется, не создаёт вторую заявку и получает тот же результат.
// Отмена одного вызова не прерывает запись для остальных.
func (s *SubmissionService) SubmitWaitlistSignup(ctx context.Context, email, userType string) (*models.SubmissionResult, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if userType == "" {
		userType = models.UserTypeWorker
	}
	if err := validation.ValidateUserType(userType); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, failure(err)
	}

	email = strings.ToLower(email)
	key := email + "|" + userType
	flightCtx, leave := s.joinWaitlist(ctx, key)
	defer leave()

	ch := s.inflight.DoChan(key, func() (any, error) {
		if err := sleepContext(flightCtx, s.opts.WaitlistDelay); err != nil {
			return nil, failure(err)
		}

		signup := models.WaitlistSignup{Email: email, UserType: userType}
		sub := s.envelope(models.SubmissionWaitlist, nil, signup)
		if err := s.deliver(flightCtx, sub); err != nil {
			return nil, err
		}
		return result(sub, WaitlistWelcomeMessage), nil
	})

	select {
	case <-ctx.Done():
		return nil, failure(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.SubmissionResult), nil
	}
}

// joinWaitlist возвращает общий контекст записи по ключу и функцию выхода.
// Контекст не зависит от отмены отдельного вызова и ограничен по времени
// паузой и двумя попытками доставки.
func (s *SubmissionService) joinWaitlist(ctx context.Context, key string) (context.Context, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[key]
	if !ok {
		limit := s.opts.WaitlistDelay + 2*s.opts.Timeout
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), limit)
		f = &waitlistFlight{ctx: flightCtx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++

	return f.ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		f.waiters--
		if f.waiters > 0 {
			return
		}
		f.cancel()
		if s.flights[key] == f {
			delete(s.flights, key)
			s.inflight.Forget(key)
		}
	}
}

// deliver отправляет заявку: таймаут на попытку, один повтор при временной ошибке.
func (s *SubmissionService) deliver(ctx context.Context, sub *models.Submission) error {
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		err := s.sender.Send(attemptCtx, sub)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		s.log.WithFields(logrus.Fields{
			"submission_id": sub.ID,
			"kind":          sub.Kind,
			"attempt":       attempt,
		}).WithError(err).Warn("submission attempt failed")

		if ctx.Err() != nil || !isTransient(err) {
			break
		}
	}

	return failure(lastErr)
}

// failure переводит окончательный сбой доставки в ошибку для пользователя:
// истёкший срок даёт TIMEOUT, всё остальное, включая отмену, UNAVAILABLE.
func failure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(err, apperror.ErrCodeTimeout, apperror.SubmitFailedMessage)
	}
	return apperror.Wrap(err, apperror.ErrCodeUnavailable, apperror.SubmitFailedMessage)
}

func (s *SubmissionService) envelope(kind models.SubmissionKind, target *uuid.UUID, payload any) *models.Submission {
	return &models.Submission{
		ID:        uuid.New(),
		Kind:      kind,
		TargetID:  target,
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	}
}

func (s *SubmissionService) saveOptional(ctx context.Context, group string, upload *Upload) (*models.UploadedFile, error) {
	if upload == nil || upload.Reader == nil {
		return nil, nil
	}
	return s.files.Save(ctx, group, upload.Name, upload.Reader, storage.ImagePolicy)
}

// discard удаляет вложение заявки, которую не удалось доставить.
func (s *SubmissionService) discard(file *models.UploadedFile) {
	if file == nil {
		return
	}
	if err := s.files.Delete(context.Background(), file.FilePath); err != nil {
		s.log.WithError(err).WithField("path", file.FilePath).Warn("не удалось удалить вложение")
	}
}

func isTransient(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}

func result(sub *models.Submission, message string) *models.SubmissionResult {
	return &models.SubmissionResult{
		ID:      sub.ID,
		Kind:    sub.Kind,
		Status:  models.SubmissionStatusDelivered,
		Message: message,
	}
}

// sleepContext ждёт d или отмены контекста.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
