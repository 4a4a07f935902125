package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
)

// ErrDuplicateID возвращается, если две записи одного типа имеют одинаковый ID.
var ErrDuplicateID = errors.New("catalog: повторяющийся идентификатор записи")

// recordNamespace - пространство имён для детерминированных ID записей.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://localhire.ng/records"))

// RecordID возвращает стабильный ID записи по типу и ключу.
func RecordID(kind models.RecordKind, key string) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte(string(kind)+":"+strings.ToLower(strings.TrimSpace(key))))
}

// Options - значения для выпадающих списков фильтров.
type Options struct {
	Categories []models.Option `json:"categories"`
	Locations  []models.Option `json:"locations"`
}

// Store - неизменяемый набор записей каталога.
// Создаётся один раз при старте и передаётся в обработчики явно.
type Store struct {
	jobs     []models.Job
	artisans []models.Artisan
	products []models.Product

	jobIdx     map[uuid.UUID]int
	artisanIdx map[uuid.UUID]int
	productIdx map[uuid.UUID]int

	options Options
}

// NewStore копирует записи, проверяет уникальность ID и строит индексы.
// Совпадающие названия не считаются ошибкой, но попадают в лог.
func NewStore(jobs []models.Job, artisans []models.Artisan, products []models.Product, options Options) (*Store, error) {
	s := &Store{
		jobs:     make([]models.Job, 0, len(jobs)),
		artisans: make([]models.Artisan, 0, len(artisans)),
		products: make([]models.Product, 0, len(products)),
		options:  options,
	}

	var err error
	if s.jobIdx, err = index(models.KindJob, jobs, func(j models.Job) (uuid.UUID, string) { return j.ID, j.Title }); err != nil {
		return nil, err
	}
	if s.artisanIdx, err = index(models.KindArtisan, artisans, func(a models.Artisan) (uuid.UUID, string) { return a.ID, a.Name }); err != nil {
		return nil, err
	}
	if s.productIdx, err = index(models.KindProduct, products, func(p models.Product) (uuid.UUID, string) { return p.ID, p.Title }); err != nil {
		return nil, err
	}

	for _, j := range jobs {
		s.jobs = append(s.jobs, cloneJob(j))
	}
	for _, a := range artisans {
		s.artisans = append(s.artisans, cloneArtisan(a))
	}
	for _, p := range products {
		s.products = append(s.products, cloneProduct(p))
	}

	return s, nil
}

// index строит индекс по ID и проверяет дубликаты.
func index[T any](kind models.RecordKind, items []T, key func(T) (uuid.UUID, string)) (map[uuid.UUID]int, error) {
	idx := make(map[uuid.UUID]int, len(items))
	names := make(map[string]struct{}, len(items))

	for i, item := range items {
		id, name := key(item)
		if id == uuid.Nil {
			return nil, fmt.Errorf("catalog: у записи %s %q нет идентификатора", kind, name)
		}
		if _, exists := idx[id]; exists {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id)
		}
		idx[id] = i

		lowered := strings.ToLower(name)
		if _, exists := names[lowered]; exists && logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"kind": kind,
				"name": name,
			}).Warn("catalog: две записи с одинаковым названием")
		}
		names[lowered] = struct{}{}
	}

	return idx, nil
}

// Jobs возвращает копию всех вакансий.
func (s *Store) Jobs() []models.Job {
	out := make([]models.Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = cloneJob(j)
	}
	return out
}

// Artisans возвращает копию всех мастеров.
func (s *Store) Artisans() []models.Artisan {
	out := make([]models.Artisan, len(s.artisans))
	for i, a := range s.artisans {
		out[i] = cloneArtisan(a)
	}
	return out
}

// Products возвращает копию всех товаров.
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// JobByID ищет вакансию по ID.
func (s *Store) JobByID(id uuid.UUID) (models.Job, error) {
	i, ok := s.jobIdx[id]
	if !ok {
		return models.Job{}, apperror.ErrJobNotFound
	}
	return cloneJob(s.jobs[i]), nil
}

// ArtisanByID ищет мастера по ID.
func (s *Store) ArtisanByID(id uuid.UUID) (models.Artisan, error) {
	i, ok := s.artisanIdx[id]
	if !ok {
		return models.Artisan{}, apperror.ErrArtisanNotFound
	}
	return cloneArtisan(s.artisans[i]), nil
}

// ProductByID ищет товар по ID.
func (s *Store) ProductByID(id uuid.UUID) (models.Product, error) {
	i, ok := s.productIdx[id]
	if !ok {
		return models.Product{}, apperror.ErrProductNotFound
	}
	return cloneProduct(s.products[i]), nil
}

// Options возвращает значения для фильтров.
func (s *Store) Options() Options {
	return Options{
		Categories: slices.Clone(s.options.Categories),
		Locations:  slices.Clone(s.options.Locations),
	}
}

func cloneJob(j models.Job) models.Job {
	j.Skills = slices.Clone(j.Skills)
	j.Image = cloneString(j.Image)
	return j
}

func cloneArtisan(a models.Artisan) models.Artisan {
	a.Skills = slices.Clone(a.Skills)
	a.Image = cloneString(a.Image)
	return a
}

func cloneProduct(p models.Product) models.Product {
	p.Image = cloneString(p.Image)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
