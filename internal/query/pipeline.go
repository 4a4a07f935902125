package query

import (
	"slices"

	"github.com/ignatzorin/localhire/internal/models"
)

// NoResultsMessage показывается вместо пустой страницы.
const NoResultsMessage = "No records match your search. Try adjusting the filters."

// Spec описывает, как фильтровать, сортировать и делить на страницы записи одного типа.
type Spec[T any] struct {
	PageSize    int
	DefaultSort SortKey
	Sorts       []SortKey
	Match       func(T, Filter) bool
	Sort        SortFunc[T]
}

// Result - готовая к отображению страница выдачи.
type Result[T any] struct {
	Items      []T     `json:"items"`
	Filter     Filter  `json:"filter"`
	Sort       SortKey `json:"sort,omitempty"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Total      int     `json:"total"`
	HasPrev    bool    `json:"has_prev"`
	HasNext    bool    `json:"has_next"`
	Message    string  `json:"message,omitempty"`
}

// Pipeline связывает неизменяемый набор записей с правилами запроса.
// Все методы чистые и безопасны для конкурентного использования.
type Pipeline[T any] struct {
	records []T
	spec    Spec[T]
}

// NewPipeline создаёт пайплайн поверх копии записей.
func NewPipeline[T any](records []T, spec Spec[T]) *Pipeline[T] {
	if spec.PageSize <= 0 {
		spec.PageSize = DefaultArtisansPageSize
	}
	if spec.Sort == nil {
		spec.Sort = func(items []T, _ SortKey) []T { return slices.Clone(items) }
	}
	return &Pipeline[T]{records: slices.Clone(records), spec: spec}
}

// Initial возвращает начальное состояние для этого типа записей.
func (p *Pipeline[T]) Initial() State {
	return NewState(p.spec.DefaultSort)
}

// PageSize возвращает размер страницы.
func (p *Pipeline[T]) PageSize() int {
	return p.spec.PageSize
}

// ResolveSort возвращает поддерживаемый ключ сортировки или ключ по умолчанию.
func (p *Pipeline[T]) ResolveSort(key SortKey) SortKey {
	if slices.Contains(p.spec.Sorts, key) {
		return key
	}
	return p.spec.DefaultSort
}

// Filtered возвращает записи, прошедшие все активные фильтры, в исходном порядке.
func (p *Pipeline[T]) Filtered(f Filter) []T {
	f = f.Normalize()
	out := make([]T, 0, len(p.records))
	for _, r := range p.records {
		if p.spec.Match == nil || p.spec.Match(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// TotalPages возвращает число страниц для фильтров состояния.
func (p *Pipeline[T]) TotalPages(s State) int {
	return TotalPages(len(p.Filtered(s.Filter)), p.spec.PageSize)
}

// Reduce применяет действие с учётом числа страниц после его применения к фильтрам.
func (p *Pipeline[T]) Reduce(s State, a Action) State {
	next := Reduce(s, a, p.spec.DefaultSort, p.TotalPages(s))
	next.Sort = p.ResolveSort(next.Sort)
	return next
}

// Normalize приводит состояние к допустимому: известная сортировка,
// страница в пределах [1, totalPages].
func (p *Pipeline[T]) Normalize(s State) State {
	s.Filter = s.Filter.Normalize()
	s.Sort = p.ResolveSort(s.Sort)
	total := p.TotalPages(s)
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Page > total {
		s.Page = total
	}
	return s
}

// Run синхронно пересчитывает выдачу: фильтр, сортировка, страница.
// Страница вне [1, TotalPages] прижимается к ближайшей границе.
func (p *Pipeline[T]) Run(s State) Result[T] {
	s.Sort = p.ResolveSort(s.Sort)
	filtered := p.Filtered(s.Filter)
	ordered := p.spec.Sort(filtered, s.Sort)
	totalPages := TotalPages(len(ordered), p.spec.PageSize)
	s.Page = min(max(s.Page, 1), totalPages)

	res := Result[T]{
		Items:      Paginate(ordered, p.spec.PageSize, s.Page),
		Filter:     s.Filter.Normalize(),
		Sort:       s.Sort,
		Page:       s.Page,
		PageSize:   p.spec.PageSize,
		TotalPages: totalPages,
		Total:      len(ordered),
		HasPrev:    s.Page > 1,
		HasNext:    s.Page < totalPages,
	}
	if res.Total == 0 {
		res.Message = NoResultsMessage
	}
	return res
}

// All возвращает копию всех записей без фильтрации.
func (p *Pipeline[T]) All() []T {
	return slices.Clone(p.records)
}

// JobSpec - правила для страницы вакансий: без выбора сортировки.
func JobSpec(pageSize int) Spec[models.Job] {
	return Spec[models.Job]{
		PageSize: orDefault(pageSize, DefaultJobsPageSize),
		Match:    MatchJob,
		Sort:     SortJobs,
	}
}

// ArtisanSpec - правила для страницы мастеров.
func ArtisanSpec(pageSize int) Spec[models.Artisan] {
	return Spec[models.Artisan]{
		PageSize:    orDefault(pageSize, DefaultArtisansPageSize),
		DefaultSort: SortRating,
		Sorts:       []SortKey{SortRating, SortName},
		Match:       MatchArtisan,
		Sort:        SortArtisans,
	}
}

// ProductSpec - правила для маркетплейса.
func ProductSpec(pageSize int) Spec[models.Product] {
	return Spec[models.Product]{
		PageSize:    orDefault(pageSize, DefaultProductsPageSize),
		DefaultSort: SortNewest,
		Sorts:       []SortKey{SortNewest, SortPrice},
		Match:       MatchProduct,
		Sort:        SortProducts,
	}
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
