package dto

import (
	"time"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
)

// ArtisanView represents an artisan card
type ArtisanView struct {
	models.Artisan
	TopRated bool `json:"top_rated"`
}

func NewArtisanView(a models.Artisan) ArtisanView {
	return ArtisanView{Artisan: a, TopRated: query.IsTopRated(a)}
}

// ProductView represents a product card
type ProductView struct {
	models.Product
	IsNew bool `json:"is_new"`
}

// NewProductView отмечает товар как новый, если он добавлен не раньше недели назад.
func NewProductView(p models.Product, now time.Time) ProductView {
	age := now.Sub(p.CreatedAt)
	return ProductView{Product: p, IsNew: age >= 0 && age <= models.NewProductWindow}
}

// Pagination represents page metadata
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// ListResponse represents one page of a list
type ListResponse[V any] struct {
	Items      []V           `json:"items"`
	Filter     query.Filter  `json:"filter"`
	Sort       query.SortKey `json:"sort,omitempty"`
	Pagination Pagination    `json:"pagination"`
	Message    string        `json:"message,omitempty"`
}

func newListResponse[T, V any](res query.Result[T], view func(T) V) ListResponse[V] {
	items := make([]V, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, view(item))
	}
	return ListResponse[V]{
		Items:  items,
		Filter: res.Filter,
		Sort:   res.Sort,
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   res.PageSize,
			TotalPages: res.TotalPages,
			Total:      res.Total,
			HasPrev:    res.HasPrev,
			HasNext:    res.HasNext,
		},
		Message: res.Message,
	}
}

func NewJobList(res query.Result[models.Job]) ListResponse[models.Job] {
	return newListResponse(res, func(j models.Job) models.Job { return j })
}

func NewArtisanList(res query.Result[models.Artisan]) ListResponse[ArtisanView] {
	return newListResponse(res, NewArtisanView)
}

func NewProductList(res query.Result[models.Product], now time.Time) ListResponse[ProductView] {
	return newListResponse(res, func(p models.Product) ProductView { return NewProductView(p, now) })
}

// OptionsResponse represents filter dropdown options
type OptionsResponse struct {
	Categories   []models.Option `json:"categories"`
	Locations    []models.Option `json:"locations"`
	ArtisanSorts []models.Option `json:"artisan_sorts"`
	ProductSorts []models.Option `json:"product_sorts"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}
