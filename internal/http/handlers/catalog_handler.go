package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/localhire/internal/catalog"
	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/http/handlers/common"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
)

// PageSizes задаёт размеры страниц списков.
type PageSizes struct {
	Jobs     int
	Artisans int
	Products int
}

// Pipelines - пайплайны запросов по всем трём спискам.
type Pipelines struct {
	Jobs     *query.Pipeline[models.Job]
	Artisans *query.Pipeline[models.Artisan]
	Products *query.Pipeline[models.Product]
}

// NewPipelines строит пайплайны поверх каталога.
func NewPipelines(store *catalog.Store, sizes PageSizes) Pipelines {
	return Pipelines{
		Jobs:     query.NewPipeline(store.Jobs(), query.JobSpec(sizes.Jobs)),
		Artisans: query.NewPipeline(store.Artisans(), query.ArtisanSpec(sizes.Artisans)),
		Products: query.NewPipeline(store.Products(), query.ProductSpec(sizes.Products)),
	}
}

type CatalogHandler struct {
	store     *catalog.Store
	pipelines Pipelines
	now       func() time.Time
}

func NewCatalogHandler(store *catalog.Store, pipelines Pipelines) *CatalogHandler {
	return &CatalogHandler{store: store, pipelines: pipelines, now: time.Now}
}

// Options GET /api/catalog/options
func (h *CatalogHandler) Options(c *gin.Context) {
	opts := h.store.Options()
	c.JSON(http.StatusOK, dto.OptionsResponse{
		Categories: opts.Categories,
		Locations:  opts.Locations,
		ArtisanSorts: []models.Option{
			{Value: string(query.SortRating), Label: "Top Rated"},
			{Value: string(query.SortName), Label: "Name"},
		},
		ProductSorts: []models.Option{
			{Value: string(query.SortNewest), Label: "Newest"},
			{Value: string(query.SortPrice), Label: "Price: Low to High"},
		},
	})
}

// ListJobs GET /api/jobs
func (h *CatalogHandler) ListJobs(c *gin.Context) {
	state, ok := listState(c)
	if !ok {
		return
	}
	p := h.pipelines.Jobs
	c.JSON(http.StatusOK, dto.NewJobList(p.Run(p.Normalize(state))))
}

// GetJob GET /api/jobs/:id
func (h *CatalogHandler) GetJob(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	job, err := h.store.JobByID(id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListArtisans GET /api/artisans
func (h *CatalogHandler) ListArtisans(c *gin.Context) {
	state, ok := listState(c)
	if !ok {
		return
	}
	p := h.pipelines.Artisans
	c.JSON(http.StatusOK, dto.NewArtisanList(p.Run(p.Normalize(state))))
}

// FeaturedArtisans GET /api/artisans/featured
func (h *CatalogHandler) FeaturedArtisans(c *gin.Context) {
	top := query.TopRated(h.store.Artisans(), models.TopRatedThreshold, models.FeaturedLimit)
	views := make([]dto.ArtisanView, 0, len(top))
	for _, a := range top {
		views = append(views, dto.NewArtisanView(a))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

// GetArtisan GET /api/artisans/:id
func (h *CatalogHandler) GetArtisan(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	artisan, err := h.store.ArtisanByID(id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArtisanView(artisan))
}

// ListProducts GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	state, ok := listState(c)
	if !ok {
		return
	}
	p := h.pipelines.Products
	c.JSON(http.StatusOK, dto.NewProductList(p.Run(p.Normalize(state)), h.now()))
}

// FeaturedProducts GET /api/products/featured
func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	now := h.now()
	featured := query.FirstN(h.store.Products(), models.FeaturedLimit)
	views := make([]dto.ProductView, 0, len(featured))
	for _, p := range featured {
		views = append(views, dto.NewProductView(p, now))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

// GetProduct GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	product, err := h.store.ProductByID(id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductView(product, h.now()))
}

func listState(c *gin.Context) (query.State, bool) {
	var q dto.ListQuery
	if err := common.BindQuery(c, &q); err != nil {
		common.Fail(c, err)
		return query.State{}, false
	}
	return q.ToState(), true
}
