package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/localhire/internal/catalog"
	"github.com/ignatzorin/localhire/internal/config"
	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/http/handlers"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
	"github.com/ignatzorin/localhire/internal/service"
	"github.com/ignatzorin/localhire/internal/storage"
	"github.com/ignatzorin/localhire/internal/ws"
)

type testEnv struct {
	router    *gin.Engine
	store     *catalog.Store
	delivered *atomic.Int32
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:              "test",
		MediaStoragePath: t.TempDir(),
		MaxUploadSizeMB:  5,
		RateLimitLimit:   100,
		RateLimitPeriod:  time.Minute,
	}

	store, err := catalog.NewDefaultStore()
	require.NoError(t, err)
	files, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	require.NoError(t, err)

	delivered := new(atomic.Int32)
	sender := service.SenderFunc(func(ctx context.Context, sub *models.Submission) error {
		delivered.Add(1)
		return nil
	})
	submissions := service.NewSubmissionService(store, files, sender, service.SubmissionOptions{Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub()
	go hub.Run(ctx)

	pipelines := handlers.NewPipelines(store, handlers.PageSizes{Jobs: 3, Artisans: 6, Products: 6})
	r := SetupRouter(cfg, Handlers{
		Health:      handlers.NewHealthHandler(nil, store),
		Catalog:     handlers.NewCatalogHandler(store, pipelines),
		Submissions: handlers.NewSubmissionHandler(submissions),
		Live:        handlers.NewLiveHandler(hub, pipelines, nil),
	})

	return &testEnv{router: r, store: store, delivered: delivered}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode[handlers.HealthResponse](t, w)
	assert.Equal(t, "disabled", body.Checks["database"])
	assert.Equal(t, "healthy", body.Checks["catalog"])
}

func TestListArtisans_LagosByRating(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/api/artisans?location=lagos")
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[dto.ListResponse[dto.ArtisanView]](t, w)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Amaka Nwosu", list.Items[0].Name)
	assert.Equal(t, "Susana Elijah Archibong", list.Items[1].Name)
	assert.True(t, list.Items[0].TopRated)
	assert.True(t, list.Items[1].TopRated)
	assert.Equal(t, query.SortRating, list.Sort)
}

func TestListArtisans_SortByName(t *testing.T) {
	env := newTestEnv(t)

	list := decode[dto.ListResponse[dto.ArtisanView]](t, env.get("/api/artisans?sort=name"))

	var names []string
	for _, a := range list.Items {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"Amaka Nwosu",
		"Ikenna Kenneth",
		"Josephine Grace Owuama",
		"Samuel Udoakah",
		"Susana Elijah Archibong",
	}, names)
}

func TestListJobs(t *testing.T) {
	env := newTestEnv(t)

	t.Run("навык не фильтрует вакансии", func(t *testing.T) {
		list := decode[dto.ListResponse[models.Job]](t, env.get("/api/jobs?skill=underwater+welding"))
		assert.Equal(t, 5, list.Pagination.Total)
		assert.Len(t, list.Items, 3)
		assert.Empty(t, list.Message)
	})

	t.Run("поиск без совпадений", func(t *testing.T) {
		list := decode[dto.ListResponse[models.Job]](t, env.get("/api/jobs?q=underwater+welding"))
		assert.Empty(t, list.Items)
		assert.Equal(t, query.NoResultsMessage, list.Message)
	})

	t.Run("страница за пределами", func(t *testing.T) {
		list := decode[dto.ListResponse[models.Job]](t, env.get("/api/jobs?page=99"))
		assert.Equal(t, 2, list.Pagination.TotalPages)
		assert.Equal(t, 2, list.Pagination.Page)
		assert.Len(t, list.Items, 2)
		assert.False(t, list.Pagination.HasNext)
	})

	t.Run("нечисловая страница", func(t *testing.T) {
		w := env.get("/api/jobs?page=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("поиск", func(t *testing.T) {
		list := decode[dto.ListResponse[models.Job]](t, env.get("/api/jobs?q=FASHION"))
		assert.Equal(t, 2, list.Pagination.Total)
	})
}

func TestListProducts_SortByPrice(t *testing.T) {
	env := newTestEnv(t)

	list := decode[dto.ListResponse[dto.ProductView]](t, env.get("/api/products?sort=price"))
	require.Len(t, list.Items, 5)

	prev := -1.0
	for _, p := range list.Items {
		price, ok := query.ParsePrice(p.Price)
		require.True(t, ok)
		assert.GreaterOrEqual(t, price, prev)
		prev = price
	}
}

func TestFeatured(t *testing.T) {
	env := newTestEnv(t)

	artisans := decode[struct {
		Items []dto.ArtisanView `json:"items"`
	}](t, env.get("/api/artisans/featured"))
	require.Len(t, artisans.Items, 3)
	assert.Equal(t, "Ikenna Kenneth", artisans.Items[0].Name)
	assert.Equal(t, "Susana Elijah Archibong", artisans.Items[1].Name)
	assert.Equal(t, "Samuel Udoakah", artisans.Items[2].Name)

	products := decode[struct {
		Items []dto.ProductView `json:"items"`
	}](t, env.get("/api/products/featured"))
	require.Len(t, products.Items, 3)
	assert.Equal(t, "Handmade Dress", products.Items[0].Title)
}

func TestGetByID(t *testing.T) {
	env := newTestEnv(t)
	artisan := env.store.Artisans()[4]

	w := env.get("/api/artisans/" + artisan.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amaka Nwosu", decode[dto.ArtisanView](t, w).Name)

	assert.Equal(t, http.StatusNotFound, env.get("/api/jobs/"+artisan.ID.String()).Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/api/products/not-a-uuid").Code)
}

func TestCatalogOptions(t *testing.T) {
	env := newTestEnv(t)

	opts := decode[dto.OptionsResponse](t, env.get("/api/catalog/options"))
	assert.Len(t, opts.Categories, 3)
	assert.Len(t, opts.Locations, 4)
	assert.Len(t, opts.ArtisanSorts, 2)
}

func TestHireArtisan(t *testing.T) {
	env := newTestEnv(t)
	artisan := env.store.Artisans()[0]

	w := env.postJSON("/api/artisans/"+artisan.ID.String()+"/hire", dto.HireRequestBody{
		Name:           "Tunde Bakare",
		Email:          "tunde@example.com",
		Phone:          "08012345678",
		ProjectDetails: "Agbada for a wedding",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	res := decode[models.SubmissionResult](t, w)
	assert.Equal(t, "Hire request for Ikenna Kenneth submitted!", res.Message)
	assert.Equal(t, int32(1), env.delivered.Load())

	w = env.postJSON("/api/artisans/"+artisan.ID.String()+"/hire", dto.HireRequestBody{Name: "Tunde"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(1), env.delivered.Load())
}

func TestJoinWaitlist(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/api/waitlist", dto.WaitlistRequestBody{Email: "ada@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Welcome aboard! You're now on our exclusive waitlist.", decode[models.SubmissionResult](t, w).Message)

	w = env.postJSON("/api/waitlist", dto.WaitlistRequestBody{Email: "ada@"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid email address", decode[dto.ErrorResponse](t, w).Error)
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestApplyToJob(t *testing.T) {
	env := newTestEnv(t)
	job := env.store.Jobs()[1]
	path := "/api/jobs/" + job.ID.String() + "/applications"
	fields := map[string]string{"name": "Ngozi Eze", "email": "ngozi@example.com"}

	t.Run("без резюме", func(t *testing.T) {
		w := env.do(multipartRequest(t, path, fields, "", "", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, "Please upload a resume.", body.Error)
		assert.Equal(t, "MISSING_FILE", body.Code)
	})

	t.Run("резюме не того типа", func(t *testing.T) {
		w := env.do(multipartRequest(t, path, fields, "resume", "cv.pdf", []byte("just text")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("успех", func(t *testing.T) {
		w := env.do(multipartRequest(t, path, fields, "resume", "cv.pdf", []byte("%PDF-1.4\n1 0 obj\n")))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Application for Hospitality Manager submitted!", decode[models.SubmissionResult](t, w).Message)
	})
}

func TestPostJob(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/jobs", map[string]string{
		"company_name": "Eko Hotels",
		"contact_name": "Femi Ade",
		"email":        "femi@ekohotels.com",
		"title":        "Front Desk Officer",
		"category":     "Hospitality",
		"location":     "Lagos",
		"salary":       "₦120,000/month",
		"description":  "Welcome guests.",
		"skills":       "Customer Service, Communication",
	}, "", "", nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Job posted successfully!", decode[models.SubmissionResult](t, w).Message)

	// каталог не меняется
	list := decode[dto.ListResponse[models.Job]](t, env.get("/api/jobs"))
	assert.Equal(t, 5, list.Pagination.Total)
}

func TestLiveSession(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live/artisans"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	type resultMessage struct {
		Type string                            `json:"type"`
		Data dto.ListResponse[dto.ArtisanView] `json:"data"`
	}

	var initial resultMessage
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, ws.EventResult, initial.Type)
	assert.Len(t, initial.Data.Items, 5)

	require.NoError(t, conn.WriteJSON(query.Action{Type: query.ActionSetLocation, Value: "Lagos"}))
	var filtered resultMessage
	require.NoError(t, conn.ReadJSON(&filtered))
	require.Len(t, filtered.Data.Items, 2)
	assert.Equal(t, "Amaka Nwosu", filtered.Data.Items[0].Name)

	require.NoError(t, conn.WriteJSON(query.Action{Type: "explode"}))
	var failed struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&failed))
	assert.Equal(t, ws.EventError, failed.Type)
}

func TestLiveSession_UnknownKind(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live/orders"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
