// internal/tests/suite_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/router"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const (
	adminUser     = "admin"
	adminPassword = "correct-horse"
)

// APISuite drives the full router over an in-memory store. Cookies set by
// responses are replayed on later requests, like a browser would.
type APISuite struct {
	suite.Suite
	mem       *memstore.Store
	cfg       *config.Config
	container *services.Container
	router    *gin.Engine
	cookies   map[string]*http.Cookie
	cancel    context.CancelFunc
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize("en"))
	utils.SetJWTSecret("suite-secret")
}

func (s *APISuite) SetupTest() {
	s.mem = memstore.New()
	s.cfg = testConfig(s.T().TempDir())
	s.start(s.mem.Backend())
}

func (s *APISuite) TearDownTest() {
	s.cancel()
}

func testConfig(uploadDir string) *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{UploadDir: uploadDir, MaxUploadMB: 1},
		Store:       config.StoreConfig{Driver: config.DriverMemory, HasPersistentStore: true},
		Auth: config.AuthConfig{
			AdminUsername: adminUser,
			AdminPassword: adminPassword,
			SessionTTL:    time.Hour,
		},
		Catalog: config.CatalogConfig{LowStockThreshold: 10, RecheckInterval: time.Minute},
		Cart:    config.CartConfig{IdleTTL: time.Hour},
		CORS:    config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}
}

// start (re)builds the services and router over backend.
func (s *APISuite) start(backend *store.Backend) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	container, err := services.NewContainer(s.cfg, backend, nil)
	s.Require().NoError(err)
	container.Start(ctx, s.cfg)

	s.container = container
	s.router = router.Initialize(ctx, s.cfg, container, "test")
	s.cookies = make(map[string]*http.Cookie)
}

func (s *APISuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req)
}

func (s *APISuite) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return w
}

func (s *APISuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *APISuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body utils.APIError
	s.decode(w, &body)
	return body.Error
}

func (s *APISuite) login() {
	w := s.request(http.MethodPost, "/api/auth", map[string]string{
		"username": adminUser,
		"password": adminPassword,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *APISuite) seed() {
	_, err := s.container.Catalog.Initialize(context.Background())
	s.Require().NoError(err)
}

func (s *APISuite) productID(name string) string {
	for _, p := range s.container.Catalog.Products() {
		if p.Name == name {
			return p.ID
		}
	}
	s.Require().FailNow("product not found: " + name)
	return ""
}
