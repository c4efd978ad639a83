package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/config"
	"github.com/sangkips/salesdoc-api/internal/docgen"
	"github.com/sangkips/salesdoc-api/internal/infrastructure/repository/memory"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdoc-api/pkg/output"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

type testServer struct {
	router   *gin.Engine
	jwt      *utils.JWTManager
	business uuid.UUID
	outDir   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	businessRepo := memory.NewBusinessRepository()
	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	categoryRepo := memory.NewCategoryRepository()
	documentRepo := memory.NewDocumentRepository()

	outDir := t.TempDir()
	saver := output.NewDirSaver(outDir)
	previews := output.NewPreviewStore(time.Minute, "/api/v1/previews/")
	gen := docgen.NewGenerator(docgen.Options{Saver: saver, Viewer: previews})

	uploads := handler.Uploads{Dir: t.TempDir(), MaxSize: 1 << 20}
	h := &Handlers{
		Business: handler.NewBusinessHandler(service.NewBusinessService(businessRepo), uploads),
		Customer: handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Product:  handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo), 1<<20),
		Category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, productRepo)),
		Document: handler.NewDocumentHandler(service.NewDocumentService(documentRepo, customerRepo, productRepo, businessRepo), uploads),
		Render: handler.NewRenderHandler(service.NewRenderService(gen, documentRepo, productRepo, businessRepo,
			previews, saver, "dir", zerolog.Nop())),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(memory.NewAnalyticsRepository(documentRepo))),
	}

	jwt := utils.NewJWTManager("test-secret", time.Hour)
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	router := Setup(h, &Deps{
		JWTManager: jwt,
		Cfg: &config.Config{
			App:       config.AppConfig{Name: "salesdoc-api"},
			RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		},
		Done: done,
	})

	return &testServer{router: router, jwt: jwt, business: uuid.New(), outDir: outDir}
}

func (s *testServer) token(t *testing.T, roles ...string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), s.business, "สมชาย", roles)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "salesdoc-api")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/documents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/documents", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := utils.NewJWTManager("other-secret", time.Hour)
	tok, err := other.GenerateAccessToken(uuid.New(), s.business, "x", nil)
	require.NoError(t, err)
	w = s.do(t, http.MethodGet, "/api/v1/documents", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDocumentLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "owner")

	w := s.do(t, http.MethodPost, "/api/v1/business", tok, map[string]any{
		"name":  "ร้าน เอช แอนด์ ดี",
		"banks": []map[string]string{{"bank_name": "กสิกรไทย", "account_name": "ร้าน", "account_number": "123-4-56789-0"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var business struct {
		ID uuid.UUID `json:"id"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/v1/business", tok, nil), &business)
	assert.Equal(t, s.business, business.ID)

	w = s.do(t, http.MethodPost, "/api/v1/documents", tok, map[string]any{
		"type":     "invoice",
		"customer": map[string]string{"name": "บริษัท ลูกค้า จำกัด"},
		"items":    []map[string]any{{"name": "งานพิมพ์", "quantity": "2", "unit_price": "100"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var doc struct {
		ID     uuid.UUID `json:"id"`
		Number string    `json:"number"`
		Remark string    `json:"remark"`
	}
	decode(t, w, &doc)
	assert.True(t, strings.HasPrefix(doc.Number, "IV-"), doc.Number)
	assert.Contains(t, doc.Remark, "123-4-56789-0")

	w = s.do(t, http.MethodPost, "/api/v1/documents/"+doc.ID.String()+"/render?action=preview", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		URL        string `json:"url"`
		ShowViewer bool   `json:"show_viewer"`
	}
	decode(t, w, &res)
	require.True(t, strings.HasPrefix(res.URL, "/api/v1/previews/"), res.URL)
	assert.True(t, res.ShowViewer)

	// The viewer fetches the preview without credentials.
	w = s.do(t, http.MethodGet, res.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = s.do(t, http.MethodPost, "/api/v1/documents/"+doc.ID.String()+"/render", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+doc.Number+`.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.FileExists(t, s.outDir+"/"+doc.Number+".pdf")

	w = s.do(t, http.MethodPost, "/api/v1/documents/"+doc.ID.String()+"/render?action=download", tok, nil, "Accept", "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = s.do(t, http.MethodPost, "/api/v1/documents/"+doc.ID.String()+"/billing-note", tok, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/v1/documents/"+doc.ID.String()+"/status", tok, map[string]string{"status": "Paid"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/documents?type=billing_note", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []struct {
			Number string `json:"number"`
		} `json:"items"`
	}
	decode(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.True(t, strings.HasPrefix(list.Items[0].Number, "BN-"))
}

func TestPreviewHandleUnknown(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/previews/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManagerRoutesRequireRole(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, "staff")

	w := s.do(t, http.MethodPost, "/api/v1/documents", staff, map[string]any{"type": "quotation"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var doc struct {
		ID uuid.UUID `json:"id"`
	}
	decode(t, w, &doc)

	w = s.do(t, http.MethodDelete, "/api/v1/documents/"+doc.ID.String(), staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/documents/"+doc.ID.String(), s.token(t, "admin"), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDraftAndBadInput(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t)

	w := s.do(t, http.MethodGet, "/api/v1/documents/draft?type=quotation", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var draft struct {
		Number string `json:"number"`
		Remark string `json:"remark"`
	}
	decode(t, w, &draft)
	assert.True(t, strings.HasSuffix(draft.Number, "-0001"), draft.Number)
	assert.NotEmpty(t, draft.Remark)

	w = s.do(t, http.MethodGet, "/api/v1/documents/draft?type=receipt-ish", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/documents", tok, map[string]any{"type": "invoice", "date": "15/01/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/documents/not-a-uuid", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/output/status", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status service.OutputStatus
	decode(t, w, &status)
	assert.True(t, status.Ready)
	assert.Equal(t, "dir", status.Type)
}

func TestCategoriesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t)

	w := s.do(t, http.MethodPost, "/api/v1/categories", tok, map[string]string{"name": "ป้าย"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category struct {
		ID uuid.UUID `json:"id"`
	}
	decode(t, w, &category)

	w = s.do(t, http.MethodPost, "/api/v1/categories", tok, map[string]string{"name": "ป้าย"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/products", tok, map[string]any{
		"name": "ป้ายไวนิล", "price": "250", "category_id": category.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/products", tok, map[string]any{"name": "สติ๊กเกอร์"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/products?category_id="+category.ID.String(), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []struct {
			Name       string     `json:"name"`
			CategoryID *uuid.UUID `json:"category_id"`
		} `json:"items"`
	}
	decode(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ป้ายไวนิล", list.Items[0].Name)

	w = s.do(t, http.MethodDelete, "/api/v1/categories/"+category.ID.String(), tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/categories", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardOverHTTP(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t)

	w := s.do(t, http.MethodPost, "/api/v1/documents", tok, map[string]any{
		"type":     "invoice",
		"customer": map[string]string{"name": "ร้านลูกค้า"},
		"items":    []map[string]any{{"name": "งานพิมพ์", "quantity": "2", "unit_price": "100"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary struct {
		MonthlySales    decimal.Decimal `json:"monthly_sales"`
		PendingInvoices int64           `json:"pending_invoices"`
	}
	decode(t, w, &summary)
	assert.True(t, summary.MonthlySales.Equal(decimal.NewFromInt(200)), summary.MonthlySales.String())
	assert.Equal(t, int64(1), summary.PendingInvoices)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/trends?months=2", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var points []service.SalesPoint
	decode(t, w, &points)
	require.Len(t, points, 2)
	assert.True(t, points[1].Total.Equal(decimal.NewFromInt(200)))

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/ranking", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ranking service.Ranking
	decode(t, w, &ranking)
	require.Len(t, ranking.TopProducts, 1)
	assert.Equal(t, "งานพิมพ์", ranking.TopProducts[0].Name)
	require.Len(t, ranking.TopCustomers, 1)
	assert.Equal(t, "ร้านลูกค้า", ranking.TopCustomers[0].Name)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
