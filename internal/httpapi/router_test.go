package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suPer8Hu/goldsmith-storefront/internal/ai"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/chat"
	"github.com/suPer8Hu/goldsmith-storefront/internal/db"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi/handlers"
	"github.com/suPer8Hu/goldsmith-storefront/internal/inquiry"
	"github.com/suPer8Hu/goldsmith-storefront/internal/media"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	router     http.Handler
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	upstream   *atomic.Int32
}

// newTestEnv wires real services over sqlite. Every outbound notification
// endpoint answers 500.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(gormsqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	var hits atomic.Int32
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	dispatcher := notify.NewDispatcher(
		notify.NewTelegramSender(broken.URL, "token", "42"),
		notify.NewResendSender(broken.URL, "key", ""),
		nil,
	)
	t.Cleanup(dispatcher.Wait)

	prices := pricing.NewService(pricing.NewRepo(gdb), nil, nil)
	items := catalogue.NewService(catalogue.NewRepo(gdb), nil)
	h := handlers.NewHandler(handlers.Deps{
		Prices:    prices,
		Catalogue: items,
		Profiles:  profile.NewService(profile.NewRepo(gdb), nil),
		Inquiries: inquiry.NewService(inquiry.NewRepo(gdb), dispatcher, "owner@example.com", nil),
		Chat:      chat.NewService(chat.NewRepo(gdb), ai.NewRegistry(), prices, items, chat.Options{}, nil),
		Media:     media.NewSigner("demo", "key", "abcd"),
	})

	return &testEnv{
		router:     NewRouter(h, Options{CORSOrigins: []string{"*"}}),
		db:         gdb,
		dispatcher: dispatcher,
		upstream:   &hits,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func validOrder() map[string]any {
	return map[string]any{
		"customer_name":  "Priya",
		"customer_email": "priya@example.com",
		"customer_phone": "+91 90000 00000",
		"occasion":       "wedding",
		"timeline":       "1-3 months",
		"items":          []map[string]any{{"name": "Jhumka Earrings", "item_id": "EAR001", "estimate": 75962.5}},
		"total_estimate": 75962.5,
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	w, env := e.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.Contains(t, string(env.Data), `"status":"healthy"`)
}

func TestOrderIntent_SucceedsWhenNotificationsFail(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodPost, "/api/order-intent", validOrder())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Status  string `json:"status"`
		OrderID string `json:"order_id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "success", data.Status)
	assert.Len(t, data.OrderID, 8)
	assert.Equal(t, strings.ToUpper(data.OrderID), data.OrderID)
	assert.Equal(t, "Your order intent has been saved. We will contact you shortly!", data.Message)

	e.dispatcher.Wait()
	assert.GreaterOrEqual(t, e.upstream.Load(), int32(2))

	var stored inquiry.OrderIntent
	require.NoError(t, e.db.Where("order_id = ?", data.OrderID).First(&stored).Error)
	assert.Equal(t, inquiry.StatusPending, stored.Status)

	w, env = e.do(t, http.MethodGet, "/api/order-intent/"+strings.ToLower(data.OrderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), data.OrderID)
}

func TestOrderIntent_InvalidEmail(t *testing.T) {
	e := newTestEnv(t)
	body := validOrder()
	body["customer_email"] = "not-an-email"

	w, env := e.do(t, http.MethodPost, "/api/order-intent", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEqual(t, 0, env.Code)

	var n int64
	require.NoError(t, e.db.Model(&inquiry.OrderIntent{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestContact(t *testing.T) {
	e := newTestEnv(t)
	w, env := e.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Arun",
		"email":   "arun@example.com",
		"phone":   "12345",
		"subject": "Resizing",
		"message": "Can you resize a ring?",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"inquiry_id"`)
	assert.Contains(t, string(env.Data), "Thank you for your message. We will get back to you soon!")
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40400, env.Code)

	w, env = e.do(t, http.MethodGet, "/api/jewellery/MISSING", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, env.Code)

	w, env = e.do(t, http.MethodGet, "/api/goldsmith", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40402, env.Code)

	w, _ = e.do(t, http.MethodDelete, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestUpdateGoldPrice_ZeroAcceptedMissingRejected(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodPost, "/api/gold-price", map[string]any{
		"gold_24k": 8000, "gold_22k": 7300, "gold_18k": 6000, "silver": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got struct {
		Quote pricing.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 0.0, got.Quote.Silver)
	assert.Equal(t, 7300.0, got.Quote.Gold22K)
	assert.Equal(t, pricing.SourceManual, got.Quote.Source)

	stored, err := pricing.NewRepo(e.db).Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 0.0, stored.Silver)
	assert.Equal(t, 8000.0, stored.Gold24K)

	w, env = e.do(t, http.MethodPost, "/api/gold-price", map[string]any{
		"gold_24k": 8000, "gold_22k": 7300, "gold_18k": 6000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10002, env.Code)
}

func TestCalculatePrice(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := pricing.NewService(pricing.NewRepo(e.db), nil, nil).UpdateManually(ctx, pricing.ManualQuote{
		Gold24K: 7500, Gold22K: 6875, Gold18K: 5625, Silver: 95,
	})
	require.NoError(t, err)

	w, env := e.do(t, http.MethodGet, "/api/calculate-price?weight=10&purity=22K", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var calc pricing.Calculation
	require.NoError(t, json.Unmarshal(env.Data, &calc))
	assert.Equal(t, 500.0, calc.Breakdown.LabourPerGram)
	assert.Equal(t, 75962.5, calc.Breakdown.Total)

	w, env = e.do(t, http.MethodPost, "/api/calculate-price?weight=10&purity=22K&labour_per_gram=0&include_gst=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &calc))
	assert.Equal(t, 68750.0, calc.Breakdown.Total)

	for _, q := range []string{"purity=22K", "weight=10", "weight=-1&purity=22K", "weight=abc&purity=22K"} {
		w, _ = e.do(t, http.MethodGet, "/api/calculate-price?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestJewellery_CreateAndFilter(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodPost, "/api/jewellery", map[string]any{
		"name": "Temple Necklace", "type": "necklace", "occasion": "wedding", "gender": "female",
		"purity": "22K", "weight_min": 40, "weight_max": 50, "labour_cost_per_gram": 800,
		"making_complexity": "high", "description": "d", "is_featured": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ItemID string `json:"item_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Len(t, created.ItemID, 8)

	w, env = e.do(t, http.MethodGet, "/api/jewellery?type=necklace&featured=true&min_weight=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"count":1`)

	_, env = e.do(t, http.MethodGet, "/api/jewellery?type=ring", nil)
	assert.Contains(t, string(env.Data), `"count":0`)

	w, _ = e.do(t, http.MethodGet, "/api/jewellery?featured=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_FallsBackToApology(t *testing.T) {
	e := newTestEnv(t)
	w, env := e.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "hello", "session_id": "s1"})
	require.Equal(t, http.StatusOK, w.Code)

	var reply chat.Reply
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.Equal(t, chat.Apology, reply.Response)
	assert.Equal(t, "s1", reply.SessionID)

	var n int64
	require.NoError(t, e.db.Model(&chat.Turn{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUploadSignature(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(t, http.MethodGet, "/api/cloudinary/signature", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var creds media.Credentials
	require.NoError(t, json.Unmarshal(env.Data, &creds))
	assert.Equal(t, "jewellery", creds.Folder)
	assert.Equal(t, "image", creds.ResourceType)
	assert.Len(t, creds.Signature, 40)
	assert.InDelta(t, time.Now().Unix(), creds.Timestamp, 5)

	w, _ = e.do(t, http.MethodGet, "/api/cloudinary/signature?resource_type=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEducation_Defaults(t *testing.T) {
	e := newTestEnv(t)
	_, env := e.do(t, http.MethodGet, "/api/education", nil)
	var data struct {
		Articles []profile.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Articles, 4)
}
