package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	infra "github.com/pot-code/course-platform/internal/infrastructure"
	"github.com/pot-code/course-platform/internal/infrastructure/auth"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/payment"
	"github.com/pot-code/course-platform/internal/profile"
	"github.com/pot-code/course-platform/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "jwt-secret"

type memoryKV struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func (kv *memoryKV) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.keys[key] = time.Now().Add(expiration)
	return nil
}

func (kv *memoryKV) Exists(ctx context.Context, key string) (bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	exp, ok := kv.keys[key]
	return ok && exp.After(time.Now()), nil
}

func (kv *memoryKV) Ping(ctx context.Context) error { return nil }

func (kv *memoryKV) Close() error { return nil }

type approvingGateway struct{}

func (approvingGateway) Confirm(ctx context.Context, req *payment.ConfirmRequest) (*payment.GatewayResult, error) {
	body, _ := json.Marshal(map[string]interface{}{"status": "DONE", "orderId": req.OrderID})
	return &payment.GatewayResult{Status: http.StatusOK, Body: body}, nil
}

type testServer struct {
	app  *echo.Echo
	conn driver.ITransactionalDB
}

func newTestServer(t *testing.T) *testServer {
	conn := storetest.NewDB(t)
	option := new(infra.AppConfig)
	option.Env = infra.EnvProduction
	option.RequestTimeout = 5 * time.Second
	option.Security.JWTMethod = "HS256"
	option.Security.JWTSecret = testSecret
	option.Security.TokenName = "access_token"

	uc := NewUseCases(conn, uuid.NewNanoIDGenerator(12), approvingGateway{}, 4)
	kv := &memoryKV{keys: make(map[string]time.Time)}
	return &testServer{NewApp(conn, kv, option, uc, zap.NewNop()), conn}
}

func (ts *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.app.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, userID string) string {
	token, err := auth.NewJWTUtil("HS256", testSecret, "access_token").Sign(&auth.AppTokenClaims{
		Email: userID + "@example.com",
		Role:  "authenticated",
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	require.NoError(t, err)
	return token
}

// seedCatalog A has 2 modules of 2 lectures with 2 completed by U, B has one empty module
func seedCatalog(t *testing.T, conn driver.ITransactionalDB) {
	now := time.Now().UTC()
	for _, c := range []string{"A", "B"} {
		storetest.Exec(t, conn, `INSERT INTO "courses"("id", "title", "published", "created_at", "updated_at") VALUES($1, $2, $3, $4, $5)`,
			c, "course "+c, true, now, now)
	}
	for i, m := range [][2]string{{"A1", "A"}, {"A2", "A"}, {"B1", "B"}} {
		storetest.Exec(t, conn, `INSERT INTO "modules"("id", "course_id", "title", "order", "created_at", "updated_at") VALUES($1, $2, $3, $4, $5, $6)`,
			m[0], m[1], m[0], i+1, now, now)
	}
	for i, l := range [][2]string{{"A1a", "A1"}, {"A1b", "A1"}, {"A2a", "A2"}, {"A2b", "A2"}} {
		storetest.Exec(t, conn, `INSERT INTO "lectures"("id", "module_id", "title", "order", "created_at", "updated_at") VALUES($1, $2, $3, $4, $5, $6)`,
			l[0], l[1], l[0], i%2+1, now, now)
	}
	for _, l := range []string{"A1a", "A2b"} {
		storetest.Exec(t, conn, `INSERT INTO "lecture_progress"("id", "user_id", "lecture_id", "completed", "last_accessed") VALUES($1, $2, $3, $4, $5)`,
			l, "U", l, true, now)
	}
	for _, e := range [][2]string{{"e1", "A"}, {"e2", "B"}} {
		storetest.Exec(t, conn, `INSERT INTO "enrollments"("id", "user_id", "course_id", "created_at") VALUES($1, $2, $3, $4)`, e[0], "U", e[1], now)
	}
}

func TestUsers_Enrollments(t *testing.T) {
	ts := newTestServer(t)
	seedCatalog(t, ts.conn)

	rec := ts.do(http.MethodGet, "/api/v1/users/enrollments?userId=U", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var courses []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Progress int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 2)
	assert.Equal(t, "A", courses[0].ID)
	assert.Equal(t, 50, courses[0].Progress)
	assert.Equal(t, "B", courses[1].ID)
	assert.Equal(t, 0, courses[1].Progress)

	rec = ts.do(http.MethodGet, "/api/v1/users/course-progress?userId=U&courseId=A", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"progress":50}`, rec.Body.String())
}

func TestUsers_MissingUserID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/users/enrollments", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code          int `json:"code"`
		InvalidParams []struct {
			Domain string `json:"domain"`
		} `json:"invalid_params"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	require.Len(t, body.InvalidParams, 1)
	assert.Equal(t, "userId", body.InvalidParams[0].Domain)
}

func TestUsers_Progress(t *testing.T) {
	ts := newTestServer(t)
	seedCatalog(t, ts.conn)

	rec := ts.do(http.MethodPost, "/api/v1/users/progress", `{"userId":"U","lectureId":"A1b","completed":true}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/users/course-progress?userId=U&courseId=A", "", "")
	assert.JSONEq(t, `{"progress":75}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/v1/users/progress?userId=U&courseId=A", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 3)

	rec = ts.do(http.MethodPost, "/api/v1/users/progress", `{"userId":"U"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog_FirstLecture(t *testing.T) {
	ts := newTestServer(t)
	seedCatalog(t, ts.conn)

	rec := ts.do(http.MethodGet, "/api/v1/courses/A/first-lecture", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lectureId":"A1a"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/v1/courses/B/first-lecture", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/courses/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/courses", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	assert.Len(t, courses, 2)
}

func TestAdmin_Guard(t *testing.T) {
	ts := newTestServer(t)
	profiles := profile.NewProfileRepository(ts.conn)
	require.NoError(t, profiles.SaveProfile(context.Background(), &profile.Profile{ID: "admin", Role: profile.RoleAdmin, Status: profile.StatusActive}))
	require.NoError(t, profiles.SaveProfile(context.Background(), &profile.Profile{ID: "learner", Role: profile.RoleUser, Status: profile.StatusActive}))

	rec := ts.do(http.MethodGet, "/api/v1/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/admin/users", "", signToken(t, "learner"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := signToken(t, "admin")
	rec = ts.do(http.MethodGet, "/api/v1/admin/users", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	rec = ts.do(http.MethodPut, "/api/v1/auth/sign-out", "", adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/admin/users", "", adminToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "revoked token")
}

func TestAdmin_ContentLifecycle(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, profile.NewProfileRepository(ts.conn).SaveProfile(context.Background(),
		&profile.Profile{ID: "admin", Name: "Ada", Role: profile.RoleAdmin, Status: profile.StatusActive}))
	token := signToken(t, "admin")

	rec := ts.do(http.MethodPost, "/api/v1/admin/courses", `{"title":"Go","description":"learn go","instructor_id":"admin","price":"15000"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, float64(15000), created.Price)

	rec = ts.do(http.MethodPost, "/api/v1/admin/courses", `{"title":"no description"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/admin/modules", `{"course_id":"`+created.ID+`","title":"basics"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var m struct {
		ID    string `json:"id"`
		Order int    `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 1, m.Order)

	rec = ts.do(http.MethodPut, "/api/v1/admin/modules/"+m.ID, `{"title":"fundamentals"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fundamentals")

	rec = ts.do(http.MethodPost, "/api/v1/admin/lectures", `{"module_id":"`+m.ID+`","title":"hello","type":"video"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var l struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))

	rec = ts.do(http.MethodGet, "/api/v1/admin/courses/"+created.ID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Title   string `json:"title"`
		Modules []struct {
			Title   string `json:"title"`
			Lessons []struct {
				ID string `json:"id"`
			} `json:"lessons"`
		} `json:"modules"`
		Instructor struct {
			Name string `json:"name"`
		} `json:"instructor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Go", detail.Title)
	require.Len(t, detail.Modules, 1)
	assert.Equal(t, "fundamentals", detail.Modules[0].Title)
	require.Len(t, detail.Modules[0].Lessons, 1)
	assert.Equal(t, l.ID, detail.Modules[0].Lessons[0].ID)
	assert.Equal(t, "Ada", detail.Instructor.Name)

	rec = ts.do(http.MethodDelete, "/api/v1/admin/lectures/"+l.ID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	rec = ts.do(http.MethodGet, "/api/v1/admin/lectures/"+l.ID, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayments_Confirm(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/payments/confirm", `{"paymentKey":"pk","orderId":"order-1","amount":15000,"userId":"U","courseId":"A"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"DONE","orderId":"order-1"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/v1/users/enrollment-status?userId=U&courseId=A", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isEnrolled":true}`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/v1/payments/confirm", `{"paymentKey":"pk","orderId":"order-2"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebsocket_ProgressProbe(t *testing.T) {
	ts := newTestServer(t)
	seedCatalog(t, ts.conn)
	srv := httptest.NewServer(ts.app)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/ws/progress", nil)
	require.NoError(t, err)
	defer conn.Close()

	var resp struct {
		CourseID string `json:"courseId"`
		Progress int    `json:"progress"`
		Error    string `json:"error"`
	}
	require.NoError(t, conn.WriteJSON(map[string]string{"userId": "U", "courseId": "A"}))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "A", resp.CourseID)
	assert.Equal(t, 50, resp.Progress)

	require.NoError(t, conn.WriteJSON(map[string]string{"courseId": "A"}))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.NotEmpty(t, resp.Error)
}
