package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
)

type fakeIdentity map[string]struct {
	role   auth.Role
	active bool
}

func (f fakeIdentity) Identify(_ context.Context, id string) (auth.Role, bool, error) {
	u, ok := f[id]
	if !ok {
		return "", false, apperr.NotFound("user not found")
	}
	return u.role, u.active, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return body
}

func TestFailMapsKinds(t *testing.T) {
	r := gin.New()
	r.GET("/nf", func(c *gin.Context) { Fail(c, apperr.NotFound("order not found")) })
	r.GET("/boom", func(c *gin.Context) { Fail(c, errors.New("db exploded")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nf", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false || body["message"] != "order not found" {
		t.Fatalf("body=%v", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if decode(t, w)["message"] != "internal server error" {
		t.Fatalf("internal details must not leak: %s", w.Body.String())
	}
}

func TestBindReportsFirstFailingField(t *testing.T) {
	type req struct {
		Status string `json:"status" binding:"required,oneof=pending served"`
		Qty    int    `json:"quantity" binding:"min=1"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var in req
		if err := Bind(c, &in); err != nil {
			Fail(c, err)
			return
		}
		OK(c, http.StatusOK, gin.H{"status": in.Status})
	})

	cases := []struct {
		body string
		code int
		msg  string
	}{
		{`{"quantity":1}`, 400, "status is required"},
		{`{"status":"flying","quantity":1}`, 400, "status must be one of: pending served"},
		{`{"status":"served","quantity":0}`, 400, "quantity must be at least 1"},
		{`{not json`, 400, "invalid request body"},
		{`{"status":"served","quantity":2}`, 200, ""},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != tc.code {
			t.Fatalf("body=%s status=%d want=%d resp=%s", tc.body, w.Code, tc.code, w.Body.String())
		}
		if tc.msg != "" && decode(t, w)["message"] != tc.msg {
			t.Fatalf("body=%s message=%v want=%q", tc.body, decode(t, w)["message"], tc.msg)
		}
	}
}

func TestAuthenticateAndRoles(t *testing.T) {
	tokens := auth.NewTokens("s3cret", time.Hour)
	ids := fakeIdentity{
		"cust":  {auth.RoleCustomer, true},
		"staff": {auth.RoleStaff, true},
		"gone":  {auth.RoleCustomer, false},
	}
	r := gin.New()
	r.GET("/me", Authenticate(tokens, ids), func(c *gin.Context) {
		OK(c, http.StatusOK, gin.H{"uid": UserID(c), "role": Role(c)})
	})
	r.GET("/kitchen", Authenticate(tokens, ids), RequireRoles(auth.RoleStaff, auth.RoleAdmin), func(c *gin.Context) {
		OK(c, http.StatusOK, nil)
	})

	do := func(path, token string, viaCookie bool) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			if viaCookie {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			} else {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
		r.ServeHTTP(w, req)
		return w
	}

	if w := do("/me", "", false); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status=%d", w.Code)
	}
	if w := do("/me", "junk", false); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status=%d", w.Code)
	}
	cust, _ := tokens.Issue("cust", auth.RoleCustomer)
	if w := do("/me", cust, true); w.Code != http.StatusOK || decode(t, w)["uid"] != "cust" {
		t.Fatalf("cookie token: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do("/kitchen", cust, false); w.Code != http.StatusForbidden {
		t.Fatalf("customer on staff route: status=%d", w.Code)
	}
	staff, _ := tokens.Issue("staff", auth.RoleStaff)
	if w := do("/kitchen", staff, false); w.Code != http.StatusOK {
		t.Fatalf("staff route: status=%d body=%s", w.Code, w.Body.String())
	}
	gone, _ := tokens.Issue("gone", auth.RoleCustomer)
	if w := do("/me", gone, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("inactive: status=%d", w.Code)
	}
	ghost, _ := tokens.Issue("ghost", auth.RoleAdmin)
	if w := do("/me", ghost, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status=%d", w.Code)
	}
}

func TestPageFromAndPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	check := func(query string, page, limit int) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		p := PageFrom(c)
		if p.Page != page || p.Limit != limit {
			t.Fatalf("%q => %+v", query, p)
		}
	}
	check("", 1, 10)
	check("page=3&limit=5", 3, 5)
	check("page=-1&limit=1000", 1, 100)

	pg := NewPagination(PageQuery{Page: 2, Limit: 10}, 21)
	if pg.Pages != 3 || pg.Total != 21 {
		t.Fatalf("pagination=%+v", pg)
	}
	if (PageQuery{Page: 3, Limit: 10}).Offset() != 20 {
		t.Fatalf("offset")
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
