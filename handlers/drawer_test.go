package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fillCart seeds a session cart through the HTTP layer and returns the
// session cookie for follow-up requests.
func fillCart(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/cart", addItemRequest("p1", "Rosa", 2500, 2)))
	cookie := sessionCookieFrom(w)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}

	req := jsonRequest("POST", "/api/cart", addItemRequest("p2", "Tulipán", 1800, 1))
	req.AddCookie(cookie)
	r.ServeHTTP(httptest.NewRecorder(), req)
	return cookie
}

func drawerPost(r http.Handler, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := jsonRequest("POST", path, body)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetDrawerInitialState(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cart/drawer", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["open"] != false {
		t.Errorf("expected closed drawer, got %v", resp["open"])
	}
	if resp["view"] != "review" {
		t.Errorf("expected review view, got %v", resp["view"])
	}
	if resp["page"].(float64) != 1 {
		t.Errorf("expected page 1, got %v", resp["page"])
	}
}

func TestOpenAndCloseDrawer(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)
	cookie := fillCart(t, r)

	w := drawerPost(r, "/api/cart/drawer/open", nil, cookie)
	resp := parseResponse(w)
	if resp["open"] != true {
		t.Errorf("expected open drawer, got %v", resp["open"])
	}
	if resp["item_count"].(float64) != 3 {
		t.Errorf("expected item_count 3, got %v", resp["item_count"])
	}

	w = drawerPost(r, "/api/cart/drawer/close", nil, cookie)
	resp = parseResponse(w)
	if resp["open"] != false {
		t.Errorf("expected closed drawer, got %v", resp["open"])
	}
}

func TestProceedOnEmptyCartConflicts(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)

	w := drawerPost(r, "/api/cart/drawer/proceed", nil, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProceedAndBack(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)
	cookie := fillCart(t, r)

	w := drawerPost(r, "/api/cart/drawer/proceed", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["view"] != "delivery_form" {
		t.Errorf("expected delivery_form view")
	}

	w = drawerPost(r, "/api/cart/drawer/back", nil, cookie)
	if parseResponse(w)["view"] != "review" {
		t.Errorf("expected review view after back")
	}
}

func TestSetPage(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)
	cookie := fillCart(t, r)

	w := drawerPost(r, "/api/cart/drawer/page", map[string]int{"page": 2}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["page"].(float64) != 2 {
		t.Errorf("expected page 2")
	}

	w = drawerPost(r, "/api/cart/drawer/page", map[string]int{"page": 0}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page 0, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitOrder(t *testing.T) {
	sessions, sink := newTestSessions()
	r := setupCartRouter(sessions)
	cookie := fillCart(t, r)

	w := drawerPost(r, "/api/cart/drawer/submit", map[string]string{
		"full_name":      "Ana García",
		"phone":          "3794123456",
		"address":        "Av. Libertad 1234",
		"payment_method": "transferencia",
		"notes":          "Entregar por la tarde",
	}, cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	message, _ := resp["message"].(string)
	for _, want := range []string{"Rosa", "$2.500 x 2", "Total: $6.800", "Ana García", "transferencia", "Entregar por la tarde"} {
		if !strings.Contains(message, want) {
			t.Errorf("message missing %q:\n%s", want, message)
		}
	}

	url, _ := resp["whatsapp_url"].(string)
	if !strings.HasPrefix(url, "https://wa.me/") {
		t.Errorf("expected wa.me link, got %q", url)
	}

	if len(sink.messages) != 1 {
		t.Fatalf("expected 1 pushed message, got %d", len(sink.messages))
	}

	// Drawer resets but the cart is preserved.
	drawer := resp["drawer"].(map[string]interface{})
	if drawer["open"] != false {
		t.Errorf("expected drawer closed after submit")
	}
	if drawer["view"] != "review" {
		t.Errorf("expected review view after submit")
	}
	if drawer["item_count"].(float64) != 3 {
		t.Errorf("expected cart preserved, got item_count %v", drawer["item_count"])
	}
}

func TestSubmitOrderValidatesForm(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)
	cookie := fillCart(t, r)

	w := drawerPost(r, "/api/cart/drawer/submit", map[string]string{
		"full_name": "Ana García",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = drawerPost(r, "/api/cart/drawer/submit", map[string]string{
		"full_name":      "Ana García",
		"phone":          "3794123456",
		"address":        "Av. Libertad 1234",
		"payment_method": "bitcoin",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown payment method, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitOrderEmptyCartConflicts(t *testing.T) {
	sessions, _ := newTestSessions()
	r := setupCartRouter(sessions)

	w := drawerPost(r, "/api/cart/drawer/submit", map[string]string{
		"full_name": "Ana García",
		"phone":     "3794123456",
		"address":   "Av. Libertad 1234",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}
