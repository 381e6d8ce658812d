package httpserver

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rzbill/stockd/internal/alert"
	cfgpkg "github.com/rzbill/stockd/internal/config"
	"github.com/rzbill/stockd/internal/product"
	"github.com/rzbill/stockd/internal/runtime"
	pebblestore "github.com/rzbill/stockd/internal/storage/pebble"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/healthz", "")
	if w.Code != 200 {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/products/create", `{"name":"Widget","quantity":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: %d body: %s", w.Code, w.Body.String())
	}
	var created product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Name != "Widget" || created.Quantity != 10 {
		t.Fatalf("created: %+v", created)
	}

	w = doJSON(t, s, http.MethodGet, "/v1/products/get?id="+created.ID, "")
	if w.Code != 200 {
		t.Fatalf("get status: %d", w.Code)
	}
	var got product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != created {
		t.Fatalf("got %+v, want %+v", got, created)
	}
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/products/create", `{"name":"Bad","quantity":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestGetMissingProduct(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/products/get?id=deadbeef", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/products/create", `{"name":"Bolt","quantity":10}`)
	var p product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, s, http.MethodPost, "/v1/products/update", `{"id":"`+p.ID+`","delta":-6}`)
	if w.Code != 200 {
		t.Fatalf("update status: %d body: %s", w.Code, w.Body.String())
	}
	var updated product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", updated.Quantity)
	}

	w = doJSON(t, s, http.MethodPost, "/v1/products/update", `{"id":"`+p.ID+`","delta":-10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("below-zero update status: %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/v1/products/remove", `{"id":"`+p.ID+`"}`)
	if w.Code != 200 || !strings.Contains(w.Body.String(), "true") {
		t.Fatalf("remove: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodPost, "/v1/products/remove", `{"id":"`+p.ID+`"}`)
	if w.Code != 200 || !strings.Contains(w.Body.String(), "false") {
		t.Fatalf("second remove: %d %s", w.Code, w.Body.String())
	}
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"a", "b", "c"} {
		doJSON(t, s, http.MethodPost, "/v1/products/create", `{"name":"`+name+`","quantity":1}`)
	}
	w := doJSON(t, s, http.MethodGet, "/v1/products/list?offset=1&limit=1", "")
	if w.Code != 200 {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Products []product.Product `json:"products"`
		Count    int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || len(resp.Products) != 1 || resp.Products[0].Name != "b" {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestSubscribeSSE(t *testing.T) {
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	s := New(rt)

	p, err := rt.Inventory().AddProduct("Gadget", 3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/alerts/subscribe?threshold=5")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content-type: %q", got)
	}

	rd := bufio.NewReader(resp.Body)
	ev := readSSEEvent(t, rd)
	if ev.Product.ID != p.ID || ev.Product.Quantity != 3 {
		t.Fatalf("snapshot event: %+v", ev)
	}

	if _, err := rt.Inventory().UpdateStock(p.ID, -1); err != nil {
		t.Fatalf("update: %v", err)
	}
	ev = readSSEEvent(t, rd)
	if ev.Product.Quantity != 2 {
		t.Fatalf("live event: %+v", ev)
	}
}

func TestSubscribeSSEBadFilter(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/alerts/subscribe?filter=quantity+%3D%3D", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func readSSEEvent(t *testing.T, rd *bufio.Reader) alert.Event {
	t.Helper()
	done := make(chan alert.Event, 1)
	errs := make(chan error, 1)
	go func() {
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				errs <- err
				return
			}
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var ev alert.Event
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
				errs <- err
				return
			}
			done <- ev
			return
		}
	}()
	select {
	case ev := <-done:
		return ev
	case err := <-errs:
		t.Fatalf("read sse: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no SSE event within deadline")
	}
	return alert.Event{}
}
