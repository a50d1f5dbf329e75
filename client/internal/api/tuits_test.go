package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	clienterrors "github.com/kachalmers/tuiter/client/internal/errors"
	"github.com/kachalmers/tuiter/client/internal/types"
)

func TestCreateTuit_NestedUnderAuthor(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/users/u1/tuits" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var in types.CreateTuitRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		_, _ = w.Write([]byte(`{"_id":"t1","tuit":` + mustQuote(in.Tuit) + `,"postedBy":"u1","postedOn":"2022-03-07T21:35:08.575Z"}`))
	}))
	defer srv.Close()

	text := "I'm living in a dream and waiting at the window"
	got, err := CreateTuit(context.Background(), srv.Client(), srv.URL, "u1", types.CreateTuitRequest{Tuit: text})
	if err != nil {
		t.Fatalf("CreateTuit error: %v", err)
	}
	if got.ID != "t1" || got.Tuit != text || got.PostedBy.ID != "u1" {
		t.Fatalf("unexpected tuit: %+v", got)
	}
}

func TestListTuits_EmbeddedAuthors(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodGet, "/tuits", http.StatusOK,
		`[{"_id":"001","tuit":"alice's tuit","postedBy":{"_id":"123","username":"alice_wonderland"}},{"_id":"002","tuit":"bob's tuit","postedBy":"234"}]`)
	tuits, err := ListTuits(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("ListTuits error: %v", err)
	}
	if len(tuits) != 2 {
		t.Fatalf("expected 2 tuits, got %d", len(tuits))
	}
	if tuits[0].PostedBy.User == nil || tuits[0].PostedBy.User.Username != "alice_wonderland" {
		t.Fatalf("expected embedded author, got %+v", tuits[0].PostedBy)
	}
	if tuits[1].PostedBy.ID != "234" || tuits[1].PostedBy.User != nil {
		t.Fatalf("expected id-only author, got %+v", tuits[1].PostedBy)
	}
}

func TestListTuits_WrappedShape(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodGet, "/tuits", http.StatusOK, `{"tuits":[{"_id":"003","tuit":"charlie's tuit"}]}`)
	tuits, err := ListTuits(context.Background(), srv.Client(), srv.URL)
	if err != nil || len(tuits) != 1 || tuits[0].Tuit != "charlie's tuit" {
		t.Fatalf("ListTuits: %+v err=%v", tuits, err)
	}
}

func TestGetTuit_Success(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodGet, "/tuits/t1", http.StatusOK, `{"_id":"t1","tuit":"hello","postedBy":{"_id":"u1","username":"moe"}}`)
	got, err := GetTuit(context.Background(), srv.Client(), srv.URL, "t1")
	if err != nil {
		t.Fatalf("GetTuit error: %v", err)
	}
	if got.ID != "t1" || got.PostedBy.ID != "u1" {
		t.Fatalf("unexpected tuit: %+v", got)
	}
}

func TestGetTuit_NotFound(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodGet, "/tuits/t9", http.StatusNotFound, `{"error":"Not Found"}`)
	_, err := GetTuit(context.Background(), srv.Client(), srv.URL, "t9")
	if !errors.Is(err, clienterrors.ErrNotFound) || clienterrors.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 not found, got %v", err)
	}
}

func TestDeleteTuit_Success(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodDelete, "/tuits/t1", http.StatusOK, `{"acknowledged":true,"deletedCount":1}`)
	res, err := DeleteTuit(context.Background(), srv.Client(), srv.URL, "t1")
	if err != nil {
		t.Fatalf("DeleteTuit error: %v", err)
	}
	if res.DeletedCount < 1 {
		t.Fatalf("unexpected ack: %+v", res)
	}
}

func TestDeleteTuit_NoContent(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodDelete, "/tuits/t1", http.StatusNoContent, "")
	res, err := DeleteTuit(context.Background(), srv.Client(), srv.URL, "t1")
	if err != nil {
		t.Fatalf("DeleteTuit error: %v", err)
	}
	if res.DeletedCount != 0 || res.Acknowledged {
		t.Fatalf("expected zero ack for empty body, got %+v", res)
	}
}

func TestTuits_ServerError(t *testing.T) {
	t.Parallel()
	srv := serveJSON(t, http.MethodGet, "/tuits", http.StatusInternalServerError, "boom")
	_, err := ListTuits(context.Background(), srv.Client(), srv.URL)
	if !clienterrors.IsRemote(err) || !clienterrors.IsRecoverable(err) {
		t.Fatalf("expected recoverable remote error, got %v", err)
	}
}

func TestTuits_HTTPDoError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	base := "http://example.com/api"
	if _, err := CreateTuit(context.Background(), hc, base, "u", types.CreateTuitRequest{Tuit: "x"}); !clienterrors.IsTransport(err) {
		t.Fatalf("expected transport error for CreateTuit, got %v", err)
	}
	if _, err := ListTuits(context.Background(), hc, base); !clienterrors.IsTransport(err) {
		t.Fatalf("expected transport error for ListTuits, got %v", err)
	}
	if _, err := GetTuit(context.Background(), hc, base, "t"); !clienterrors.IsTransport(err) {
		t.Fatalf("expected transport error for GetTuit, got %v", err)
	}
	if _, err := DeleteTuit(context.Background(), hc, base, "t"); !clienterrors.IsTransport(err) {
		t.Fatalf("expected transport error for DeleteTuit, got %v", err)
	}
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
