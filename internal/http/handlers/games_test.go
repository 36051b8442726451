package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/testutil"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

func newGamesHandler(t testing.TB, seed ...domaingames.NewGame) (*GamesHandler, *testutil.Catalog) {
	t.Helper()
	c := testutil.NewCatalog(t, seed...)
	return NewGamesHandler(c.Games, c.Images, nil), c
}

func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}

func countObjects(t *testing.T, b *blob.Bucket) int {
	t.Helper()
	it := b.List(nil)
	n := 0
	for {
		_, err := it.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return n
		}
		if err != nil {
			t.Fatalf("list bucket: %v", err)
		}
		n++
	}
}

func validGameFields() map[string]string {
	return map[string]string{
		"title":       "Pixel Kingdom",
		"description": "A retro-styled RPG.",
		"category":    "rpg",
		"downloadUrl": "https://example.com/downloads/pixel-kingdom.zip",
		"fileSize":    "1.2 GB",
		"releaseDate": "2023-02-10",
		"featured":    "true",
	}
}

func assertMessage(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if !strings.Contains(body["message"], want) {
		t.Fatalf("expected message containing %q, got %q", want, body["message"])
	}
}

func TestListReturnsAllGamesInInsertionOrder(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/api/games", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var list []domaingames.Game
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	for i, want := range []string{"Zoochosis", "Orbital Mercenary", "Pixel Kingdom"} {
		if list[i].Title != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, list[i].Title)
		}
	}
}

func TestListEmptyCatalogEncodesEmptyArray(t *testing.T) {
	h, _ := newGamesHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/api/games", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestListAppliesSearchAndCategory(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	cases := []struct {
		query string
		want  []string
	}{
		{"?search=orbital&category=action", []string{"Orbital Mercenary"}},
		{"?search=orbital&category=rpg", nil},
		{"?search=ORBITAL", []string{"Orbital Mercenary"}},
		{"?category=horror", []string{"Zoochosis"}},
		{"?category=all", []string{"Zoochosis", "Orbital Mercenary", "Pixel Kingdom"}},
		{"?search=retro", []string{"Pixel Kingdom"}},
		{"?category=unknown-category", nil},
	}
	for _, tc := range cases {
		rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/api/games"+tc.query, nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		var list []domaingames.Game
		testutil.DecodeJSON(t, rr, &list)
		if len(list) != len(tc.want) {
			t.Fatalf("%s: expected %d games, got %d", tc.query, len(tc.want), len(list))
		}
		for i, title := range tc.want {
			if list[i].Title != title {
				t.Fatalf("%s: position %d expected %s, got %s", tc.query, i, title, list[i].Title)
			}
		}
	}
}

func TestFeaturedReturnsFlaggedGames(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	rr := testutil.Serve(http.HandlerFunc(h.Featured), http.MethodGet, "/api/games/featured", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var list []domaingames.Game
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 2 || list[0].Title != "Zoochosis" || list[1].Title != "Pixel Kingdom" {
		t.Fatalf("unexpected featured list %+v", list)
	}
}

func TestGetReturnsGameOrNotFound(t *testing.T) {
	h, c := newGamesHandler(t, testutil.SampleCatalog()...)
	all, _ := c.Store.ListGames(context.Background())

	req := withID(httptest.NewRequest(http.MethodGet, "/api/games/x", nil), "2")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Get), req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if got.ID != all[1].ID || got.Title != "Orbital Mercenary" {
		t.Fatalf("unexpected game %+v", got)
	}

	for _, id := range []string{"999", "abc", "-1", "0", ""} {
		req := withID(httptest.NewRequest(http.MethodGet, "/api/games/x", nil), id)
		rr := testutil.ServeRequest(http.HandlerFunc(h.Get), req)
		testutil.AssertStatus(t, rr, http.StatusNotFound)
		assertMessage(t, rr, "Game not found")
	}
}

func TestCreateStoresImageAndGame(t *testing.T) {
	h, c := newGamesHandler(t)
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", validGameFields(), testutil.PNG("cover.png"))
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if got.ID <= 0 || got.Title != "Pixel Kingdom" || !got.Featured {
		t.Fatalf("unexpected created game %+v", got)
	}
	if !strings.HasPrefix(got.ImageURL, "/uploads/image-") || !strings.HasSuffix(got.ImageURL, ".png") {
		t.Fatalf("unexpected image url %s", got.ImageURL)
	}
	key, _ := uploads.KeyFromURL(got.ImageURL)
	if ok, err := c.Images.Bucket().Exists(context.Background(), key); err != nil || !ok {
		t.Fatalf("expected stored image %s, ok=%v err=%v", key, ok, err)
	}
	if c.Metrics.Uploads().Accepted != 1 {
		t.Fatalf("expected upload recorded")
	}
}

func TestCreateFeaturedOnlyWhenExactlyTrue(t *testing.T) {
	h, _ := newGamesHandler(t)
	fields := validGameFields()
	fields["featured"] = "yes"
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", fields, testutil.PNG("cover.png"))
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if got.Featured {
		t.Fatalf("expected featured=false for %q", fields["featured"])
	}
}

func TestCreateRequiresImage(t *testing.T) {
	h, c := newGamesHandler(t)
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", validGameFields())
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	assertMessage(t, rr, "Game image is required")
	if list, _ := c.Store.ListGames(context.Background()); len(list) != 0 {
		t.Fatalf("expected no game created")
	}
}

func TestCreateRejectsNonImage(t *testing.T) {
	h, c := newGamesHandler(t)
	file := testutil.MultipartFile{Field: "image", Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hi")}
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", validGameFields(), file)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	assertMessage(t, rr, "Only image files are allowed!")
	if countObjects(t, c.Images.Bucket()) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestCreateRejectsOversizedImage(t *testing.T) {
	c := testutil.NewCatalog(t)
	images := uploads.New(memblob.OpenBucket(nil), 4)
	t.Cleanup(func() { _ = images.Close() })
	h := NewGamesHandler(c.Games, images, nil)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", validGameFields(), testutil.PNG("cover.png"))
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	assertMessage(t, rr, "File too large")
}

func TestCreateValidationFailureRemovesImage(t *testing.T) {
	h, c := newGamesHandler(t)
	fields := validGameFields()
	delete(fields, "title")
	fields["category"] = "   "
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/games", fields, testutil.PNG("cover.png"))
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["message"] != "Validation error: title is required; category is required" {
		t.Fatalf("unexpected validation message %q", body["message"])
	}
	if n := countObjects(t, c.Images.Bucket()); n != 0 {
		t.Fatalf("expected orphaned image to be removed, found %d objects", n)
	}
}

func TestCreateRejectsMalformedForm(t *testing.T) {
	h, _ := newGamesHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader("--broken"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=missing")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Create), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	assertMessage(t, rr, "Invalid form data")
}

func TestUpdateChangesOnlyProvidedFields(t *testing.T) {
	h, c := newGamesHandler(t, testutil.SampleCatalog()...)
	before, _ := c.Store.GetGame(context.Background(), 2)

	req := testutil.NewMultipartRequest(t, http.MethodPut, "/api/games/2", map[string]string{"featured": "true"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "2"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if !got.Featured {
		t.Fatalf("expected featured to be set")
	}
	if got.Title != before.Title || got.Description != before.Description || got.ImageURL != before.ImageURL {
		t.Fatalf("expected other fields unchanged, got %+v", got)
	}
	if !got.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("expected createdAt unchanged")
	}
}

func TestUpdateAcceptsURLEncodedForm(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	req := httptest.NewRequest(http.MethodPut, "/api/games/1", strings.NewReader("featured=false&title=Zoochosis+Remastered"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "1"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if got.Featured || got.Title != "Zoochosis Remastered" || got.Category != "horror" {
		t.Fatalf("unexpected updated game %+v", got)
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	h, c := newGamesHandler(t, testutil.SampleCatalog()...)
	req := testutil.NewMultipartRequest(t, http.MethodPut, "/api/games/3", nil, testutil.PNG("new.png"))
	rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "3"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domaingames.Game
	testutil.DecodeJSON(t, rr, &got)
	if got.ImageURL == "/uploads/sample3.jpg" || !strings.HasPrefix(got.ImageURL, "/uploads/image-") {
		t.Fatalf("expected new image url, got %s", got.ImageURL)
	}
	if got.Title != "Pixel Kingdom" {
		t.Fatalf("expected title unchanged, got %s", got.Title)
	}
	if countObjects(t, c.Images.Bucket()) != 1 {
		t.Fatalf("expected new image stored")
	}
}

func TestUpdateMissingGameIsNotFound(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		files  []testutil.MultipartFile
	}{
		{"valid image", map[string]string{"title": "x"}, []testutil.MultipartFile{testutil.PNG("new.png")}},
		{"non-image file", nil, []testutil.MultipartFile{{Field: "image", Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hi")}}},
		{"blank field", map[string]string{"title": "  "}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, c := newGamesHandler(t)
			req := testutil.NewMultipartRequest(t, http.MethodPut, "/api/games/42", tc.fields, tc.files...)
			rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "42"))

			testutil.AssertStatus(t, rr, http.StatusNotFound)
			assertMessage(t, rr, "Game not found")
			if countObjects(t, c.Images.Bucket()) != 0 {
				t.Fatalf("expected nothing stored")
			}
		})
	}
}

func TestUpdateRejectsBlankRequiredField(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	req := testutil.NewMultipartRequest(t, http.MethodPut, "/api/games/1", map[string]string{"title": "  "})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "1"))

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	assertMessage(t, rr, "title must not be empty")
}

func TestUpdateInvalidIDIsNotFound(t *testing.T) {
	h, _ := newGamesHandler(t, testutil.SampleCatalog()...)
	req := testutil.NewMultipartRequest(t, http.MethodPut, "/api/games/abc", map[string]string{"featured": "true"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Update), withID(req, "abc"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestDeleteRemovesGame(t *testing.T) {
	h, c := newGamesHandler(t, testutil.SampleCatalog()...)

	req := withID(httptest.NewRequest(http.MethodDelete, "/api/games/1", nil), "1")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Delete), req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]bool
	testutil.DecodeJSON(t, rr, &body)
	if !body["success"] {
		t.Fatalf("expected success=true")
	}
	if _, err := c.Store.GetGame(context.Background(), 1); !errors.Is(err, domaingames.ErrNotFound) {
		t.Fatalf("expected game removed, got %v", err)
	}

	req = withID(httptest.NewRequest(http.MethodDelete, "/api/games/1", nil), "1")
	rr = testutil.ServeRequest(http.HandlerFunc(h.Delete), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	req = withID(httptest.NewRequest(http.MethodDelete, "/api/games/abc", nil), "abc")
	rr = testutil.ServeRequest(http.HandlerFunc(h.Delete), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

type failingGames struct{ GameService }

func (failingGames) Search(context.Context, domaingames.Query) ([]domaingames.Game, error) {
	return nil, errors.New("database is locked")
}

func TestListStoreFailureIsInternalError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewGamesHandler(failingGames{}, nil, logger)
	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/api/games", nil)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	assertMessage(t, rr, "Internal server error")
	if strings.Contains(rr.Body.String(), "locked") {
		t.Fatalf("expected internal error detail hidden, got %s", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "database is locked") {
		t.Fatalf("expected error logged, got %s", buf.String())
	}
}

func BenchmarkList(b *testing.B) {
	h, _ := newGamesHandler(b, testutil.SampleCatalog()...)
	req := httptest.NewRequest(http.MethodGet, "/api/games?search=o", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.List(rr, req)
	}
}
