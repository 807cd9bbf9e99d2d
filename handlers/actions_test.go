// munui/handlers/actions_test.go
package handlers

import (
	"net/http"
	"testing"
	"time"

	"munui/config"
	"munui/models"
)

func TestHandleListBoards(t *testing.T) {
	app := setupTestApp(t)

	rr := doRequest(app, newJSONRequest(t, "GET", "/api/boards", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var got []models.Board
	decodeBody(t, rr, &got)
	if len(got) != 3 {
		t.Fatalf("Expected 3 boards, got %d", len(got))
	}
	if got[0].Slug != "computer-quote" || got[1].Slug != "code-consult" || got[2].Slug != "ppt-request" {
		t.Errorf("Boards out of order: %+v", got)
	}
	if got[0].Name == "" {
		t.Error("Expected boards to carry display names")
	}
}

func TestHandleListPosts(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Unknown Board", func(t *testing.T) {
		rr := doRequest(app, newJSONRequest(t, "GET", "/api/not-a-board/posts", nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rr.Code)
		}
		var resp map[string]string
		decodeBody(t, rr, &resp)
		if resp["error"] != "존재하지 않는 보드" {
			t.Errorf("Unexpected error message: %q", resp["error"])
		}
	})

	t.Run("Empty Board", func(t *testing.T) {
		rr := doRequest(app, newJSONRequest(t, "GET", "/api/ppt-request/posts", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if body := rr.Body.String(); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	t.Run("With Posts", func(t *testing.T) {
		rr := doRequest(app, newJSONRequest(t, "POST", "/api/code-consult/posts",
			map[string]string{"name": "홍길동", "title": "견적 문의", "content": "내용입니다"}))
		if rr.Code != http.StatusCreated {
			t.Fatalf("Failed to create fixture post: %d %s", rr.Code, rr.Body.String())
		}

		rr = doRequest(app, newJSONRequest(t, "GET", "/api/code-consult/posts", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}

		var posts []models.Post
		decodeBody(t, rr, &posts)
		if len(posts) != 1 {
			t.Fatalf("Expected 1 post, got %d", len(posts))
		}
		if posts[0].Name != "홍길동" || posts[0].Title != "견적 문의" {
			t.Errorf("Post fields wrong: %+v", posts[0])
		}
		if posts[0].Replies == nil || len(posts[0].Replies) != 0 {
			t.Errorf("Expected replies to serialize as [], got %#v", posts[0].Replies)
		}
	})
}

func TestHandleCreatePost(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Success", func(t *testing.T) {
		rr := doRequest(app, newJSONRequest(t, "POST", "/api/code-consult/posts",
			map[string]string{"title": "T", "content": "C"}))
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		var resp map[string]int64
		decodeBody(t, rr, &resp)
		if resp["id"] != 1 {
			t.Errorf("Expected id 1, got %d", resp["id"])
		}
	})

	t.Run("Validation Failures", func(t *testing.T) {
		testCases := []struct {
			name    string
			path    string
			payload map[string]string
			status  int
		}{
			{"Unknown Board", "/api/nope/posts", map[string]string{"title": "T", "content": "C"}, http.StatusNotFound},
			{"Missing Title", "/api/code-consult/posts", map[string]string{"content": "C"}, http.StatusBadRequest},
			{"Missing Content", "/api/code-consult/posts", map[string]string{"title": "T"}, http.StatusBadRequest},
			{"Whitespace Only", "/api/code-consult/posts", map[string]string{"title": " ", "content": "\t"}, http.StatusBadRequest},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				before := postCount(t, app)
				rr := doRequest(app, newJSONRequest(t, "POST", tc.path, tc.payload))
				if rr.Code != tc.status {
					t.Errorf("Expected status %d, got %d. Body: %s", tc.status, rr.Code, rr.Body.String())
				}
				if after := postCount(t, app); after != before {
					t.Errorf("Row count changed on failed create: %d -> %d", before, after)
				}
			})
		}
	})

	t.Run("Oversized Field", func(t *testing.T) {
		long := make([]byte, config.MaxTitleLen+1)
		for i := range long {
			long[i] = 'a'
		}
		rr := doRequest(app, newJSONRequest(t, "POST", "/api/code-consult/posts",
			map[string]string{"title": string(long), "content": "C"}))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for oversized title, got %d", rr.Code)
		}
	})
}

func TestHandleCreatePostRateLimited(t *testing.T) {
	app := setupTestApp(t)
	app.rateLimiter = models.NewRateLimiter(time.Hour, 1, time.Hour, 24*time.Hour)

	rr := doRequest(app, newJSONRequest(t, "POST", "/api/code-consult/posts",
		map[string]string{"title": "T", "content": "C"}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected first post to pass, got %d", rr.Code)
	}

	rr = doRequest(app, newJSONRequest(t, "POST", "/api/code-consult/posts",
		map[string]string{"title": "T2", "content": "C2"}))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 for second post, got %d", rr.Code)
	}
}

func postCount(t *testing.T, app *MockApplication) int {
	t.Helper()
	var count int
	if err := app.db.DB.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		t.Fatalf("Failed to count posts: %v", err)
	}
	return count
}
