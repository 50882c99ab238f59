package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

func TestCreateTodoCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.todos.CreateTodoCard(ctx, CreateTodoCardRequest{UserID: 404, Title: "orphan"})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Model != "User" || nf.ID != 404 {
		t.Fatalf("expected user not found, got %v", err)
	}

	card, err := f.todos.CreateTodoCard(ctx, CreateTodoCardRequest{UserID: f.owner.UserID, Title: "06/24 공부 계획", Description: "알고리즘"})
	if err != nil {
		t.Fatal(err)
	}
	if card.User.ID != f.owner.UserID || card.User.Nickname != "user1" {
		t.Fatalf("owner mismatch: %+v", card.User)
	}
	if card.Category != entity.CategoryOther || card.Completed {
		t.Fatalf("defaults not applied: %+v", card)
	}

	if _, err := f.todos.CreateTodoCard(ctx, CreateTodoCardRequest{UserID: f.owner.UserID, Title: "x", Category: "NAP"}); !errors.Is(err, entity.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestUpdateTodoCardByOwner(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, "07/02 학습")

	resp, err := f.todos.UpdateTodoCard(context.Background(), f.owner, card.ID, UpdateTodoCardRequest{
		Completed: ptr(true),
		Category:  ptr(entity.CategoryWork),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Completed || resp.Category != entity.CategoryWork || resp.Title != "07/02 학습" {
		t.Fatalf("partial update not applied correctly: %+v", resp)
	}
	if len(f.cache.invalidated) == 0 || f.cache.invalidated[0] != card.ID {
		t.Fatal("detail cache should be invalidated")
	}
}

func TestUpdateTodoCardByNonOwnerLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "07/03 직장 업무")

	_, err := f.todos.UpdateTodoCard(ctx, f.other, card.ID, UpdateTodoCardRequest{Title: ptr("hijacked")})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	stored, _ := f.store.TodoCards().GetByID(ctx, card.ID)
	if stored.Title != "07/03 직장 업무" {
		t.Fatalf("title changed to %q", stored.Title)
	}

	var nf *NotFoundError
	if _, err := f.todos.UpdateTodoCard(ctx, f.owner, 9999, UpdateTodoCardRequest{}); !errors.As(err, &nf) || nf.Model != "todoCard" {
		t.Fatalf("expected todoCard not found, got %v", err)
	}
}

func TestDeleteTodoCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "07/07 기타 할 일")

	if err := f.todos.DeleteTodoCard(ctx, f.other, card.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.store.TodoCards().GetByID(ctx, card.ID); err != nil {
		t.Fatalf("card should survive unauthorized delete: %v", err)
	}

	if err := f.todos.DeleteTodoCard(ctx, f.owner, card.ID); err != nil {
		t.Fatal(err)
	}
	var nf *NotFoundError
	if _, err := f.todos.GetTodoCardByID(ctx, card.ID); !errors.As(err, &nf) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestGetTodoCardByIDIncludesCommentsOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/26 운동 계획")

	for _, body := range []string{"first", "second"} {
		if _, err := f.comments.AddComment(ctx, f.other, card.ID, body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := f.todos.GetTodoCardByID(ctx, card.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Comments) != 2 || resp.Comments[0].Content != "first" || resp.Comments[1].Content != "second" {
		t.Fatalf("unexpected comments: %+v", resp.Comments)
	}
	if resp.Comments[0].User.Nickname != "user2" || resp.User.Email != "user1@naver.com" {
		t.Fatalf("user summaries missing: %+v", resp)
	}
	if _, ok := f.cache.entries[card.ID]; !ok {
		t.Fatal("detail should be cached after a read")
	}

	// a cached detail is served without touching the store
	f.cache.entries[card.ID].Title = "from cache"
	cached, _ := f.todos.GetTodoCardByID(ctx, card.ID)
	if cached.Title != "from cache" {
		t.Fatal("expected cached detail")
	}
}

func TestGetTodoCardByIDReflectsRenamedUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/27 약속")
	if _, err := f.comments.AddComment(ctx, f.other, card.ID, "see you"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.todos.GetTodoCardByID(ctx, card.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.cache.entries[card.ID]; !ok {
		t.Fatal("detail should be cached after a read")
	}

	if _, err := f.users.UpdateUserProfile(ctx, f.owner, f.owner.UserID, "owner renamed"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.users.UpdateUserProfile(ctx, f.other, f.other.UserID, "author renamed"); err != nil {
		t.Fatal(err)
	}

	got, err := f.todos.GetTodoCardByID(ctx, card.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.User.Nickname != "owner renamed" {
		t.Fatalf("owner nickname = %q", got.User.Nickname)
	}
	if got.Comments[0].User.Nickname != "author renamed" {
		t.Fatalf("comment author nickname = %q", got.Comments[0].User.Nickname)
	}
}

func TestGetTodoCardByIDDoesNotCacheOverConcurrentWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/28 공부")

	// an update lands between the database read and the cache write
	f.cache.beforeSet = func() {
		f.cache.beforeSet = nil
		if _, err := f.todos.UpdateTodoCard(ctx, f.owner, card.ID, UpdateTodoCardRequest{Title: ptr("06/28 공부 완료")}); err != nil {
			t.Fatal(err)
		}
	}
	stale, err := f.todos.GetTodoCardByID(ctx, card.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stale.Title != "06/28 공부" {
		t.Fatalf("read should see the pre-update row, got %q", stale.Title)
	}
	if _, ok := f.cache.entries[card.ID]; ok {
		t.Fatal("a detail read before the update must not be cached")
	}

	fresh, err := f.todos.GetTodoCardByID(ctx, card.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Title != "06/28 공부 완료" || f.cache.entries[card.ID] == nil {
		t.Fatalf("expected fresh cached detail, got %q", fresh.Title)
	}
}

func TestListTodoCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		f.createCard(t, "card")
	}

	page, err := f.todos.ListTodoCards(ctx, entity.TodoCardFilter{}, "createdAt", entity.PageRequest{Page: 1, Size: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 2 || !page.IsLast || page.TotalPages != 2 || page.TotalElements != 7 {
		t.Fatalf("unexpected page: %+v", page)
	}

	if _, err := f.todos.ListTodoCards(ctx, entity.TodoCardFilter{}, "password", entity.PageRequest{Size: 5}); !errors.Is(err, entity.ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}

	all, err := f.todos.GetAllTodoCards(ctx)
	if err != nil || len(all) != 7 {
		t.Fatalf("GetAllTodoCards: %d %v", len(all), err)
	}
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/24 친구와의 약속")

	if _, err := f.todos.UploadImage(ctx, f.owner, card.ID, strings.NewReader("img"), "a.png", "image/png"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	storage := &fakeStorage{}
	f.todos.Storage = storage
	if _, err := f.todos.UploadImage(ctx, f.other, card.ID, strings.NewReader("img"), "a.png", "image/png"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(storage.paths) != 0 {
		t.Fatal("nothing should be uploaded for a non-owner")
	}

	resp, err := f.todos.UploadImage(ctx, f.owner, card.ID, strings.NewReader("img"), "Photo.PNG", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.ImageURL, "https://storage.googleapis.com/bucket/todo-cards/") || !strings.HasSuffix(resp.ImageURL, ".png") {
		t.Fatalf("unexpected image url %q", resp.ImageURL)
	}
	if len(storage.deleted) != 0 {
		t.Fatalf("nothing should be deleted after a successful upload: %v", storage.deleted)
	}
}

func TestUploadImageRemovesObjectWhenRecordingFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/29 운동")

	storage := &fakeStorage{}
	f.todos.Storage = storage
	// the card disappears while the image is in flight
	storage.afterUpload = func() {
		if err := f.todos.DeleteTodoCard(ctx, f.owner, card.ID); err != nil {
			t.Fatal(err)
		}
	}

	_, err := f.todos.UploadImage(ctx, f.owner, card.ID, strings.NewReader("img"), "a.png", "image/png")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Model != "todoCard" {
		t.Fatalf("expected todoCard not found, got %v", err)
	}
	if len(storage.paths) != 1 || len(storage.deleted) != 1 || storage.deleted[0] != storage.paths[0] {
		t.Fatalf("uploaded object should be removed: uploaded %v deleted %v", storage.paths, storage.deleted)
	}
}

func TestSearchTodoCardsSkipsStaleHits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &fakeIndexer{}
	f.todos.Index = idx
	card := f.createCard(t, "07/01 업무 계획")
	if idx.indexed[card.ID] != "07/01 업무 계획" {
		t.Fatal("created card should be indexed")
	}

	idx.hits = []int64{card.ID, 12345}
	got, err := f.todos.SearchTodoCards(ctx, "업무", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != card.ID {
		t.Fatalf("unexpected hits: %+v", got)
	}

	if err := f.todos.DeleteTodoCard(ctx, f.owner, card.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.indexed[card.ID]; ok {
		t.Fatal("deleted card should be removed from the index")
	}
}
