package application

import (
	"context"
	"errors"
	"testing"

	mailtpl "github.com/oksasatya/go-todo-cards/pkg/mailer/templates"
)

func TestAddCommentNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.createCard(t, "06/24 공부 계획")

	resp, err := f.comments.AddComment(ctx, f.other, card.ID, "화이팅")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "화이팅" || resp.User.ID != f.other.UserID {
		t.Fatalf("unexpected comment %+v", resp)
	}
	if len(f.mail.jobs) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.mail.jobs))
	}
	job := f.mail.jobs[0]
	if job.To != "user1@naver.com" || job.Template != mailtpl.CommentAdded || job.Data["CommentAuthor"] != "user2" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestAddCommentByOwnerDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, "07/01 약속")
	if _, err := f.comments.AddComment(context.Background(), f.owner, card.ID, "note to self"); err != nil {
		t.Fatal(err)
	}
	if len(f.mail.jobs) != 0 {
		t.Fatalf("owner commenting should not notify, got %d jobs", len(f.mail.jobs))
	}
}

func TestAddCommentToMissingCard(t *testing.T) {
	f := newFixture(t)
	_, err := f.comments.AddComment(context.Background(), f.other, 777, "hello?")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Model != "todoCard" || nf.ID != 777 {
		t.Fatalf("expected todoCard not found, got %v", err)
	}
}
