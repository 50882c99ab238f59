package application

import (
	"context"
	"errors"
	"testing"

	mailtpl "github.com/oksasatya/go-todo-cards/pkg/mailer/templates"
)

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.SignUp(context.Background(), SignUpRequest{Email: "user1@naver.com", Password: "whatever1", Nickname: "dup"})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Value != "user1@naver.com" {
		t.Fatalf("conflict should name the email, got %q", conflict.Value)
	}
}

func TestSignUpHashesPasswordAndSendsWelcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.users.SignUp(ctx, SignUpRequest{Email: "new@example.com", Password: "password3", Nickname: "newbie"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ID == 0 || resp.Email != "new@example.com" || resp.Nickname != "newbie" {
		t.Fatalf("unexpected response %+v", resp)
	}
	stored, _ := f.store.Users().GetByID(ctx, resp.ID)
	if stored.Password == "password3" {
		t.Fatal("password must be stored hashed")
	}
	if len(f.mail.jobs) != 1 || f.mail.jobs[0].Template != mailtpl.Welcome || f.mail.jobs[0].To != "new@example.com" {
		t.Fatalf("expected one welcome email, got %+v", f.mail.jobs)
	}
}

func TestSignIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.users.SignIn(ctx, "user1@naver.com", "password1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	claims, err := f.users.JWT.ParseAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if uid, _ := claims.UserID(); uid != f.owner.UserID || claims.Email != "user1@naver.com" {
		t.Fatalf("token bound to wrong user: %+v", claims)
	}
	sess, ok, _ := f.sessions.Get(ctx, f.owner.UserID)
	if !ok || sess.SessionID != claims.SessionID {
		t.Fatalf("session not recorded: %+v", sess)
	}

	if _, err := f.users.SignIn(ctx, "user1@naver.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.users.SignIn(ctx, "nobody@naver.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignOutDropsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.users.SignIn(ctx, "user1@naver.com", "password1"); err != nil {
		t.Fatal(err)
	}
	if err := f.users.SignOut(ctx, f.owner); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := f.sessions.Get(ctx, f.owner.UserID); ok {
		t.Fatal("session should be gone")
	}
}

func TestUpdateUserProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.users.UpdateUserProfile(ctx, f.owner, f.owner.UserID, "renamed")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Nickname != "renamed" {
		t.Fatalf("nickname = %q", resp.Nickname)
	}

	if _, err := f.users.UpdateUserProfile(ctx, f.other, f.owner.UserID, "hijacked"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	profile, _ := f.users.GetProfile(ctx, f.owner.UserID)
	if profile.Nickname != "renamed" {
		t.Fatalf("nickname changed by another user: %q", profile.Nickname)
	}

	var nf *NotFoundError
	if _, err := f.users.UpdateUserProfile(ctx, f.owner, 999, "ghost"); !errors.As(err, &nf) || nf.Model != "User" || nf.ID != 999 {
		t.Fatalf("expected NotFoundError for user 999, got %v", err)
	}
}
