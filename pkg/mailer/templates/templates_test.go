package templates

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCommentAdded(t *testing.T) {
	data := NewData("", "user1", "user1@naver.com",
		WithCard(3, "06/24 공부 계획"),
		WithComment("user2", "<b>화이팅</b>"),
		WithTime(time.Date(2024, 6, 24, 10, 0, 0, 0, time.UTC)),
	)
	subject, text, html, err := Render(CommentAdded, data)
	if err != nil {
		t.Fatal(err)
	}
	if subject != `New comment on "06/24 공부 계획"` {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(text, "user2 commented") || !strings.Contains(text, "Todo Cards") {
		t.Fatalf("text body missing author or default app name:\n%s", text)
	}
	if strings.Contains(html, "<b>화이팅</b>") {
		t.Fatal("html body must escape comment content")
	}
}

func TestRenderWelcome(t *testing.T) {
	subject, _, _, err := Render(Welcome, NewData("Cards", "neo", "neo@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Cards: welcome, neo" {
		t.Fatalf("subject = %q", subject)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
