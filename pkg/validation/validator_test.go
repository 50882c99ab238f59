package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type signUpPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Nickname string `json:"nickname" binding:"required,nickname"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&signUpPayload{Email: "nope", Password: "short", Nickname: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := ToDetails(err)
	want := map[string]string{
		"email":    "must be a valid email",
		"password": "must be at least 8 characters long",
		"nickname": "must not be blank",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: got %q, want %q", k, got[k], v)
		}
	}
}

func TestToDetailsAcceptsValidPayload(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&signUpPayload{Email: "user1@naver.com", Password: "password1", Nickname: "user1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ToDetails(nil) != nil {
		t.Fatal("nil error should give nil details")
	}
}
