package errors

import (
	"fmt"
	"testing"
)

func TestTaxonomyIsDistinct(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
		code  string
	}{
		{"validation", Validation("title is required"), IsValidation, CodeValidation},
		{"unauthorized", Unauthorized("invalid token"), IsUnauthorized, CodeUnauthorized},
		{"self reaction", SelfReaction("owner cannot like"), IsSelfReaction, CodeSelfReaction},
		{"not found", NotFound("post not found"), IsNotFound, CodeNotFound},
		{"expired", PostExpired("post is expired"), IsPostExpired, CodePostExpired},
		{"store", StoreFailure(fmt.Errorf("conn reset"), "store failed"), IsStoreFailure, CodeStoreFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.check(tc.err) {
				t.Fatalf("%v not classified as %s", tc.err, tc.name)
			}
			if got := GetCode(tc.err); got != tc.code {
				t.Fatalf("code = %q, want %q", got, tc.code)
			}
			for _, other := range cases {
				if other.name != tc.name && other.check(tc.err) {
					t.Fatalf("%s also classified as %s", tc.name, other.name)
				}
			}
		})
	}
}

func TestStoreFailureKeepsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := StoreFailure(cause, "failed to load post")

	if !Is(err, cause) {
		t.Fatal("cause lost from chain")
	}
	if GetMessage(err) != "failed to load post" {
		t.Fatalf("message = %q", GetMessage(err))
	}
	if StoreFailure(nil, "x") != nil {
		t.Fatal("nil cause should stay nil")
	}
}

func TestWrappedDomainErrorSurvivesFmtWrap(t *testing.T) {
	err := fmt.Errorf("like: %w", PostExpired("post is expired; cannot like"))
	if !IsPostExpired(err) || !IsDomain(err) {
		t.Fatal("expected domain error through fmt wrap")
	}
	if IsDomain(fmt.Errorf("plain")) {
		t.Fatal("plain error reported as domain")
	}
}

func TestWrapCarriesNoCode(t *testing.T) {
	cause := fmt.Errorf("key is of invalid type")
	err := Wrap(cause, "failed to sign token")

	if !Is(err, cause) || IsDomain(err) {
		t.Fatalf("err = %v, code = %q", err, GetCode(err))
	}
	if GetMessage(err) != "failed to sign token" {
		t.Fatalf("message = %q", GetMessage(err))
	}
	if Wrap(nil, "x") != nil {
		t.Fatal("nil cause should stay nil")
	}
}
