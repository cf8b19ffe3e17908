package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "producescan/internal/platform/errors"
)

type captureBody struct {
	Image  string `json:"image" validate:"required,min=4"`
	Source string `json:"source,omitempty" validate:"omitempty,max=8"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/scan/capture", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		body     string
		opts     []JSONOptions
		wantCode perr.ErrorCode
		wantMsg  string
		wantImg  string
	}{
		{name: "ok", body: `{"image":"aGVsbG8="}`, wantImg: "aGVsbG8="},
		{name: "empty body", body: "", wantCode: perr.ErrorCodeJSON, wantMsg: "empty body"},
		{name: "empty body allowed", body: "", opts: []JSONOptions{{AllowEmptyBody: true}}},
		{name: "malformed", body: `{"image":`, wantCode: perr.ErrorCodeJSON, wantMsg: "invalid JSON"},
		{name: "unknown field", body: `{"image":"aGVsbG8=","camera":1}`, wantCode: perr.ErrorCodeJSON, wantMsg: "unknown field"},
		{name: "unknown field allowed", body: `{"image":"aGVsbG8=","camera":1}`, opts: []JSONOptions{{AllowUnknown: true}}, wantImg: "aGVsbG8="},
		{name: "trailing value", body: `{"image":"aGVsbG8="}{}`, wantCode: perr.ErrorCodeJSON, wantMsg: "trailing"},
		{name: "over limit", body: `{"image":"aGVsbG8gd29ybGQ="}`, opts: []JSONOptions{{MaxBytes: 12}}, wantCode: perr.ErrorCodeJSON},
		{name: "missing image", body: `{}`, wantCode: perr.ErrorCodeValidation, wantMsg: "image is a required field"},
		{name: "short image", body: `{"image":"ab"}`, wantCode: perr.ErrorCodeValidation, wantMsg: "image must be at least 4"},
		{name: "long source", body: `{"image":"aGVsbG8=","source":"kiosk-camera"}`, wantCode: perr.ErrorCodeValidation, wantMsg: "source must be at most 8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseJSON[captureBody](post(tc.body), tc.opts...)
			if tc.wantCode == perr.ErrorCodeUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Image != tc.wantImg {
					t.Fatalf("image = %q want %q", got.Image, tc.wantImg)
				}
				return
			}
			if !perr.IsCode(err, tc.wantCode) {
				t.Fatalf("code = %v want %v (err=%v)", perr.CodeOf(err), tc.wantCode, err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestValidate_FieldUsesJSONName(t *testing.T) {
	t.Parallel()

	type upsert struct {
		Name     string   `json:"name" validate:"required"`
		Calories *float64 `json:"calories,omitempty" validate:"omitempty,gte=0"`
		Internal int      `json:"-" validate:"min=1"`
		Plain    int      `validate:"max=3"`
	}
	neg := -1.0
	cases := []struct {
		in    upsert
		field string
		msg   string
	}{
		{upsert{Internal: 1}, "name", "name is a required field"},
		{upsert{Name: "kiwi", Calories: &neg, Internal: 1}, "calories", "calories must be 0 or more"},
		{upsert{Name: "kiwi"}, "Internal", "Internal must be at least 1"},
		{upsert{Name: "kiwi", Internal: 1, Plain: 9}, "Plain", "Plain must be at most 3"},
	}
	for _, tc := range cases {
		err := Validate(tc.in)
		e, ok := perr.As(err)
		if !ok {
			t.Fatalf("expected project error, got %v", err)
		}
		if e.Field() != tc.field || e.Code() != perr.ErrorCodeValidation {
			t.Fatalf("field=%q code=%v want %q", e.Field(), e.Code(), tc.field)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("message %q does not contain %q", err.Error(), tc.msg)
		}
	}
	if err := Validate(upsert{Name: "kiwi", Internal: 1}); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	t.Parallel()

	if err := Validate(42); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("non struct should be a JSON error, got %v", err)
	}
}

func TestFieldMessage(t *testing.T) {
	t.Parallel()

	if f, m := FieldMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
	if f, m := FieldMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("foreign: %q %q", f, m)
	}
}

func TestGet_Singleton(t *testing.T) {
	t.Parallel()

	if Get() != Get() {
		t.Fatalf("validator rebuilt")
	}
}
