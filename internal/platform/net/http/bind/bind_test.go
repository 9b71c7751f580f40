package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "jobmail/internal/platform/errors"
)

type message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type bounded struct {
	Strength float64 `json:"strength" validate:"gte=0,lte=1"`
	Kind     string  `json:"kind" validate:"omitempty,oneof=ats direct"`
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	lenient := JSONOptions{MaxBytes: 1 << 20, AllowEmptyBody: true}

	cases := []struct {
		name    string
		body    string
		opts    []JSONOptions
		want    message
		wantErr perr.ErrorCode
	}{
		{name: "ok strict", body: `{"subject":"hi","body":"there"}`, want: message{"hi", "there"}},
		{name: "empty strict", body: "", wantErr: perr.ErrorCodeJSON},
		{name: "empty lenient", body: "", opts: []JSONOptions{lenient}},
		{name: "unknown strict", body: `{"subject":"a","cc":"b"}`, wantErr: perr.ErrorCodeJSON},
		{name: "unknown lenient", body: `{"subject":"a","cc":"b"}`, opts: []JSONOptions{lenient}, want: message{Subject: "a"}},
		{name: "syntax", body: `{"subject":`, wantErr: perr.ErrorCodeJSON},
		{name: "trailing", body: `{"subject":"a"} {}`, wantErr: perr.ErrorCodeJSON},
		{name: "over limit", body: `{"subject":"abcdefgh"}`, opts: []JSONOptions{{MaxBytes: 8}}, wantErr: perr.ErrorCodeJSON},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseJSON[message](post(c.body), c.opts...)
			if c.wantErr != 0 || err != nil {
				if perr.CodeOf(err) != c.wantErr {
					t.Fatalf("err = %v (code %d), want code %d", err, perr.CodeOf(err), c.wantErr)
				}
				return
			}
			if got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestParseJSON_Validation(t *testing.T) {
	_, err := ParseJSON[bounded](post(`{"strength":1.5}`))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if w := perr.WireFrom(err); w.Field != "strength" || w.Message != "strength must be at most 1" {
		t.Fatalf("wire = %+v", w)
	}

	_, err = ParseJSON[bounded](post(`{"strength":0.5,"kind":"bulk"}`))
	if w := perr.WireFrom(err); w.Field != "kind" || !strings.Contains(w.Message, "one of [ats direct]") {
		t.Fatalf("wire = %+v", w)
	}

	got, err := ParseJSON[bounded](post(`{"strength":0.5,"kind":"ats"}`))
	if err != nil || got.Kind != "ats" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestParseJSON_NonStructSkipsValidation(t *testing.T) {
	got, err := ParseJSON[map[string]int](post(`{"a":1}`))
	if err != nil || got["a"] != 1 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestValidationFieldAndMessage(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
	err := Get().Validator.Struct(bounded{Strength: -1})
	f, m := ValidationFieldAndMessage(err)
	if f != "strength" || m != "strength must be at least 0" {
		t.Fatalf("got %q %q", f, m)
	}
}
