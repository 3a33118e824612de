package req_test

import (
	"testing"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/req"
)

type textPayload struct {
	Text string `json:"text"`
}

func TestBindPayload(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantText string
		wantCode int
	}{
		{"valid", `{"text":"hi"}`, "hi", 0},
		{"unknown fields ignored", `{"text":"hi","extra":1}`, "hi", 0},
		{"empty payload", ``, "", 0},
		{"null payload", `null`, "", 0},
		{"wrong type", `{"text":42}`, "", errs.ErrInvalidJSONFormat},
		{"broken json", `{"text":`, "", errs.ErrInvalidJSONFormat},
		{"trailing value", `{"text":"a"} {"text":"b"}`, "a", errs.ErrExtraContentInBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p textPayload
			err := req.BindPayload([]byte(tt.data), &p)

			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("BindPayload() error = %v", err)
				}
				if p.Text != tt.wantText {
					t.Errorf("Text = %q, want %q", p.Text, tt.wantText)
				}
				return
			}

			if err == nil {
				t.Fatalf("BindPayload() error = nil, want code %d", tt.wantCode)
			}
			if err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", err.Code, tt.wantCode)
			}
		})
	}
}
