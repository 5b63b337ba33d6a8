package document

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDataUnmarshalDates(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		body      string
		issue     time.Time
		due       *time.Time
		wantError bool
	}{
		{"calendar date", `{"kind":"invoice","issue_date":"2025-01-15","due_date":"2025-01-15"}`, day, &day, false},
		{"rfc3339", `{"kind":"invoice","issue_date":"2025-01-15T00:00:00Z"}`, day, nil, false},
		{"null due date", `{"kind":"invoice","issue_date":"2025-01-15","due_date":null}`, day, nil, false},
		{"missing issue date", `{"kind":"invoice"}`, time.Time{}, nil, false},
		{"garbage", `{"kind":"invoice","issue_date":"15/01/2025"}`, time.Time{}, nil, true},
		{"wrong type", `{"kind":"invoice","issue_date":20250115}`, time.Time{}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Data
			err := json.Unmarshal([]byte(tt.body), &d)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if d.Kind != KindInvoice {
				t.Errorf("kind = %q", d.Kind)
			}
			if !d.IssueDate.Equal(tt.issue) {
				t.Errorf("issue date = %v, want %v", d.IssueDate, tt.issue)
			}
			if (d.DueDate == nil) != (tt.due == nil) || (d.DueDate != nil && !d.DueDate.Equal(*tt.due)) {
				t.Errorf("due date = %v, want %v", d.DueDate, tt.due)
			}
		})
	}
}

func TestDataUnmarshalKeepsOtherFields(t *testing.T) {
	body := `{"kind":"quote","number":"DEV-1","issue_date":"2025-01-15","valid_until":"2025-02-14",
		"party":{"name":"Salma"},"items":[{"label":"Étagère","quantity":1,"unit_price":900,"total":900}],"grand_total":900}`
	var d Data
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Number != "DEV-1" || d.Party.Name != "Salma" || len(d.Items) != 1 || d.GrandTotal != 900 {
		t.Errorf("fields lost: %+v", d)
	}
	if d.ValidUntil == nil || d.ValidUntil.Format(time.DateOnly) != "2025-02-14" {
		t.Errorf("valid until = %v", d.ValidUntil)
	}
}
