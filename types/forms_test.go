package types

import (
	"strings"
	"testing"
)

func validSubmission() Submission {
	return Submission{
		Name:        "Inbox Zero",
		Category:    Productivity,
		Description: "Triages email",
		Price:       49,
		PriceType:   Lifetime,
		DemoURL:     "https://demo.example.com",
		InstallType: InstallAPI,
	}
}

func TestSubmissionValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		want   []string
	}{
		{name: "valid", mutate: func(*Submission) {}},
		{name: "free with no demo", mutate: func(s *Submission) {
			s.Price, s.PriceType, s.DemoURL, s.InstallType = 0, Free, "", ""
		}},
		{name: "empty draft", mutate: func(s *Submission) { *s = Submission{} },
			want: []string{"name is required", "category is required", "description is required", "price_type is required"}},
		{name: "negative price", mutate: func(s *Submission) { s.Price = -1 },
			want: []string{"price must be at least 0"}},
		{name: "unknown category", mutate: func(s *Submission) { s.Category = "games" },
			want: []string{"category must be one of"}},
		{name: "bad demo url", mutate: func(s *Submission) { s.DemoURL = "not a url" },
			want: []string{"demo_url must be an http(s) URL"}},
		{name: "bad install type", mutate: func(s *Submission) { s.InstallType = "ftp" },
			want: []string{"install_type must be one of"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := s.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("Validate() = %q, want it to contain %q", err, w)
				}
			}
		})
	}
}

func TestWaitlistEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   WaitlistEntry
		wantErr string
	}{
		{name: "email only", entry: WaitlistEntry{Email: "ada@example.com"}},
		{name: "with goals", entry: WaitlistEntry{Email: "ada@example.com", Goals: []string{"fitness", "leads"}}},
		{name: "missing email", entry: WaitlistEntry{}, wantErr: "email is required"},
		{name: "malformed email", entry: WaitlistEntry{Email: "ada@"}, wantErr: "email must be a valid email address"},
		{name: "unknown goal", entry: WaitlistEntry{Email: "ada@example.com", Goals: []string{"gaming"}}, wantErr: "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWaitlistGoalsMatchValidation(t *testing.T) {
	for _, g := range WaitlistGoals {
		e := WaitlistEntry{Email: "a@b.co", Goals: []string{g.Value}}
		if err := e.Validate(); err != nil {
			t.Errorf("goal %q rejected: %v", g.Value, err)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories {
		if !c.Valid() {
			t.Errorf("%q.Valid() = false", c)
		}
	}
	if Category("games").Valid() {
		t.Error(`"games".Valid() = true`)
	}
}

func TestSubmissionCategoryFollowsAllCategories(t *testing.T) {
	base := Submission{Name: "A", Description: "B", Price: 1, PriceType: Lifetime}
	for _, c := range AllCategories {
		s := base
		s.Category = c
		if err := s.Validate(); err != nil {
			t.Errorf("category %q rejected: %v", c, err)
		}
	}

	base.Category = "games"
	err := base.Validate()
	if err == nil {
		t.Fatal("unknown category accepted")
	}
	for _, c := range AllCategories {
		if !strings.Contains(err.Error(), string(c)) {
			t.Errorf("error %q does not list %q", err, c)
		}
	}
}
