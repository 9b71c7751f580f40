package prefilter

import "testing"

func TestLooksJobRelated_Table(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		from    string
		body    string
		want    bool
	}{
		{"ats sender alone", "Hello", "no-reply@greenhouse.io", "", true},
		{"strong phrase", "Thank you for applying", "careers@acme.com", "", true},
		{"three medium phrases", "Job application", "hr@acme.com", "Your application status for the role at Acme", true},
		{"two medium phrases", "Job application", "hr@acme.com", "about the role at Acme", false},
		{"nothing", "Lunch?", "friend@example.com", "see you at noon", false},
		{"negative vetoes weak score", "Your order has shipped", "shop@store.com", "job application role at", false},
		{"negative does not veto strong", "Interview invitation", "shop@store.com", "unsubscribe here", true},
		{"case insensitive", "OFFER LETTER", "x@y.com", "", true},
		{"empty", "", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksJobRelated(tc.subject, tc.from, tc.body); got != tc.want {
				t.Fatalf("LooksJobRelated = %v, want %v (%+v)", got, tc.want, Evaluate(tc.subject, tc.from, tc.body))
			}
		})
	}
}

func TestEvaluate_BodyScanLimit(t *testing.T) {
	pad := make([]byte, 5000)
	for i := range pad {
		pad[i] = 'x'
	}
	v := Evaluate("", "a@b.com", string(pad)+" thank you for applying")
	if v.JobRelated || v.Score != 0 {
		t.Fatalf("phrase beyond scan window counted: %+v", v)
	}
}

func TestEvaluate_Reasons(t *testing.T) {
	v := Evaluate("Next steps", "jobs@ashbyhq.com", "requisition 42")
	if !v.ATS || v.Strong != "next steps" || len(v.Medium) != 1 || v.Score != 7 {
		t.Fatalf("unexpected verdict %+v", v)
	}
}
