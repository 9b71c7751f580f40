// Package features renders a message into the single text form consumed by the vectorizer.
// Training and serving both go through Encode so the two paths cannot drift apart
package features

import (
	"strings"

	"jobmail/internal/core/label"
)

// BodyCap is the number of body runes kept in the encoded text
const BodyCap = 3000

// SenderKind describes who sent a message
type SenderKind string

const (
	// KindCompany is mail sent from the organization's own domain
	KindCompany SenderKind = "company_domain"
	// KindATS is mail relayed by an applicant tracking system
	KindATS SenderKind = "ats"
)

// Valid reports whether k is a known sender kind
func (k SenderKind) Valid() bool { return k == KindCompany || k == KindATS }

// Message is one email with its derived fields
type Message struct {
	Label     label.Label // empty at inference time
	Subject   string
	Sender    string
	Body      string
	GroupKey  string
	Kind      SenderKind
	Timestamp string
}

// atsDomains are hosts of applicant tracking systems seen in job mail
var atsDomains = [...]string{
	"greenhouse.io",
	"myworkday.com",
	"workday.com",
	"lever.co",
	"ashbyhq.com",
	"smartrecruiters.com",
	"icims.com",
	"successfactors.com",
	"adp.com",
	"oraclecloud.com",
}

// ATSDomains returns a copy of the known ATS host list
func ATSDomains() []string {
	out := make([]string, len(atsDomains))
	copy(out, atsDomains[:])
	return out
}

// Domain returns the lowercased text after the last '@' in sender, or "" when there is none
func Domain(sender string) string {
	i := strings.LastIndexByte(sender, '@')
	if i < 0 {
		return ""
	}
	return strings.ToLower(sender[i+1:])
}

// IsATSDomain reports whether domain is, or is a subdomain of, a known ATS host
func IsATSDomain(domain string) bool {
	d := strings.TrimSpace(strings.ToLower(domain))
	d = strings.TrimSuffix(d, ">")
	if d == "" {
		return false
	}
	for _, a := range atsDomains {
		if d == a || strings.HasSuffix(d, "."+a) {
			return true
		}
	}
	return false
}

// InferSenderKind derives the sender kind from the sender address alone
func InferSenderKind(sender string) SenderKind {
	if IsATSDomain(Domain(sender)) {
		return KindATS
	}
	return KindCompany
}

// Encode renders the canonical text for a message
// Identical inputs always yield byte-identical output
func Encode(subject, sender, body string, kind SenderKind) string {
	var b strings.Builder
	b.Grow(len(subject) + 2*len(sender) + min(len(body), 4*BodyCap) + 64)
	b.WriteString("SUBJECT: ")
	b.WriteString(subject)
	b.WriteString("\nFROM: ")
	b.WriteString(sender)
	b.WriteString("\nDOMAIN: ")
	b.WriteString(Domain(sender))
	b.WriteString("\nSENDER_TYPE: ")
	b.WriteString(string(kind))
	b.WriteString("\nBODY: ")
	b.WriteString(Truncate(body, BodyCap))
	return b.String()
}

// EncodeMessage is Encode over a Message; an empty Kind is inferred from the sender
func EncodeMessage(m Message) string {
	kind := m.Kind
	if kind == "" {
		kind = InferSenderKind(m.Sender)
	}
	return Encode(m.Subject, m.Sender, m.Body, kind)
}

// Truncate returns at most n runes of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
