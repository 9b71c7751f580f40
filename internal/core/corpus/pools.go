package corpus

import "jobmail/internal/core/label"

// subjects are vague on purpose; none of them hints at a label
var subjects = [...]string{
	"Application update",
	"Status update",
	"Next steps",
	"Decision update",
	"Regarding your submission",
	"Update regarding your application",
	"Employment update",
	"Follow up",
}

// sharedLines appear in every label's bodies
var sharedLines = [...]string{
	"Thank you for your interest.",
	"This message is automated.",
	"Please do not reply to this email.",
	"For details, sign in to the portal.",
	"We will reach out with updates.",
}

// snippets are the weak per-label cues
var snippets = map[label.Label][3]string{
	label.Applied: {
		"We received your submission and our team will review it.",
		"You can monitor progress in the portal.",
		"No action is needed at this time.",
	},
	label.Interview: {
		"If you'd like to proceed, please share availability.",
		"We may invite you to complete an assessment.",
		"A coordinator will follow up with scheduling options.",
	},
	label.Rejected: {
		"We have decided to proceed with other candidates.",
		"Thank you for your time and interest.",
		"We encourage you to apply for future openings.",
	},
	label.Offer: {
		"We are excited to share an update regarding your candidacy.",
		"A document outlining next steps is available in the portal.",
		"Please respond within a few business days.",
	},
	label.Other: {
		"Your application is still being reviewed.",
		"We will share updates as soon as possible.",
		"Thanks for your patience during this process.",
	},
	label.NotJob: {
		"Here are roles recommended for you based on your profile.",
		"This is an automated notification. No reply needed.",
		"Update your preferences to improve recommendations.",
	},
}

var atsSenders = [...]string{
	"no-reply@greenhouse.io",
	"noreply@myworkday.com",
	"recruiting@lever.co",
	"jobs@ashbyhq.com",
	"no-reply@icims.com",
}

var companies = [...]string{
	"Google", "Amazon", "Microsoft", "Meta", "Netflix", "Stripe", "Uber", "Disney",
	"Airbnb", "LinkedIn", "Databricks", "Samsung", "Apple", "Nvidia", "Salesforce",
	"Adobe", "IBM", "Oracle", "Atlassian", "Intel", "Qualcomm", "Tesla", "VMware",
	"Cisco", "Shopify", "Spotify", "Snap", "Palantir", "Bloomberg", "Goldman Sachs",
	"JPMorgan", "Morgan Stanley", "ByteDance", "TikTok", "Reddit",
}

var roles = [...]string{
	"Software Engineer", "Software Engineer Intern", "Backend Engineer", "Data Engineer",
	"ML Engineer", "SDET Intern", "Security Engineer", "Full Stack Engineer",
}

// Subjects returns the shared subject pool
func Subjects() []string { return append([]string(nil), subjects[:]...) }

// SharedLines returns the boilerplate lines used across all labels
func SharedLines() []string { return append([]string(nil), sharedLines[:]...) }

// Snippets returns the cue lines for l, or nil for a label outside the set
func Snippets(l label.Label) []string {
	lines, ok := snippets[l]
	if !ok {
		return nil
	}
	return append([]string(nil), lines[:]...)
}

// Companies returns the organization display names
func Companies() []string { return append([]string(nil), companies[:]...) }

// Roles returns the job titles used in subjects
func Roles() []string { return append([]string(nil), roles[:]...) }

// ATSSenders returns the fixed applicant tracking system addresses
func ATSSenders() []string { return append([]string(nil), atsSenders[:]...) }
