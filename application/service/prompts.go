package service

import (
	"fmt"
	"strings"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/locale"
)

const precheckSystemPrompt = `
You are an application officer at a chamber of commerce. You will be given a draft
application to one of the chamber's services. Assess whether it is ready to submit.
Point out missing or vague information and anything a reviewer is likely to ask for.
Answer in at most six short bullet points followed by a one-line verdict.
`

const summarySystemPrompt = `
You are assisting a chamber of commerce reviewer. You will be given an application
and its review history. Summarise the applicant, what they are asking for, where the
review stands and any open issues. Keep it under 150 words.
`

const commentSystemPrompt = `
You are assisting a chamber of commerce reviewer. You will be given an application,
its review history and the intent of the comment to write. Draft a courteous, specific
comment addressed to the applicant. Do not promise outcomes the intent does not state.
Return only the comment text.
`

const reviewerAssistSystemPrompt = `
You are assisting a chamber of commerce reviewer. You will be given an application and
its review history. Recommend one of APPROVE, REQUEST_CORRECTIONS or REJECT.
Respond with a JSON object only:
{"recommendation": "...", "confidence": 0.0, "rationale": "...", "concerns": ["..."]}
confidence is a number between 0 and 1.
`

func languageInstruction(loc locale.Locale) string {
	if loc == locale.Arabic {
		return "Write your answer in Modern Standard Arabic.\n"
	}
	return "Write your answer in English.\n"
}

func draftPrompt(in PrecheckInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", in.ServiceType)
	fmt.Fprintf(&b, "Organization: %s\n", in.Organization)
	fmt.Fprintf(&b, "Sector: %s\n", in.Sector)
	fmt.Fprintf(&b, "Description: %s\n", in.Description)
	writeExtensions(&b, in.ESG, in.KnowledgeSharing)
	return b.String()
}

func detailPrompt(d Detail) string {
	app := d.Application
	var b strings.Builder
	fmt.Fprintf(&b, "Application %s\n", app.ID())
	fmt.Fprintf(&b, "Service: %s\n", app.ServiceType())
	fmt.Fprintf(&b, "Status: %s\n", app.Status())
	fmt.Fprintf(&b, "Organization: %s\n", app.Organization())
	fmt.Fprintf(&b, "Sector: %s\n", app.Sector())
	fmt.Fprintf(&b, "Applicant: %s\n", app.Applicant().Name)
	fmt.Fprintf(&b, "Description: %s\n", app.Description())
	writeExtensions(&b, app.ESG(), app.KnowledgeSharing())
	if app.AIPrecheck() != "" {
		fmt.Fprintf(&b, "Earlier readiness check: %s\n", app.AIPrecheck())
	}
	if len(d.Notes) > 0 {
		b.WriteString("Review history:\n")
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "- %s %s (%s): %s\n", n.CreatedAt().Format("2006-01-02"), n.AuthorName(), n.AuthorType(), n.Content())
		}
	}
	return b.String()
}

func writeExtensions(b *strings.Builder, esg *application.ESGDetails, ks *application.KnowledgeSharingDetails) {
	if esg != nil {
		fmt.Fprintf(b, "Sub-sector: %s\n", esg.SubSector)
		fmt.Fprintf(b, "Trade license: %s\n", esg.TradeLicense)
		fmt.Fprintf(b, "Employees: %d\n", esg.EmployeeCount)
		fmt.Fprintf(b, "Sustainability policy: %t\n", esg.HasSustainabilityPolicy)
		if len(esg.Frameworks) > 0 {
			fmt.Fprintf(b, "Reporting frameworks: %s\n", strings.Join(esg.Frameworks, ", "))
		}
		if esg.Initiatives != "" {
			fmt.Fprintf(b, "Initiatives: %s\n", esg.Initiatives)
		}
	}
	if ks != nil {
		fmt.Fprintf(b, "Program: %s\n", ks.ProgramType)
		fmt.Fprintf(b, "Topic: %s\n", ks.Topic)
		fmt.Fprintf(b, "Format: %s\n", ks.Format)
		fmt.Fprintf(b, "Expected attendees: %d\n", ks.ExpectedAttendees)
		if ks.SessionDate != nil {
			fmt.Fprintf(b, "Session date: %s\n", ks.SessionDate.Format("2006-01-02"))
		}
		if len(ks.Topics) > 0 {
			fmt.Fprintf(b, "Topics: %s\n", strings.Join(ks.Topics, ", "))
		}
	}
}
