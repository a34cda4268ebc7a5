package summary

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/smartcomment/pkg/domain/model"
)

const systemPrompt = "You are a technical documentation specialist for Fortinet. " +
	"Your expertise includes FortiGate, FortiSASE, FortiEDR, ZTNA, SPA, DEM and the rest of the security portfolio. " +
	"You write professional executive documentation for SMART business reports."

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// buildUserPrompt embeds every field of the submission and the template the
// SMART Comment must follow
func buildUserPrompt(input Input) string {
	sub := input.Submission
	isNew := sub.IsNew()
	attendees := orDefault(sub.Attendees, "To be specified")

	var sb strings.Builder

	sb.WriteString("RECEIVED INFORMATION (in Spanish):\n")
	if isNew {
		fmt.Fprintf(&sb, "- Type: %s (NEW CLIENT)\n", sub.Type)
	} else {
		fmt.Fprintf(&sb, "- Type: %s (UPDATE)\n", sub.Type)
	}
	fmt.Fprintf(&sb, "- Client: %s\n", sub.Client)
	fmt.Fprintf(&sb, "- Title: %q\n", sub.Title)
	fmt.Fprintf(&sb, "- Description: %q\n", sub.Description)
	fmt.Fprintf(&sb, "- Technology: %s\n", orDefault(sub.Technology, "Not specified"))
	fmt.Fprintf(&sb, "- Attendees: %s\n", orDefault(sub.Attendees, "Not specified"))
	fmt.Fprintf(&sb, "- Next steps: %s\n", orDefault(sub.NextSteps, "See description"))
	fmt.Fprintf(&sb, "- SMART ID: %s\n", orDefault(sub.CaseID, "Pending"))
	fmt.Fprintf(&sb, "- SalesForce ID: %s\n", orDefault(sub.ExternalCaseID, "Pending"))
	sb.WriteString("\n")

	if isNew && input.Brief != "" {
		fmt.Fprintf(&sb, "GENERATED CLIENT BRIEF: %s\n\n", input.Brief)
	}

	if len(input.Activity) > 0 {
		sb.WriteString("PREVIOUS ACTIVITY WITH THIS CLIENT (newest first, for context only):\n")
		for _, a := range input.Activity {
			date := "unknown date"
			if !a.ProcessedDate.IsZero() {
				date = a.ProcessedDate.Format("2006-01-02")
			}
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", date, a.Title, a.SmartComment)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Write a professional SMART Comment in English following EXACTLY this format:\n\n")
	fmt.Fprintf(&sb, "%s: A meeting was held with %s to [PURPOSE EXTRACTED FROM DESCRIPTION].\n", sub.Type.Header(), sub.Client)
	fmt.Fprintf(&sb, "Attendees: %s\n\n", attendees)
	sb.WriteString("During the session, we [DETAILED TECHNICAL DESCRIPTION BASED ON TECHNOLOGY AND DESCRIPTION]. The following functionalities/topics were covered:\n")
	sb.WriteString("1.- [Technical point 1 - extract from description]\n")
	sb.WriteString("2.- [Technical point 2 - if applicable]\n")
	sb.WriteString("3.- [Technical point 3 - if applicable]\n\n")
	sb.WriteString("[CURRENT STATUS AND TECHNICAL SITUATION - based on description]\n\n")
	sb.WriteString("Next Steps:\n")
	sb.WriteString("1.- [Specific action with timeline from the next steps]\n")
	sb.WriteString("2.- [Additional actions if needed]\n\n")

	sb.WriteString("RULES:\n")
	sb.WriteString("- Use Fortinet terminology (FortiGate, FortiSASE, FortiEDR, ZTNA, SPA, DEM, etc.)\n")
	sb.WriteString("- Extract specific technical points from the description\n")
	sb.WriteString("- For FortiEDR focus on endpoint security, threat detection and incident response\n")
	sb.WriteString("- For FortiSASE focus on ZTNA, SPA, cloud security and DEM\n")
	sb.WriteString("- For FortiGate focus on firewall, VPN and network security\n")
	sb.WriteString("- Describe the current status of the project or deployment\n")
	sb.WriteString("- Define clear and specific next steps\n")
	sb.WriteString("- Keep a professional, executive tone\n")
	sb.WriteString("- Translate everything from Spanish to technical English\n\n")

	clientBrief := model.NotApplicableBrief
	if isNew {
		clientBrief = "client brief in English"
	}

	sb.WriteString("Answer ONLY with one JSON object of this shape:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"title\": \"translated and improved title\",\n")
	sb.WriteString("  \"description\": \"short translated technical description\",\n")
	sb.WriteString("  \"technology\": \"technology in standard format\",\n")
	sb.WriteString("  \"smart_comment\": \"the complete SMART Comment in the exact format above\",\n")
	fmt.Fprintf(&sb, "  \"client_brief\": %q,\n", clientBrief)
	sb.WriteString("  \"next_actions\": \"specific next steps in English\",\n")
	sb.WriteString("  \"recommended_smart_id\": \"suggested ID if none was provided\",\n")
	sb.WriteString("  \"technical_focus\": \"main technical area (e.g. Endpoint Security, Network Security, Cloud Security)\"\n")
	sb.WriteString("}\n")

	return sb.String()
}
