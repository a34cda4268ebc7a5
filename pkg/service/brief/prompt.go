package brief

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a business intelligence analyst who writes short executive briefs. " +
	"Cover industry, size, geographic presence and customer type in 3-4 sentences useful as sales context."

func buildPrompt(clientName, country, searchText string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "CLIENT TO RESEARCH: %q\n\n", clientName)
	sb.WriteString("WEB SEARCH INFORMATION:\n")
	sb.WriteString(searchText)
	sb.WriteString("\n\n")

	sb.WriteString("Write an executive brief of 3-4 sentences that covers:\n")
	sb.WriteString("1. INDUSTRY/SECTOR: what the company does\n")
	sb.WriteString("2. SIZE: small/medium/large, approximate number of employees if available\n")
	sb.WriteString("3. PRESENCE: geographic coverage (local/regional/national), main cities or states\n")
	sb.WriteString("4. CONTEXT: type of customers, main services, or market position\n\n")

	sb.WriteString("REQUIRED FORMAT:\n")
	fmt.Fprintf(&sb, "\"[COMPANY] is a [SIZE] [SECTOR/INDUSTRY] company operating in %s, specializing in [SERVICES/PRODUCTS]. ", country)
	sb.WriteString("The company has [GEOGRAPHIC PRESENCE] and serves [CUSTOMER TYPE]. ")
	sb.WriteString("[ADDITIONAL CONTEXT about relevance, subsidiaries, or distinctive traits].\"\n\n")

	sb.WriteString("AVOID:\n")
	sb.WriteString("- Names of specific executives\n")
	sb.WriteString("- Very specific dates\n")
	sb.WriteString("- Detailed financial information\n")
	sb.WriteString("- More than 4 sentences\n\n")

	sb.WriteString("If information is limited, say \"based on available information\" or \"according to sources\".\n")
	sb.WriteString("Answer ONLY with the brief, in English.\n")

	return sb.String()
}
