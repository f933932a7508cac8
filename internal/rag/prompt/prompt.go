package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

const divider = "============================================================"

// SystemInstruction is the instruction block sent with every generation call.
func SystemInstruction(loc config.LocationConfig) string {
	return fmt.Sprintf(`You are a helpful community helpdesk assistant for %s, %s.

CRITICAL RULES:
1. Answer ONLY in PLAIN TEXT - NO HTML, NO formatting tags, NO markdown
2. Answer based ONLY on the service information provided below
3. Be concise, friendly, and conversational
4. Include: service name, address, contact, hours, fees
5. Use simple bullet points with dashes (-) if listing multiple services
6. Do NOT include any HTML tags like <div>, <span>, <strong>, etc.`, loc.City, loc.State)
}

// UserPrompt assembles the retrieval context, location, and question into the
// prompt body passed to the model.
func UserPrompt(question string, services []catalog.Retrieved, snippets []string, userLocation string) string {
	var b strings.Builder

	location := userLocation
	if location == "" {
		location = "Not specified"
	}
	fmt.Fprintf(&b, "User Location: %s\n\nAvailable Services:\n", location)
	b.WriteString(FormatServicesContext(services))

	if len(snippets) > 0 {
		b.WriteString("\n\nAdditional Reference Documents:\n")
		for _, snippet := range snippets {
			b.WriteString("\n- " + snippet)
		}
	}

	fmt.Fprintf(&b, "\n\nUser Question: %s\n\nProvide a helpful PLAIN TEXT answer (no HTML tags):", question)
	return b.String()
}

// FormatServicesContext renders retrieved service records into readable text.
func FormatServicesContext(services []catalog.Retrieved) string {
	formatted := make([]string, 0, len(services))

	for i, retrieved := range services {
		svc := retrieved.Service
		var b strings.Builder
		fmt.Fprintf(&b, "\n%s\nSERVICE %d\n%s", divider, i+1, divider)
		fmt.Fprintf(&b, "\nName: %s", orNA(svc.ServiceName))
		fmt.Fprintf(&b, "\nCategory: %s (%s)", orNA(svc.Category), orNA(svc.Subcategory))
		fmt.Fprintf(&b, "\nDescription: %s", orNA(svc.Description))
		fmt.Fprintf(&b, "\nAddress: %s, %s", orNA(svc.Address), orNA(svc.Locality))
		fmt.Fprintf(&b, "\nCity: %s - %s", orNA(svc.City), orNA(svc.Pincode))

		appendIf(&b, "Phone", svc.ContactPhone)
		appendIf(&b, "Email", svc.ContactEmail)
		appendIf(&b, "Website", svc.Website)
		appendIf(&b, "Operating Hours", svc.Hours)
		appendIf(&b, "Fees", svc.Fees)
		appendIf(&b, "Payment Options", svc.PaymentOptions)
		if svc.WheelchairAccessible == "yes" {
			b.WriteString("\nAccessibility: Wheelchair accessible")
		}
		if svc.EmergencyService == "yes" {
			b.WriteString("\nEMERGENCY SERVICE AVAILABLE 24/7")
		}
		appendIf(&b, "Languages", svc.LanguagesSupported)
		appendIf(&b, "Additional Info", svc.Notes)

		formatted = append(formatted, b.String())
	}

	return strings.Join(formatted, "\n")
}

// OffTopicResponse is the canned reply for questions outside local services.
func OffTopicResponse(loc config.LocationConfig, care config.CareConfig) string {
	return fmt.Sprintf(`I apologize, but I can only help with community service queries related to %s, %s.

I can help you find information about:
- Healthcare services (hospitals, clinics, pharmacies)
- Civic services (police, fire, municipal offices)
- Utilities (electricity, water, gas)
- Educational institutions
- Transportation services
- Banks and financial services
- Local shops and markets
And many more local services!

If you need assistance with something else, please contact:
Customer Care: %s
Email: %s
Available: %s`, loc.City, loc.State, care.Phone, care.Email, care.Hours)
}

// EscalationResponse is the canned reply when retrieval finds nothing.
func EscalationResponse(care config.CareConfig) string {
	return fmt.Sprintf(`I apologize, but I couldn't find the specific information you're looking for in my current database.

For immediate assistance, please contact:

Helpline
   Phone: %s
   Available: %s

Email Support
   %s

Online Portal
   Visit: %s

A customer care representative will be happy to assist you with your specific query.`, care.Phone, care.Hours, care.Email, care.Website)
}

// StripHTML removes any markup the model produced despite the instructions.
func StripHTML(answer string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(answer, ""))
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

func appendIf(b *strings.Builder, label string, value string) {
	if value != "" {
		fmt.Fprintf(b, "\n%s: %s", label, value)
	}
}
