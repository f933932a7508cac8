package prompt

import (
	"strings"
	"testing"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
)

func TestFormatServicesContext(t *testing.T) {
	services := []catalog.Retrieved{
		{
			Service: catalog.Service{
				ServiceName:      "Apollo Hospital",
				Category:         "Healthcare",
				Subcategory:      "Hospital",
				Description:      "Multi speciality hospital",
				Address:          "21 Greams Lane",
				Locality:         "Thousand Lights",
				City:             "Chennai",
				Pincode:          "600006",
				ContactPhone:     "044-28290200",
				EmergencyService: "yes",
			},
			Similarity: 0.91,
		},
	}

	got := FormatServicesContext(services)

	for _, want := range []string{
		"SERVICE 1",
		"Name: Apollo Hospital",
		"Category: Healthcare (Hospital)",
		"Phone: 044-28290200",
		"EMERGENCY SERVICE AVAILABLE 24/7",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected context to contain %q", want)
		}
	}

	if strings.Contains(got, "Fees:") {
		t.Error("Empty optional fields should be omitted")
	}
}

func TestUserPromptDefaultsLocation(t *testing.T) {
	got := UserPrompt("where is the library", nil, nil, "")
	if !strings.Contains(got, "User Location: Not specified") {
		t.Error("Expected unset location to render as Not specified")
	}
	if !strings.Contains(got, "User Question: where is the library") {
		t.Error("Expected question to be embedded in the prompt")
	}
}

func TestUserPromptIncludesSnippets(t *testing.T) {
	got := UserPrompt("garbage pickup schedule", nil, []string{"Ward 173 pickup is on Tuesdays"}, "Adyar")
	if !strings.Contains(got, "Additional Reference Documents") {
		t.Error("Expected document snippets section")
	}
	if !strings.Contains(got, "Ward 173 pickup is on Tuesdays") {
		t.Error("Expected snippet content in prompt")
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("  <div>Call <strong>1913</strong></div> ")
	if got != "Call 1913" {
		t.Errorf("Expected stripped answer, got %q", got)
	}
}

func TestCannedResponsesUseConfig(t *testing.T) {
	loc := config.LocationConfig{City: "Chennai", State: "Tamil Nadu"}
	care := config.CareConfig{Phone: "1913", Email: "support@chennaicorporation.gov.in", Hours: "24/7", Website: "www.chennaicorporation.gov.in"}

	offTopic := OffTopicResponse(loc, care)
	if !strings.Contains(offTopic, "Chennai, Tamil Nadu") || !strings.Contains(offTopic, "1913") {
		t.Error("Off-topic response missing configured values")
	}

	escalation := EscalationResponse(care)
	if !strings.Contains(escalation, "support@chennaicorporation.gov.in") || !strings.Contains(escalation, "www.chennaicorporation.gov.in") {
		t.Error("Escalation response missing configured values")
	}
}
