package classify

import (
	"regexp"
	"strings"
)

// Reason explains why a query passed or failed the topic gate.
type Reason string

const (
	ReasonCommunityService Reason = "community_service"
	ReasonServiceInquiry   Reason = "service_inquiry"
	ReasonOffTopic         Reason = "off_topic"
)

var communityKeywords = []string{
	"hospital", "clinic", "doctor", "health", "medical", "pharmacy", "medicine",
	"police", "fire", "emergency", "municipal", "civic", "government", "office",
	"electricity", "water", "gas", "utility", "bill", "power", "tangedco",
	"school", "education", "college", "library", "study", "admission",
	"bus", "metro", "train", "auto", "transport", "travel",
	"bank", "atm", "loan", "account", "financial",
	"grocery", "market", "shop", "store", "ration",
	"salon", "barber", "spa", "beauty",
	"electrician", "plumber", "repair", "service", "pest",
	"legal", "lawyer", "court", "advocate",
	"vet", "veterinary", "pet", "animal",
	"contact", "address", "location", "where", "how", "timings", "hours",
	"near", "nearby", "closest", "available", "open",
	"adyar", "t nagar", "velachery", "besant nagar", "chennai", "tamil nadu",
}

var servicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(where|find|locate|show|get|need)\b.*\b(service|facility|center|office)\b`),
	regexp.MustCompile(`\bhow (do|can|to)\b.*\b(contact|reach|find)\b`),
	regexp.MustCompile(`\b(timings?|hours?|schedule)\b`),
	regexp.MustCompile(`\b(phone|number|email|website)\b`),
	regexp.MustCompile(`\b(near|nearby|closest|around)\b`),
}

// IsCommunityQuery reports whether the question is about local community
// services. Keyword hits win over pattern hits; anything else is off topic.
func IsCommunityQuery(question string) (bool, Reason) {
	lower := strings.ToLower(question)

	for _, keyword := range communityKeywords {
		if strings.Contains(lower, keyword) {
			return true, ReasonCommunityService
		}
	}

	for _, pattern := range servicePatterns {
		if pattern.MatchString(lower) {
			return true, ReasonServiceInquiry
		}
	}

	return false, ReasonOffTopic
}
