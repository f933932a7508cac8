package catalog

import "strings"

// Service is one community service record in the knowledge base.
// Optional fields stay empty strings; the vector payload drops them.
type Service struct {
	ID                   string `json:"id"`
	ServiceName          string `json:"service_name"`
	Category             string `json:"category"`
	Subcategory          string `json:"subcategory"`
	Description          string `json:"description"`
	Address              string `json:"address"`
	Locality             string `json:"locality"`
	Pincode              string `json:"pincode"`
	City                 string `json:"city"`
	State                string `json:"state"`
	ContactPhone         string `json:"contact_phone,omitempty"`
	ContactEmail         string `json:"contact_email,omitempty"`
	Website              string `json:"website,omitempty"`
	Hours                string `json:"hours,omitempty"`
	LanguagesSupported   string `json:"languages_supported,omitempty"`
	Fees                 string `json:"fees,omitempty"`
	PaymentOptions       string `json:"payment_options,omitempty"`
	WheelchairAccessible string `json:"wheelchair_accessible,omitempty"`
	Ownership            string `json:"ownership,omitempty"`
	DocumentsRequired    string `json:"documents_required,omitempty"`
	Tags                 string `json:"tags,omitempty"`
	EmergencyService     string `json:"emergency_service,omitempty"`
	ResponseTimeEstimate string `json:"response_time_estimate,omitempty"`
	GeoLat               string `json:"geo_lat,omitempty"`
	GeoLng               string `json:"geo_lng,omitempty"`
	LastUpdated          string `json:"last_updated,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// Retrieved is a service that came back from vector search, with its
// cosine similarity attached.
type Retrieved struct {
	Service    Service
	Similarity float64
}

func (s Service) Validate() bool {
	return s.ID != "" && s.ServiceName != "" && s.Category != "" && s.Description != ""
}

// SearchableText builds the string that gets embedded for a record.
// Key fields are concatenated so semantic search can match on any of
// them; emergency services get an extra urgency marker.
func (s Service) SearchableText() string {
	fields := []string{
		s.ServiceName,
		s.Category,
		s.Subcategory,
		s.Description,
		s.Locality,
		s.Tags,
		s.Address,
	}
	if s.EmergencyService == "yes" {
		fields = append(fields, "emergency service 24/7 urgent")
	}

	var nonEmpty []string
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.Join(nonEmpty, " ")
}

type Category struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Categories is the fixed set the stats and info endpoints report on.
var Categories = []Category{
	{Name: "Healthcare", Icon: "🏥", Description: "Hospitals, Clinics, Pharmacies"},
	{Name: "Civic", Icon: "🏛️", Description: "Police, Fire, Municipal Services"},
	{Name: "Utilities", Icon: "⚡", Description: "Electricity, Water, Gas"},
	{Name: "Education", Icon: "🎓", Description: "Schools, Libraries, Coaching"},
	{Name: "Transport", Icon: "🚌", Description: "Bus, Metro, Auto Services"},
	{Name: "Food & Retail", Icon: "🛒", Description: "Grocery, Markets"},
	{Name: "Home Services", Icon: "🔧", Description: "Repairs, Maintenance"},
	{Name: "Personal Care", Icon: "💇", Description: "Salons, Spas"},
	{Name: "Financial", Icon: "🏦", Description: "Banks, ATMs"},
	{Name: "Legal & Govt", Icon: "⚖️", Description: "Legal Aid, Govt Offices"},
	{Name: "Animal & Pet", Icon: "🐾", Description: "Veterinary Services"},
	{Name: "Community", Icon: "📚", Description: "Libraries, Community Centers"},
}

func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return names
}
