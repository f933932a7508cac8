package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

// requests ---------------------

type ChatRequest struct {
	Question string `json:"question" validate:"required" example:"Where is the nearest hospital in Adyar?"`
	Location string `json:"location,omitempty" example:"Adyar"`
	ChatID   string `json:"chat_id,omitempty"`
}

type IngestRequest struct {
	Services []ServiceRecord `json:"services" validate:"required"`
}

// ServiceRecord mirrors catalog.Service on the wire.
type ServiceRecord struct {
	ID                   string `json:"id" example:"tn-0001"`
	ServiceName          string `json:"service_name" example:"Adyar Primary Health Centre"`
	Category             string `json:"category" example:"Healthcare"`
	Subcategory          string `json:"subcategory" example:"Clinic"`
	Description          string `json:"description"`
	Address              string `json:"address"`
	Locality             string `json:"locality" example:"Adyar"`
	Pincode              string `json:"pincode" example:"600020"`
	City                 string `json:"city" example:"Chennai"`
	State                string `json:"state" example:"Tamil Nadu"`
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

// responses --------------------

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type Result struct {
	Status       string        `json:"status"`
	ChatResponse *ChatResponse `json:"chat_response,omitempty"`
}

type ChatResponse struct {
	Question     string             `json:"question"`
	Answer       string             `json:"answer"`
	Confidence   string             `json:"confidence" example:"high"`
	ServiceCount int                `json:"service_count" example:"2"`
	Services     []RetrievedService `json:"services"`
}

type RetrievedService struct {
	ServiceName     string  `json:"service_name"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Address         string  `json:"address"`
	Locality        string  `json:"locality,omitempty"`
	ContactPhone    string  `json:"contact_phone,omitempty"`
	Hours           string  `json:"hours,omitempty"`
	SimilarityScore float64 `json:"similarity_score"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type HealthResponse struct {
	Status          string `json:"status" example:"healthy"`
	LLMAvailable    bool   `json:"llm_available"`
	VectorAvailable bool   `json:"vector_available"`
	TotalServices   uint64 `json:"total_services"`
	Message         string `json:"message"`
}

type RootResponse struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Model    string `json:"model"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type StatsResponse struct {
	TotalServices     uint64            `json:"total_services"`
	Model             string            `json:"model"`
	Location          string            `json:"location"`
	CollectionName    string            `json:"collection_name"`
	CategoryBreakdown map[string]uint64 `json:"category_breakdown"`
	CustomerCare      CustomerCare      `json:"customer_care"`
}

type CustomerCare struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
	Website string `json:"website,omitempty"`
	Message string `json:"message,omitempty"`
}

type CategoryInfo struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}
