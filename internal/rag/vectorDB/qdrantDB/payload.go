package qdrantDB

import (
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/qdrant/go-client/qdrant"
)

const (
	kindService = "service"
	kindChunk   = "chunk"
)

func servicePayload(svc catalog.Service) map[string]any {
	payload := map[string]any{
		"kind":         kindService,
		"id":           svc.ID,
		"service_name": svc.ServiceName,
		"category":     svc.Category,
		"subcategory":  svc.Subcategory,
		"description":  svc.Description,
		"address":      svc.Address,
		"locality":     svc.Locality,
		"pincode":      svc.Pincode,
		"city":         svc.City,
		"state":        svc.State,
	}

	optional := map[string]string{
		"contact_phone":          svc.ContactPhone,
		"contact_email":          svc.ContactEmail,
		"website":                svc.Website,
		"hours":                  svc.Hours,
		"languages_supported":    svc.LanguagesSupported,
		"fees":                   svc.Fees,
		"payment_options":        svc.PaymentOptions,
		"wheelchair_accessible":  svc.WheelchairAccessible,
		"ownership":              svc.Ownership,
		"documents_required":     svc.DocumentsRequired,
		"tags":                   svc.Tags,
		"emergency_service":      svc.EmergencyService,
		"response_time_estimate": svc.ResponseTimeEstimate,
		"geo_lat":                svc.GeoLat,
		"geo_lng":                svc.GeoLng,
		"last_updated":           svc.LastUpdated,
		"notes":                  svc.Notes,
	}
	for key, val := range optional {
		if val != "" {
			payload[key] = val
		}
	}
	return payload
}

func serviceFromPayload(payload map[string]*qdrant.Value) catalog.Service {
	get := func(key string) string {
		if v, ok := payload[key]; ok {
			return v.GetStringValue()
		}
		return ""
	}

	return catalog.Service{
		ID:                   get("id"),
		ServiceName:          get("service_name"),
		Category:             get("category"),
		Subcategory:          get("subcategory"),
		Description:          get("description"),
		Address:              get("address"),
		Locality:             get("locality"),
		Pincode:              get("pincode"),
		City:                 get("city"),
		State:                get("state"),
		ContactPhone:         get("contact_phone"),
		ContactEmail:         get("contact_email"),
		Website:              get("website"),
		Hours:                get("hours"),
		LanguagesSupported:   get("languages_supported"),
		Fees:                 get("fees"),
		PaymentOptions:       get("payment_options"),
		WheelchairAccessible: get("wheelchair_accessible"),
		Ownership:            get("ownership"),
		DocumentsRequired:    get("documents_required"),
		Tags:                 get("tags"),
		EmergencyService:     get("emergency_service"),
		ResponseTimeEstimate: get("response_time_estimate"),
		GeoLat:               get("geo_lat"),
		GeoLng:               get("geo_lng"),
		LastUpdated:          get("last_updated"),
		Notes:                get("notes"),
	}
}
