package adapter

import (
	"fmt"
	"time"

	"github.com/communitydesk/helpdesk/internal/api"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		ChatResponse: ToChatResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToChatResponse(payload jobModel.JobPayload) *api.ChatResponse {
	if payload.Answer == "" && len(payload.Services) == 0 {
		return nil
	}

	return &api.ChatResponse{
		Question:     payload.Question,
		Answer:       payload.Answer,
		Confidence:   string(payload.Confidence),
		ServiceCount: len(payload.Services),
		Services:     toRetrievedServices(payload.Services),
	}
}

func toRetrievedServices(retrieved []catalog.Retrieved) []api.RetrievedService {
	out := make([]api.RetrievedService, 0, len(retrieved))
	for _, r := range retrieved {
		out = append(out, api.RetrievedService{
			ServiceName:     r.Service.ServiceName,
			Category:        r.Service.Category,
			Description:     r.Service.Description,
			Address:         r.Service.Address,
			Locality:        r.Service.Locality,
			ContactPhone:    r.Service.ContactPhone,
			Hours:           r.Service.Hours,
			SimilarityScore: r.Similarity,
		})
	}
	return out
}

func ToServiceRecords(records []api.ServiceRecord) []catalog.Service {
	out := make([]catalog.Service, 0, len(records))
	for _, rec := range records {
		out = append(out, catalog.Service{
			ID:                   rec.ID,
			ServiceName:          rec.ServiceName,
			Category:             rec.Category,
			Subcategory:          rec.Subcategory,
			Description:          rec.Description,
			Address:              rec.Address,
			Locality:             rec.Locality,
			Pincode:              rec.Pincode,
			City:                 rec.City,
			State:                rec.State,
			ContactPhone:         rec.ContactPhone,
			ContactEmail:         rec.ContactEmail,
			Website:              rec.Website,
			Hours:                rec.Hours,
			LanguagesSupported:   rec.LanguagesSupported,
			Fees:                 rec.Fees,
			PaymentOptions:       rec.PaymentOptions,
			WheelchairAccessible: rec.WheelchairAccessible,
			Ownership:            rec.Ownership,
			DocumentsRequired:    rec.DocumentsRequired,
			Tags:                 rec.Tags,
			EmergencyService:     rec.EmergencyService,
			ResponseTimeEstimate: rec.ResponseTimeEstimate,
			GeoLat:               rec.GeoLat,
			GeoLng:               rec.GeoLng,
			LastUpdated:          rec.LastUpdated,
			Notes:                rec.Notes,
		})
	}
	return out
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:       string(api.JobStatusError),
			ChatResponse: ToChatResponse(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
