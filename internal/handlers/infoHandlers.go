package handlers

import (
	"fmt"
	"net/http"

	"github.com/communitydesk/helpdesk/internal/api"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/llm"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
)

// info endpoints report on the knowledge base and the model behind it,
// so they get their own dependencies instead of going through the job queue
var (
	infoConfig   *config.Config
	infoVectorDB vectorDB.DataProcessor
	infoLLM      llm.Provider
)

func InitInfoHandlers(cfg *config.Config, vector vectorDB.DataProcessor, provider llm.Provider) {
	infoConfig = cfg
	infoVectorDB = vector
	infoLLM = provider
}

// RootHandler godoc
// @Summary      API information
// @Tags         Root
// @Produce      json
// @Success      200  {object}  api.RootResponse
// @Router       / [get]
func RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.RootResponse{
		Message:  "Community Helpdesk Chatbot API for Tamil Nadu Services",
		Version:  infoConfig.API.Version,
		Model:    infoConfig.LLM.ModelName(),
		Location: fmt.Sprintf("%s, %s", infoConfig.Location.City, infoConfig.Location.State),
		Status:   "running",
	})
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Verifies the LLM and the vector database are reachable.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Failure      503  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	llmAvailable := infoLLM != nil && infoLLM.CheckAvailability(ctx)

	vectorAvailable := false
	var totalServices uint64
	if infoVectorDB != nil {
		count, err := infoVectorDB.Count(ctx)
		if err == nil {
			vectorAvailable = true
			totalServices = count
		}
	}

	status := "healthy"
	message := "All services operational"
	httpCode := http.StatusOK

	switch {
	case !llmAvailable && !vectorAvailable:
		status = "unhealthy"
		message = "LLM and vector database unavailable"
		httpCode = http.StatusServiceUnavailable
	case !llmAvailable:
		status = "degraded"
		message = "LLM unavailable"
	case !vectorAvailable:
		status = "degraded"
		message = "Vector database unavailable"
	}

	writeJsonResponse(w, httpCode, api.HealthResponse{
		Status:          status,
		LLMAvailable:    llmAvailable,
		VectorAvailable: vectorAvailable,
		TotalServices:   totalServices,
		Message:         message,
	})
}

// StatsHandler godoc
// @Summary      Knowledge base statistics
// @Description  Total record count plus a per-category breakdown.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  api.StatsResponse
// @Failure      503  {object}  api.JobResponse
// @Router       /stats [get]
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if infoVectorDB == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Vector database not initialized")
		return
	}

	total, err := infoVectorDB.Count(ctx)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Error fetching statistics")
		return
	}

	breakdown := make(map[string]uint64, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		count, err := infoVectorDB.CountByCategory(ctx, cat.Name)
		if err != nil {
			continue
		}
		breakdown[cat.Name] = count
	}

	writeJsonResponse(w, http.StatusOK, api.StatsResponse{
		TotalServices:     total,
		Model:             infoConfig.LLM.ModelName(),
		Location:          fmt.Sprintf("%s, %s", infoConfig.Location.City, infoConfig.Location.State),
		CollectionName:    infoConfig.Qdrant.Collection,
		CategoryBreakdown: breakdown,
		CustomerCare: api.CustomerCare{
			Phone: infoConfig.Care.Phone,
			Email: infoConfig.Care.Email,
			Hours: infoConfig.Care.Hours,
		},
	})
}

// CategoriesHandler godoc
// @Summary      Service categories
// @Tags         Info
// @Produce      json
// @Success      200  {object}  api.CategoriesResponse
// @Router       /categories [get]
func CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories := make([]api.CategoryInfo, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		categories = append(categories, api.CategoryInfo{
			Name:        cat.Name,
			Icon:        cat.Icon,
			Description: cat.Description,
		})
	}
	writeJsonResponse(w, http.StatusOK, api.CategoriesResponse{Categories: categories})
}

// CustomerCareHandler godoc
// @Summary      Customer care contacts
// @Tags         Info
// @Produce      json
// @Success      200  {object}  api.CustomerCare
// @Router       /customer-care [get]
func CustomerCareHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.CustomerCare{
		Phone:   infoConfig.Care.Phone,
		Email:   infoConfig.Care.Email,
		Hours:   infoConfig.Care.Hours,
		Website: infoConfig.Care.Website,
		Message: "For queries not handled by the chatbot, please contact our customer care team",
	})
}
