package middleware

import (
	"net/http"
	"strconv"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/handlers"
	"github.com/communitydesk/helpdesk/internal/metrics"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logx.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var (
	authToken   string
	disableAuth bool
)

// Init wires in the deployment's auth settings before the server starts.
func Init(cfg config.APIConfig) {
	authToken = cfg.AuthToken
	disableAuth = cfg.DisableAuth
}

var RootHandler = Wrap(handlers.RootHandler)
var HealthHandler = Wrap(handlers.HealthHandler)
var CategoriesHandler = Wrap(handlers.CategoriesHandler)
var CustomerCareHandler = Wrap(handlers.CustomerCareHandler)
var StatsHandler = Wrap(handlers.StatsHandler)

var ChatHandler = Wrap(handlers.ChatHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var PostIngestHandler = Wrap(handlers.PostIngestHandler)
var PostIngestDocumentHandler = Wrap(handlers.PostIngestDocumentHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logx.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re //stop here if rate limit fails
	}

	return re
}
