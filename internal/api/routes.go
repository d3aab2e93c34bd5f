package api

import (
	"net/http"

	"github.com/Reason-jin/yj-portfolio-site/internal/api/middleware"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

// RegisterRoutes adds the /api web service. chatFilters run only on the chat
// endpoint.
func RegisterRoutes(container *restful.Container, handler *Handler, chatFilters ...restful.FilterFunction) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(http.StatusOK, "OK", HealthResponse{}))

	chat := ws.POST("/chat").
		To(handler.Chat).
		Doc("Answer a portfolio question").
		Notes("mode=search returns a SearchResponse instead of a ChatResponse").
		Metadata(restfulspec.KeyOpenAPITags, []string{"chat"}).
		Reads(models.ChatRequest{}).
		Writes(models.ChatResponse{}).
		Returns(http.StatusOK, "OK", models.ChatResponse{}).
		Returns(http.StatusBadRequest, "Validation Error", middleware.ErrorResponse{}).
		Returns(http.StatusUnauthorized, "API Key Invalid", middleware.ErrorResponse{}).
		Returns(http.StatusTooManyRequests, "Rate Limit Exceeded", middleware.ErrorResponse{}).
		Returns(http.StatusServiceUnavailable, "Service Unavailable", middleware.ErrorResponse{}).
		Returns(http.StatusInternalServerError, "Internal Server Error", middleware.ErrorResponse{})
	for _, f := range chatFilters {
		chat = chat.Filter(f)
	}
	ws.Route(chat)

	ws.
		Route(ws.OPTIONS("/chat").
			To(handler.Preflight).
			Doc("CORS preflight").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chat"}).
			Returns(http.StatusOK, "OK", nil))

	ws.
		Route(ws.GET("/documents").
			To(handler.ListDocuments).
			Doc("List knowledge documents").
			Metadata(restfulspec.KeyOpenAPITags, []string{"documents"}).
			Writes(DocumentListResponse{}).
			Returns(http.StatusOK, "OK", DocumentListResponse{}))

	ws.
		Route(ws.GET("/documents/{id}").
			To(handler.GetDocument).
			Doc("Get one knowledge document").
			Metadata(restfulspec.KeyOpenAPITags, []string{"documents"}).
			Param(ws.PathParameter("id", "document id (resume, metraforge, smartstock, ...)").DataType("string")).
			Writes(models.Document{}).
			Returns(http.StatusOK, "OK", models.Document{}).
			Returns(http.StatusNotFound, "Not Found", middleware.ErrorResponse{}))

	container.Add(ws)
}

// NewContainer installs the shared filters and the /api routes.
func NewContainer(handler *Handler, chatFilters ...restful.FilterFunction) *restful.Container {
	container := restful.NewContainer()
	container.Filter(middleware.RequestID)
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	RegisterRoutes(container, handler, chatFilters...)
	return container
}
