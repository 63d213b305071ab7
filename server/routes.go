package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/girojogos/duoguard/errors"
	"github.com/girojogos/duoguard/gateway"
	"github.com/girojogos/duoguard/identity"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/policy"
	"github.com/girojogos/duoguard/server/middleware"
	"github.com/girojogos/duoguard/store"
)

// API holds the handlers of the document surface.
type API struct {
	gw  *gateway.Gateway
	log *logger.Logger
}

// NewAPI creates the API handler set.
func NewAPI(gw *gateway.Gateway, log *logger.Logger) *API {
	return &API{gw: gw, log: log.WithComponent("api")}
}

// RegisterRoutes mounts the document API and the health endpoint.
func (a *API) RegisterRoutes(engine *gin.Engine, resolver *identity.Resolver) {
	engine.GET("/healthz", a.health)

	docs := engine.Group("/v1/docs", middleware.Identity(resolver))
	docs.GET("/*path", a.get)
	docs.POST("/*path", a.create)
	docs.PUT("/*path", a.update)
	docs.DELETE("/*path", a.remove)
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// get reads a single document, or lists a collection when the path has an
// odd number of segments. List filters come from query parameters as
// equality constraints, e.g. ?isActive=true.
func (a *API) get(c *gin.Context) {
	path, err := docPath(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	if isCollection(path) {
		docs, err := a.gw.List(c.Request.Context(), path, queryFilters(c))
		if err != nil {
			RespondWithError(c, err)
			return
		}
		views := make([]documentView, 0, len(docs))
		for _, doc := range docs {
			views = append(views, newDocumentView(doc))
		}
		RespondOKWithMeta(c, views, &Meta{Count: len(views)})
		return
	}

	doc, err := a.gw.Read(c.Request.Context(), path)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, newDocumentView(doc))
}

func (a *API) create(c *gin.Context) {
	path, err := docPath(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	data, err := docBody(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	doc, err := a.gw.Create(c.Request.Context(), path, data)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, newDocumentView(doc))
}

func (a *API) update(c *gin.Context) {
	path, err := docPath(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	data, err := docBody(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	doc, err := a.gw.Update(c.Request.Context(), path, data)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, newDocumentView(doc))
}

func (a *API) remove(c *gin.Context) {
	path, err := docPath(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if err := a.gw.Delete(c.Request.Context(), path); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondNoContent(c)
}

// documentView is the wire shape of a document.
type documentView struct {
	Path       string         `json:"path"`
	Data       map[string]any `json:"data"`
	CreateTime time.Time      `json:"createTime"`
	UpdateTime time.Time      `json:"updateTime"`
}

func newDocumentView(doc *store.Document) documentView {
	return documentView{
		Path:       doc.Path,
		Data:       doc.Data,
		CreateTime: doc.CreateTime,
		UpdateTime: doc.UpdateTime,
	}
}

func docPath(c *gin.Context) (string, error) {
	path := strings.Trim(c.Param("path"), "/")
	if path == "" {
		return "", apperrors.Validation("document path is required")
	}
	return path, nil
}

func docBody(c *gin.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		return nil, apperrors.Validation("request body must be a JSON object")
	}
	return data, nil
}

func isCollection(path string) bool {
	return strings.Count(path, "/")%2 == 0
}

// queryFilters turns query parameters into equality filters, coercing
// booleans and numbers so ?isActive=true matches a JSON true.
func queryFilters(c *gin.Context) []policy.Filter {
	query := c.Request.URL.Query()
	filters := make([]policy.Filter, 0, len(query))
	for field, values := range query {
		if len(values) == 0 {
			continue
		}
		filters = append(filters, policy.Filter{Field: field, Value: coerce(values[0])})
	}
	return filters
}

func coerce(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
