// Package web holds the page controllers. Each controller builds a view
// model for its page and hands it to the renderer; all state lives in the
// request, none in the process.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/events"
	"github.com/riya-n/step204-2020/internal/filter"
	"github.com/riya-n/step204-2020/internal/geo"
	"github.com/riya-n/step204-2020/internal/i18n"
	"github.com/riya-n/step204-2020/internal/listing"
	"github.com/riya-n/step204-2020/internal/models"
	"github.com/riya-n/step204-2020/internal/render"
	"github.com/riya-n/step204-2020/internal/telemetry"
)

var tracer = telemetry.GetTracer("step204/webapp/web")

const (
	localeCookie  = "locale"
	sessionCookie = "session"

	defaultSortKey = "SALARY_ASCENDING"
	defaultRegion  = "CENTRAL"

	// detailPagePath is the static details page; navigation carries the
	// job id as a query parameter.
	detailPagePath = "/job-details/index.html"
)

type Handlers struct {
	logger    *zap.Logger
	config    *config.Config
	loader    *listing.Loader
	client    listing.Client
	builder   *render.Builder
	renderer  *render.Renderer
	publisher events.Publisher
	geocoder  geo.Geocoder
}

func NewHandlers(
	logger *zap.Logger,
	config *config.Config,
	loader *listing.Loader,
	client listing.Client,
	builder *render.Builder,
	renderer *render.Renderer,
	publisher events.Publisher,
	geocoder geo.Geocoder,
) *Handlers {
	return &Handlers{
		logger:    logger,
		config:    config,
		loader:    loader,
		client:    client,
		builder:   builder,
		renderer:  renderer,
		publisher: publisher,
		geocoder:  geocoder,
	}
}

func (h *Handlers) locale(c *gin.Context) i18n.Locale {
	if v, err := c.Cookie(localeCookie); err == nil && v != "" {
		return i18n.Locale(v)
	}
	return i18n.DefaultLocale
}

// Homepage serves the filtered job listings with the map.
func (h *Handlers) Homepage(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Homepage")
	defer span.End()

	locale := h.locale(c)
	pageStrs := i18n.For(locale, "homepage")
	commonStrs := i18n.For(locale, "common")

	view := render.HomeView{
		Strings:       pageStrs,
		SortOptions:   i18n.SortOptions(locale),
		RegionOptions: i18n.RegionOptions(locale),
		Filters: render.FilterState{
			Sort:     c.DefaultQuery("sortBy", defaultSortKey),
			Region:   c.DefaultQuery("region", defaultRegion),
			MinLimit: c.Query("minLimit"),
			MaxLimit: c.Query("maxLimit"),
		},
	}

	flagField := func(f filter.Field) {
		switch f {
		case filter.FieldMinLimit:
			view.Filters.FlagMin = true
		case filter.FieldMaxLimit:
			view.Filters.FlagMax = true
		}
		view.ErrorMessage = commonStrs.Get("error-message") + pageStrs.Get(f.String())
	}

	params := filter.Params{
		Region:  view.Filters.Region,
		SortKey: view.Filters.Sort,
	}
	params.MinLimit = h.parseLimit(view.Filters.MinLimit, filter.FieldMinLimit, flagField)
	params.MaxLimit = h.parseLimit(view.Filters.MaxLimit, filter.FieldMaxLimit, flagField)

	if view.ErrorMessage != "" {
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}

	result := filter.Validate(params)
	if result.Internal != nil {
		h.logger.Error("filter validation hit an internal error",
			zap.Error(result.Internal))
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}
	if !result.Valid {
		for _, f := range result.Flagged {
			flagField(f)
		}
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}

	sortKey, err := filter.ParseSortKey(params.SortKey)
	if err != nil {
		// The select control only offers salary sorts; anything else is
		// a UI defect, logged and not surfaced.
		h.logger.Error("unusable sort selection",
			zap.String("sort_by", params.SortKey),
			zap.Error(err))
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}

	minLimit, maxLimit := params.Limits()
	query := listing.Query{
		Region:   params.Region,
		SortBy:   sortKey.Field,
		MinLimit: minLimit,
		MaxLimit: maxLimit,
		Order:    sortKey.Order,
		PageSize: h.config.PageSize,
	}

	// Fire and forget; the publisher logs its own failures.
	_ = h.publisher.PublishSearchPerformed(ctx, events.SearchPerformed{
		Region:   query.Region,
		SortBy:   string(query.SortBy),
		Order:    string(query.Order),
		MinLimit: query.MinLimit,
		MaxLimit: query.MaxLimit,
	})

	page, stale, err := h.loader.Load(ctx, query)
	if stale {
		h.logger.Debug("discarding stale listings result")
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}
	if err != nil {
		h.finishHomepage(c, view, pageStrs, locale, nil, err)
		return
	}
	h.finishHomepage(c, view, pageStrs, locale, page, nil)
}

func (h *Handlers) finishHomepage(c *gin.Context, view render.HomeView, pageStrs i18n.Strings, locale i18n.Locale, page *models.JobPage, fetchErr error) {
	if fetchErr != nil {
		h.logger.Error("failed to load job listings", zap.Error(fetchErr))
		view.ErrorMessage = pageStrs.Get("get-jobs-error-message")
		h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
		return
	}

	listings, jobMap, err := h.builder.BuildListings(c.Request.Context(), locale, page, render.VariantHomepage)
	if err != nil {
		h.abort(c, err)
		return
	}
	view.Listings = listings
	view.ErrorMessage = listings.Message

	if jobMap != nil {
		data, err := json.Marshal(jobMap)
		if err != nil {
			h.abort(c, errors.Internal("marshaling map data", err))
			return
		}
		view.MapJSON = template.JS(data)
	}

	h.render(c, func() error { return h.renderer.Homepage(c.Writer, view) })
}

// BusinessJobsList serves the job posts made by the signed-in business,
// forwarding the session cookie to the jobs backend.
func (h *Handlers) BusinessJobsList(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BusinessJobsList")
	defer span.End()

	locale := h.locale(c)
	pageStrs := i18n.For(locale, "business-jobs-list")
	view := render.BusinessView{Strings: pageStrs}

	var session *http.Cookie
	if cookie, err := c.Request.Cookie(sessionCookie); err == nil {
		session = cookie
	}

	page, err := h.client.FetchJobsMade(ctx, session, h.config.PageSize, 0)
	if err != nil {
		if errors.IsInvariant(err) {
			h.abort(c, err)
			return
		}
		h.logger.Error("failed to load job posts made", zap.Error(err))
		view.ErrorMessage = pageStrs.Get("get-jobs-error-message")
		h.render(c, func() error { return h.renderer.BusinessJobsList(c.Writer, view) })
		return
	}

	listings, _, err := h.builder.BuildListings(ctx, locale, page, render.VariantBusinessList)
	if err != nil {
		h.abort(c, err)
		return
	}
	view.Listings = listings
	view.ErrorMessage = listings.Message

	h.render(c, func() error { return h.renderer.BusinessJobsList(c.Writer, view) })
}

// LogIn serves the account-type chooser; LogInVariant serves the page that
// mounts the phone-auth UI for one account type.
func (h *Handlers) LogIn(c *gin.Context) {
	h.renderLogIn(c, "")
}

func (h *Handlers) LogInApplicant(c *gin.Context) {
	h.renderLogIn(c, "applicant")
}

func (h *Handlers) LogInBusiness(c *gin.Context) {
	h.renderLogIn(c, "business")
}

func (h *Handlers) renderLogIn(c *gin.Context, variant string) {
	view := render.LoginView{
		Strings: i18n.For(h.locale(c), "log-in"),
		Variant: variant,
	}
	h.render(c, func() error { return h.renderer.LogIn(c.Writer, view) })
}

// JobDetails validates a detail navigation and forwards it to the details
// page. A missing job id means a listing was built without one, which the
// view builder is supposed to prevent.
func (h *Handlers) JobDetails(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "JobDetails")
	defer span.End()

	jobID := c.Query(render.JobIDParam)
	if jobID == "" {
		h.abort(c, errors.Invariant("jobId should not be empty", nil))
		return
	}

	_ = h.publisher.PublishListingViewed(ctx, events.ListingViewed{
		JobID: jobID,
		Page:  c.Request.Referer(),
	})

	c.Redirect(http.StatusFound,
		detailPagePath+"?"+render.JobIDParam+"="+url.QueryEscape(jobID))
}

// Geocode resolves a postal code to coordinates for the homepage map's
// place search. Validation failures are the user's to correct.
func (h *Handlers) Geocode(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Geocode")
	defer span.End()

	postalCode := c.Query("postalCode")
	if postalCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postalCode is required"})
		return
	}

	coords, err := h.geocoder.ResolveCoordinates(ctx, postalCode)
	if err != nil {
		if errors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to geocode postal code",
			zap.String("postal_code", postalCode),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to resolve postal code"})
		return
	}

	c.JSON(http.StatusOK, coords)
}

func (h *Handlers) parseLimit(raw string, field filter.Field, flag func(filter.Field)) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Debug("unparseable limit input",
			zap.String("field", field.String()),
			zap.String("value", raw))
		flag(field)
		return nil
	}
	return &v
}

func (h *Handlers) render(c *gin.Context, exec func() error) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := exec(); err != nil {
		h.logger.Error("failed to execute page template", zap.Error(err))
	}
}

func (h *Handlers) abort(c *gin.Context, err error) {
	h.logger.Error("aborting request",
		zap.String("path", c.Request.URL.Path),
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err))
	c.AbortWithStatus(http.StatusInternalServerError)
}
