// Package render turns job pages into view models and executes the page
// templates. Data shaping is kept free of template concerns so it can be
// tested on its own.
package render

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/geo"
	"github.com/riya-n/step204-2020/internal/i18n"
	"github.com/riya-n/step204-2020/internal/models"
	"github.com/riya-n/step204-2020/internal/requirements"
)

// DetailPath is the job details page, reached by a GET form submission
// carrying the job id.
const DetailPath = "/job-details"

// JobIDParam is the query parameter naming a job on the details page.
const JobIDParam = "jobId"

// Variant selects the listing flavor: the homepage carries a map, the
// business list does not.
type Variant int

const (
	VariantHomepage Variant = iota
	VariantBusinessList
)

func (v Variant) page() string {
	if v == VariantBusinessList {
		return "business-jobs-list"
	}
	return "homepage"
}

// JobView is one job listing, fully formatted for the template.
type JobView struct {
	ID           string
	ElementID    string
	Title        string
	Address      string
	Pay          string
	Requirements string
	DetailPath   string
}

// ListingsView is the listing block of a page. Message is the shared
// error-message slot content: the empty-result text when no jobs matched,
// empty otherwise. The empty-result state reuses the same surface errors
// do, so the two are indistinguishable to the user (a known UX ambiguity,
// kept as-is).
type ListingsView struct {
	Jobs    []JobView
	Showing string
	Empty   bool
	Message string
}

// Builder shapes backend job pages into view models.
type Builder struct {
	logger *zap.Logger
	source requirements.Source
}

func NewBuilder(logger *zap.Logger, source requirements.Source) *Builder {
	return &Builder{
		logger: logger,
		source: source,
	}
}

// BuildListings shapes one job page. A nil page or an empty job list is
// the valid empty-result state, not an error. For the homepage variant the
// returned map carries one marker per job; it is nil for other variants.
func (b *Builder) BuildListings(ctx context.Context, locale i18n.Locale, page *models.JobPage, variant Variant) (ListingsView, *geo.Map, error) {
	pageStrs := i18n.For(locale, variant.page())
	jobStrs := i18n.For(locale, "job")

	if page == nil || len(page.JobList) == 0 {
		return ListingsView{
			Empty:   true,
			Message: pageStrs.Get("no-jobs-error-message"),
		}, nil, nil
	}

	table, err := b.source.List(ctx)
	if err != nil {
		return ListingsView{}, nil, errors.Internal("loading requirements table", err)
	}

	var jobMap *geo.Map
	if variant == VariantHomepage {
		jobMap, err = geo.NewMap("homepage-map")
		if err != nil {
			return ListingsView{}, nil, err
		}
	}

	views := make([]JobView, 0, len(page.JobList))
	for _, job := range page.JobList {
		view, err := b.buildJobView(job, table, jobStrs, variant)
		if err != nil {
			return ListingsView{}, nil, err
		}
		views = append(views, view)

		if jobMap != nil {
			if _, err := geo.AddMarker(jobMap, job); err != nil {
				return ListingsView{}, nil, err
			}
		}
	}

	showing := strings.NewReplacer(
		"{MINIMUM}", strconv.Itoa(page.Range.Minimum),
		"{MAXIMUM}", strconv.Itoa(page.Range.Maximum),
		"{TOTAL_COUNT}", strconv.Itoa(page.TotalCount),
	).Replace(jobStrs.Get("jobShowing"))

	return ListingsView{
		Jobs:    views,
		Showing: showing,
	}, jobMap, nil
}

func (b *Builder) buildJobView(job models.Job, table map[string]string, jobStrs i18n.Strings, variant Variant) (JobView, error) {
	if job.JobID == "" {
		return JobView{}, errors.Invariant("jobId should not be empty", nil)
	}

	elementID := job.JobID
	if variant == VariantBusinessList {
		elementID = "job-listing-id-" + job.JobID
	}

	address := strings.NewReplacer(
		"{ADDRESS}", job.JobLocation.Address,
		"{POSTAL_CODE}", job.JobLocation.PostalCode,
	).Replace(jobStrs.Get("jobAddressDescription"))

	pay := strings.NewReplacer(
		"{MIN_PAY}", strconv.FormatInt(job.JobPay.Min, 10),
		"{MAX_PAY}", strconv.FormatInt(job.JobPay.Max, 10),
		"{CURRENCY}", jobStrs.Get("sgd"),
		"{FREQUENCY}", job.JobPay.PaymentFrequency.Lower(),
	).Replace(jobStrs.Get("jobPayDescription"))

	return JobView{
		ID:           job.JobID,
		ElementID:    elementID,
		Title:        job.JobTitle,
		Address:      address,
		Pay:          pay,
		Requirements: b.requirementsSummary(job, table, jobStrs),
		DetailPath:   DetailPath,
	}, nil
}

// requirementsSummary lists the satisfied requirements only. Unknown keys
// are rejected at this boundary and logged rather than shown.
func (b *Builder) requirementsSummary(job models.Job, table map[string]string, jobStrs i18n.Strings) string {
	keys := make([]string, 0, len(job.Requirements))
	for key := range job.Requirements {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var labels []string
	for _, key := range keys {
		if !job.Requirements[key] {
			continue
		}
		if !requirements.Known(table, key) {
			b.logger.Warn("unknown requirement key on job",
				zap.String("job_id", job.JobID),
				zap.String("key", key))
			continue
		}
		labels = append(labels, table[key])
	}

	return strings.NewReplacer(
		"{REQUIREMENTS_LIST}", strings.Join(labels, ", "),
	).Replace(jobStrs.Get("requirementsDescription"))
}
