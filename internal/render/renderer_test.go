package render_test

import (
	"strings"
	"testing"

	"github.com/riya-n/step204-2020/internal/i18n"
	"github.com/riya-n/step204-2020/internal/render"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestHomepage_EchoesFiltersAndFlagsFields(t *testing.T) {
	r := newRenderer(t)

	v := render.HomeView{
		Strings:       i18n.For(i18n.LocaleEN, "homepage"),
		SortOptions:   i18n.SortOptions(i18n.LocaleEN),
		RegionOptions: i18n.RegionOptions(i18n.LocaleEN),
		Filters: render.FilterState{
			Sort:     "SALARY_DESCENDING",
			Region:   "EAST",
			MinLimit: "500",
			MaxLimit: "100",
			FlagMax:  true,
		},
		ErrorMessage: "There is an error in the following field: max limit",
	}

	var out strings.Builder
	if err := r.Homepage(&out, v); err != nil {
		t.Fatalf("Homepage: %v", err)
	}
	html := out.String()

	for _, want := range []string{
		`value="SALARY_DESCENDING" selected`,
		`value="EAST" selected`,
		`value="500"`,
		`value="100"`,
		`There is an error in the following field: max limit`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("homepage output missing %q", want)
		}
	}

	// Only the offending field gets the error styling.
	if !strings.Contains(html, `name="maxLimit" type="number"
         placeholder="max limit" value="100"
         class="error-field"`) {
		t.Error("max limit input should carry the error-field class")
	}
	if strings.Count(html, "error-field") != 1 {
		t.Errorf("error-field appears %d times, want 1", strings.Count(html, "error-field"))
	}
}

func TestHomepage_JobListingCarriesHiddenJobID(t *testing.T) {
	r := newRenderer(t)

	v := render.HomeView{
		Strings: i18n.For(i18n.LocaleEN, "homepage"),
		Listings: render.ListingsView{
			Jobs: []render.JobView{{
				ID:           "abc-123",
				ElementID:    "abc-123",
				Title:        "Waiter",
				Address:      "290 Orchard Rd, 238859",
				Pay:          "10 - 12 SGD (hourly)",
				Requirements: "Requirements List: English",
				DetailPath:   render.DetailPath,
			}},
			Showing: "1 - 1 of 1",
		},
	}

	var out strings.Builder
	if err := r.Homepage(&out, v); err != nil {
		t.Fatalf("Homepage: %v", err)
	}
	html := out.String()

	for _, want := range []string{
		`action="/job-details"`,
		`<input type="hidden" name="jobId" value="abc-123">`,
		`<h3 class="job-title">Waiter</h3>`,
		`1 - 1 of 1`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("homepage output missing %q", want)
		}
	}
}

func TestHomepage_MapDataRenderedOnlyWhenPresent(t *testing.T) {
	r := newRenderer(t)

	base := render.HomeView{Strings: i18n.For(i18n.LocaleEN, "homepage")}

	var without strings.Builder
	if err := r.Homepage(&without, base); err != nil {
		t.Fatalf("Homepage: %v", err)
	}
	if strings.Contains(without.String(), `id="map-data"`) {
		t.Error("map-data script should be absent without map JSON")
	}

	withMap := base
	withMap.MapJSON = `{"elementId":"homepage-map"}`
	var with strings.Builder
	if err := r.Homepage(&with, withMap); err != nil {
		t.Fatalf("Homepage: %v", err)
	}
	if !strings.Contains(with.String(), `{"elementId":"homepage-map"}`) {
		t.Error("map JSON should be embedded verbatim")
	}
}

func TestBusinessJobsList_RendersListingsBlock(t *testing.T) {
	r := newRenderer(t)

	v := render.BusinessView{
		Strings: i18n.For(i18n.LocaleEN, "business-jobs-list"),
		Listings: render.ListingsView{
			Jobs: []render.JobView{{
				ID:         "abc-123",
				ElementID:  "job-listing-id-abc-123",
				Title:      "Cashier",
				DetailPath: render.DetailPath,
			}},
			Showing: "1 - 1 of 1",
		},
	}

	var out strings.Builder
	if err := r.BusinessJobsList(&out, v); err != nil {
		t.Fatalf("BusinessJobsList: %v", err)
	}
	html := out.String()

	if !strings.Contains(html, `id="job-listing-id-abc-123"`) {
		t.Error("business listing should use the prefixed element id")
	}
	if !strings.Contains(html, "Job Posts Made") {
		t.Error("business page title missing")
	}
}

func TestLogIn_VariantSelectsPhoneAuthMount(t *testing.T) {
	r := newRenderer(t)
	strs := i18n.For(i18n.LocaleEN, "log-in")

	var chooser strings.Builder
	if err := r.LogIn(&chooser, render.LoginView{Strings: strs}); err != nil {
		t.Fatalf("LogIn: %v", err)
	}
	if !strings.Contains(chooser.String(), `href="/log-in/applicant"`) ||
		!strings.Contains(chooser.String(), `href="/log-in/business"`) {
		t.Error("chooser page should link both log-in variants")
	}
	if strings.Contains(chooser.String(), `id="phone-auth"`) {
		t.Error("chooser page should not mount phone auth")
	}

	var applicant strings.Builder
	if err := r.LogIn(&applicant, render.LoginView{Strings: strs, Variant: "applicant"}); err != nil {
		t.Fatalf("LogIn: %v", err)
	}
	if !strings.Contains(applicant.String(), `data-variant="applicant"`) {
		t.Error("variant page should mount phone auth for the variant")
	}
}
