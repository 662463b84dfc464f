// Package i18n holds the localized UI string tables.
//
// The tables are static stand-ins: only English exists today and the
// content mirrors what the server will eventually provide.
// TODO(issue/21): pick the locale up from the browser.
package i18n

// Locale names a supported language.
type Locale string

const LocaleEN Locale = "en"

// DefaultLocale is used when a request carries no locale cookie.
const DefaultLocale = LocaleEN

// Strings is one page's key to text table.
type Strings map[string]string

// Get returns the text for key, or the key itself so missing entries stay
// visible on the page instead of rendering blank.
func (s Strings) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

// SelectOption is one entry of a selection control, in display order.
type SelectOption struct {
	Value string
	Label string
}

var pages = map[Locale]map[string]Strings{
	LocaleEN: {
		"common": {
			"error-message": "There is an error in the following field: ",
		},
		"homepage": {
			"page-title":            "Walk-In Interview",
			"new-post":              "New Job Post",
			"account":               "Account",
			"log-in":                "Log In",
			"show-job-posts-made":   "Job Posts Made",
			"interested-job-list":   "Interested Jobs",
			"sort-by-title":         "Sort By",
			"show-by-region-title":  "Show By Region",
			"filter-limits-title":   "Filter Limits",
			"filter-min-limit":      "min limit",
			"filter-max-limit":      "max limit",
			"filters-submit":        "Apply Filters",
			"job-listings-title":    "Job Listings",
			"job-listings-showing":  "of",
			"no-jobs-error-message": "Sorry, no jobs found",
			"get-jobs-error-message": "Sorry, we could not load the job listings. " +
				"Please try again later",
		},
		"business-jobs-list": {
			"back":                  "Back",
			"job-listings-title":    "Job Posts Made",
			"no-jobs-error-message": "Sorry, no jobs found",
			"get-jobs-error-message": "Sorry, we could not load the job listings. " +
				"Please try again later",
		},
		"log-in": {
			"page-title": "Log In",
			"back":       "Back",
			"applicant":  "Applicant Log In",
			"business":   "Business Log In",
		},
		"job": {
			"jobAddressDescription":   "{ADDRESS}, {POSTAL_CODE}",
			"jobPayDescription":       "{MIN_PAY} - {MAX_PAY} {CURRENCY} ({FREQUENCY})",
			"sgd":                     "SGD",
			"requirementsDescription": "Requirements List: {REQUIREMENTS_LIST}",
			"jobShowing":              "{MINIMUM} - {MAXIMUM} of {TOTAL_COUNT}",
		},
	},
}

var sortOptions = map[Locale][]SelectOption{
	LocaleEN: {
		{Value: "SALARY_ASCENDING", Label: "Salary (low to high)"},
		{Value: "SALARY_DESCENDING", Label: "Salary (high to low)"},
	},
}

var regionOptions = map[Locale][]SelectOption{
	LocaleEN: {
		{Value: "CENTRAL", Label: "Central"},
		{Value: "EAST", Label: "East"},
		{Value: "NORTH", Label: "North"},
		{Value: "NORTH_EAST", Label: "North East"},
		{Value: "WEST", Label: "West"},
	},
}

// For returns the string table for a page, falling back to English for
// unknown locales.
func For(locale Locale, page string) Strings {
	tables, ok := pages[locale]
	if !ok {
		tables = pages[DefaultLocale]
	}
	return tables[page]
}

func SortOptions(locale Locale) []SelectOption {
	if opts, ok := sortOptions[locale]; ok {
		return opts
	}
	return sortOptions[DefaultLocale]
}

func RegionOptions(locale Locale) []SelectOption {
	if opts, ok := regionOptions[locale]; ok {
		return opts
	}
	return regionOptions[DefaultLocale]
}
