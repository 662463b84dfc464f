package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentFrequency is the closed set of pay periods a job post may carry.
type PaymentFrequency string

const (
	FrequencyHourly  PaymentFrequency = "HOURLY"
	FrequencyWeekly  PaymentFrequency = "WEEKLY"
	FrequencyMonthly PaymentFrequency = "MONTHLY"
	FrequencyYearly  PaymentFrequency = "YEARLY"
)

// ParsePaymentFrequency converts a raw string to a PaymentFrequency,
// returning an error for unknown values.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	f := PaymentFrequency(s)
	switch f {
	case FrequencyHourly, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	}
	return "", fmt.Errorf("unknown payment frequency %q", s)
}

// Lower returns the frequency the way listings display it.
func (f PaymentFrequency) Lower() string {
	return strings.ToLower(string(f))
}

// JobDuration is the closed set of duration categories.
type JobDuration string

const (
	DurationOneWeek   JobDuration = "ONE_WEEK"
	DurationTwoWeeks  JobDuration = "TWO_WEEKS"
	DurationOneMonth  JobDuration = "ONE_MONTH"
	DurationSixMonths JobDuration = "SIX_MONTHS"
	DurationOneYear   JobDuration = "ONE_YEAR"
	DurationOther     JobDuration = "OTHER"
)

func ParseJobDuration(s string) (JobDuration, error) {
	d := JobDuration(s)
	switch d {
	case DurationOneWeek, DurationTwoWeeks, DurationOneMonth,
		DurationSixMonths, DurationOneYear, DurationOther:
		return d, nil
	}
	return "", fmt.Errorf("unknown job duration %q", s)
}

// JobLocation is the stored location of a job post.
type JobLocation struct {
	Address    string  `json:"address"`
	PostalCode string  `json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// JobPay is the offered pay range. Currency is fixed to SGD.
type JobPay struct {
	Min              int64            `json:"min"`
	Max              int64            `json:"max"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency"`
}

// Job mirrors the jobs backend JSON verbatim. Job ids are assigned by the
// backend store and are unique by contract.
type Job struct {
	JobID        string          `json:"jobId"`
	JobTitle     string          `json:"jobTitle"`
	JobLocation  JobLocation     `json:"jobLocation"`
	JobPay       JobPay          `json:"jobPay"`
	Requirements map[string]bool `json:"requirements"`
	Duration     JobDuration     `json:"duration"`
	Expiry       string          `json:"expiry"`
}

// PageRange is the 1-based inclusive index bounds of the jobs shown.
type PageRange struct {
	Minimum int `json:"minimum"`
	Maximum int `json:"maximum"`
}

// JobPage is one page of listings as returned by the backend. A missing or
// empty JobList is a valid "no results" response, not an error.
type JobPage struct {
	JobList    []Job     `json:"jobList"`
	Range      PageRange `json:"range"`
	TotalCount int       `json:"totalCount"`
}

// ExpiryDateFormat is the layout the new-job form submits expiry dates in.
const ExpiryDateFormat = "2006-01-02"

// ValidateForPosting checks the constraints the creation form enforces
// before a job is submitted: non-empty title, a sane pay range, known
// enum values, and an expiry between today and one year from today.
func (j Job) ValidateForPosting(now time.Time) error {
	if strings.TrimSpace(j.JobTitle) == "" {
		return fmt.Errorf("job title must not be empty")
	}

	if j.JobPay.Min < 0 {
		return fmt.Errorf("job pay min must not be negative")
	}
	if j.JobPay.Max < j.JobPay.Min {
		return fmt.Errorf("job pay max must not be less than min")
	}

	if _, err := ParsePaymentFrequency(string(j.JobPay.PaymentFrequency)); err != nil {
		return err
	}
	if _, err := ParseJobDuration(string(j.Duration)); err != nil {
		return err
	}

	expiry, err := time.Parse(ExpiryDateFormat, j.Expiry)
	if err != nil {
		return fmt.Errorf("invalid expiry date %q: %w", j.Expiry, err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if expiry.Before(today) {
		return fmt.Errorf("expiry date %s is in the past", j.Expiry)
	}
	if expiry.After(today.AddDate(1, 0, 0)) {
		return fmt.Errorf("expiry date %s is more than a year away", j.Expiry)
	}

	return nil
}
