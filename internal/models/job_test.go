package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParsePaymentFrequency(t *testing.T) {
	for _, valid := range []string{"HOURLY", "WEEKLY", "MONTHLY", "YEARLY"} {
		if _, err := ParsePaymentFrequency(valid); err != nil {
			t.Errorf("ParsePaymentFrequency(%q) = %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "hourly", "DAILY"} {
		if _, err := ParsePaymentFrequency(invalid); err == nil {
			t.Errorf("ParsePaymentFrequency(%q) should fail", invalid)
		}
	}
}

func TestPaymentFrequencyLower(t *testing.T) {
	if got := FrequencyHourly.Lower(); got != "hourly" {
		t.Errorf("Lower() = %q, want %q", got, "hourly")
	}
}

func TestParseJobDuration(t *testing.T) {
	for _, valid := range []string{"ONE_WEEK", "TWO_WEEKS", "ONE_MONTH", "SIX_MONTHS", "ONE_YEAR", "OTHER"} {
		if _, err := ParseJobDuration(valid); err != nil {
			t.Errorf("ParseJobDuration(%q) = %v", valid, err)
		}
	}
	if _, err := ParseJobDuration("THREE_DAYS"); err == nil {
		t.Error("ParseJobDuration should reject unknown durations")
	}
}

func TestJobPageDecoding(t *testing.T) {
	payload := `{
		"jobList": [{
			"jobId": "abc-123",
			"jobTitle": "Waiter",
			"jobLocation": {"address": "290 Orchard Rd", "postalCode": "238859", "latitude": 1.3039, "longitude": 103.8318},
			"jobPay": {"min": 10, "max": 12, "paymentFrequency": "HOURLY"},
			"requirements": {"LANGUAGE_ENGLISH": true, "O_LEVEL": false},
			"duration": "ONE_MONTH",
			"expiry": "2020-12-01"
		}],
		"range": {"minimum": 1, "maximum": 1},
		"totalCount": 7
	}`

	var page JobPage
	if err := json.Unmarshal([]byte(payload), &page); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(page.JobList) != 1 {
		t.Fatalf("len(JobList) = %d, want 1", len(page.JobList))
	}
	job := page.JobList[0]
	if job.JobID != "abc-123" || job.JobPay.PaymentFrequency != FrequencyHourly {
		t.Errorf("decoded job = %+v", job)
	}
	if !job.Requirements["LANGUAGE_ENGLISH"] || job.Requirements["O_LEVEL"] {
		t.Errorf("decoded requirements = %v", job.Requirements)
	}
	if page.Range.Minimum != 1 || page.Range.Maximum != 1 || page.TotalCount != 7 {
		t.Errorf("decoded envelope = %+v", page)
	}
}

func validJob() Job {
	return Job{
		JobID:    "abc-123",
		JobTitle: "Waiter",
		JobPay: JobPay{
			Min:              10,
			Max:              12,
			PaymentFrequency: FrequencyHourly,
		},
		Duration: DurationOneMonth,
		Expiry:   "2020-07-10",
	}
}

func TestValidateForPosting(t *testing.T) {
	now := time.Date(2020, 7, 1, 15, 30, 0, 0, time.UTC)

	if err := validJob().ValidateForPosting(now); err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Job)
	}{
		{"blank title", func(j *Job) { j.JobTitle = "   " }},
		{"negative min pay", func(j *Job) { j.JobPay.Min = -1 }},
		{"max below min", func(j *Job) { j.JobPay.Max = 5 }},
		{"unknown frequency", func(j *Job) { j.JobPay.PaymentFrequency = "DAILY" }},
		{"unknown duration", func(j *Job) { j.Duration = "FOREVER" }},
		{"malformed expiry", func(j *Job) { j.Expiry = "01/12/2020" }},
		{"expiry in the past", func(j *Job) { j.Expiry = "2020-06-30" }},
		{"expiry over a year away", func(j *Job) { j.Expiry = "2021-07-02" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := validJob()
			tc.mutate(&job)
			if err := job.ValidateForPosting(now); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateForPosting_ExpiryBoundaries(t *testing.T) {
	now := time.Date(2020, 7, 1, 23, 59, 0, 0, time.UTC)

	today := validJob()
	today.Expiry = "2020-07-01"
	if err := today.ValidateForPosting(now); err != nil {
		t.Errorf("expiry today should be accepted: %v", err)
	}

	yearAway := validJob()
	yearAway.Expiry = "2021-07-01"
	if err := yearAway.ValidateForPosting(now); err != nil {
		t.Errorf("expiry exactly a year away should be accepted: %v", err)
	}
}
