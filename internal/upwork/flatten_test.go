package upwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func sampleData() AnalizedUpworkJobData {
	return AnalizedUpworkJobData{
		JobDetails: JobDetailsData{
			Title:           "Go Backend Developer",
			Description:     "Build a REST API",
			Type:            JobTypeHourly,
			ExperienceLevel: "Expert",
			HourlyRate:      &HourlyRate{Min: "$30", Max: "$60"},
			Skills:          []string{"Go", "PostgreSQL", "Redis"},
		},
		ClientInfo: &ClientInfo{
			ClientName:      "Acme Corp",
			Location:        "United States",
			Rating:          "4.9",
			PaymentVerified: boolPtr(true),
		},
	}
}

func flatValue(items []FlattenedItem, key string) (any, bool) {
	for _, it := range items {
		if v, ok := it[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func TestFlattenJobDataFirstThreeOrder(t *testing.T) {
	items := FlattenJobData(sampleData())
	require.GreaterOrEqual(t, len(items), 3)

	assert.Equal(t, FlattenedItem{"client_name": "Acme Corp"}, items[0])
	assert.Equal(t, FlattenedItem{"job_title": "Go Backend Developer"}, items[1])
	assert.Equal(t, FlattenedItem{"job_description": "Build a REST API"}, items[2])

	// setiap item hanya punya satu key
	for _, it := range items {
		assert.Len(t, it, 1)
	}
}

func TestFlattenJobDataUnknownClientFallback(t *testing.T) {
	d := sampleData()
	d.ClientInfo = nil
	items := FlattenJobData(d)
	assert.Equal(t, FlattenedItem{"client_name": "Unknown Client"}, items[0])

	d = sampleData()
	d.ClientInfo.ClientName = ""
	items = FlattenJobData(d)
	assert.Equal(t, FlattenedItem{"client_name": "Unknown Client"}, items[0])
}

func TestFlattenJobDataMinimalResultIsThreeEntries(t *testing.T) {
	d := AnalizedUpworkJobData{
		JobDetails: JobDetailsData{Title: "X", Description: "Y"},
	}
	items := FlattenJobData(d)
	require.Len(t, items, 3)
	assert.Equal(t, FlattenedItem{"client_name": "Unknown Client"}, items[0])
	assert.Equal(t, FlattenedItem{"job_title": "X"}, items[1])
	assert.Equal(t, FlattenedItem{"job_description": "Y"}, items[2])
}

func TestFlattenJobDataNestedAndArrayLeaves(t *testing.T) {
	items := FlattenJobData(sampleData())

	v, ok := flatValue(items, "job_hourly_rate_min")
	require.True(t, ok)
	assert.Equal(t, "$30", v)

	v, ok = flatValue(items, "job_hourly_rate_max")
	require.True(t, ok)
	assert.Equal(t, "$60", v)

	// arrays join jadi satu string, lossy by design
	v, ok = flatValue(items, "job_skills")
	require.True(t, ok)
	assert.Equal(t, "Go, PostgreSQL, Redis", v)

	v, ok = flatValue(items, "payment_verified")
	require.True(t, ok)
	assert.Equal(t, true, v)

	// field yang absen tidak muncul sama sekali
	_, ok = flatValue(items, "job_project_length")
	assert.False(t, ok)
	_, ok = flatValue(items, "phone_verified")
	assert.False(t, ok)
}

func TestFlattenJobDataScalarRoundTrip(t *testing.T) {
	d := sampleData()
	items := FlattenJobData(d)

	// leaf scalars survive the flatten untouched
	for key, want := range map[string]any{
		"job_type":             "Hourly",
		"job_experience_level": "Expert",
		"location":             "United States",
		"rating":               "4.9",
	} {
		v, ok := flatValue(items, key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestFlattenIntoEmptyArray(t *testing.T) {
	var items []FlattenedItem
	flattenInto(&items, map[string]any{"skills": []any{}}, "job", nil)
	require.Len(t, items, 1)
	assert.Equal(t, FlattenedItem{"job_skills": ""}, items[0])
}

func TestFlattenIntoNullLeafStillEmitted(t *testing.T) {
	var items []FlattenedItem
	flattenInto(&items, map[string]any{"connectsRequired": nil}, "job", nil)
	require.Len(t, items, 1)
	assert.Equal(t, FlattenedItem{"job_connects_required": nil}, items[0])
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"jobDetails.hourlyRate.min": "job_details_hourly_rate_min",
		"hourlyRate.min":            "hourly_rate_min",
		"clientName":                "client_name",
		"job.title":                 "job_title",
		"title":                     "title",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnakeCase(in), in)
	}

	// idempotent: hasilnya sudah stabil
	for _, want := range tests {
		assert.Equal(t, want, toSnakeCase(want))
	}
}
