package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReq() createProfileReq {
	return createProfileReq{
		JobTitle: "Backend Engineer",
		Bio:      "Ten years of Go",
		Skills:   []string{"Go"},
		Projects: []projectReq{
			{Title: "Billing API", Description: "Stripe integration"},
		},
	}
}

func TestValidateCreateProfile(t *testing.T) {
	req := validReq()
	assert.NoError(t, validateCreateProfile(&req))
}

func TestValidateCreateProfileRejectsMissingJobTitle(t *testing.T) {
	req := validReq()
	req.JobTitle = "   "
	require.Error(t, validateCreateProfile(&req))
}

func TestValidateCreateProfileRejectsZeroProjects(t *testing.T) {
	req := validReq()
	req.Projects = nil
	require.Error(t, validateCreateProfile(&req))
}

func TestValidateCreateProfileRejectsTooManyProjects(t *testing.T) {
	req := validReq()
	req.Projects = make([]projectReq, 5)
	for i := range req.Projects {
		req.Projects[i] = projectReq{Title: "T", Description: "D"}
	}
	err := validateCreateProfile(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 4")
}

func TestValidateCreateProfileAllowsFourProjects(t *testing.T) {
	req := validReq()
	req.Projects = make([]projectReq, 4)
	for i := range req.Projects {
		req.Projects[i] = projectReq{Title: "T", Description: "D"}
	}
	assert.NoError(t, validateCreateProfile(&req))
}

func TestValidateCreateProfileRejectsEmptyProjectFields(t *testing.T) {
	req := validReq()
	req.Projects[0].Description = ""
	require.Error(t, validateCreateProfile(&req))
}
