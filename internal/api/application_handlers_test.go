package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
)

func submitApplicationBody() map[string]any {
	return map[string]any{
		"author_bio":  "I write contemporary fiction.",
		"proof_links": []string{"https://example.com/about"},
		"author_keys": []string{"OL1A"},
	}
}

func TestSubmitApplication(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.signup(t, "applicant@example.com")

	resp := ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[ApplicationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "pending", envelope.Data.Status)
	assert.Equal(t, userID, envelope.Data.UserID)

	// A second pending application is rejected.
	resp = ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestSubmitApplication_Validation(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "applicant@example.com")

	resp := ts.api.Post("/api/v1/applications",
		map[string]any{
			"author_bio":  "too short",
			"proof_links": []string{},
			"author_keys": []string{},
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListMyApplications(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "applicant@example.com")

	resp := ts.api.Get("/api/v1/applications/mine", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListApplicationsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Applications)

	resp = ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/applications/mine", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Applications, 1)
}

func TestReviewApplication_Approve(t *testing.T) {
	ts := setupTestServer(t)
	applicantToken, applicantID := ts.signup(t, "applicant@example.com")
	adminToken, adminID := ts.signup(t, "admin@example.com")
	ts.promote(t, adminID, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+applicantToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var submitted testEnvelope[ApplicationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &submitted))

	resp = ts.api.Post("/api/v1/admin/applications/"+submitted.Data.ID+"/review",
		map[string]any{"decision": "approve"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var reviewed testEnvelope[ApplicationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reviewed))
	assert.Equal(t, "approved", reviewed.Data.Status)
	assert.Equal(t, adminID, reviewed.Data.ReviewedBy)

	// The applicant is now an author.
	resp = ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+applicantToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var me testEnvelope[UserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &me))
	assert.Equal(t, applicantID, me.Data.ID)
	assert.Equal(t, "author", me.Data.Role)
	assert.Equal(t, []string{"OL1A"}, me.Data.AuthorKeys)

	// A second review hits the terminal-state guard.
	resp = ts.api.Post("/api/v1/admin/applications/"+submitted.Data.ID+"/review",
		map[string]any{"decision": "reject"},
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestReviewApplication_NonAdmin(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "applicant@example.com")

	resp := ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var submitted testEnvelope[ApplicationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &submitted))

	resp = ts.api.Post("/api/v1/admin/applications/"+submitted.Data.ID+"/review",
		map[string]any{"decision": "approve"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestListApplications_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	readerToken, _ := ts.signup(t, "reader@example.com")
	adminToken, adminID := ts.signup(t, "admin@example.com")
	ts.promote(t, adminID, domain.RoleAdmin)

	resp := ts.api.Get("/api/v1/admin/applications", "Authorization: Bearer "+readerToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/applications",
		submitApplicationBody(),
		"Authorization: Bearer "+readerToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/admin/applications", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListApplicationsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Applications, 1)

	resp = ts.api.Get("/api/v1/admin/applications?status=all", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Applications, 1)
}
