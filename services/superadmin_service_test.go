package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"casa_portal_go/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperAdminService_SwitchOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates the session on success", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodPost, "/casa/v1/super-admin/switch-organization", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"organization_id":"9"}`, string(body))
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"organization":{"id":9,"name":"Lake County CASA","slug":"lake"}}}`)
		})

		store := session.NewMemoryStore(map[string]string{session.KeyTenantID: "4"})
		res := NewSuperAdminService(newTestClient(backend.URL, store), nil).SwitchOrganization(ctx, "9")
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "Lake County CASA", res.Data.Name)
		assert.Equal(t, "9", store.Get(session.KeyTenantID))

		var stored map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(store.Get(session.KeyOrganizationData)), &stored))
		assert.Equal(t, "lake", stored["slug"])
	})

	t.Run("Failure leaves the session alone", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.respond(http.MethodPost, "/casa/v1/super-admin/switch-organization", http.StatusForbidden, `{"message":"Not a super admin"}`)

		store := session.NewMemoryStore(map[string]string{session.KeyTenantID: "4"})
		res := NewSuperAdminService(newTestClient(backend.URL, store), nil).SwitchOrganization(ctx, "9")
		assert.False(t, res.Success)
		assert.Equal(t, "Not a super admin", res.Error)
		assert.Equal(t, "4", store.Get(session.KeyTenantID))
	})
}

func TestSuperAdminService_Organizations(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.respond(http.MethodGet, "/casa/v1/super-admin/organizations", http.StatusOK,
		`{"success":true,"data":{"data":[{"id":4,"name":"River"},{"id":9,"name":"Lake"}]}}`)
	backend.handle(http.MethodPost, "/casa/v1/super-admin/organizations", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Hill County", got["name"])
		writeJSON(w, http.StatusCreated, `{"data":{"data":{"id":12,"name":"Hill County","slug":"hill"}}}`)
	})
	backend.respond(http.MethodGet, "/casa/v1/super-admin/organizations/4/users", http.StatusOK, `{"users":[{"id":1}]}`)
	backend.handle(http.MethodPost, "/casa/v1/super-admin/users/1/assign", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"organization_id":"9","role":"casa_supervisor"}`, string(body))
		writeJSON(w, http.StatusOK, `{"id":1,"organization_id":9}`)
	})

	svc := NewSuperAdminService(newTestClient(backend.URL, nil), nil)

	orgs := svc.GetOrganizations(ctx)
	require.True(t, orgs.Success, orgs.Error)
	require.Len(t, orgs.Data, 2)
	assert.Equal(t, "Lake", orgs.Data[1].Name)

	created := svc.CreateOrganization(ctx, OrganizationInput{Name: "<b>Hill County</b>", Slug: "hill"})
	require.True(t, created.Success, created.Error)
	assert.Equal(t, "12", created.Data.ID)

	users := svc.GetOrganizationUsers(ctx, "4")
	require.True(t, users.Success)
	assert.Len(t, users.Data, 1)

	assigned := svc.AssignUserToOrganization(ctx, "1", "9", "casa_supervisor")
	require.True(t, assigned.Success, assigned.Error)
	assert.Equal(t, "9", assigned.Data.OrganizationID)
}
