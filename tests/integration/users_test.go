//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabyoh/storefront/internal/testutil"
)

func TestUsers_ListRequiresAdmin(t *testing.T) {
	user, _ := newUserClient(t)

	resp, err := user.GET("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	admin := newRoleClient(t, "admin")
	resp, err = admin.GET("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	testutil.DecodeJSON(t, resp, &users)
	assert.NotEmpty(t, users)
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.Email)
	}
}

func TestUsers_UpdateRoleRequiresSuperAdmin(t *testing.T) {
	client := newTestClient(t)
	targetID := registerUser(t, client, testutil.RandomEmail(), "password123")

	admin := newRoleClient(t, "admin")
	resp, err := admin.PATCH("/update-role/"+targetID, map[string]string{"role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	super := newRoleClient(t, "super-admin")
	resp, err = super.PATCH("/update-role/"+targetID, map[string]string{"role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Role string `json:"role"`
	}
	testutil.DecodeJSON(t, resp, &updated)
	assert.Equal(t, "admin", updated.Role)
}

func TestUsers_UpdateRoleValidation(t *testing.T) {
	super := newRoleClient(t, "super-admin")
	client := newTestClient(t)
	targetID := registerUser(t, client, testutil.RandomEmail(), "password123")

	resp, err := super.PATCH("/update-role/"+targetID, map[string]string{"role": "overlord"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = super.PATCH("/update-role/not-a-uuid", map[string]string{"role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = super.PATCH("/update-role/00000000-0000-0000-0000-000000000000", map[string]string{"role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_PromotedRoleTakesEffectOnRelogin(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	targetID := registerUser(t, client, email, "password123")

	super := newRoleClient(t, "super-admin")
	resp, err := super.PATCH("/update-role/"+targetID, map[string]string{"role": "admin"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	token := login(t, client, email, "password123")
	promoted := client.WithToken(token)

	resp, err = promoted.GET("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_Delete(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()
	targetID := registerUser(t, client, email, "password123")

	admin := newRoleClient(t, "admin")

	resp, err := admin.DELETE("/user/" + targetID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Deleted account can no longer log in.
	resp, err = client.POST("/login", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Deleting again reports not found.
	resp, err = admin.DELETE("/user/" + targetID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = admin.DELETE("/user/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
