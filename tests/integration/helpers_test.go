//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabyoh/storefront/internal/testutil"
)

// registerUser creates an account through the API and returns its id.
func registerUser(t *testing.T, client *testutil.Client, email, password string) string {
	t.Helper()

	resp, err := client.POST("/register", map[string]string{
		"name":     testutil.RandomName("shopper"),
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &user)
	require.NotEmpty(t, user.ID)
	return user.ID
}

// login authenticates and returns the bearer token.
func login(t *testing.T, client *testutil.Client, email, password string) string {
	t.Helper()

	resp, err := client.POST("/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

// promoteUser sets a role directly in the database. Registration always
// yields plain users; privileged test accounts are promoted here and log
// in again afterwards so their token carries the new role.
func promoteUser(t *testing.T, userID, role string) {
	t.Helper()

	tag, err := testDB.Exec(context.Background(),
		`UPDATE users SET role = $2 WHERE id = $1`, userID, role)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

// newUserClient registers a fresh account and returns an authenticated client.
func newUserClient(t *testing.T) (*testutil.Client, string) {
	t.Helper()

	client := newTestClient(t)
	email := testutil.RandomEmail()
	registerUser(t, client, email, "password123")
	token := login(t, client, email, "password123")
	return client.WithToken(token), email
}

// newRoleClient registers an account, promotes it, and returns a client
// whose token carries the given role.
func newRoleClient(t *testing.T, role string) *testutil.Client {
	t.Helper()

	client := newTestClient(t)
	email := testutil.RandomEmail()
	id := registerUser(t, client, email, "password123")
	promoteUser(t, id, role)
	token := login(t, client, email, "password123")
	return client.WithToken(token)
}

// createProduct creates a catalog product as admin and returns its id.
func createProduct(t *testing.T, admin *testutil.Client, name string, priceCents int64) string {
	t.Helper()

	resp, err := admin.POST("/addproduct", map[string]interface{}{
		"name":        name,
		"price_cents": priceCents,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var product struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &product)
	require.NotEmpty(t, product.ID)
	return product.ID
}

// addCartItem adds a product to the client's cart and returns the cart item id.
func addCartItem(t *testing.T, client *testutil.Client, productID string, quantity int) string {
	t.Helper()

	resp, err := client.POST("/cart", map[string]interface{}{
		"product_ref": productID,
		"quantity":    quantity,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &item)
	require.NotEmpty(t, item.ID)
	return item.ID
}
