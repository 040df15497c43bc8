//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabyoh/storefront/internal/testutil"
)

func TestCart_AddAndList(t *testing.T) {
	admin := newRoleClient(t, "admin")
	productID := createProduct(t, admin, testutil.RandomName("cartable"), 1500)

	user, email := newUserClient(t)

	resp, err := user.POST("/cart", map[string]interface{}{
		"product_ref": productID,
		"quantity":    2,
		"attrs":       map[string]interface{}{"size": "M"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item struct {
		ID         string         `json:"id"`
		OwnerEmail string         `json:"owner_email"`
		ProductRef string         `json:"product_ref"`
		Quantity   int            `json:"quantity"`
		Attrs      map[string]any `json:"attrs"`
	}
	testutil.DecodeJSON(t, resp, &item)
	assert.Equal(t, email, item.OwnerEmail)
	assert.Equal(t, productID, item.ProductRef)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "M", item.Attrs["size"])

	resp, err = user.GET("/carts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}

func TestCart_UpdateQuantity(t *testing.T) {
	admin := newRoleClient(t, "admin")
	productID := createProduct(t, admin, testutil.RandomName("resize"), 900)

	user, _ := newUserClient(t)
	itemID := addCartItem(t, user, productID, 1)

	resp, err := user.PATCH("/cart/"+itemID, map[string]interface{}{"quantity": 5})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Quantity int `json:"quantity"`
	}
	testutil.DecodeJSON(t, resp, &updated)
	assert.Equal(t, 5, updated.Quantity)

	resp, err = user.PATCH("/cart/"+itemID, map[string]interface{}{"quantity": 0})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCart_Remove(t *testing.T) {
	admin := newRoleClient(t, "admin")
	productID := createProduct(t, admin, testutil.RandomName("droppable"), 400)

	user, _ := newUserClient(t)
	itemID := addCartItem(t, user, productID, 1)

	resp, err := user.DELETE("/carts/" + itemID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = user.GET("/carts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct{}
	testutil.DecodeJSON(t, resp, &items)
	assert.Empty(t, items)

	resp, err = user.DELETE("/carts/" + itemID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCart_OwnershipIsolation(t *testing.T) {
	admin := newRoleClient(t, "admin")
	productID := createProduct(t, admin, testutil.RandomName("private"), 2000)

	alice, _ := newUserClient(t)
	bob, _ := newUserClient(t)

	aliceItem := addCartItem(t, alice, productID, 3)

	// Bob cannot see, change, or remove Alice's item. The responses are
	// indistinguishable from the item not existing.
	resp, err := bob.GET("/carts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bobItems []struct{}
	testutil.DecodeJSON(t, resp, &bobItems)
	assert.Empty(t, bobItems)

	resp, err = bob.PATCH("/cart/"+aliceItem, map[string]interface{}{"quantity": 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = bob.DELETE("/carts/" + aliceItem)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Alice's item is untouched.
	resp, err = alice.GET("/carts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var aliceItems []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	testutil.DecodeJSON(t, resp, &aliceItems)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, aliceItem, aliceItems[0].ID)
	assert.Equal(t, 3, aliceItems[0].Quantity)
}

func TestCart_Validation(t *testing.T) {
	user, _ := newUserClient(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing product ref", body: map[string]interface{}{"quantity": 1}},
		{name: "malformed product ref", body: map[string]interface{}{"product_ref": "not-a-uuid", "quantity": 1}},
		{name: "zero quantity", body: map[string]interface{}{"product_ref": "0d4c6912-12e3-44c8-9a4f-cb4bc0f6dcab", "quantity": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := user.POST("/cart", tt.body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}

	resp, err := user.PATCH("/cart/not-a-uuid", map[string]interface{}{"quantity": 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
