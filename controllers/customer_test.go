package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"salon-dina-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCustomerFreesPhoneForReRegistration(t *testing.T) {
	r := newTestRouter(t)
	r.POST("/customers", CreateCustomer)
	r.DELETE("/customers/:id", DeleteCustomer)

	body := `{"name":"Rina Anggraini","phone":"+6281311111101"}`
	w := doJSON(t, r, http.MethodPost, "/customers", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/customers/"+created.Data.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	// The phone is the natural key and must be reusable after deletion.
	w = doJSON(t, r, http.MethodPost, "/customers", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCustomerRejectsDuplicatePhone(t *testing.T) {
	r := newTestRouter(t)
	r.POST("/customers", CreateCustomer)

	body := `{"name":"Dewi Kartika","phone":"+6281311111102"}`
	w := doJSON(t, r, http.MethodPost, "/customers", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/customers", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}
