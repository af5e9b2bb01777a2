package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"salon-dina-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTherapistFreesInitialForReuse(t *testing.T) {
	r := newTestRouter(t)
	r.POST("/therapists", CreateTherapist)
	r.DELETE("/therapists/:id", DeleteTherapist)

	body := `{"initial":"DN","fullName":"Dina Novita","baseFeePerTreatment":15000,"commissionRate":0.10}`
	w := doJSON(t, r, http.MethodPost, "/therapists", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Therapist `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/therapists/"+created.Data.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	// The initial is the natural key and must be reusable after deletion.
	w = doJSON(t, r, http.MethodPost, "/therapists", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}
