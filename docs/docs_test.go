package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "Hotel Management API", doc.Info["title"])
	assert.Contains(t, doc.Paths, "/reserva_rapida")
	assert.Contains(t, doc.Paths["/registrar_pago/{reserva_id}"], "post")
	assert.Contains(t, doc.Paths["/reporte_financiero/exportar"], "get")
}
