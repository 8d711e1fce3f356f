package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderQuery_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken OrderToken
		wantEmail string
		wantErr   bool
	}{
		{"string token", `{"orderToken":"GG-12345","email":"a@b.co"}`, "GG-12345", "a@b.co", false},
		{"numeric token", `{"orderToken":12345,"email":"a@b.co"}`, "12345", "a@b.co", false},
		{"legacy alias", `{"orderNumber":"#1001","email":" a@b.co "}`, "#1001", "a@b.co", false},
		{"token wins over alias", `{"orderToken":"1","orderNumber":"2","email":"a@b.co"}`, "1", "a@b.co", false},
		{"null token", `{"orderToken":null,"email":"a@b.co"}`, "", "a@b.co", false},
		{"padded token", `{"orderToken":"  77  ","email":"a@b.co"}`, "77", "a@b.co", false},
		{"object token", `{"orderToken":{"id":1},"email":"a@b.co"}`, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q OrderQuery
			err := json.Unmarshal([]byte(tt.body), &q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			q.Normalize()
			assert.Equal(t, tt.wantToken, q.OrderToken)
			assert.Equal(t, tt.wantEmail, q.Email)
			assert.Empty(t, q.OrderNumber)
		})
	}
}
