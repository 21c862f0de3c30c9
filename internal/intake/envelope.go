package intake

import (
	"encoding/json"
	"fmt"
)

// envelope is the JSON wire format gateways publish advertisement frames in,
// identical across all transports:
//
//	{"address": "E0:13:D5:71:D0:66", "company_id": 34817, "data": "AQL..."}
//
// The data field is standard base64 (encoding/json []byte convention).
type envelope struct {
	Address   string `json:"address"`
	CompanyID uint16 `json:"company_id"`
	Data      []byte `json:"data"`
}

// parseEnvelope decodes one gateway message into an Advertisement.
func parseEnvelope(payload []byte) (Advertisement, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Advertisement{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if env.Address == "" {
		return Advertisement{}, fmt.Errorf("%w: missing address", ErrInvalidEnvelope)
	}
	return Advertisement{
		Address:   env.Address,
		CompanyID: env.CompanyID,
		Data:      env.Data,
	}, nil
}
