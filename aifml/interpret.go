package aifml

import (
	"encoding/json"
	"fmt"

	"i4.energy/across/fmlgw/at"
)

// envelope is the outer reply of both endpoints.
type envelope struct {
	Status *bool           `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decodeEnvelope(raw string) (*envelope, error) {
	doc, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(doc), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSON, err)
	}
	if env.Status == nil {
		return nil, fmt.Errorf("%w: reply has no status", ErrJSON)
	}
	if !*env.Status {
		return nil, ErrStatusFalse
	}
	return &env, nil
}

// ParseSignIn interprets the raw sign-in reply and returns the access token.
//
// The busy and 404 checks run on the raw text before any JSON is looked for
// because those replies are plain text.
func ParseSignIn(raw string) (string, error) {
	if at.IsBusy(raw) {
		return "", ErrBusy
	}
	if at.IsNotFound(raw) {
		return "", ErrNotFound
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return "", err
	}

	var data struct {
		AccessToken *string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("%w: data: %v", ErrJSON, err)
	}
	if data.AccessToken == nil {
		return "", fmt.Errorf("%w: reply has no access_token", ErrJSON)
	}
	return *data.AccessToken, nil
}

// ParseFetch interprets the raw fetch reply. The data.fmldata field is a
// JSON document encoded as a string and is decoded in a second pass.
func ParseFetch(raw string) (*FmlData, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var data struct {
		FmlData *string `json:"fmldata"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrJSON, err)
	}
	if data.FmlData == nil {
		return nil, fmt.Errorf("%w: reply has no fmldata", ErrJSON)
	}
	return decodeFmlData(*data.FmlData)
}
