// internal/common/validation/schema.go

// Package validation checks store-write event payloads against JSON schemas
// before they reach the handlers.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const orderCreatedSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"payment_status": {"type": "string"},
		"address": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"flatNo": {"type": "string"},
				"buildingName": {"type": "string"}
			}
		}
	}
}`

const notificationCreatedSchema = `{
	"type": "object",
	"required": ["id", "user_id"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"user_id": {"type": "string", "minLength": 1},
		"title": {"type": "string"},
		"body": {"type": "string"}
	}
}`

var schemas = map[string]*gojsonschema.Schema{}

func init() {
	for name, raw := range map[string]string{
		"orders.created":        orderCreatedSchema,
		"notifications.created": notificationCreatedSchema,
	} {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid embedded schema %s: %v", name, err))
		}
		schemas[name] = s
	}
}

// ValidateEvent checks an event payload against the schema registered for its
// type. Unknown event types are rejected.
func ValidateEvent(eventType string, payload []byte) error {
	schema, ok := schemas[eventType]
	if !ok {
		return fmt.Errorf("no schema registered for event type %q", eventType)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validate %s payload: %w", eventType, err)
	}

	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("%s payload invalid: %s", eventType, first.String())
	}

	return nil
}
