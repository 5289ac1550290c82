// Package validation checks caller input before it leaves the process.
//
// Struct tags cover single-field rules and are evaluated with
// go-playground/validator. Field names in messages follow the json tags, so
// errors read in wire terms ("num_speakers: must be at most 32").
//
//	type Request struct {
//	    NumSpeakers *int `json:"num_speakers" validate:"omitnil,min=1,max=32"`
//	}
//	err := validation.Validate(req)
//
// Rules that involve several fields use the programmatic Validator:
//
//	v := validation.New().Merge(validation.Validate(req))
//	v.Custom(req.WebhookID == nil || webhookOn, "webhook_id", "requires webhook=true")
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
