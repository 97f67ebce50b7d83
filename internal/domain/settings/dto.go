package settings

import "github.com/workshift-ph/timeclock-backend/internal/pkg/validator"

type UpdateBreaktimeRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r UpdateBreaktimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Enabled == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "enabled",
			Message: "enabled is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreaktimeResponse struct {
	Enabled bool `json:"breaktime_enabled"`
}
