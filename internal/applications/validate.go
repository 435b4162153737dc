package applications

// validate runs the field-combination checks that must hold before any
// persist, regardless of which operation produced the change.
func validate(app Application) error {
	if !ValidStatus(app.Status) {
		return ErrInvalidStatus
	}
	if !ValidDocStatus(app.DocumentStatuses.TenthMarksheet) || !ValidDocStatus(app.DocumentStatuses.TwelfthMarksheet) {
		return ErrInvalidDocStatus
	}
	if app.Status == StatusDraft && app.FeePaid {
		return ErrDraftFeePaid
	}
	return nil
}
