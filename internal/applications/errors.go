package applications

import "errors"

var (
	ErrNotFound         = errors.New("application not found")
	ErrNotOwner         = errors.New("application belongs to another user")
	ErrDuplicate        = errors.New("application already exists for this program")
	ErrProgramNotFound  = errors.New("program or university does not exist")
	ErrProgramMismatch  = errors.New("program does not belong to the selected university")
	ErrInvalidStatus    = errors.New("unknown application status")
	ErrInvalidDocStatus = errors.New("unknown document status")
	ErrDraftFeePaid     = errors.New("a draft application cannot have its fee paid")
	ErrFeeAlreadyPaid   = errors.New("fee already paid")
	ErrNotWithdrawable  = errors.New("application cannot be withdrawn")
	ErrPaymentFailed    = errors.New("payment could not be completed")
)
