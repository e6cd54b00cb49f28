package bill

import "errors"

var (
	// ErrNoDraft means the draft ID matched nothing (expired or discarded).
	ErrNoDraft = errors.New("bill draft not found")
	// ErrBillConfirmed rejects mutations while the bill is locked.
	ErrBillConfirmed = errors.New("bill is confirmed; return to edit mode first")
	// ErrBillNotConfirmed rejects an upload of an unconfirmed bill.
	ErrBillNotConfirmed = errors.New("bill must be confirmed before upload")
	// ErrIndexOutOfRange rejects line item indices outside the draft.
	ErrIndexOutOfRange = errors.New("line item index out of range")
	// ErrUnknownField rejects an update to a field that is not part of a line item.
	ErrUnknownField = errors.New("unknown line item field")
	// ErrCaptureFailed wraps a bill snapshot rendering failure. The upload is
	// aborted before any network call and the draft state is untouched.
	ErrCaptureFailed = errors.New("failed to generate the bill snapshot")
)
