package carte

import (
	"errors"

	"github.com/dendoesit/carte/internal/attachment"
	"github.com/dendoesit/carte/internal/pipeline"
)

// Attachment errors. They never abort an export: the item page shows the
// reason and Result.Failures reports it. Match with errors.Is on
// AttachmentFailure.Err.
var (
	ErrFetchFailed         = attachment.ErrFetchFailed
	ErrEmptyPayload        = attachment.ErrEmptyPayload
	ErrInvalidHeader       = attachment.ErrInvalidHeader
	ErrUnparseableDocument = attachment.ErrUnparseableDocument
	ErrZeroPages           = attachment.ErrZeroPages
)

// Fatal export errors. No bytes are returned with them.
var (
	ErrStagingFailure       = pipeline.ErrStaging
	ErrSerializationFailure = pipeline.ErrSerialization
)

// Sentinel errors for record and option validation.
var (
	ErrInvalidRecord     = errors.New("invalid project record")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrTooManyItems      = errors.New("too many checklist items")
	ErrMissingItemID     = errors.New("checklist item has no id")
	ErrDuplicateItemID   = errors.New("duplicate checklist item id")
	ErrInvalidAttachment = errors.New("attachment must set exactly one of data, path and url")
	ErrInvalidDate       = errors.New("invalid date")
	ErrTemplateNotFound  = errors.New("checklist template not found")
)
