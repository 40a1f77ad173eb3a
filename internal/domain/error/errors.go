package error

import (
	"github.com/0xsj/overwatch-pkg/errors"
)

// Domain error codes
const (
	CodeItemNotFound      errors.Code = "ITEM_NOT_FOUND"
	CodeItemAlreadyExists errors.Code = "ITEM_ALREADY_EXISTS"
	CodeItemIDRequired    errors.Code = "ITEM_ID_REQUIRED"
	CodeItemNameRequired  errors.Code = "ITEM_NAME_REQUIRED"
	CodeItemNameUnchanged errors.Code = "ITEM_NAME_UNCHANGED"
	CodeItemPriceInvalid  errors.Code = "ITEM_PRICE_INVALID"

	CodeRequestUnknown errors.Code = "REQUEST_UNKNOWN"
	CodeRequestInvalid errors.Code = "REQUEST_INVALID"
)

// Item errors
var (
	ErrItemNotFound = errors.New(errors.KindNotFound, CodeItemNotFound, "item not found")

	ErrItemAlreadyExists = errors.New(errors.KindConflict, CodeItemAlreadyExists, "item with this name already exists")

	ErrItemIDRequired = errors.New(errors.KindValidation, CodeItemIDRequired, "item ID is required")

	ErrItemNameRequired = errors.New(errors.KindValidation, CodeItemNameRequired, "item name is required")

	ErrItemNameUnchanged = errors.New(errors.KindDomain, CodeItemNameUnchanged, "item already has this name")

	ErrItemPriceInvalid = errors.New(errors.KindValidation, CodeItemPriceInvalid, "item price must not be negative")
)

// Request errors raised by transports before dispatch.
var (
	ErrRequestUnknown = errors.New(errors.KindNotFound, CodeRequestUnknown, "unknown request name")

	ErrRequestInvalid = errors.New(errors.KindValidation, CodeRequestInvalid, "request payload is invalid")
)
