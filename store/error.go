package store

import "github.com/ardnew/modulista/lang"

var (
	ErrNotFound      = lang.NewError("item not found")
	ErrDuplicateName = lang.NewError("item name already exists in container")
	ErrOpen          = lang.NewError("failed to open store")
	ErrMigrate       = lang.NewError("failed to migrate store schema")
	ErrQuery         = lang.NewError("store query failed")
	ErrEncodeValue   = lang.NewError("failed to encode item value")
	ErrDecodeValue   = lang.NewError("failed to decode item value")
)
