package repl

import "github.com/ardnew/modulista/lang"

// Sentinel errors.
var (
	ErrOutOfBounds    = lang.NewError("index out of range")
	ErrEditDeclined   = lang.NewError("decline edit")
	ErrUnknownCommand = lang.NewError("unknown command (try 'help')")
	ErrUsage          = lang.NewError("invalid arguments")
	ErrEmptyName      = lang.NewError("item name is empty")
	ErrNotList        = lang.NewError("item is not a list")
	ErrRenameList     = lang.NewError("lists cannot be renamed")
)
