package cmd

import "github.com/ardnew/modulista/lang"

var (
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrOpenStore   = lang.NewError("open item database")
	ErrNoSource    = lang.NewError("no readable source")
	ErrParseSource = lang.NewError("parse source")
	ErrWriteOutput = lang.NewError("write output")
)
