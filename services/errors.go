package services

import "errors"

var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoFiles             = errors.New("no files uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)
