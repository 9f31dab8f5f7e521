package domain

import "errors"

var (
	ErrNoDevice        = errors.New("no device attached")
	ErrAmbiguousDevice = errors.New("multiple devices attached, select one with -d")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrDeviceProperty  = errors.New("could not read device property")
	ErrUnsupportedArch = errors.New("unsupported device architecture")
	ErrDownload        = errors.New("download failed")
	ErrExtraction      = errors.New("extraction failed")
	ErrPush            = errors.New("push failed")
)
