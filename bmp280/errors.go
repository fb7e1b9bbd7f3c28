package bmp280

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDevice means the chip-id register did not return the
	// BMP280 id. Wrong wiring, wrong address, or a different BMx part.
	ErrUnsupportedDevice = errors.New("bmp280: unsupported device")

	// ErrInvalidCalibration means the calibration block read back as a
	// sentinel pattern (all zeros or all ones), which happens when the
	// device is absent or unpowered.
	ErrInvalidCalibration = errors.New("bmp280: invalid calibration data")

	// ErrConversionTimeout means the status register never reported the
	// conversion complete within the bounded poll count.
	ErrConversionTimeout = errors.New("bmp280: conversion timeout")

	// ErrDivisionByZero means the pressure compensation denominator
	// evaluated to zero, which indicates a misread calibration block.
	ErrDivisionByZero = errors.New("bmp280: pressure compensation division by zero")

	// ErrInvalidInput means an argument was outside its valid range.
	ErrInvalidInput = errors.New("bmp280: invalid input")
)

// BusError wraps a transport failure with the register and operation that
// caused it. Match with errors.As.
type BusError struct {
	Op  string // "read" or "write"
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bmp280: %s register 0x%02X: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
