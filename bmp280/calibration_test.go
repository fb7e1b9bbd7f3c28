package bmp280

import (
	"errors"
	"io"
	"testing"
)

func TestNewCalibrationParsesLittleEndian(t *testing.T) {
	if cal := newCalibration(testCalBlock()); cal != testCal {
		t.Errorf("parsed %+v, want %+v", cal, testCal)
	}
}

func TestLoadCalibration(t *testing.T) {
	f := newFakeTransport()
	cal, err := loadCalibration(f)
	if err != nil {
		t.Fatalf("loadCalibration: %v", err)
	}
	if cal != testCal {
		t.Errorf("loaded %+v, want %+v", cal, testCal)
	}
	if len(f.ops) != 1 || f.ops[0] != (busOp{op: "read", reg: regCalibration, n: calibrationSize}) {
		t.Errorf("ops = %+v, want one %d-byte burst at 0x%02X", f.ops, calibrationSize, regCalibration)
	}
}

func TestLoadCalibrationSentinel(t *testing.T) {
	for _, sentinel := range []byte{0x00, 0xFF} {
		f := newFakeTransport()
		for i := 0; i < calibrationSize; i++ {
			f.regs[regCalibration+uint8(i)] = sentinel
		}
		if _, err := loadCalibration(f); !errors.Is(err, ErrInvalidCalibration) {
			t.Errorf("sentinel 0x%02X: err = %v, want ErrInvalidCalibration", sentinel, err)
		}
	}
}

func TestLoadCalibrationBusError(t *testing.T) {
	f := newFakeTransport()
	f.readErr[regCalibration] = io.ErrUnexpectedEOF
	_, err := loadCalibration(f)
	var busErr *BusError
	if !errors.As(err, &busErr) {
		t.Fatalf("err = %v, want *BusError", err)
	}
}

func TestCalibrationLoaded(t *testing.T) {
	if (&calibration{}).loaded() {
		t.Error("zero calibration reported loaded")
	}
	cal := testCal
	if !cal.loaded() {
		t.Error("datasheet calibration reported not loaded")
	}
}
