package bmp280

import (
	"errors"
	"math"
	"testing"
)

func TestCompensateTemperature(t *testing.T) {
	temp, tFine := testCal.compensateTemperature(testRawTemp)
	// The integer path must match the datasheet reference bit-for-bit.
	if tFine != 128422 {
		t.Errorf("t_fine = %d, want 128422", tFine)
	}
	if math.Abs(temp-25.08) > 1e-9 {
		t.Errorf("temperature = %v, want 25.08", temp)
	}
}

func TestCompensatePressure(t *testing.T) {
	_, tFine := testCal.compensateTemperature(testRawTemp)
	p, err := testCal.compensatePressure(testRawPress, tFine)
	if err != nil {
		t.Fatalf("compensatePressure: %v", err)
	}
	if math.Abs(p-1006.5327) > 0.001 {
		t.Errorf("pressure = %v, want 1006.5327", p)
	}
}

func TestCompensatePressureZeroDenominator(t *testing.T) {
	cal := testCal
	cal.p1 = 0
	_, tFine := cal.compensateTemperature(testRawTemp)
	if _, err := cal.compensatePressure(testRawPress, tFine); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("err = %v, want ErrDivisionByZero", err)
	}
}

func TestAltitudeAtReferenceIsZero(t *testing.T) {
	for _, ref := range []float64{900, 1000, 1013.25, 1100} {
		alt, err := AltitudeFromPressure(ref, ref)
		if err != nil {
			t.Fatalf("AltitudeFromPressure(%v, %v): %v", ref, ref, err)
		}
		if alt != 0 {
			t.Errorf("altitude at reference %v hPa = %v, want 0", ref, alt)
		}
	}
}

func TestAltitudeMonotonicInPressure(t *testing.T) {
	const ref = 1013.25
	prev := math.Inf(1)
	for _, p := range []float64{850, 900, 950, 1000, 1013.25, 1050} {
		alt, err := AltitudeFromPressure(p, ref)
		if err != nil {
			t.Fatalf("AltitudeFromPressure(%v, %v): %v", p, ref, err)
		}
		if alt >= prev {
			t.Errorf("altitude(%v) = %v, not below altitude at lower pressure %v", p, alt, prev)
		}
		prev = alt
	}
}

func TestAltitudeInvalidInput(t *testing.T) {
	cases := []struct{ p, ref float64 }{
		{0, 1013.25},
		{-10, 1013.25},
		{1000, 0},
		{1000, -1},
	}
	for _, c := range cases {
		if _, err := AltitudeFromPressure(c.p, c.ref); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("AltitudeFromPressure(%v, %v) err = %v, want ErrInvalidInput", c.p, c.ref, err)
		}
	}
}

func TestSeaLevelAltitudeRoundTrip(t *testing.T) {
	const ref = 1013.25
	for _, p := range []float64{900, 950, 1006.5327, 1050} {
		alt, err := AltitudeFromPressure(p, ref)
		if err != nil {
			t.Fatalf("AltitudeFromPressure: %v", err)
		}
		if got := seaLevelFromAltitude(p, alt); math.Abs(got-ref) > 1e-6 {
			t.Errorf("round trip at %v hPa: sea level %v, want %v", p, got, ref)
		}
	}
}
