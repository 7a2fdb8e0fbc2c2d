package classify

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, matched with errors.Is across every wrapping layer.
var (
	ErrConfigInvalid        = errors.New("classify: invalid configuration")
	ErrBackendUnavailable   = errors.New("classify: no device realizes even the flat tier")
	ErrResidencyFailure     = errors.New("classify: residency staging or retrieval failed")
	ErrKernelFailure        = errors.New("classify: kernel launch or execution failed")
	ErrUnsupportedInterleave = errors.New("classify: cube interleave is not BIL")
	ErrMetadataInvalid      = errors.New("classify: cube metadata is invalid")
)

func errInvalidMetric(s string) error {
	return fmt.Errorf("%w: unrecognised metric %q", ErrConfigInvalid, s)
}

func errInvalidDeviceClass(s string) error {
	return fmt.Errorf("%w: unrecognised device class %q", ErrConfigInvalid, s)
}

// WrapStage annotates err with the pipeline stage it failed in, preserving
// errors.Is/As against the wrapped sentinel.
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("stage %s: %w", stage, err)
}
