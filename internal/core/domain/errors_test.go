package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestTagged_SentinelStaysInChain(t *testing.T) {
	err := domain.Tagged(domain.ErrCycleDetected, "cycle", "a -> b -> a")

	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected errors.Is to match the sentinel, got %v", err)
	}
	if err.Error() != domain.ErrCycleDetected.Error() {
		t.Errorf("expected message %q, got %q", domain.ErrCycleDetected.Error(), err.Error())
	}
}

func TestTagged_MetadataSurvivesFurtherWith(t *testing.T) {
	err := domain.Tagged(domain.ErrVersionConflict, "package", "zlib")
	err = zerr.With(err, "existing_version", "1.2")

	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected errors.Is to match the sentinel, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if meta["package"] != "zlib" {
		t.Errorf("expected metadata package=zlib, got %v", meta["package"])
	}
	if meta["existing_version"] != "1.2" {
		t.Errorf("expected metadata existing_version=1.2, got %v", meta["existing_version"])
	}
}
