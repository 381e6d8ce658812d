package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	inv := InvalidArgument("store.Create", "quantity must be non-negative")
	if !IsInvalidArgument(inv) {
		t.Fatalf("expected InvalidArgument: %v", inv)
	}
	if IsNotFound(inv) || IsInternal(inv) {
		t.Fatalf("kind overlap: %v", inv)
	}

	nf := NotFound("store.Get", "product missing")
	if !IsNotFound(nf) {
		t.Fatalf("expected NotFound: %v", nf)
	}

	in := WrapInternal(errors.New("disk full"), "store.UpdateQuantity", "save failed")
	if !IsInternal(in) {
		t.Fatalf("expected Internal: %v", in)
	}
}

func TestWrapInternalNil(t *testing.T) {
	if err := WrapInternal(nil, "op", "msg"); err != nil {
		t.Fatalf("wrapping nil should stay nil, got %v", err)
	}
}

func TestUnwrapThroughWrapping(t *testing.T) {
	base := errors.New("commit failed")
	err := WrapInternal(base, "store.Remove", "save")
	wrapped := fmt.Errorf("handler: %w", err)
	if !errors.Is(wrapped, base) {
		t.Fatalf("expected unwrap chain to reach base error")
	}
	if !IsInternal(wrapped) {
		t.Fatalf("classification lost through wrapping")
	}
}

func TestUnclassifiedIsInternal(t *testing.T) {
	if !IsInternal(errors.New("plain")) {
		t.Fatalf("plain errors should classify as internal")
	}
	if IsInternal(nil) {
		t.Fatalf("nil is not an error")
	}
}
