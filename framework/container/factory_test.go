package container

import (
	"context"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindClass, "class"},
		{KindFunc, "func"},
		{KindValue, "value"},
		{KindAsync, "async"},
		{Kind(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestFactory_KindMatchesConstructor(t *testing.T) {
	tests := []struct {
		f    Factory
		want Kind
	}{
		{Class(func(View) (*int, error) { return new(int), nil }), KindClass},
		{Func(func(View) (any, error) { return 1, nil }), KindFunc},
		{Value(1), KindValue},
		{Async(func(context.Context, View) (any, error) { return 1, nil }), KindAsync},
	}

	for _, tt := range tests {
		if got := tt.f.Kind(); got != tt.want {
			t.Errorf("Kind() = %v, want %v", got, tt.want)
		}
	}
}
