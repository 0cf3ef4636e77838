package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mu      sync.RWMutex
	members = map[reflect.Type][]any{}
)

// New registers value as a member of its type and returns it unchanged. It is
// meant to be used in package-level var blocks.
func New[T comparable](value T) T {
	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(value)
	members[t] = append(members[t], value)
	return value
}

// ToEnum converts the string s to the registered member of T whose string form
// equals s.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	for _, v := range Values[T]() {
		if fmt.Sprint(v) == s {
			return v, nil
		}
	}

	return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
}

// Values returns all registered members of T in registration order.
func Values[T comparable]() []T {
	mu.RLock()
	defer mu.RUnlock()

	var zero T
	result := []T{}
	for _, v := range members[reflect.TypeOf(zero)] {
		result = append(result, v.(T))
	}

	return result
}

func IsValid[T comparable](value T) bool {
	for _, v := range Values[T]() {
		if v == value {
			return true
		}
	}

	return false
}
