// Package mapper holds generic slice helpers shared by the persistence and DTO mappers.
package mapper

import "fmt"

// MapSlice applies mapFunc to each element. A nil input yields nil.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// MapPtrsWithID maps pointer slices with a fallible mapper, skipping nil
// inputs. Errors are annotated with the failing item's id.
func MapPtrsWithID[T any, R any, ID any](items []*T, mapFunc func(*T) (*R, error), getID func(*T) ID) ([]*R, error) {
	if items == nil {
		return nil, nil
	}
	result := make([]*R, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		mapped, err := mapFunc(item)
		if err != nil {
			return nil, fmt.Errorf("failed to map item ID %v: %w", getID(item), err)
		}
		result = append(result, mapped)
	}
	return result, nil
}
