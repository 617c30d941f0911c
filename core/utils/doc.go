// Package utils provides common utility functions for the inventory synchronizer.
// It includes lenient type conversion used when decoding stock adjustment
// events, whose producers may send identifiers as numbers or numeric strings.
package utils
