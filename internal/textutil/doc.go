// Package textutil cleans operator-supplied labels before they reach the
// single-line countdown view.
package textutil
